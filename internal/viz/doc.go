// Package viz presents crop physiology charts in the terminal.
//
//   - [Preview]: asciigraph rendering of every panel of a figure
//   - [Browse]: Bubble Tea browser over the chart registry
//   - [Rendered]: styled confirmation line for written files
//
// # Key Bindings
//
//	j/k   - Move through the chart list
//	Enter - Open the selected chart
//	R     - Render the open chart to disk
//	T     - Cycle color themes
//	Esc   - Back to the list
//	Q     - Quit
package viz
