// Package chart renders declarative figures to PNG and PDF with gonum/plot.
//
// A [Figure] is a grid of [Panel] values, each holding plot elements:
//
//   - [Line]: a curve with optional hollow markers at sample indices
//   - [Band]: a filled region between two curves
//   - [Bars]: bar groups, optionally stacked or shaded per bar
//   - [ErrorBars], [Points], [RefLine], [Note], [Annotations]
//   - [Surface]: a projected wireframe surface for two-variable functions
//
// Styling comes from an explicit [Theme] handed to the [Renderer]; nothing is
// configured through package state, so figures can be rendered concurrently.
// Series look is described by ordered [SeriesStyle] records.
//
// # Output
//
// Every figure is written once per format as <name>.png (raster, configurable
// DPI) and <name>.pdf (vector, fonts embedded). Each file is closed before
// Render returns, whether or not writing succeeded.
package chart
