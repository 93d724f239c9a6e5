// Package export writes the data behind a chart as CSV, JSON or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/tealeg/xlsx"
)

var ErrFormat = errors.New("export: unsupported format")

// Formats lists the supported export formats.
var Formats = []string{"csv", "json", "xlsx"}

// Table is the flattened data of one chart.
type Table struct {
	Chart  string   `json:"chart"`
	Group  string   `json:"group"`
	Series []Column `json:"series"`
}

type Column struct {
	Panel string    `json:"panel"`
	Label string    `json:"label"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// MarshalJSON writes non-finite values as null.
func (c Column) MarshalJSON() ([]byte, error) {
	type column struct {
		Panel string     `json:"panel"`
		Label string     `json:"label"`
		X     []*float64 `json:"x"`
		Y     []*float64 `json:"y"`
	}
	return json.Marshal(column{Panel: c.Panel, Label: c.Label, X: nullable(c.X), Y: nullable(c.Y)})
}

func nullable(vs []float64) []*float64 {
	if vs == nil {
		return nil
	}
	out := make([]*float64, len(vs))
	for i := range vs {
		if !math.IsInf(vs[i], 0) && !math.IsNaN(vs[i]) {
			out[i] = &vs[i]
		}
	}
	return out
}

// FromFigure collects every series of fig.
func FromFigure(group string, fig *chart.Figure) Table {
	t := Table{Chart: fig.Name, Group: group}
	for _, s := range fig.Series() {
		t.Series = append(t.Series, Column{Panel: s.Panel, Label: s.Label, X: s.X, Y: s.Y})
	}
	return t
}

// Points returns the total number of rows a long-format export holds.
func (t Table) Points() int {
	n := 0
	for _, c := range t.Series {
		n += len(c.X)
	}
	return n
}

var header = []string{"panel", "series", "x", "y"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write encodes t to w in the given format.
func Write(w io.Writer, format string, t Table) error {
	switch format {
	case "csv":
		return writeCSV(w, t)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case "xlsx":
		f, err := workbook(t)
		if err != nil {
			return err
		}
		return f.Write(w)
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// WriteFile writes t to dir/<chart>.<format> and returns the path.
func WriteFile(dir, format string, t Table) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path = filepath.Join(dir, t.Chart+"."+format)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return path, Write(file, format, t)
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range t.Series {
		for i := range c.X {
			row := []string{c.Panel, c.Label, formatFloat(c.X[i]), formatFloat(c.Y[i])}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// sheet names are limited to 31 characters
const maxSheetName = 31

func sheetName(s string) string {
	if len(s) > maxSheetName {
		return s[:maxSheetName]
	}
	return s
}

func workbook(t Table) (*xlsx.File, error) {
	f := xlsx.NewFile()

	data, err := f.AddSheet(sheetName(t.Chart))
	if err != nil {
		return nil, err
	}
	row := data.AddRow()
	for _, h := range header {
		row.AddCell().SetString(h)
	}
	for _, c := range t.Series {
		for i := range c.X {
			row := data.AddRow()
			row.AddCell().SetString(c.Panel)
			row.AddCell().SetString(c.Label)
			row.AddCell().SetFloat(c.X[i])
			row.AddCell().SetFloat(c.Y[i])
		}
	}

	summary, err := f.AddSheet("series")
	if err != nil {
		return nil, err
	}
	row = summary.AddRow()
	for _, h := range []string{"panel", "series", "points"} {
		row.AddCell().SetString(h)
	}
	for _, c := range t.Series {
		row := summary.AddRow()
		row.AddCell().SetString(c.Panel)
		row.AddCell().SetString(c.Label)
		row.AddCell().SetInt(len(c.X))
	}
	return f, nil
}
