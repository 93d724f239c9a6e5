package sweep

import "fmt"

// Grid is a Cartesian product of named parameter levels. Points are produced
// with the first parameter varying slowest.
type Grid struct {
	names  []string
	levels [][]float64
}

func NewGrid() *Grid {
	return &Grid{}
}

// Add appends a parameter. Names must be unique.
func (g *Grid) Add(name string, levels ...float64) error {
	for _, n := range g.names {
		if n == name {
			return fmt.Errorf("duplicate sweep parameter: %s", name)
		}
	}
	if len(levels) == 0 {
		return fmt.Errorf("sweep parameter %s has no levels", name)
	}
	g.names = append(g.names, name)
	g.levels = append(g.levels, levels)
	return nil
}

func (g *Grid) Names() []string {
	return append([]string(nil), g.names...)
}

// Size is the number of points in the product.
func (g *Grid) Size() int {
	if len(g.names) == 0 {
		return 0
	}
	n := 1
	for _, l := range g.levels {
		n *= len(l)
	}
	return n
}

// Points enumerates every combination of levels.
func (g *Grid) Points() []map[string]float64 {
	if len(g.names) == 0 {
		return nil
	}
	out := make([]map[string]float64, 0, g.Size())
	g.walk(0, make(map[string]float64, len(g.names)), &out)
	return out
}

func (g *Grid) walk(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.names) {
		p := make(map[string]float64, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}

	name := g.names[depth]
	for _, v := range g.levels[depth] {
		current[name] = v
		g.walk(depth+1, current, out)
	}
}

// Mesh evaluates f over the outer product of xs (columns) and ys (rows),
// returning z[row][col].
func Mesh(xs, ys []float64, f func(x, y float64) float64) [][]float64 {
	z := make([][]float64, len(ys))
	for r, y := range ys {
		row := make([]float64, len(xs))
		for c, x := range xs {
			row[c] = f(x, y)
		}
		z[r] = row
	}
	return z
}
