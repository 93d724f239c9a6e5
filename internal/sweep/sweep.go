// Package sweep builds the input domains that formulas are evaluated over.
package sweep

import "gonum.org/v1/gonum/floats"

// Linspace returns n evenly spaced samples over the closed interval [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{lo}
	}
	xs := floats.Span(make([]float64, n), lo, hi)
	// pin the endpoint so hi is reproduced exactly
	xs[n-1] = hi
	return xs
}

// Arange returns lo, lo+1, ... up to but excluding hi.
func Arange(lo, hi int) []float64 {
	if hi <= lo {
		return []float64{}
	}
	out := make([]float64, hi-lo)
	for i := range out {
		out[i] = float64(lo + i)
	}
	return out
}

// SampleIndices picks k marker positions spread over a series of length n,
// keeping margin samples clear at either end. Positions are truncated toward
// zero, so the last index is n-margin.
func SampleIndices(n, margin, k int) []int {
	if k <= 0 || n <= 0 {
		return nil
	}
	pos := Linspace(float64(margin), float64(n-margin), k)
	idx := make([]int, 0, k)
	for _, p := range pos {
		i := int(p)
		if i < 0 || i >= n {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// Constant returns a slice of n copies of v.
func Constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
