package physio

import "github.com/san-kum/cropviz/internal/sweep"

// RubiscoConstants holds the kinetic constants of the Rubisco respiration
// formula. All are expected to be strictly positive.
type RubiscoConstants struct {
	Rpmax float64 // maximum rate, μmol CO₂ m⁻² s⁻¹
	Ks    float64 // Michaelis constant for O₂, mmol mol⁻¹
	Kc    float64 // Michaelis constant for CO₂, μmol mol⁻¹
	Ko    float64 // inhibition constant for O₂, mmol mol⁻¹
}

// RubiscoRp returns R_p = R_pmax · (O₂/K_s) / ((CO₂/K_c) + 1 + O₂/K_o).
// co2 is in μmol mol⁻¹ and o2 in mmol mol⁻¹.
func RubiscoRp(co2, o2 float64, k RubiscoConstants) float64 {
	numerator := o2 / k.Ks
	denominator := co2/k.Kc + (1 + o2/k.Ko)
	return k.Rpmax * numerator / denominator
}

// O2FromPercent converts an O₂ percentage to mmol mol⁻¹.
func O2FromPercent(pct float64) float64 {
	return pct * 10
}

// RubiscoSeries sweeps CO₂ at a fixed O₂ given in percent.
func RubiscoSeries(co2 []float64, o2Pct float64, k RubiscoConstants) []float64 {
	o2 := O2FromPercent(o2Pct)
	out := make([]float64, len(co2))
	for i, c := range co2 {
		out[i] = RubiscoRp(c, o2, k)
	}
	return out
}

// Surface is a function sampled over the outer product of two axes.
// Z[r][c] is the value at (X[c], Y[r]).
type Surface struct {
	X []float64
	Y []float64
	Z [][]float64
}

// Dims returns the number of columns and rows.
func (s *Surface) Dims() (c, r int) {
	return len(s.X), len(s.Y)
}

// Range returns the minimum and maximum of Z.
func (s *Surface) Range() (lo, hi float64) {
	first := true
	for _, row := range s.Z {
		for _, v := range row {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

// RubiscoSurface evaluates RubiscoRp over the meshgrid of co2 (columns) and
// o2Pct (rows, percent).
func RubiscoSurface(co2, o2Pct []float64, k RubiscoConstants) *Surface {
	z := sweep.Mesh(co2, o2Pct, func(c, pct float64) float64 {
		return RubiscoRp(c, O2FromPercent(pct), k)
	})
	return &Surface{X: co2, Y: o2Pct, Z: z}
}
