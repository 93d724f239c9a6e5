package physio

// NitrogenCoefficient scales a reference maintenance coefficient by nitrogen
// content: r'_{m,i} = r_ref · (N_i / N_ref).
func NitrogenCoefficient(ni, rRef, nRef float64) float64 {
	return rRef * (ni / nRef)
}

// NitrogenRelative is r'_{m,i} / r_ref = N_i / N_ref.
func NitrogenRelative(ni, nRef float64) float64 {
	return ni / nRef
}

// NitrogenCoefficientSeries sweeps N_i at fixed r_ref and N_ref.
func NitrogenCoefficientSeries(ni []float64, rRef, nRef float64) []float64 {
	out := make([]float64, len(ni))
	for i, n := range ni {
		out[i] = NitrogenCoefficient(n, rRef, nRef)
	}
	return out
}

// NitrogenRelativeSeries sweeps N_i at fixed N_ref.
func NitrogenRelativeSeries(ni []float64, nRef float64) []float64 {
	out := make([]float64, len(ni))
	for i, n := range ni {
		out[i] = NitrogenRelative(n, nRef)
	}
	return out
}
