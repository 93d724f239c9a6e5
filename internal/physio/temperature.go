package physio

import "math"

// DefaultReferenceTemperature is the usual T0 in °C.
const DefaultReferenceTemperature = 25.0

// TemperatureRespiration returns R_m(T) = R_m0 · Q10^((T-T0)/10).
func TemperatureRespiration(t, rm0, q10, t0 float64) float64 {
	return rm0 * TemperatureRelative(t, q10, t0)
}

// TemperatureRelative returns the multiplier Q10^((T-T0)/10) with respect to
// the rate at T0.
func TemperatureRelative(t, q10, t0 float64) float64 {
	return math.Pow(q10, (t-t0)/10)
}

// TemperatureSeries sweeps T at fixed R_m0, Q10 and T0.
func TemperatureSeries(t []float64, rm0, q10, t0 float64) []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = TemperatureRespiration(v, rm0, q10, t0)
	}
	return out
}

// Q10Series sweeps Q10 at a fixed temperature.
func Q10Series(q10 []float64, t, rm0, t0 float64) []float64 {
	out := make([]float64, len(q10))
	for i, q := range q10 {
		out[i] = TemperatureRespiration(t, rm0, q, t0)
	}
	return out
}

// TemperatureRelativeSeries sweeps T at fixed Q10 and T0.
func TemperatureRelativeSeries(t []float64, q10, t0 float64) []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = TemperatureRelative(v, q10, t0)
	}
	return out
}
