package physio

// NetPhotosynthesis returns A_n = V_c - 0.5·V_o - R_d. The result is negative
// whenever photorespiration and dark respiration exceed carboxylation.
func NetPhotosynthesis(vc, vo, rd float64) float64 {
	return vc - 0.5*vo - rd
}

// NetPhotosynthesisSeries sweeps V_c at fixed V_o and R_d.
func NetPhotosynthesisSeries(vc []float64, vo, rd float64) []float64 {
	out := make([]float64, len(vc))
	for i, v := range vc {
		out[i] = NetPhotosynthesis(v, vo, rd)
	}
	return out
}

// NetPhotosynthesisByVo sweeps V_o at fixed V_c and R_d.
func NetPhotosynthesisByVo(vc float64, vo []float64, rd float64) []float64 {
	out := make([]float64, len(vo))
	for i, v := range vo {
		out[i] = NetPhotosynthesis(vc, v, rd)
	}
	return out
}
