package physio

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RespirationRatio returns R_p = α · P_g.
func RespirationRatio(pg, alpha float64) float64 {
	return alpha * pg
}

// RespirationRatioSeries sweeps P_g at fixed α.
func RespirationRatioSeries(pg []float64, alpha float64) []float64 {
	out := make([]float64, len(pg))
	for i, p := range pg {
		out[i] = RespirationRatio(p, alpha)
	}
	return out
}

// SyntheticScatter draws n illustrative (P_g, R_p) points around the line
// R_p = α · P_g. P_g is uniform on [0.1·pgMax, 0.95·pgMax] and the noise is
// normal with zero mean and standard deviation 0.03·α·pgMax. All n uniforms
// are drawn before the n normals from a single source, so a given seed always
// reproduces the same arrays.
func SyntheticScatter(n int, alpha, pgMax float64, seed uint64) (pg, rp []float64) {
	src := rand.NewSource(seed)
	uni := distuv.Uniform{Min: 0.1 * pgMax, Max: 0.95 * pgMax, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 0.03 * alpha * pgMax, Src: src}

	pg = make([]float64, n)
	for i := range pg {
		pg[i] = uni.Rand()
	}
	rp = make([]float64, n)
	for i := range rp {
		rp[i] = RespirationRatio(pg[i], alpha) + noise.Rand()
	}
	return pg, rp
}
