package physio

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GrowthRespiration returns R_g = m · GTW in g CO₂ m⁻² d⁻¹, where gtw is the
// daily assimilate production (g DM m⁻² d⁻¹) and m the growth respiration
// coefficient (g CO₂ g⁻¹ DM).
func GrowthRespiration(gtw, m float64) float64 {
	return m * gtw
}

// GrowthRespirationSeries evaluates GrowthRespiration over a sweep of GTW.
func GrowthRespirationSeries(gtw []float64, m float64) []float64 {
	out := make([]float64, len(gtw))
	for i, g := range gtw {
		out[i] = GrowthRespiration(g, m)
	}
	return out
}

// CompositeCoefficient computes an organ-level growth coefficient
// m_i = Σ f_j · m_j from component mass fractions and per-component
// coefficients. The fractions are expected to sum to one but are not checked.
func CompositeCoefficient(fractions, coeffs []float64) (float64, error) {
	if len(fractions) != len(coeffs) {
		return 0, &FormulaError{Formula: "composite coefficient", Wrapped: ErrDimensionMismatch}
	}
	if len(fractions) == 0 {
		return 0, nil
	}
	return floats.Dot(fractions, coeffs), nil
}

// SeasonalAssimilation is a bell-shaped GTW course over a growing season,
// peaking at maxGTW on peakDay.
func SeasonalAssimilation(day, peakDay, maxGTW, width float64) float64 {
	z := (day - peakDay) / width
	return maxGTW * math.Exp(-z*z)
}
