package physio

import "gonum.org/v1/gonum/floats"

// MaintenanceRespiration returns R_m = Σ r_{m,i} · W_i for organ dry weights
// W_i (g m⁻²) and matching coefficients r_{m,i} (g CH₂O g⁻¹ d⁻¹). Both
// sequences must have the same length; nothing is computed otherwise.
func MaintenanceRespiration(weights, coeffs []float64) (float64, error) {
	if len(weights) != len(coeffs) {
		return 0, &FormulaError{Formula: "maintenance respiration", Wrapped: ErrDimensionMismatch}
	}
	if len(weights) == 0 {
		return 0, nil
	}
	return floats.Dot(weights, coeffs), nil
}

// OrganContributions returns the per-organ terms r_{m,i} · W_i whose sum is
// MaintenanceRespiration.
func OrganContributions(weights, coeffs []float64) ([]float64, error) {
	if len(weights) != len(coeffs) {
		return nil, &FormulaError{Formula: "organ contributions", Wrapped: ErrDimensionMismatch}
	}
	out := make([]float64, len(weights))
	floats.MulTo(out, weights, coeffs)
	return out, nil
}
