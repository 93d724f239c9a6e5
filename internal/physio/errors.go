package physio

import "errors"

// Domain errors for formula evaluation.
var (
	// ErrDimensionMismatch indicates paired sequences of unequal length.
	ErrDimensionMismatch = errors.New("physio: dimension mismatch between paired sequences")

	// ErrDivisionByZero names a zero reference constant. Formulas never return
	// it; it is reported by validation only.
	ErrDivisionByZero = errors.New("physio: reference constant is zero")

	// ErrEmptyDomain indicates a sweep with too few samples.
	ErrEmptyDomain = errors.New("physio: domain needs at least two samples")
)

// FormulaError wraps an error with the formula that produced it.
type FormulaError struct {
	Formula string
	Wrapped error
}

func (e *FormulaError) Error() string {
	return e.Formula + ": " + e.Wrapped.Error()
}

func (e *FormulaError) Unwrap() error {
	return e.Wrapped
}
