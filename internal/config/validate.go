package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/cropviz/internal/physio"
)

// fractionTolerance bounds how far composite fractions may drift from 1.
const fractionTolerance = 1e-9

// Warning is a suspicious parameter. The formulas still evaluate it.
type Warning struct {
	Field string
	Err   error
}

func (w Warning) Error() string {
	return w.Field + ": " + w.Err.Error()
}

func (w Warning) Unwrap() error {
	return w.Err
}

// ErrFractionSum reports composite fractions that do not add up to one.
var ErrFractionSum = errors.New("config: fractions do not sum to 1")

// Validate lists parameters that will produce non-finite or surprising
// values. It never changes the configuration.
func (c *Config) Validate() []Warning {
	var ws []Warning
	add := func(field string, err error) {
		ws = append(ws, Warning{Field: field, Err: err})
	}

	g := c.Growth
	for _, o := range g.Organs {
		field := fmt.Sprintf("growth.organs[%s]", o.Organ)
		if len(o.Fractions) != len(g.Components) {
			add(field, fmt.Errorf("%w: %d fractions for %d components",
				physio.ErrDimensionMismatch, len(o.Fractions), len(g.Components)))
			continue
		}
		sum := 0.0
		for _, f := range o.Fractions {
			sum += f
		}
		if math.Abs(sum-1) > fractionTolerance {
			add(field, fmt.Errorf("%w (sum %.6g)", ErrFractionSum, sum))
		}
	}

	m := c.Maintenance
	for _, s := range m.Stages {
		if len(s.Weights) != len(m.Organs) {
			add(fmt.Sprintf("maintenance.stages[%s]", s.Name), fmt.Errorf("%w: %d weights for %d organs",
				physio.ErrDimensionMismatch, len(s.Weights), len(m.Organs)))
		}
	}

	n := c.Nitrogen
	if n.NRef == 0 {
		add("nitrogen.n_ref", physio.ErrDivisionByZero)
	}
	for _, o := range n.Organs {
		if o.NRef == 0 {
			add(fmt.Sprintf("nitrogen.organs[%s].n_ref", o.Name), physio.ErrDivisionByZero)
		}
	}
	for i, v := range n.NRefLevels {
		if v == 0 {
			add(fmt.Sprintf("nitrogen.n_ref_levels[%d]", i), physio.ErrDivisionByZero)
		}
	}

	r := c.Rubisco
	for _, k := range []struct {
		field string
		v     float64
	}{{"rubisco.ks", r.Ks}, {"rubisco.kc", r.Kc}, {"rubisco.ko", r.Ko}} {
		if k.v == 0 {
			add(k.field, physio.ErrDivisionByZero)
		}
	}

	if c.Samples < 2 {
		add("samples", fmt.Errorf("%w: need at least 2 samples, got %d", physio.ErrEmptyDomain, c.Samples))
	}
	return ws
}
