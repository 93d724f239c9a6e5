package charts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
	"github.com/san-kum/cropviz/internal/sweep"
)

var (
	ErrUnknownFormula = errors.New("charts: unknown formula")
	ErrUnknownParam   = errors.New("charts: unknown formula parameter")
)

// Param is one input of a formula with its default taken from the config.
type Param struct {
	Name    string
	Unit    string
	Default float64
}

// Formula evaluates one physiological relation at a single point.
type Formula struct {
	Name   string
	Expr   string
	Unit   string
	Params []Param
	Eval   func(p map[string]float64) float64
}

// Point is one evaluated combination of parameter levels.
type Point struct {
	Params map[string]float64
	Value  float64
}

// Formulas lists the formulas with defaults drawn from cfg.
func Formulas(cfg *config.Config) []Formula {
	return []Formula{
		{
			Name: "growth",
			Expr: "Rg = m · GTW",
			Unit: unitCO2,
			Params: []Param{
				{"gtw", unitDM, cfg.Growth.GTWMax / 2},
				{"m", unitCoeffM, cfg.Growth.Typical},
			},
			Eval: func(p map[string]float64) float64 {
				return physio.GrowthRespiration(p["gtw"], p["m"])
			},
		},
		{
			Name: "maintenance",
			Expr: "Rm = Σ mᵢ · Wᵢ",
			Unit: unitCH2O,
			Params: []Param{
				{"w", "g DM m⁻²", cfg.Maintenance.StemWeight},
				{"m", unitCoeffRm, firstCoeff(cfg)},
			},
			Eval: func(p map[string]float64) float64 {
				// single organ; lengths always match
				rm, _ := physio.MaintenanceRespiration([]float64{p["w"]}, []float64{p["m"]})
				return rm
			},
		},
		{
			Name: "photosynthesis",
			Expr: "An = Vc − 0.5 · Vo − Rd",
			Unit: unitFlux,
			Params: []Param{
				{"vc", unitFlux, cfg.Photosynthesis.Vc},
				{"vo", unitFluxO2, cfg.Photosynthesis.StackVo},
				{"rd", unitFlux, cfg.Photosynthesis.Rd},
			},
			Eval: func(p map[string]float64) float64 {
				return physio.NetPhotosynthesis(p["vc"], p["vo"], p["rd"])
			},
		},
		{
			Name: "nitrogen",
			Expr: "r = r_ref · N / N_ref",
			Unit: unitCoeffRm,
			Params: []Param{
				{"n", "%", cfg.Nitrogen.NRef},
				{"r_ref", unitCoeffRm, cfg.Nitrogen.Typical},
				{"n_ref", "%", cfg.Nitrogen.NRef},
			},
			Eval: func(p map[string]float64) float64 {
				return physio.NitrogenCoefficient(p["n"], p["r_ref"], p["n_ref"])
			},
		},
		{
			Name: "ratio",
			Expr: "Rp = α · Pg",
			Unit: unitCO2,
			Params: []Param{
				{"pg", unitCO2, cfg.Ratio.PgMax / 2},
				{"alpha", "", cfg.Ratio.Alpha},
			},
			Eval: func(p map[string]float64) float64 {
				return physio.RespirationRatio(p["pg"], p["alpha"])
			},
		},
		{
			Name: "rubisco",
			Expr: "Rp = Rpmax · (O₂/Ks) / (CO₂/Kc + 1 + O₂/Ko)",
			Unit: unitFlux,
			Params: []Param{
				{"co2", "μmol mol⁻¹", cfg.Rubisco.CO2Max / 2},
				{"o2", "%", 21},
				{"rpmax", unitFlux, cfg.Rubisco.Rpmax},
				{"ks", "mmol mol⁻¹", cfg.Rubisco.Ks},
				{"kc", "μmol mol⁻¹", cfg.Rubisco.Kc},
				{"ko", "mmol mol⁻¹", cfg.Rubisco.Ko},
			},
			Eval: func(p map[string]float64) float64 {
				k := physio.RubiscoConstants{Rpmax: p["rpmax"], Ks: p["ks"], Kc: p["kc"], Ko: p["ko"]}
				return physio.RubiscoRp(p["co2"], physio.O2FromPercent(p["o2"]), k)
			},
		},
		{
			Name: "temperature",
			Expr: "Rm = Rm0 · Q10^((T − T0)/10)",
			Unit: unitCH2O,
			Params: []Param{
				{"t", "°C", cfg.Temperature.T0},
				{"rm0", unitCH2O, cfg.Temperature.Rm0},
				{"q10", "", cfg.Temperature.Typical},
				{"t0", "°C", cfg.Temperature.T0},
			},
			Eval: func(p map[string]float64) float64 {
				return physio.TemperatureRespiration(p["t"], p["rm0"], p["q10"], p["t0"])
			},
		},
	}
}

func firstCoeff(cfg *config.Config) float64 {
	if len(cfg.Maintenance.Organs) == 0 {
		return 0
	}
	return cfg.Maintenance.Organs[0].Coeff
}

// LookupFormula finds a formula by name.
func LookupFormula(cfg *config.Config, name string) (Formula, error) {
	for _, f := range Formulas(cfg) {
		if f.Name == name {
			return f, nil
		}
	}
	return Formula{}, fmt.Errorf("%w: %s", ErrUnknownFormula, name)
}

// Evaluate sweeps f over the Cartesian product of the given levels. Parameters
// without levels stay at their default. Points vary the first parameter slowest.
func Evaluate(f Formula, levels map[string][]float64) ([]Point, error) {
	known := make(map[string]bool, len(f.Params))
	for _, p := range f.Params {
		known[p.Name] = true
	}
	for name := range levels {
		if !known[name] {
			return nil, &physio.FormulaError{Formula: f.Name, Wrapped: fmt.Errorf("%w: %s", ErrUnknownParam, name)}
		}
	}

	g := sweep.NewGrid()
	for _, p := range f.Params {
		lv, ok := levels[p.Name]
		if !ok {
			lv = []float64{p.Default}
		}
		if err := g.Add(p.Name, lv...); err != nil {
			return nil, &physio.FormulaError{Formula: f.Name, Wrapped: err}
		}
	}

	grid := g.Points()
	out := make([]Point, len(grid))
	for i, p := range grid {
		out[i] = Point{Params: p, Value: f.Eval(p)}
	}
	return out, nil
}

// ParseLevels reads "name=v1,v2,..." or "name=lo:hi:n" into a parameter name
// and its levels.
func ParseLevels(s string) (string, []float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || raw == "" {
		return "", nil, fmt.Errorf("invalid levels %q: want name=v1,v2 or name=lo:hi:n", s)
	}

	if parts := strings.Split(raw, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		n, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err := errors.Join(err1, err2, err3); err != nil {
			return "", nil, fmt.Errorf("invalid range for %s: %w", name, err)
		}
		if n < 2 {
			return "", nil, &physio.FormulaError{Formula: name, Wrapped: physio.ErrEmptyDomain}
		}
		return name, sweep.Linspace(lo, hi, n), nil
	}

	var levels []float64
	for _, f := range strings.Split(raw, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid level for %s: %w", name, err)
		}
		levels = append(levels, v)
	}
	return name, levels, nil
}
