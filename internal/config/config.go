package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/cropviz/internal/physio"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir = "figures"
	DefaultTheme     = "whitegrid"
	DefaultDPI       = 300
	DefaultSamples   = 300
	DefaultSeed      = 42
	DefaultPreset    = "publication"
)

type Config struct {
	Output         OutputConfig         `yaml:"output" toml:"output"`
	Samples        int                  `yaml:"samples" toml:"samples"`
	Seed           uint64               `yaml:"seed" toml:"seed"`
	Growth         GrowthParams         `yaml:"growth" toml:"growth"`
	Maintenance    MaintenanceParams    `yaml:"maintenance" toml:"maintenance"`
	Photosynthesis PhotosynthesisParams `yaml:"photosynthesis" toml:"photosynthesis"`
	Nitrogen       NitrogenParams       `yaml:"nitrogen" toml:"nitrogen"`
	Ratio          RatioParams          `yaml:"ratio" toml:"ratio"`
	Rubisco        RubiscoParams        `yaml:"rubisco" toml:"rubisco"`
	Temperature    TemperatureParams    `yaml:"temperature" toml:"temperature"`
}

type OutputConfig struct {
	Dir   string `yaml:"dir" toml:"dir"`
	Theme string `yaml:"theme" toml:"theme"`
	DPI   int    `yaml:"dpi" toml:"dpi"`
}

// Component is a chemical constituent with its growth respiration coefficient
// (g CO₂ g⁻¹ DM).
type Component struct {
	Name string  `yaml:"name" toml:"name"`
	M    float64 `yaml:"m" toml:"m"`
}

// Composition holds an organ's mass fraction of each component, in the order
// of GrowthParams.Components.
type Composition struct {
	Organ     string    `yaml:"organ" toml:"organ"`
	Fractions []float64 `yaml:"fractions" toml:"fractions"`
}

type SeasonParams struct {
	Days    int     `yaml:"days" toml:"days"`
	PeakDay float64 `yaml:"peak_day" toml:"peak_day"`
	MaxGTW  float64 `yaml:"max_gtw" toml:"max_gtw"`
	Width   float64 `yaml:"width" toml:"width"`
	M       float64 `yaml:"m" toml:"m"`
}

type GrowthParams struct {
	GTWMax     float64       `yaml:"gtw_max" toml:"gtw_max"`
	M          []float64     `yaml:"m" toml:"m"`
	Typical    float64       `yaml:"typical" toml:"typical"`
	Components []Component   `yaml:"components" toml:"components"`
	Organs     []Composition `yaml:"organs" toml:"organs"`
	Season     SeasonParams  `yaml:"season" toml:"season"`
}

// Organ is a plant organ with its maintenance coefficient (g CH₂O g⁻¹ d⁻¹).
type Organ struct {
	Name  string  `yaml:"name" toml:"name"`
	Coeff float64 `yaml:"coeff" toml:"coeff"`
}

// Stage holds organ dry weights (g m⁻²) in the order of MaintenanceParams.Organs.
type Stage struct {
	Name    string    `yaml:"name" toml:"name"`
	Weights []float64 `yaml:"weights" toml:"weights"`
}

type CoeffRange struct {
	Organ string  `yaml:"organ" toml:"organ"`
	Mean  float64 `yaml:"mean" toml:"mean"`
	Min   float64 `yaml:"min" toml:"min"`
	Max   float64 `yaml:"max" toml:"max"`
}

type MaintenanceParams struct {
	Organs      []Organ      `yaml:"organs" toml:"organs"`
	Stages      []Stage      `yaml:"stages" toml:"stages"`
	LeafMax     float64      `yaml:"leaf_max" toml:"leaf_max"`
	StemWeight  float64      `yaml:"stem_weight" toml:"stem_weight"`
	RootWeight  float64      `yaml:"root_weight" toml:"root_weight"`
	Ranges      []CoeffRange `yaml:"ranges" toml:"ranges"`
	RangeWeight float64      `yaml:"range_weight" toml:"range_weight"`
}

type PhotosynthesisParams struct {
	VcMax    float64   `yaml:"vc_max" toml:"vc_max"`
	VoLevels []float64 `yaml:"vo_levels" toml:"vo_levels"`
	Rd       float64   `yaml:"rd" toml:"rd"`
	StackVo  float64   `yaml:"stack_vo" toml:"stack_vo"`
	Vc       float64   `yaml:"vc" toml:"vc"`
	VoMax    float64   `yaml:"vo_max" toml:"vo_max"`
	RdLevels []float64 `yaml:"rd_levels" toml:"rd_levels"`
}

// NitrogenOrgan pairs an organ's reference coefficient with its reference
// nitrogen content (%).
type NitrogenOrgan struct {
	Name string  `yaml:"name" toml:"name"`
	RRef float64 `yaml:"r_ref" toml:"r_ref"`
	NRef float64 `yaml:"n_ref" toml:"n_ref"`
}

type NitrogenParams struct {
	NRef        float64         `yaml:"n_ref" toml:"n_ref"`
	RRef        []float64       `yaml:"r_ref" toml:"r_ref"`
	Typical     float64         `yaml:"typical" toml:"typical"`
	NMin        float64         `yaml:"n_min" toml:"n_min"`
	NMax        float64         `yaml:"n_max" toml:"n_max"`
	Organs      []NitrogenOrgan `yaml:"organs" toml:"organs"`
	OrganNMax   float64         `yaml:"organ_n_max" toml:"organ_n_max"`
	NRefLevels  []float64       `yaml:"n_ref_levels" toml:"n_ref_levels"`
	Multipliers []float64       `yaml:"multipliers" toml:"multipliers"`
}

type RatioParams struct {
	Alpha    float64 `yaml:"alpha" toml:"alpha"`
	AlphaMin float64 `yaml:"alpha_min" toml:"alpha_min"`
	AlphaMax float64 `yaml:"alpha_max" toml:"alpha_max"`
	PgMax    float64 `yaml:"pg_max" toml:"pg_max"`
	Samples  int     `yaml:"samples" toml:"samples"`
	Points   int     `yaml:"points" toml:"points"`
}

type RubiscoParams struct {
	Rpmax          float64   `yaml:"rpmax" toml:"rpmax"`
	Ks             float64   `yaml:"ks" toml:"ks"`
	Kc             float64   `yaml:"kc" toml:"kc"`
	Ko             float64   `yaml:"ko" toml:"ko"`
	CO2Max         float64   `yaml:"co2_max" toml:"co2_max"`
	O2Levels       []float64 `yaml:"o2_levels" toml:"o2_levels"`
	O2Min          float64   `yaml:"o2_min" toml:"o2_min"`
	O2Max          float64   `yaml:"o2_max" toml:"o2_max"`
	SurfaceSamples int       `yaml:"surface_samples" toml:"surface_samples"`
}

type TemperatureParams struct {
	Rm0          float64   `yaml:"rm0" toml:"rm0"`
	T0           float64   `yaml:"t0" toml:"t0"`
	Q10          []float64 `yaml:"q10" toml:"q10"`
	Typical      float64   `yaml:"typical" toml:"typical"`
	TMin         float64   `yaml:"t_min" toml:"t_min"`
	TMax         float64   `yaml:"t_max" toml:"t_max"`
	Temperatures []float64 `yaml:"temperatures" toml:"temperatures"`
	Q10Min       float64   `yaml:"q10_min" toml:"q10_min"`
	Q10Max       float64   `yaml:"q10_max" toml:"q10_max"`
	Multipliers  []float64 `yaml:"multipliers" toml:"multipliers"`
}

func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:   DefaultOutputDir,
			Theme: DefaultTheme,
			DPI:   DefaultDPI,
		},
		Samples: DefaultSamples,
		Seed:    DefaultSeed,
		Growth: GrowthParams{
			GTWMax:  30,
			M:       []float64{0.20, 0.25, 0.30, 0.35},
			Typical: 0.25,
			Components: []Component{
				{Name: "Carbohydrate", M: 0.17},
				{Name: "Protein", M: 2.01},
				{Name: "Lipid", M: 1.72},
				{Name: "Lignin", M: 0.66},
				{Name: "Organic acid", M: -0.01},
			},
			Organs: []Composition{
				{Organ: "Leaf", Fractions: []float64{0.30, 0.20, 0.10, 0.15, 0.25}},
				{Organ: "Stem", Fractions: []float64{0.45, 0.08, 0.05, 0.35, 0.07}},
				{Organ: "Root", Fractions: []float64{0.40, 0.12, 0.08, 0.30, 0.10}},
				{Organ: "Grain", Fractions: []float64{0.60, 0.20, 0.15, 0.03, 0.02}},
			},
			Season: SeasonParams{Days: 100, PeakDay: 50, MaxGTW: 25, Width: 25, M: 0.25},
		},
		Maintenance: MaintenanceParams{
			Organs: []Organ{
				{Name: "Leaf", Coeff: 0.015},
				{Name: "Stem", Coeff: 0.010},
				{Name: "Root", Coeff: 0.012},
				{Name: "Fruit/grain", Coeff: 0.008},
			},
			Stages: []Stage{
				{Name: "Vegetative", Weights: []float64{150, 50, 80, 0}},
				{Name: "Flowering", Weights: []float64{250, 120, 150, 50}},
				{Name: "Grain filling", Weights: []float64{200, 150, 120, 200}},
				{Name: "Maturity", Weights: []float64{150, 160, 100, 300}},
			},
			LeafMax:    400,
			StemWeight: 100,
			RootWeight: 100,
			Ranges: []CoeffRange{
				{Organ: "Leaf", Mean: 0.015, Min: 0.012, Max: 0.018},
				{Organ: "Stem", Mean: 0.010, Min: 0.008, Max: 0.012},
				{Organ: "Root", Mean: 0.012, Min: 0.010, Max: 0.014},
				{Organ: "Fruit/grain", Mean: 0.008, Min: 0.006, Max: 0.010},
				{Organ: "Flower", Mean: 0.020, Min: 0.016, Max: 0.024},
			},
			RangeWeight: 100,
		},
		Photosynthesis: PhotosynthesisParams{
			VcMax:    100,
			VoLevels: []float64{0, 20, 40, 60},
			Rd:       2,
			StackVo:  40,
			Vc:       80,
			VoMax:    80,
			RdLevels: []float64{0, 1, 2, 4},
		},
		Nitrogen: NitrogenParams{
			NRef:    3.0,
			RRef:    []float64{0.012, 0.015, 0.018},
			Typical: 0.015,
			NMin:    0.5,
			NMax:    6.0,
			Organs: []NitrogenOrgan{
				{Name: "Leaf", RRef: 0.015, NRef: 3.0},
				{Name: "Stem", RRef: 0.010, NRef: 1.5},
				{Name: "Root", RRef: 0.012, NRef: 2.0},
			},
			OrganNMax:   5.0,
			NRefLevels:  []float64{2.0, 3.0, 4.0},
			Multipliers: []float64{0.5, 1.5, 2},
		},
		Ratio: RatioParams{
			Alpha:    0.45,
			AlphaMin: 0.30,
			AlphaMax: 0.60,
			PgMax:    40,
			Samples:  200,
			Points:   12,
		},
		Rubisco: RubiscoParams{
			Rpmax:          20,
			Ks:             2.5,
			Kc:             40,
			Ko:             25,
			CO2Max:         1000,
			O2Levels:       []float64{10, 21, 30, 40},
			O2Min:          5,
			O2Max:          50,
			SurfaceSamples: 100,
		},
		Temperature: TemperatureParams{
			Rm0:          5.0,
			T0:           25,
			Q10:          []float64{1.5, 2.0, 2.5, 3.0},
			Typical:      2.0,
			TMin:         0,
			TMax:         40,
			Temperatures: []float64{10, 20, 25, 30, 35},
			Q10Min:       1.2,
			Q10Max:       3.5,
			Multipliers:  []float64{0.5, 2, 4},
		},
	}
}

// Load reads a YAML or TOML file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads a config file over a copy of base. Keys absent from the
// file keep the values of base.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (r RubiscoParams) Constants() physio.RubiscoConstants {
	return physio.RubiscoConstants{Rpmax: r.Rpmax, Ks: r.Ks, Kc: r.Kc, Ko: r.Ko}
}

// Clone returns a deep copy so presets and overrides never alias slices.
func (c *Config) Clone() *Config {
	data, err := yaml.Marshal(c)
	if err != nil {
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	out := &Config{}
	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	return out
}
