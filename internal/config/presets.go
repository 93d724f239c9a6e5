package config

import "sort"

// Preset adjusts the defaults for a use case.
type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"publication": {
		Description: "300 dpi, whitegrid theme, full sample density",
		Apply:       func(*Config) {},
	},
	"draft": {
		Description: "96 dpi, coarse sweeps for quick iteration",
		Apply: func(c *Config) {
			c.Output.DPI = 96
			c.Samples = 100
			c.Ratio.Samples = 100
			c.Rubisco.SurfaceSamples = 40
		},
	},
	"classic": {
		Description: "publication settings with the classic theme",
		Apply: func(c *Config) {
			c.Output.Theme = "classic"
		},
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
