package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cropviz/internal/physio"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Dir != "figures" {
		t.Errorf("expected output dir figures, got %s", cfg.Output.Dir)
	}
	if cfg.Output.DPI != 300 {
		t.Errorf("expected 300 dpi, got %d", cfg.Output.DPI)
	}
	if cfg.Samples != 300 {
		t.Errorf("expected 300 samples, got %d", cfg.Samples)
	}
	if cfg.Temperature.T0 != physio.DefaultReferenceTemperature {
		t.Errorf("expected T0 %v, got %v", physio.DefaultReferenceTemperature, cfg.Temperature.T0)
	}
	if len(cfg.Growth.Components) != 5 {
		t.Errorf("expected 5 components, got %d", len(cfg.Growth.Components))
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if ws := DefaultConfig().Validate(); len(ws) != 0 {
		t.Errorf("expected no warnings, got %v", ws)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
		want   error
	}{
		{"zero n_ref", func(c *Config) { c.Nitrogen.NRef = 0 }, "nitrogen.n_ref", physio.ErrDivisionByZero},
		{"zero kc", func(c *Config) { c.Rubisco.Kc = 0 }, "rubisco.kc", physio.ErrDivisionByZero},
		{"fraction sum", func(c *Config) { c.Growth.Organs[0].Fractions[0] = 0.5 }, "growth.organs[Leaf]", ErrFractionSum},
		{"fraction count", func(c *Config) { c.Growth.Organs[1].Fractions = []float64{1} }, "growth.organs[Stem]", physio.ErrDimensionMismatch},
		{"stage weights", func(c *Config) { c.Maintenance.Stages[2].Weights = nil }, "maintenance.stages[Grain filling]", physio.ErrDimensionMismatch},
		{"samples", func(c *Config) { c.Samples = 1 }, "samples", physio.ErrEmptyDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			ws := cfg.Validate()
			if len(ws) != 1 {
				t.Fatalf("expected 1 warning, got %v", ws)
			}
			if ws[0].Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, ws[0].Field)
			}
			if !errors.Is(ws[0], tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ws[0].Err)
			}
		})
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nitrogen.NRef = 0
	cfg.Validate()
	if cfg.Nitrogen.NRef != 0 {
		t.Error("expected validate to leave the config unchanged")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("draft")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Output.DPI != 96 {
		t.Errorf("expected dpi 96, got %d", cfg.Output.DPI)
	}
	if cfg.Samples != 100 {
		t.Errorf("expected 100 samples, got %d", cfg.Samples)
	}

	if c := GetPreset("classic"); c == nil || c.Output.Theme != "classic" {
		t.Error("expected classic theme preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"classic", "draft", "publication"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, presets[i])
		}
	}
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropviz.yaml")
	cfg := DefaultConfig()
	cfg.Temperature.Rm0 = 7.5
	cfg.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Temperature.Rm0 != 7.5 || loaded.Seed != 7 {
		t.Errorf("expected rm0 7.5 and seed 7, got %v and %d", loaded.Temperature.Rm0, loaded.Seed)
	}
	if loaded.Growth.Components[1].M != 2.01 {
		t.Errorf("expected protein coefficient 2.01, got %v", loaded.Growth.Components[1].M)
	}
}

func TestLoadTOMLPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropviz.toml")
	data := []byte(`
samples = 150

[output]
theme = "minimal"

[rubisco]
ko = 30.0
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Samples != 150 {
		t.Errorf("expected 150 samples, got %d", cfg.Samples)
	}
	if cfg.Output.Theme != "minimal" {
		t.Errorf("expected theme minimal, got %s", cfg.Output.Theme)
	}
	if cfg.Rubisco.Ko != 30 || cfg.Rubisco.Kc != 40 {
		t.Errorf("expected ko 30 and default kc 40, got %v and %v", cfg.Rubisco.Ko, cfg.Rubisco.Kc)
	}
	if cfg.Output.DPI != DefaultDPI {
		t.Errorf("expected default dpi, got %d", cfg.Output.DPI)
	}
}

func TestSaveLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropviz.toml")
	cfg := DefaultConfig()
	cfg.Nitrogen.NRef = 2.5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Nitrogen.NRef != 2.5 {
		t.Errorf("expected n_ref 2.5, got %v", loaded.Nitrogen.NRef)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropviz.ini")
	if err := os.WriteFile(path, []byte("x=1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.Growth.M[0] = 99
	if cfg.Growth.M[0] == 99 {
		t.Error("expected clone not to share slices")
	}
	if cp.Rubisco.Constants() != cfg.Rubisco.Constants() {
		t.Error("expected equal rubisco constants")
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropviz.yaml")
	if err := os.WriteFile(path, []byte("output:\n  theme: minimal\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("draft")
	cfg, err := LoadOver(base, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Output.Theme != "minimal" {
		t.Errorf("expected file theme, got %s", cfg.Output.Theme)
	}
	if cfg.Output.DPI != 96 {
		t.Errorf("expected preset dpi 96, got %d", cfg.Output.DPI)
	}
	if base.Output.Theme == "minimal" {
		t.Error("expected base to stay untouched")
	}
}
