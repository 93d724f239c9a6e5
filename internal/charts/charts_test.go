package charts

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"reflect"
	"testing"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/physio"
	"github.com/sirupsen/logrus"
)

var allNames = []string{
	"growth_respiration",
	"growth_respiration_coefficients",
	"growth_respiration_seasonal",
	"growth_respiration_composite",
	"maintenance_respiration_organs",
	"maintenance_respiration_sensitivity",
	"maintenance_respiration_coefficients",
	"net_photosynthesis",
	"net_photosynthesis_stacked",
	"net_photosynthesis_vo_response",
	"nitrogen_respiration",
	"nitrogen_respiration_organs",
	"nitrogen_respiration_relative",
	"rp_vs_pg",
	"rubisco_rp",
	"rubisco_rp_3d",
	"temperature_respiration",
	"temperature_respiration_q10",
	"temperature_respiration_relative",
}

func TestRegistryNames(t *testing.T) {
	names := NewRegistry().Names()
	if !reflect.DeepEqual(names, allNames) {
		t.Errorf("expected %v, got %v", allNames, names)
	}
}

func TestRegistryGroups(t *testing.T) {
	want := []string{"growth", "maintenance", "photosynthesis", "nitrogen", "ratio", "rubisco", "temperature"}
	if got := NewRegistry().Groups(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := NewRegistry().Get("pie_chart")
	if !errors.Is(err, ErrUnknownChart) {
		t.Errorf("expected ErrUnknownChart, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		args []string
		want []string
	}{
		{nil, allNames},
		{[]string{"rubisco"}, []string{"rubisco_rp", "rubisco_rp_3d"}},
		{[]string{"rp_vs_pg", "growth_respiration", "rp_vs_pg"}, []string{"growth_respiration", "rp_vs_pg"}},
	}
	for _, tt := range tests {
		cs, err := r.Select(tt.args...)
		if err != nil {
			t.Fatalf("select %v: %v", tt.args, err)
		}
		got := make([]string, len(cs))
		for i, c := range cs {
			got[i] = c.Name
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("select %v: expected %v, got %v", tt.args, tt.want, got)
		}
	}

	if _, err := r.Select("growth", "bogus"); !errors.Is(err, ErrUnknownChart) {
		t.Errorf("expected ErrUnknownChart, got %v", err)
	}
}

func TestEveryChartBuilds(t *testing.T) {
	cfg := config.DefaultConfig()
	for _, name := range allNames {
		t.Run(name, func(t *testing.T) {
			c, err := NewRegistry().Get(name)
			if err != nil {
				t.Fatal(err)
			}
			fig, err := c.Build(cfg)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if fig.Name != name {
				t.Errorf("expected figure name %s, got %s", name, fig.Name)
			}
			if err := fig.Validate(); err != nil {
				t.Errorf("invalid figure: %v", err)
			}
			if len(fig.Series()) == 0 {
				t.Error("expected figure data")
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	r := NewRegistry()
	for _, name := range allNames {
		c, _ := r.Get(name)
		a, err := c.Build(config.DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		b, err := c.Build(config.DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a.Series(), b.Series()) {
			t.Errorf("%s: expected identical data across builds", name)
		}
	}
}

func TestGrowthLinearData(t *testing.T) {
	cfg := config.DefaultConfig()
	fig, err := growthLinear(cfg)
	if err != nil {
		t.Fatal(err)
	}
	series := fig.Series()
	if len(series) != len(cfg.Growth.M) {
		t.Fatalf("expected %d series, got %d", len(cfg.Growth.M), len(series))
	}
	s := series[1]
	if s.Label != "m = 0.25 (typical)" {
		t.Errorf("expected typical label, got %q", s.Label)
	}
	if len(s.X) != 300 || s.X[0] != 0 || s.X[299] != 30 {
		t.Errorf("expected 300 samples over [0, 30], got %d over [%v, %v]", len(s.X), s.X[0], s.X[len(s.X)-1])
	}
	if s.Y[299] != 0.25*30 {
		t.Errorf("expected 7.5 at GTW 30, got %v", s.Y[299])
	}
}

func TestGrowthCompositeValues(t *testing.T) {
	fig, err := growthComposite(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var composite []float64
	for _, s := range fig.Series() {
		if s.Panel == "Composite growth respiration coefficient" {
			composite = s.Y
		}
	}
	// leaf: 0.30·0.17 + 0.20·2.01 + 0.10·1.72 + 0.15·0.66 + 0.25·(−0.01)
	want := 0.051 + 0.402 + 0.172 + 0.099 - 0.0025
	if len(composite) != 4 || math.Abs(composite[0]-want) > 1e-12 {
		t.Errorf("expected leaf coefficient %v, got %v", want, composite)
	}
}

func TestGrowthCompositeMismatch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Growth.Organs[2].Fractions = []float64{0.5, 0.5}
	_, err := growthComposite(cfg)
	if !errors.Is(err, physio.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestMaintenanceOrganTotals(t *testing.T) {
	fig, err := maintenanceOrgans(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// stacked organ bars sum to the per-stage total
	series := fig.Series()
	if len(series) != 4 {
		t.Fatalf("expected 4 organ series, got %d", len(series))
	}
	stage := 0.0
	for _, s := range series {
		stage += s.Y[0]
	}
	want := 150*0.015 + 50*0.010 + 80*0.012
	if math.Abs(stage-want) > 1e-12 {
		t.Errorf("expected vegetative total %v, got %v", want, stage)
	}
}

func TestNetStackedBandsMeetAtAn(t *testing.T) {
	cfg := config.DefaultConfig()
	fig, err := netStacked(cfg)
	if err != nil {
		t.Fatal(err)
	}
	series := fig.Series()
	// last band lower edge is An
	darkLower := series[4].Y
	an := series[6].Y
	if !reflect.DeepEqual(darkLower, an) {
		t.Error("expected dark respiration band to end at An")
	}
	if an[0] != -22 {
		t.Errorf("expected An(0) = -22, got %v", an[0])
	}
}

func TestRatioSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	a, _ := ratioPlot(cfg)
	cfg.Seed = 7
	b, _ := ratioPlot(cfg)

	pa, pb := a.Series()[3], b.Series()[3]
	if pa.Label != "Example data points" || len(pa.X) != 12 {
		t.Fatalf("unexpected scatter series %+v", pa)
	}
	if reflect.DeepEqual(pa.X, pb.X) {
		t.Error("expected different seeds to give different points")
	}
}

func TestFitSlope(t *testing.T) {
	pg := []float64{1, 2, 3, 4}
	rp := []float64{0.45, 0.9, 1.35, 1.8}
	if got := FitSlope(pg, rp); math.Abs(got-0.45) > 1e-12 {
		t.Errorf("expected slope 0.45, got %v", got)
	}

	pg, rp = physio.SyntheticScatter(200, 0.45, 40, 42)
	if got := FitSlope(pg, rp); math.Abs(got-0.45) > 0.02 {
		t.Errorf("expected slope near 0.45, got %v", got)
	}
}

func TestRubiscoSurfaceSize(t *testing.T) {
	fig, err := rubiscoSurface(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s, ok := fig.Panels[0].Elements[0].(*chart.Surface)
	if !ok {
		t.Fatalf("expected surface element, got %T", fig.Panels[0].Elements[0])
	}
	if len(s.X)*len(s.Y) != 10000 {
		t.Errorf("expected 10000 points, got %d", len(s.X)*len(s.Y))
	}
}

func TestTemperatureReferenceCurveIsFlat(t *testing.T) {
	fig, err := temperatureQ10(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range fig.Series() {
		if s.Label != "T = 25 °C (reference)" {
			continue
		}
		for _, y := range s.Y {
			if y != 5 {
				t.Fatalf("expected Rm0 everywhere on the reference curve, got %v", y)
			}
		}
		return
	}
	t.Error("reference temperature curve missing")
}

func TestRenderAll(t *testing.T) {
	if testing.Short() {
		t.Skip("renders every chart")
	}
	cfg := config.GetPreset("draft")
	log := logrus.New()
	log.SetOutput(io.Discard)
	th, _ := chart.ResolveTheme(cfg.Output.Theme)
	r := chart.NewRenderer(th, t.TempDir(), 40, log)

	cs, err := NewRegistry().Select()
	if err != nil {
		t.Fatal(err)
	}
	outs, err := Render(context.Background(), cs, cfg, r, 4)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(outs) != len(allNames) {
		t.Fatalf("expected %d outputs, got %d", len(allNames), len(outs))
	}
	for i, o := range outs {
		if o.Name != allNames[i] {
			t.Errorf("expected %s at %d, got %s", allNames[i], i, o.Name)
		}
		for _, f := range o.Files {
			if _, err := os.Stat(f); err != nil {
				t.Errorf("missing %s: %v", f, err)
			}
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	log := logrus.New()
	log.SetOutput(io.Discard)
	th, _ := chart.ResolveTheme("")
	r := chart.NewRenderer(th, t.TempDir(), 40, log)
	cs, _ := NewRegistry().Select("rp_vs_pg")

	if _, err := Render(ctx, cs, config.DefaultConfig(), r, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func quietRenderer(t *testing.T) *chart.Renderer {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	th, _ := chart.ResolveTheme("")
	return chart.NewRenderer(th, t.TempDir(), 40, log)
}

var errBuild = errors.New("build failed")

func TestRenderStopsOnFailure(t *testing.T) {
	reg := NewRegistry()
	first, _ := reg.Get("rp_vs_pg")
	last, _ := reg.Get("temperature_respiration")

	built := 0
	build := last.Build
	last.Build = func(cfg *config.Config) (*chart.Figure, error) {
		built++
		return build(cfg)
	}
	failing := Chart{Name: "failing", Build: func(*config.Config) (*chart.Figure, error) {
		return nil, errBuild
	}}

	cs := []Chart{first, failing, last}
	outs, err := Render(context.Background(), cs, config.DefaultConfig(), quietRenderer(t), 1)
	if !errors.Is(err, errBuild) {
		t.Fatalf("expected build error, got %v", err)
	}
	if built != 0 {
		t.Errorf("expected charts after the failure to be skipped, %d built", built)
	}
	if len(outs) != 1 || outs[0].Name != "rp_vs_pg" {
		t.Errorf("expected only rp_vs_pg written, got %+v", outs)
	}
}

func TestRenderKeepsLaterOutputs(t *testing.T) {
	ok, _ := NewRegistry().Get("rp_vs_pg")

	started := make(chan struct{})
	build := ok.Build
	ok.Build = func(cfg *config.Config) (*chart.Figure, error) {
		close(started)
		return build(cfg)
	}
	failing := Chart{Name: "failing", Build: func(*config.Config) (*chart.Figure, error) {
		<-started
		return nil, errBuild
	}}

	outs, err := Render(context.Background(), []Chart{failing, ok}, config.DefaultConfig(), quietRenderer(t), 2)
	if !errors.Is(err, errBuild) {
		t.Fatalf("expected build error, got %v", err)
	}
	if len(outs) != 1 || outs[0].Name != "rp_vs_pg" {
		t.Errorf("expected rp_vs_pg written after the failure, got %+v", outs)
	}
}
