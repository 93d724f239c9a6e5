package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/charts"
	"github.com/san-kum/cropviz/internal/config"
)

func sampleFigure() *chart.Figure {
	x := []float64{0, 1, 2, 3}
	p := (&chart.Panel{Title: "Leaf"}).Add(
		&chart.Line{Label: "Rg", X: x, Y: []float64{0, 1, 2, 3}},
		&chart.Line{Label: "Rm", X: x, Y: []float64{1, 1, math.Inf(1), 2}},
	)
	return chart.Single("sample", 6, 4, p)
}

func TestPreview(t *testing.T) {
	out := Preview(sampleFigure(), 40, 8)
	for _, want := range []string{"sample", "Leaf", "Rg", "Rm", "x from 0 to 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected preview to contain %q", want)
		}
	}
}

func TestThin(t *testing.T) {
	series := make([]chart.Series, 100)
	for i := range series {
		series[i].Label = string(rune('a' + i%26))
	}
	got := thin(series, maxSeries)
	if len(got) != maxSeries {
		t.Fatalf("expected %d series, got %d", maxSeries, len(got))
	}
	if got[0].Label != series[0].Label || got[maxSeries-1].Label != series[99].Label {
		t.Error("expected both ends to be kept")
	}
	if len(thin(series[:3], maxSeries)) != 3 {
		t.Error("expected short input unchanged")
	}
}

func TestPlottable(t *testing.T) {
	ys, ok := plottable([]float64{1, math.Inf(-1), 3})
	if !ok || !math.IsNaN(ys[1]) {
		t.Errorf("expected gap for infinity, got %v", ys)
	}
	if _, ok := plottable([]float64{math.NaN(), 1}); ok {
		t.Error("expected a single finite point to be rejected")
	}
}

func TestGroupPanels(t *testing.T) {
	series := []chart.Series{{Panel: "a"}, {Panel: "a"}, {Panel: "b"}, {Panel: "a"}}
	groups := groupPanels(series)
	if len(groups) != 3 || len(groups[0].series) != 2 {
		t.Errorf("unexpected groups %+v", groups)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("expected flat line for no data, got %q", got)
	}
	if got := SparklineChart([]float64{0, 1, 2, 3}, 4); !strings.Contains(got, "█") {
		t.Errorf("expected a full block for the maximum, got %q", got)
	}
}

func TestRendered(t *testing.T) {
	o := chart.Output{Name: "rp_vs_pg", Dir: "figures", Files: []string{"figures/rp_vs_pg.png", "figures/rp_vs_pg.pdf"}}
	if got := Rendered(o); !strings.Contains(got, "figures/rp_vs_pg.[png, pdf]") {
		t.Errorf("unexpected line %q", got)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("expected fallback to first theme")
	}
	if NextTheme(Themes[len(Themes)-1]).Name != Themes[0].Name {
		t.Error("expected theme cycle to wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("expected one name per theme")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowserNavigation(t *testing.T) {
	reg := charts.NewRegistry()
	cs, err := reg.Select("ratio", "temperature")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.GetPreset("draft")

	var m tea.Model = NewBrowser(cs, cfg, nil)
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("k"))
	m, _ = m.Update(key("k"))
	if b := m.(browser); b.cursor != 0 {
		t.Fatalf("expected cursor clamped at 0, got %d", b.cursor)
	}

	m, _ = m.Update(key("enter"))
	b := m.(browser)
	if b.state != stateChart {
		t.Fatal("expected chart view after enter")
	}
	if !strings.Contains(b.preview, "rp_vs_pg") {
		t.Error("expected preview of the first chart")
	}
	if !strings.Contains(b.View(), "RP_VS_PG") {
		t.Error("expected chart title in view")
	}

	m, _ = m.Update(key("l"))
	if b := m.(browser); b.cursor != 1 || b.figures[cs[1].Name] == nil {
		t.Errorf("expected next chart to be built, cursor %d", b.cursor)
	}

	m, _ = m.Update(key("esc"))
	if b := m.(browser); b.state != stateMenu {
		t.Error("expected menu after esc")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestBrowserRender(t *testing.T) {
	reg := charts.NewRegistry()
	cs, err := reg.Select("rp_vs_pg")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.GetPreset("draft")
	th, _ := chart.ResolveTheme("whitegrid")
	r := chart.NewRenderer(th, t.TempDir(), 40, nil)

	var m tea.Model = NewBrowser(cs, cfg, r)
	m, _ = m.Update(key("enter"))
	m, cmd := m.Update(key("r"))
	if cmd == nil {
		t.Fatal("expected render command")
	}
	m, _ = m.Update(cmd())
	if b := m.(browser); !strings.Contains(b.status, "rendered") {
		t.Errorf("expected rendered status, got %q", b.status)
	}
}

func TestBrowserNonFiniteWarning(t *testing.T) {
	cs, err := charts.NewRegistry().Select("nitrogen_respiration")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.GetPreset("draft")
	cfg.Nitrogen.NRef = 0

	var m tea.Model = NewBrowser(cs, cfg, nil)
	m, _ = m.Update(key("enter"))
	b := m.(browser)
	if !strings.Contains(b.status, "non-finite points not drawn") {
		t.Errorf("expected non-finite warning, got %q", b.status)
	}
	if nonFinite(b.figures["nitrogen_respiration"]) == 0 {
		t.Error("expected non-finite values with a zero reference concentration")
	}
}

func TestBrowserMenuTrend(t *testing.T) {
	cs, err := charts.NewRegistry().Select("temperature")
	if err != nil {
		t.Fatal(err)
	}
	var m tea.Model = NewBrowser(cs, config.GetPreset("draft"), nil)
	if b := m.(*browser); b.trend(cs[0].Name) != "" {
		t.Error("expected no sparkline before a chart is opened")
	}

	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("esc"))
	b := m.(browser)
	if b.trend(cs[0].Name) == "" {
		t.Error("expected sparkline for an opened chart")
	}
	if !strings.Contains(b.View(), "◆") {
		t.Error("expected separator under the menu header")
	}
}
