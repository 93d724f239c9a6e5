package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/charts"
	"github.com/san-kum/cropviz/internal/config"
)

const (
	stateMenu = iota
	stateChart
)

const sparkWidth = 12

type browser struct {
	state, cursor int
	charts        []charts.Chart
	cfg           *config.Config
	renderer      *chart.Renderer
	theme         Theme
	figures       map[string]*chart.Figure
	preview       string
	status        string
	width, height int
}

type renderedMsg struct {
	out chart.Output
	err error
}

func NewBrowser(cs []charts.Chart, cfg *config.Config, r *chart.Renderer) *browser {
	return &browser{
		state:    stateMenu,
		charts:   cs,
		cfg:      cfg,
		renderer: r,
		theme:    Themes[0],
		figures:  make(map[string]*chart.Figure),
		width:    80, height: 24,
	}
}

func (m browser) Init() tea.Cmd { return nil }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateChart {
			m.open()
		}
	case renderedMsg:
		if msg.err != nil {
			m.status = StatusError.Render("failed") + " " + msg.err.Error()
		} else {
			m.status = Rendered(msg.out)
		}
	}
	return m, nil
}

func (m browser) handleKey(msg tea.KeyMsg) (browser, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if msg.String() == "t" {
		m.theme = NextTheme(m.theme)
		return m, nil
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateChart:
		return m.chartKey(msg)
	}
	return m, nil
}

func (m browser) menuKey(msg tea.KeyMsg) (browser, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.charts)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.charts) > 0 {
			m.state, m.status = stateChart, ""
			m.open()
		}
	}
	return m, nil
}

func (m browser) chartKey(msg tea.KeyMsg) (browser, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "backspace":
		m.state, m.status = stateMenu, ""
	case "right", "l":
		m.cursor = (m.cursor + 1) % len(m.charts)
		m.status = ""
		m.open()
	case "left", "h":
		m.cursor = (m.cursor + len(m.charts) - 1) % len(m.charts)
		m.status = ""
		m.open()
	case "r":
		fig, ok := m.figures[m.charts[m.cursor].Name]
		if !ok || m.renderer == nil {
			return m, nil
		}
		m.status = Subtle.Render("rendering " + fig.Name + "...")
		return m, renderCmd(m.renderer, fig)
	}
	return m, nil
}

// open builds the selected chart once and refreshes its preview.
func (m *browser) open() {
	c := m.charts[m.cursor]
	fig, ok := m.figures[c.Name]
	if !ok {
		var err error
		fig, err = c.Build(m.cfg)
		if err != nil {
			m.preview = ""
			m.status = StatusError.Render("failed") + " " + err.Error()
			return
		}
		m.figures[c.Name] = fig
	}
	m.preview = Preview(fig, max(m.width-16, 20), DefaultHeight)
	if n := nonFinite(fig); n > 0 {
		m.status = Warn(fmt.Sprintf("%d non-finite points not drawn", n))
	}
}

func nonFinite(fig *chart.Figure) int {
	n := 0
	for _, s := range fig.Series() {
		for _, y := range s.Y {
			if !finite(y) {
				n++
			}
		}
	}
	return n
}

// trend is a sparkline of the first series of a figure already built.
func (m browser) trend(name string) string {
	fig, ok := m.figures[name]
	if !ok {
		return ""
	}
	series := fig.Series()
	if len(series) == 0 {
		return ""
	}
	return "  " + SparklineChart(series[0].Y, sparkWidth)
}

func renderCmd(r *chart.Renderer, fig *chart.Figure) tea.Cmd {
	return func() tea.Msg {
		out, err := r.Render(fig)
		return renderedMsg{out: out, err: err}
	}
}

func (m browser) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateChart:
		return m.viewChart()
	}
	return ""
}

func (m browser) viewMenu() string {
	var b strings.Builder
	th := m.theme
	h := th.style(th.Primary).Bold(true)
	sub := th.style(th.Muted)
	b.WriteString("\n\n    " + h.Render("CROPVIZ") + "\n    " + sub.Render("crop respiration and photosynthesis charts") + "\n    " + Separator(28) + "\n")

	group := ""
	for i, c := range m.charts {
		if c.Group != group {
			group = c.Group
			b.WriteString("\n    " + th.style(th.Secondary).Render(group) + "\n")
		}
		desc := c.Description
		if len(desc) > 48 {
			desc = desc[:45] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s%s\n", h.Render("▸"), th.style(th.Text).Bold(true).Render(fmt.Sprintf("%-36s", c.Name)), th.style(th.Accent).Render(fmt.Sprintf("%-48s", desc)), m.trend(c.Name)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s%s\n", sub.Render(fmt.Sprintf("  %-36s", c.Name)), th.style(th.Dim).Render(fmt.Sprintf("%-48s", desc)), m.trend(c.Name)))
		}
	}
	b.WriteString("\n    " + m.hints("j/k", "navigate", "enter", "open", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

func (m browser) viewChart() string {
	var b strings.Builder
	th := m.theme
	c := m.charts[m.cursor]
	b.WriteString("\n    " + th.style(th.Primary).Bold(true).Render(strings.ToUpper(c.Name)) + "\n    " + th.style(th.Muted).Render(c.Description) + "\n\n")
	b.WriteString(lipgloss.NewStyle().MarginLeft(4).Render(Panel.BorderForeground(th.Muted).Render(strings.TrimRight(m.preview, "\n"))) + "\n")
	if m.status != "" {
		b.WriteString("\n    " + m.status + "\n")
	}
	b.WriteString("\n    " + m.hints("h/l", "prev/next", "r", "render", "t", "theme", "esc", "back") + "\n")
	return b.String()
}

func (m browser) hints(pairs ...string) string {
	key := m.theme.style(m.theme.Secondary).Bold(true)
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, key.Render(pairs[i])+m.theme.style(m.theme.Muted).Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// Browse runs the interactive chart browser with the named theme until the
// user quits.
func Browse(cs []charts.Chart, cfg *config.Config, r *chart.Renderer, theme string) error {
	b := NewBrowser(cs, cfg, r)
	b.theme = GetTheme(theme)
	_, err := tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}
