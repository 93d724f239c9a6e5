package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the chart browser.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Dim       lipgloss.Color
}

var (
	ThemeField = Theme{
		Name:      "field",
		Primary:   lipgloss.Color("#7bc96f"), // leaf green
		Secondary: lipgloss.Color("#c6e48b"),
		Accent:    lipgloss.Color("#e3b341"), // grain
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#5a7052"),
		Dim:       lipgloss.Color("#3b4a36"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00cccc"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ff88ff"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#666688"),
		Dim:       lipgloss.Color("#444455"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#aaaaaa"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Dim:       lipgloss.Color("#555555"),
	}

	Themes = []Theme{ThemeField, ThemeOcean, ThemeMono}
)

// GetTheme returns a theme by name, or the first theme when unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) style(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
