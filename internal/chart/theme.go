package chart

import "sort"

// Theme is the visual configuration shared by all panels of a render.
type Theme struct {
	Name       string
	FontSize   float64 // axis labels, points
	TickSize   float64
	TitleSize  float64
	LegendSize float64
	NoteSize   float64
	AxisWidth  float64
	Grid       bool
	GridGray   float64
	GridDash   Dash
	GridWidth  float64
}

// DefaultThemeName is used whenever a requested theme is unavailable.
const DefaultThemeName = "whitegrid"

var themes = map[string]Theme{
	"whitegrid": {
		Name:       "whitegrid",
		FontSize:   12,
		TickSize:   10,
		TitleSize:  14,
		LegendSize: 10,
		NoteSize:   11,
		AxisWidth:  1.2,
		Grid:       true,
		GridGray:   0.5,
		GridDash:   Dotted,
		GridWidth:  0.8,
	},
	"classic": {
		Name:       "classic",
		FontSize:   12,
		TickSize:   10,
		TitleSize:  14,
		LegendSize: 10,
		NoteSize:   11,
		AxisWidth:  1.0,
		Grid:       false,
	},
	"minimal": {
		Name:       "minimal",
		FontSize:   11,
		TickSize:   9,
		TitleSize:  12,
		LegendSize: 9,
		NoteSize:   10,
		AxisWidth:  0.8,
		Grid:       true,
		GridGray:   0.85,
		GridDash:   Solid,
		GridWidth:  0.5,
	},
}

// aliases maps style names used by other plotting stacks to a theme here.
var aliases = map[string]string{
	"seaborn-whitegrid":      "whitegrid",
	"seaborn-v0_8-whitegrid": "whitegrid",
	"default":                "classic",
}

// Resolution reports which theme was actually applied.
type Resolution struct {
	Requested string
	Used      string
	Fallback  bool
}

// HasTheme reports whether name (or an alias of it) is available.
func HasTheme(name string) bool {
	_, ok := lookupTheme(name)
	return ok
}

// ResolveTheme returns the named theme, or the default theme with
// Resolution.Fallback set when the name is unknown.
func ResolveTheme(name string) (Theme, Resolution) {
	if t, ok := lookupTheme(name); ok {
		return t, Resolution{Requested: name, Used: t.Name}
	}
	t := themes[DefaultThemeName]
	return t, Resolution{Requested: name, Used: t.Name, Fallback: true}
}

func lookupTheme(name string) (Theme, bool) {
	if a, ok := aliases[name]; ok {
		name = a
	}
	t, ok := themes[name]
	return t, ok
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
