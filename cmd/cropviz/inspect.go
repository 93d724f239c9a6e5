package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/charts"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func evalFormula(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FORMULA\tEXPRESSION\tPARAMETERS")
		for _, f := range charts.Formulas(cfg) {
			params := make([]string, len(f.Params))
			for i, p := range f.Params {
				params[i] = fmt.Sprintf("%s=%g", p.Name, p.Default)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Expr, strings.Join(params, " "))
		}
		return w.Flush()
	}

	f, err := charts.LookupFormula(cfg, args[0])
	if err != nil {
		return err
	}

	levels := make(map[string][]float64, len(sets))
	for _, s := range sets {
		name, lv, err := charts.ParseLevels(s)
		if err != nil {
			return err
		}
		levels[name] = lv
	}

	points, err := charts.Evaluate(f, levels)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(f.Expr))
	fmt.Println(viz.Separator(len([]rune(f.Expr)) + 8))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, p := range f.Params {
		fmt.Fprintf(w, "%s\t", p.Name)
	}
	fmt.Fprintf(w, "%s [%s]\t\n", strings.SplitN(f.Expr, " ", 2)[0], f.Unit)
	for _, pt := range points {
		for _, p := range f.Params {
			fmt.Fprintf(w, "%g\t", pt.Params[p.Name])
		}
		fmt.Fprintf(w, "%.6g\t\n", pt.Value)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		fmt.Printf("  %-12s %s\n", name, viz.Subtle.Render(config.Presets[name].Description))
	}
	return nil
}

func listThemes(cmd *cobra.Command, args []string) error {
	fmt.Println("chart themes:")
	for _, name := range chart.ThemeNames() {
		mark := ""
		if name == chart.DefaultThemeName {
			mark = viz.Subtle.Render(" (default)")
		}
		fmt.Printf("  %s%s\n", name, mark)
	}
	fmt.Println("browser themes:")
	for _, name := range viz.ThemeNames() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		logger.WithField("path", args[0]).Info("configuration written")
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func browseCharts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	cs, err := charts.NewRegistry().Select()
	if err != nil {
		return err
	}
	// the alternate screen owns the terminal; keep log lines out of it
	logger.SetLevel(logrus.ErrorLevel)
	return viz.Browse(cs, cfg, r, uiTheme)
}
