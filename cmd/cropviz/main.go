package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"text/tabwriter"

	"github.com/san-kum/cropviz/internal/chart"
	"github.com/san-kum/cropviz/internal/charts"
	"github.com/san-kum/cropviz/internal/config"
	"github.com/san-kum/cropviz/internal/export"
	"github.com/san-kum/cropviz/internal/storage"
	"github.com/san-kum/cropviz/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	outDir     string
	configFile string
	preset     string
	theme      string
	dpi        int
	jobs       int
	seed       uint64
	samples    int
	formats    []string
	verbose    bool
	// export
	exportFormat string
	toStdout     bool
	// preview
	previewWidth  int
	previewHeight int
	// eval
	sets []string
	// browse
	uiTheme string

	logger = logrus.New()
)

// main registers the cropviz commands and renders every chart when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "cropviz",
		Short:         "crop respiration and photosynthesis charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: renderCharts,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&outDir, "out", config.DefaultOutputDir, "output directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "chart theme")
	pf.IntVar(&dpi, "dpi", config.DefaultDPI, "raster resolution")
	pf.IntVar(&jobs, "jobs", 1, "charts rendered concurrently")
	pf.Uint64Var(&seed, "seed", config.DefaultSeed, "seed for synthetic sample points")
	pf.IntVar(&samples, "samples", config.DefaultSamples, "points per swept domain")
	pf.StringSliceVar(&formats, "formats", chart.DefaultFormats, "figure formats (png, pdf, svg)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	renderCmd := &cobra.Command{
		Use:   "render [chart|group...]",
		Short: "render charts to the output directory",
		RunE:  renderCharts,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available charts",
		Args:  cobra.NoArgs,
		RunE:  listCharts,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [chart]",
		Short: "draw a chart in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  previewChart,
	}
	previewCmd.Flags().IntVar(&previewWidth, "width", viz.DefaultWidth, "plot width in columns")
	previewCmd.Flags().IntVar(&previewHeight, "height", viz.DefaultHeight, "plot height in rows")

	exportCmd := &cobra.Command{
		Use:   "export [chart|group...]",
		Short: "export chart data as csv, json or xlsx",
		Args:  cobra.MinimumNArgs(1),
		RunE:  exportCharts,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv, json or xlsx")
	exportCmd.Flags().BoolVar(&toStdout, "stdout", false, "write to stdout instead of <out>/data")

	evalCmd := &cobra.Command{
		Use:   "eval [formula]",
		Short: "evaluate a formula over parameter levels",
		Long: "Evaluate a formula at its defaults or over the Cartesian product of\n" +
			"levels given with --set name=v1,v2 or --set name=lo:hi:n.",
		Args: cobra.MaximumNArgs(1),
		RunE: evalFormula,
	}
	evalCmd.Flags().StringArrayVar(&sets, "set", nil, "parameter levels, name=v1,v2 or name=lo:hi:n")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list chart themes",
		Args:  cobra.NoArgs,
		RunE:  listThemes,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "print the effective configuration or write it to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpConfig,
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse charts interactively",
		Args:  cobra.NoArgs,
		RunE:  browseCharts,
	}
	browseCmd.Flags().StringVar(&uiTheme, "ui-theme", viz.Themes[0].Name, "browser theme")

	rootCmd.AddCommand(renderCmd, listCmd, previewCmd, exportCmd, evalCmd, presetsCmd, themesCmd, configCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func setupLogging() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// loadConfig applies defaults, then the preset, then the config file, then
// any flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = outDir
	}
	if flags.Changed("theme") {
		cfg.Output.Theme = theme
	}
	if flags.Changed("dpi") {
		cfg.Output.DPI = dpi
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}

	for _, w := range cfg.Validate() {
		logger.WithField("field", w.Field).Warn(w.Err)
	}

	logger.WithFields(logrus.Fields{
		"preset": preset,
		"config": configFile,
		"theme":  cfg.Output.Theme,
		"dpi":    cfg.Output.DPI,
		"seed":   cfg.Seed,
	}).Debug("configuration loaded")
	return cfg, nil
}

func newRenderer(cfg *config.Config) (*chart.Renderer, error) {
	if err := chart.CheckFormats(formats); err != nil {
		return nil, err
	}
	th, res := chart.ResolveTheme(cfg.Output.Theme)
	if res.Fallback {
		logger.WithFields(logrus.Fields{
			"requested": res.Requested,
			"using":     res.Used,
		}).Warn("chart theme not available, falling back")
	}
	r := chart.NewRenderer(th, cfg.Output.Dir, cfg.Output.DPI, logger)
	r.Formats = formats
	return r, nil
}

func renderCharts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	reg := charts.NewRegistry()
	cs, err := reg.Select(args...)
	if err != nil {
		return fmt.Errorf("%w (try 'cropviz list')", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outputs, renderErr := charts.Render(ctx, cs, cfg, r, jobs)
	for _, o := range outputs {
		fmt.Println(viz.Rendered(o))
	}

	groups := make(map[string]string, len(cs))
	for _, c := range cs {
		groups[c.Name] = c.Group
	}
	st := storage.New(cfg.Output.Dir)
	run := storage.Run{Theme: r.Theme.Name, DPI: r.DPI, Seed: cfg.Seed, Samples: cfg.Samples}
	if _, err := st.Record(run, groups, outputs); err != nil {
		logger.WithError(err).Warn("could not update manifest")
	}

	if renderErr != nil {
		return renderErr
	}
	logger.WithFields(logrus.Fields{"charts": len(outputs), "dir": cfg.Output.Dir}).Info("done")
	return nil
}

func listCharts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rendered := make(map[string]storage.Entry)
	entries, err := storage.New(cfg.Output.Dir).List()
	if err != nil {
		logger.WithError(err).Debug("no manifest")
	}
	for _, e := range entries {
		rendered[e.Chart] = e
	}

	reg := charts.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGROUP\tRENDERED\tDESCRIPTION")
	for _, name := range reg.Names() {
		c, _ := reg.Get(name)
		when := "-"
		if e, ok := rendered[name]; ok {
			when = e.Rendered.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Group, when, c.Description)
	}
	return w.Flush()
}

func previewChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := charts.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}
	fig, err := c.Build(cfg)
	if err != nil {
		return err
	}
	fmt.Print(viz.Preview(fig, previewWidth, previewHeight))
	return nil
}

func exportCharts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cs, err := charts.NewRegistry().Select(args...)
	if err != nil {
		return err
	}

	if !slices.Contains(export.Formats, exportFormat) {
		return fmt.Errorf("%w: %q (available: %v)", export.ErrFormat, exportFormat, export.Formats)
	}

	dir := filepath.Join(cfg.Output.Dir, "data")
	for _, c := range cs {
		fig, err := c.Build(cfg)
		if err != nil {
			return fmt.Errorf("building %s: %w", c.Name, err)
		}
		tbl := export.FromFigure(c.Group, fig)

		if toStdout {
			if err := export.Write(os.Stdout, exportFormat, tbl); err != nil {
				return err
			}
			continue
		}
		path, err := export.WriteFile(dir, exportFormat, tbl)
		if err != nil {
			return err
		}
		fmt.Println(viz.Exported(c.Name, path, tbl.Points()))
	}
	return nil
}
