package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/voyage/internal/analysis"
	"github.com/san-kum/voyage/internal/config"
	"github.com/san-kum/voyage/internal/export"
	"github.com/san-kum/voyage/internal/gui"
	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/replay"
	"github.com/san-kum/voyage/internal/storage"
	"github.com/san-kum/voyage/internal/tune"
	"github.com/san-kum/voyage/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	frameRate  int
	withAudio  bool
	saveRun    bool
	plotRun    bool
	outFile    string
	metric     string
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "voyage",
		Short: "sail the portfolio track",
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "motion preset")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal viewer",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "desktop viewer",
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "play ocean ambience")

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "replay a scripted session headless",
		Long:  "run a built-in script by name or a yaml script file. built-ins: navigate, nudge, drag, tour",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().BoolVar(&saveRun, "save", false, "store the trace in the data directory")
	runCmd.Flags().BoolVar(&plotRun, "plot", false, "plot position over time")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotStored,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "settling and velocity spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "chart a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output path (default <run_id>.svg)")

	tuneCmd := &cobra.Command{
		Use:   "tune [script]",
		Short: "grid search motion settings against a script",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneMotion,
	}
	tuneCmd.Flags().StringVar(&metric, "metric", "settle_frame", "metric to minimise")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = one per cpu)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list motion presets",
		RunE:  listPresets,
	}

	pointsCmd := &cobra.Command{
		Use:   "points",
		Short: "list points of interest",
		RunE:  listPoints,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, tuneCmd, presetsCmd, pointsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: preset, then config file, then
// flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("fps") || configFile == "" {
		cfg.FPS = frameRate
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, err := cfg.NewController()
	if err != nil {
		return err
	}
	return viz.Run(ctrl, cfg.FPS)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, err := cfg.NewController()
	if err != nil {
		return err
	}
	return gui.Run(ctrl, gui.Options{FPS: cfg.FPS, Audio: withAudio})
}

func resolveScript(name string) (*replay.Script, error) {
	s, err := replay.Builtin(name)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, replay.ErrUnknownScript) {
		return nil, err
	}
	if _, statErr := os.Stat(name); statErr != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, replay.BuiltinNames())
	}
	return replay.LoadScript(name)
}

func runScript(cmd *cobra.Command, args []string) error {
	name := "tour"
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := resolveScript(name)
	if err != nil {
		return err
	}
	ctrl, err := helm.New(cfg.Points, script.Options(cfg.HelmOptions()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s...\n", script.Name)
	start := time.Now()

	trace, err := replay.Run(ctx, ctrl, script)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	metrics := analysis.Summary(trace)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", len(trace.Samples))
	fmt.Printf("final position: %.2f\n", trace.Final().Position)
	for _, a := range trace.Anchors {
		fmt.Printf("anchored at %s (frame %d)\n", a.PointID, a.Frame)
	}
	printMetrics(metrics)

	if plotRun {
		fmt.Println()
		fmt.Println(asciigraph.Plot(trace.Positions(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("position"),
		))
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Script:   script.Name,
			Preset:   preset,
			Friction: cfg.Motion.Friction,
			Accel:    cfg.Motion.Acceleration,
			MaxVel:   cfg.Motion.MaxVelocity,
			Metrics:  metrics,
		}, trace)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tTIME\tFRAMES\tPRESET\tFINAL")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.2f\n",
			run.ID,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			p,
			run.Metrics["final_position"],
		)
	}

	return w.Flush()
}

func plotStored(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace.Samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("script: %s\n", meta.Script)
	fmt.Printf("samples: %d\n\n", len(trace.Samples))

	series := []struct {
		caption string
		data    []float64
	}{
		{"position (%)", trace.Positions()},
		{"velocity (%/frame)", trace.Velocities()},
	}
	for _, s := range series {
		fmt.Println(asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace.Samples) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("script: %s\n\n", meta.Script)

	ps := analysis.VelocitySpectrum(trace.Velocities())
	plotData := ps[:max(len(ps)/4, 1)]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("velocity spectrum"),
	))
	fmt.Println()

	freq := analysis.DominantFrequency(trace.Velocities(), trace.Delta)
	fmt.Printf("dominant frequency: %.4f cycles/frame\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.1f frames\n", 1.0/freq)
	}
	printMetrics(analysis.Summary(trace))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := storage.ExportJSONFile(outFile, meta, trace); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", outFile)
		return nil
	}
	return storage.ExportJSON(os.Stdout, meta, trace)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := export.WriteTraceSVG(path, trace, cfg.Points, export.DefaultSVGOptions()); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func tuneMotion(cmd *cobra.Command, args []string) error {
	name := "navigate"
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := resolveScript(name)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	grid := tune.DefaultGrid()
	fmt.Printf("tuning %s on %d candidates by %s...\n", script.Name, len(grid.Candidates(cfg.MotionConfig())), metric)
	start := time.Now()

	res, err := tune.Search(ctx, cfg.Points, cfg.HelmOptions(), script, grid, metric, workers)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tFRICTION\tACCEL\tMAX VEL\tSCORE")
	for i, c := range res.Candidates {
		if i == 10 {
			break
		}
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.2f\t%.3f\n", i+1, c.Config.Friction, c.Config.Acceleration, c.Config.MaxVelocity, c.Score)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFRICTION\tACCEL\tMAX VEL\tSNAP")
	for _, name := range config.ListPresets() {
		m := config.Presets[name]
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.2f\t%.1f\n", name, m.Friction, m.Acceleration, m.MaxVelocity, m.SnapDistance)
	}
	return w.Flush()
}

func listPoints(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tPOSITION\tLABEL")
	for i, p := range cfg.Points {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s %s\n", i+1, p.ID, p.Position, p.Emoji, p.Label)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "voyage.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
