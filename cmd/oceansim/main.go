package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/oceansim/internal/analysis"
	"github.com/san-kum/oceansim/internal/config"
	"github.com/san-kum/oceansim/internal/export"
	"github.com/san-kum/oceansim/internal/metrics"
	"github.com/san-kum/oceansim/internal/sim"
	"github.com/san-kum/oceansim/internal/storage"
	"github.com/san-kum/oceansim/internal/viz"
)

var (
	dataDir   string
	gridW     int
	gridH     int
	particles int
	dt        float64
	duration  float64
	timeAccel float64
	wind      float64
	coriolis  float64
	tempDiff  float64
	seed      int64
	showTemp  bool
	frameRate int
	runs      int

	configFile string
	preset     string
	outFile    string
	svgScale   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oceansim",
		Short: "gridded ocean-circulation field simulation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".oceansim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save the results",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of ensemble runs (consecutive seeds)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's recorded series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the kinetic-energy series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's series to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run briefly and write a field snapshot as SVG",
		RunE:  exportSVG,
	}
	addSimFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVar(&outFile, "out", "field.svg", "output file")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 12, "pixels per grid cell")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view of the field and tracers",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridW, "width", config.DefaultGridW, "grid width")
	cmd.Flags().IntVar(&gridH, "height", config.DefaultGridH, "grid height")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "tracer particle count")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&timeAccel, "accel", config.DefaultTimeAcceleration, "tracer time acceleration")
	cmd.Flags().Float64Var(&wind, "wind", config.DefaultWind, "wind strength")
	cmd.Flags().Float64Var(&coriolis, "coriolis", config.DefaultCoriolis, "coriolis strength")
	cmd.Flags().Float64Var(&tempDiff, "temp-diff", config.DefaultTempDiff, "temperature difference")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().BoolVar(&showTemp, "temperature", false, "show temperature instead of velocity")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and CLI flags, with flags
// winning over the file and the file winning over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.GridW = gridW
	}
	if cmd.Flags().Changed("height") {
		cfg.GridH = gridH
	}
	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("accel") {
		cfg.TimeAcceleration = timeAccel
	}
	if cmd.Flags().Changed("wind") {
		cfg.Forcing.WindStrength = wind
	}
	if cmd.Flags().Changed("coriolis") {
		cfg.Forcing.CoriolisStrength = coriolis
	}
	if cmd.Flags().Changed("temp-diff") {
		cfg.Forcing.TemperatureDiff = tempDiff
	}
	if cmd.Flags().Changed("temperature") {
		cfg.ShowTemperature = showTemp
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, nil
}

func newEngine(cfg *config.Config) *sim.Engine {
	eng := sim.New(cfg.GridW, cfg.GridH, cfg.Particles, cfg.Seed)
	eng.SetParams(cfg.Params())
	return eng
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runCfg := sim.Config{
		Dt:               cfg.Dt,
		Duration:         cfg.Duration,
		TimeAcceleration: cfg.TimeAcceleration,
		Seed:             cfg.Seed,
		ValidateField:    true,
		SampleEvery:      1,
	}

	if runs > 1 {
		ens := sim.NewEnsemble(cfg.GridW, cfg.GridH, cfg.Particles, runs, cfg.Seed, cfg.Params())
		start := time.Now()
		results, err := ens.Run(context.Background(), runCfg)
		if err != nil {
			return err
		}
		fmt.Printf("completed %d runs in %v\n", len(results), time.Since(start))
		for i, result := range results {
			saveCfg := *cfg
			saveCfg.Seed = cfg.Seed + int64(i)
			id, err := st.Save(&saveCfg, result)
			if err != nil {
				return err
			}
			fmt.Printf("  run id: %s (seed %d)\n", id, saveCfg.Seed)
		}
		return nil
	}

	eng := newEngine(cfg)
	for _, m := range metrics.Default() {
		eng.AddMetric(m)
	}

	fmt.Printf("running %dx%d ocean field simulation...\n", cfg.GridW, cfg.GridH)
	start := time.Now()

	result, err := eng.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	fmt.Println("\n" + eng.Summary())

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runList, err := st.List()
	if err != nil {
		return err
	}

	if len(runList) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGRID\tTIME\tDURATION\tDT\tWIND\tCORIOLIS")

	for _, run := range runList {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%.2fs\t%.4fs\t%.2f\t%.2f\n",
			run.ID,
			run.GridW, run.GridH,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Wind,
			run.Coriolis,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d, samples: %d\n\n", meta.GridW, meta.GridH, len(series.Times))

	fmt.Println(asciigraph.Plot(series.KineticEnergy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(series.MeanSpeed,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean speed"),
	))

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	if len(series.KineticEnergy) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(series.KineticEnergy)
	plotData := ps[:len(ps)/4]

	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (kinetic energy)"),
	))
	fmt.Println()

	freq, power := analysis.DominantFrequency(series.KineticEnergy, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz (power %.2f)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, series)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "kinetic_energy", "mean_speed"}); err != nil {
		return err
	}
	for i := range series.Times {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.KineticEnergy[i], 'f', 6, 64),
			strconv.FormatFloat(series.MeanSpeed[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng := newEngine(cfg)
	result, err := eng.Run(context.Background(), sim.Config{
		Dt:               cfg.Dt,
		Duration:         cfg.Duration,
		TimeAcceleration: cfg.TimeAcceleration,
		Seed:             cfg.Seed,
		SampleEvery:      10,
	})
	if err != nil {
		return err
	}

	svg := export.FieldToSVG(eng.Grid(), eng.Tracers(), svgScale)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s after %d steps\n", outFile, result.StepsTaken)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng := newEngine(cfg)
	return viz.RunLive(eng, cfg.Dt, cfg.TimeAcceleration, cfg.ShowTemperature, frameRate)
}
