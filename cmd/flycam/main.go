package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/flycam/internal/config"
	"github.com/san-kum/flycam/internal/export"
	"github.com/san-kum/flycam/internal/flight"
	"github.com/san-kum/flycam/internal/gui"
	"github.com/san-kum/flycam/internal/input"
	"github.com/san-kum/flycam/internal/metrics"
	"github.com/san-kum/flycam/internal/session"
	"github.com/san-kum/flycam/internal/sim"
	"github.com/san-kum/flycam/internal/storage"
	"github.com/san-kum/flycam/internal/tui"
	"github.com/san-kum/flycam/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	logFile    string
	noWatch    bool
	theme      string
	live       bool
	frameRate  int
	asJSON     bool
	noSave     bool
	pathSVG    string
	frameSVG   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "flycam",
		Short:         "keyboard and pointer driven fly camera",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flycam", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to file")
	rootCmd.Flags().StringVar(&theme, "theme", viz.DefaultTheme, "hud theme")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file on change")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "fly in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", viz.DefaultTheme, "hud theme")
	tuiCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file on change")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "fly in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file on change")

	replayCmd := &cobra.Command{
		Use:   "replay [script...]",
		Short: "replay input scripts headlessly",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().BoolVar(&live, "live", false, "draw the replay in the terminal")
	replayCmd.Flags().IntVar(&frameRate, "fps", 30, "live view frame rate")
	replayCmd.Flags().BoolVar(&asJSON, "json", false, "print samples as json")
	replayCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&pathSVG, "path-svg", "", "write the ground track as svg")
	exportCmd.Flags().StringVar(&frameSVG, "frame-svg", "", "write the final view as svg")

	bindingsCmd := &cobra.Command{
		Use:   "bindings",
		Short: "show the effective key bindings",
		RunE:  showBindings,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	})

	rootCmd.AddCommand(tuiCmd, guiCmd, replayCmd, listCmd, plotCmd, exportCmd, bindingsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger writes to --log-file when set, otherwise to fallback.
func newLogger(fallback io.Writer) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetOutput(fallback)
	if logFile == "" {
		return log, func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	log.SetOutput(f)
	return log, func() { f.Close() }, nil
}

// loadConfig resolves --config, then --preset, then the defaults.
func loadConfig() (*config.Config, string, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("load config: %w", err)
		}
		return cfg, configFile, nil
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s", preset)
		}
		return cfg, preset, nil
	}
	return config.DefaultConfig(), "default", nil
}

func openWatcher(log *logrus.Logger) *config.Watcher {
	if configFile == "" || noWatch {
		return nil
	}
	w, err := config.NewWatcher(configFile)
	if err != nil {
		log.WithError(err).Warn("config reload disabled")
		return nil
	}
	return w
}

func newSession(cfg *config.Config, log *logrus.Logger) (*session.Session, error) {
	surf := input.NewElement(input.Rect{Width: float64(cfg.Viewport.Width), Height: float64(cfg.Viewport.Height)})
	return session.New(cfg, surf, log)
}

func runTUI(cmd *cobra.Command, args []string) error {
	log, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, name, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	opts := []tui.Option{tui.WithTheme(theme), tui.WithPreset(name), tui.WithLogger(log)}
	if w := openWatcher(log); w != nil {
		defer w.Close()
		opts = append(opts, tui.WithWatcher(w))
	}
	return tui.Run(sess, opts...)
}

func runGUI(cmd *cobra.Command, args []string) error {
	log, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, name, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	w := openWatcher(log)
	if w != nil {
		defer w.Close()
	}
	gui.Run(sess, name, w, log)
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	log, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, name, err := loadConfig()
	if err != nil {
		return err
	}

	scripts := make([]*sim.Script, len(args))
	for i, path := range args {
		s, err := sim.LoadScript(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		scripts[i] = s
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if live && len(scripts) > 1 {
		return fmt.Errorf("--live replays a single script")
	}
	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, 78, 20, frameRate)
	}

	metricSets := make([][]metrics.Metric, len(scripts))
	batch := sim.NewBatch(func() (*session.Session, error) { return newSession(cfg, log) })
	batch.WithObservers(func(idx int) []sim.Observer {
		metricSets[idx] = metrics.Standard()
		obs := metrics.Observers(metricSets[idx])
		if renderer != nil {
			obs = append(obs, renderer)
		}
		return obs
	})

	results, err := batch.Run(ctx, scripts)
	if renderer != nil {
		renderer.Close()
	}
	if err != nil {
		return err
	}
	for i, res := range results {
		for name, v := range metrics.Values(metricSets[i]) {
			res.Metrics[name] = v
		}
	}

	if asJSON {
		for i, res := range results {
			if err := storage.ExportJSON(os.Stdout, scripts[i], res); err != nil {
				return err
			}
		}
		return nil
	}

	ids := make([]string, len(results))
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for i, res := range results {
			id, err := st.Save(scripts[i], name, cfg.MovementSpeed, res)
			if err != nil {
				return err
			}
			ids[i] = id
			log.WithField("run", id).Debug("run stored")
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCRIPT\tSTEPS\tEVENTS\tDISTANCE\tPEAK\tTURN\tFINAL\tRUN")
	for i, res := range results {
		p := res.Final().Position
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%.3f\t%.3f\t(%.2f, %.2f, %.2f)\t%s\n",
			scripts[i].Name, len(res.Samples), res.Dispatched, res.Distance,
			res.Metrics["peak_speed"], res.Metrics["turn"],
			p.X(), p.Y(), p.Z(), ids[i])
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tSCRIPT\tPRESET\tTIME\tDURATION\tDT\tDISTANCE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%.3f\n",
			run.ID,
			run.Script,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Distance,
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
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	fmt.Printf("run: %s (%s, %.2fs)\n\n", meta.ID, meta.Script, meta.Duration)
	for axis, label := range []string{"x", "y", "z"} {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = s.Position[axis]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("position "+label),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if pathSVG != "" {
		if err := os.WriteFile(pathSVG, []byte(export.PathToSVG(samples, 640, 640, "#00ffff")), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", pathSVG)
	}
	if frameSVG != "" && len(samples) > 0 {
		last := samples[len(samples)-1]
		canvas := viz.NewCanvas(80, 24)
		cam := viz.NewCamera()
		cam.Position, cam.Rotation = last.Position, last.Rotation
		viz.Render(canvas, viz.Scene(), cam)
		if err := os.WriteFile(frameSVG, []byte(export.CanvasToSVG(canvas, 4)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", frameSVG)
	}
	if pathSVG != "" || frameSVG != "" {
		return nil
	}

	script := &sim.Script{Name: meta.Script, Dt: meta.Dt, Duration: meta.Duration}
	result := &sim.Result{Samples: samples, Dispatched: meta.Events, Distance: meta.Distance, Metrics: meta.Metrics}
	return storage.ExportJSON(os.Stdout, script, result)
}

func showBindings(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := cfg.Bindings()
	if err != nil {
		return err
	}
	extras, err := cfg.ExtraKeys()
	if err != nil {
		return err
	}

	fmt.Printf("bindings (%s)\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tKEY")
	fmt.Fprintf(w, "%s\t%s\n", config.SpeedModifierKey, keyName(b.SpeedModifier))
	for _, a := range flight.Axes() {
		fmt.Fprintf(w, "%s\t%s\n", a, keyName(b.Code(a)))
	}
	codes := make([]input.Code, 0, len(extras))
	for code := range extras {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		fmt.Fprintf(w, "%s\t%s\n", extras[code], keyName(code))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nactions: %s\n", strings.Join(session.Actions(), ", "))
	return nil
}

func keyName(c input.Code) string {
	if c == input.KeyNone {
		return "-"
	}
	return c.String()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
