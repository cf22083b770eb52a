package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ma3ke/bibber/internal/analysis"
	"github.com/ma3ke/bibber/internal/config"
	"github.com/ma3ke/bibber/internal/engine"
	"github.com/ma3ke/bibber/internal/metrics"
	"github.com/ma3ke/bibber/internal/recipe"
	"github.com/ma3ke/bibber/internal/storage"
	"github.com/ma3ke/bibber/internal/trajectory"
	"github.com/ma3ke/bibber/internal/viz"
)

var (
	recipePath   string
	settingsPath string
	preset       string
	seed         int64
	output       string
	dataDir      string
	liveStride   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bibber",
		Short: "naive NVT molecular dynamics simulator",
		// A bare invocation runs the recipe from the working directory
		// and writes the trajectory to stdout.
		RunE: runSimulation,
	}

	rootCmd.PersistentFlags().StringVar(&recipePath, "recipe", recipe.DefaultFilename, "recipe file")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", config.DefaultFilename, "engine settings file (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from settings)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation described by the recipe",
		RunE:  runSimulation,
	}

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().StringVar(&preset, "preset", "", "use a settings preset instead of the settings file")
		cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the settings value or the clock)")
		cmd.Flags().StringVar(&output, "output", "", "write the trajectory to a file instead of stdout (.gz compresses)")
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the temperature and energy series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summarize how well a run held its temperature setpoint",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a settings preset instead of the settings file")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	liveCmd.Flags().StringVar(&output, "output", "", "also write the trajectory to a file")
	liveCmd.Flags().IntVar(&liveStride, "stride", 50, "steps between live view updates")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available settings presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings resolves preset > settings file > defaults, and the seed.
func loadSettings() (*config.Settings, int64, error) {
	var settings *config.Settings
	if preset != "" {
		settings = config.GetPreset(preset)
		if settings == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, 0, fmt.Errorf("unknown preset %q (available: %v)", preset, names)
		}
	} else {
		var err error
		settings, err = config.LoadOrDefault(settingsPath)
		if err != nil {
			return nil, 0, err
		}
	}

	runSeed := seed
	if runSeed == 0 {
		runSeed = settings.Seed
	}
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	return settings, runSeed, nil
}

// buildSimulation constructs the system and integrator from the recipe
// and settings. The emitter may be nil.
func buildSimulation(rec *recipe.Recipe, settings *config.Settings, runSeed int64, emitter engine.Emitter) (*engine.Integrator, error) {
	boundary := engine.Boundary{L: rec.Box[0].Meters()}

	opts := engine.SystemOpts{
		Mass:          settings.Mass,
		MinSeparation: settings.Placement.MinSeparation.Meters(),
	}
	if settings.Placement.Velocities == config.VelocitiesUniform {
		opts.Velocities = engine.UniformVelocities
	}

	rng := rand.New(rand.NewSource(runSeed))
	sys, err := engine.NewRandomSystem(rec.Particles, boundary, rec.Start, rng, opts)
	if err != nil {
		return nil, err
	}

	var field engine.ForceField
	switch settings.ForceField.Kind {
	case "none":
		field = engine.None{}
	case "lj":
		field = engine.LennardJones{
			Epsilon: settings.ForceField.Epsilon,
			Sigma:   settings.ForceField.Sigma.Meters(),
			Cutoff:  boundary.L / 2,
		}
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownForceField, settings.ForceField.Kind)
	}

	thermo := engine.Berendsen{
		Target: rec.Temperature,
		Tau:    settings.Thermostat.Tau.Time,
	}

	params := engine.Params{
		Timestep: rec.Timestep,
		End:      rec.End,
		Snapshot: rec.Snapshot,
	}
	return engine.NewIntegrator(sys, field, thermo, params, emitter), nil
}

// recorderStride caps the stored series around a thousand samples.
func recorderStride(steps int) int {
	stride := steps / 1000
	if stride < 1 {
		stride = 1
	}
	return stride
}

func resolveDataDir(settings *config.Settings) string {
	if dataDir != "" {
		return dataDir
	}
	return settings.DataDir
}

func runSimulation(cmd *cobra.Command, args []string) error {
	settings, runSeed, err := loadSettings()
	if err != nil {
		return err
	}

	rec, err := recipe.ParseFile(recipePath)
	if err != nil {
		return err
	}

	var emitter engine.Emitter
	var frames func() int
	if output != "" {
		fw, err := trajectory.Create(output, rec.Title)
		if err != nil {
			return err
		}
		defer fw.Close()
		emitter = fw
		frames = fw.Frames
	} else {
		w := trajectory.NewWriter(os.Stdout, rec.Title)
		emitter = w
		frames = w.Frames
	}

	in, err := buildSimulation(rec, settings, runSeed, emitter)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder(recorderStride(rec.Steps()))
	meanTemp := metrics.NewTemperature()
	meanKin := metrics.NewKinetic()
	in.AddObserver(recorder)
	in.AddObserver(meanTemp)
	in.AddObserver(meanKin)
	in.AddObserver(newProgress(rec.Steps()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "%s: %d particles, %d steps, seed %d\n",
		rec.Title, rec.Particles, rec.Steps(), runSeed)
	start := time.Now()

	if err := in.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\ncompleted in %v\n", time.Since(start).Round(time.Millisecond))

	st := storage.New(resolveDataDir(settings))
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Title:       rec.Title,
		Seed:        runSeed,
		Particles:   rec.Particles,
		BoxEdge:     rec.Box[0].Meters(),
		Timestep:    rec.Timestep.Seconds(),
		Duration:    rec.Duration().Seconds(),
		Temperature: rec.Temperature.Kelvin(),
		ForceField:  settings.ForceField.Kind,
		Frames:      frames(),
		Metrics: map[string]float64{
			meanTemp.Name(): meanTemp.Value(),
			meanKin.Name():  meanKin.Value(),
		},
	}, recorder)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	fmt.Fprintf(os.Stderr, "frames: %d\n", frames())
	fmt.Fprintf(os.Stderr, "final temperature: %.2f K (target %.2f K)\n",
		meanTemp.Last(), rec.Temperature.Kelvin())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	settings, runSeed, err := loadSettings()
	if err != nil {
		return err
	}

	rec, err := recipe.ParseFile(recipePath)
	if err != nil {
		return err
	}

	// stdout belongs to the TUI here; the trajectory is only written
	// when a file is given.
	var emitter engine.Emitter
	if output != "" {
		fw, err := trajectory.Create(output, rec.Title)
		if err != nil {
			return err
		}
		defer fw.Close()
		emitter = fw
	}

	in, err := buildSimulation(rec, settings, runSeed, emitter)
	if err != nil {
		return err
	}

	stream := viz.NewStream(liveStride)
	in.AddObserver(stream)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stream.Finish(in.Run(ctx))
	}()

	model := viz.NewLiveModel(rec.Title, rec.Temperature.Kelvin(), stream, cancel)
	_, uiErr := tea.NewProgram(model).Run()

	// The deferred writer close must not race the emitting loop.
	cancel()
	runErr := stream.Wait()

	if uiErr != nil {
		return uiErr
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}
	st := storage.New(resolveDataDir(settings))
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTIME\tN\tSTEPS\tFORCE\tMEAN T")
	for _, run := range runs {
		steps := 0
		if run.Timestep > 0 {
			steps = int(run.Duration / run.Timestep)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.1f K\n",
			run.ID,
			run.Title,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			steps,
			run.ForceField,
			run.Metrics["mean_temperature"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}
	st := storage.New(resolveDataDir(settings))

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, temps, kes, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(temps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("title: %s\n", meta.Title)
	fmt.Printf("samples: %d\n\n", len(temps))

	fmt.Println(viz.Plot(temps, fmt.Sprintf("temperature [K] (target %.1f)", meta.Temperature)))
	fmt.Println()
	fmt.Println(viz.Plot(kes, "kinetic energy [J]"))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}
	st := storage.New(resolveDataDir(settings))

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, temps, kes, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(temps) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	tempSummary := analysis.Summarize(temps)
	keSummary := analysis.Summarize(kes)
	settled := analysis.SettlingIndex(temps, meta.Temperature, 0.05)

	fmt.Printf("run: %s (%s)\n\n", meta.ID, meta.Title)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMEAN\tSTD\tMIN\tMAX\tFINAL")
	fmt.Fprintf(w, "temperature [K]\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
		tempSummary.Mean, tempSummary.Std, tempSummary.Min, tempSummary.Max, tempSummary.Final)
	fmt.Fprintf(w, "kinetic [J]\t%.3e\t%.3e\t%.3e\t%.3e\t%.3e\n",
		keSummary.Mean, keSummary.Std, keSummary.Min, keSummary.Max, keSummary.Final)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nsetpoint: %.2f K\n", meta.Temperature)
	fmt.Printf("setpoint error (last quarter): %.3f K\n",
		analysis.SetpointError(temps, meta.Temperature))
	if settled >= 0 {
		fmt.Printf("settled within 5%% at sample %d (t = %.3g s)\n", settled, times[settled])
	} else {
		fmt.Println("never settled within 5% of the setpoint")
	}
	return nil
}

// progress prints step progress and an estimated remaining wall time to
// stderr, overwriting a single line.
type progress struct {
	total   int
	every   int
	started time.Time
}

func newProgress(total int) *progress {
	every := total / 100
	if every < 1 {
		every = 1
	}
	return &progress{total: total, every: every, started: time.Now()}
}

func (p *progress) OnStep(s *engine.System, step int) {
	if step%p.every != 0 {
		return
	}
	perStep := time.Since(p.started).Seconds() / float64(step)
	remaining := float64(p.total-step) * perStep
	fmt.Fprintf(os.Stderr, "t = %10.3f ps    est. rem. wall time %.0f s\r",
		s.Time().Picoseconds(), remaining)
}
