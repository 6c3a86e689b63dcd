package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/san-kum/oscifit/internal/analysis"
	"github.com/san-kum/oscifit/internal/band"
	"github.com/san-kum/oscifit/internal/config"
	"github.com/san-kum/oscifit/internal/dynamo"
	"github.com/san-kum/oscifit/internal/inference"
	"github.com/san-kum/oscifit/internal/integrators"
	"github.com/san-kum/oscifit/internal/models"
	"github.com/san-kum/oscifit/internal/optim"
	"github.com/san-kum/oscifit/internal/storage"
	"github.com/san-kum/oscifit/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	integrator string
	projection string
	seed       int64
	endTime    float64
	outStep    float64
	tolerance  float64
	sigma      float64

	iterations int
	burnIn     int
	thin       int
	chains     int

	obsFile    string
	outFile    string
	priorBand  bool
	predictive bool
	traceParam string
	gridPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oscifit",
		Short: "bayesian calibration lab for genetic oscillator models",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".oscifit", "data directory")

	simulateCmd := &cobra.Command{
		Use:   "simulate [model]",
		Short: "simulate a model at its default parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}
	addModelFlags(simulateCmd)

	synthCmd := &cobra.Command{
		Use:   "synth [model]",
		Short: "generate a noisy synthetic dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSynth,
	}
	addModelFlags(synthCmd)
	synthCmd.Flags().StringVar(&outFile, "out", "observations.csv", "dataset output path")

	fitCmd := &cobra.Command{
		Use:   "fit [model]",
		Short: "sample the posterior against an observed dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFit,
	}
	addModelFlags(fitCmd)
	addSamplerFlags(fitCmd)
	fitCmd.Flags().StringVar(&obsFile, "obs", "", "observation csv (time,value)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "sample the posterior with the live chain monitor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLiveFit,
	}
	addModelFlags(liveCmd)
	addSamplerFlags(liveCmd)
	liveCmd.Flags().StringVar(&obsFile, "obs", "", "observation csv (time,value)")

	bandCmd := &cobra.Command{
		Use:   "band [fit_run_id]",
		Short: "credible band from a fit run (or the prior)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBand,
	}
	addModelFlags(bandCmd)
	bandCmd.Flags().StringVar(&obsFile, "obs", "", "observation csv to overlay")
	bandCmd.Flags().BoolVar(&priorBand, "prior", false, "aggregate prior draws instead of a fit run")
	bandCmd.Flags().BoolVar(&predictive, "predictive", false, "add observation noise to each draw")

	modeCmd := &cobra.Command{
		Use:   "mode [model]",
		Short: "grid search for the posterior mode",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMode,
	}
	addModelFlags(modeCmd)
	modeCmd.Flags().StringVar(&obsFile, "obs", "", "observation csv (time,value)")
	modeCmd.Flags().IntVar(&gridPoints, "grid", 8, "grid points per dimension")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation and frequency analysis of a simulation run",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run (trajectory or chain traces)",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&traceParam, "param", "", "parameter to trace (fit runs)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  runList,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(simulateCmd, synthCmd, fitCmd, liveCmd, bandCmd, modeCmd, analyzeCmd, plotCmd, listCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (rk4, rk45)")
	cmd.Flags().StringVar(&projection, "projection", "protein", "observed projection (mrna, protein)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&endTime, "time", config.DefaultEnd, "simulation end time (seconds)")
	cmd.Flags().Float64Var(&outStep, "out-step", config.DefaultOutStep, "output grid spacing (seconds)")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive step error tolerance")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "observation noise scale")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addSamplerFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&iterations, "iters", config.DefaultIters, "post burn-in iterations per chain")
	cmd.Flags().IntVar(&burnIn, "burnin", config.DefaultBurnIn, "burn-in iterations per chain")
	cmd.Flags().IntVar(&thin, "thin", 1, "keep every k-th draw")
	cmd.Flags().IntVar(&chains, "chains", config.DefaultChains, "parallel chains")
}

// resolveConfig builds the effective configuration: preset first, then
// config file, then explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		prev := cfg.Seed
		*cfg = *p
		// A preset without a seed must not change the reproducibility default.
		if cfg.Seed == 0 {
			cfg.Seed = prev
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		model := cfg.Model
		*cfg = *loaded
		if len(args) > 0 {
			cfg.Model = model
		}
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("projection") {
		cfg.Projection = projection
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("time") {
		cfg.Time.End = endTime
	}
	if flags.Changed("out-step") {
		cfg.Time.OutStep = outStep
	}
	if flags.Changed("tol") {
		cfg.Time.Tolerance = tolerance
	}
	if flags.Changed("sigma") {
		cfg.Noise.Sigma = sigma
	}
	if flags.Changed("iters") {
		cfg.Sampler.Iterations = iterations
	}
	if flags.Changed("burnin") {
		cfg.Sampler.BurnIn = burnIn
	}
	if flags.Changed("thin") {
		cfg.Sampler.Thin = thin
	}
	if flags.Changed("chains") {
		cfg.Sampler.Chains = chains
	}
	return cfg, nil
}

func initialState(cfg *config.Config, sys models.Model) dynamo.State {
	if len(cfg.InitState) == sys.Dim() {
		return dynamo.State(cfg.InitState).Clone()
	}
	return sys.DefaultState()
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sys, err := models.New(cfg.Model)
	if err != nil {
		return err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}
	project, err := models.Projection(cfg.Projection)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("simulating %s over [%g, %g]...\n", cfg.Model, cfg.Time.Start, cfg.Time.End)
	start := time.Now()
	tr, err := dynamo.New(integ).Run(context.Background(), sys, initialState(cfg, sys), cfg.SimConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.SaveTrajectory(storage.RunMetadata{
		Model:      cfg.Model,
		Seed:       cfg.Seed,
		Integrator: cfg.Integrator,
		Projection: cfg.Projection,
		Start:      cfg.Time.Start,
		End:        cfg.Time.End,
		OutStep:    cfg.Time.OutStep,
	}, tr)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n\n", tr.Len())

	fmt.Println(viz.PlotTrajectory(tr, project, cfg.Projection+" vs time"))
	fmt.Println()

	proj := tr.Project(project)
	if analysis.IsOscillatory(proj) {
		period := analysis.DominantPeriod(proj, cfg.Time.OutStep)
		fmt.Printf("oscillatory: yes (dominant period %.0f s, %.1f min)\n", period, period/60)
	} else {
		fmt.Println("oscillatory: no")
	}
	return nil
}

func runSynth(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sys, err := models.New(cfg.Model)
	if err != nil {
		return err
	}
	project, err := models.Projection(cfg.Projection)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	ds, err := inference.Synthetic(sys, cfg.Integrator, initialState(cfg, sys), cfg.SimConfig(),
		project, cfg.Noise.Sigma, rng)
	if err != nil {
		return err
	}

	if err := storage.SaveDataset(outFile, &ds); err != nil {
		return err
	}
	fmt.Printf("wrote %d observations (sigma %g, seed %d) to %s\n",
		len(ds.Times), cfg.Noise.Sigma, cfg.Seed, outFile)
	return nil
}

// buildInferenceModel assembles the probabilistic model shared by fit,
// live and prior-band modes.
func buildInferenceModel(cfg *config.Config, ds *inference.Dataset) (*inference.Model, error) {
	params, err := cfg.BuildPriors()
	if err != nil {
		return nil, err
	}
	project, err := models.Projection(cfg.Projection)
	if err != nil {
		return nil, err
	}
	sys, err := models.New(cfg.Model)
	if err != nil {
		return nil, err
	}

	model := &inference.Model{
		Params:     params,
		NewSystem:  func() models.Model { m, _ := models.New(cfg.Model); return m },
		Integrator: cfg.Integrator,
		Init:       initialState(cfg, sys),
		Cfg:        cfg.SimConfig(),
		Project:    project,
		FixedSigma: cfg.Noise.Sigma,
	}
	if ds != nil {
		model.Obs = *ds
	}
	return model, nil
}

func loadObservations(cfg *config.Config) (*inference.Dataset, error) {
	if obsFile != "" {
		return storage.LoadDataset(obsFile)
	}
	// No dataset given: synthesize one at the model defaults so the full
	// workflow runs out of the box.
	sys, err := models.New(cfg.Model)
	if err != nil {
		return nil, err
	}
	project, err := models.Projection(cfg.Projection)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	ds, err := inference.Synthetic(sys, cfg.Integrator, initialState(cfg, sys), cfg.SimConfig(),
		project, cfg.Noise.Sigma, rng)
	if err != nil {
		return nil, err
	}
	fmt.Printf("no --obs given, fitting a synthetic dataset (seed %d)\n", cfg.Seed)
	return &ds, nil
}

func newSampler(cfg *config.Config, model *inference.Model) *inference.MH {
	s := inference.NewMH(model)
	s.Iterations = cfg.Sampler.Iterations
	s.BurnIn = cfg.Sampler.BurnIn
	s.Thin = cfg.Sampler.Thin
	s.Chains = cfg.Sampler.Chains
	s.Seed = cfg.Seed
	return s
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	ds, err := loadObservations(cfg)
	if err != nil {
		return err
	}
	model, err := buildInferenceModel(cfg, ds)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sampler := newSampler(cfg, model)
	sampler.Progress = func(p inference.Progress) {
		if p.Chain == 0 {
			fmt.Printf("  chain 0: %d/%d  accept %.2f  logpost %.2f\n",
				p.Iter, p.Total, p.AcceptRate, p.LogPost)
		}
	}

	fmt.Printf("fitting %s: %d chains x %d iterations (+%d burn-in)...\n",
		cfg.Model, sampler.Chains, sampler.Iterations, sampler.BurnIn)
	start := time.Now()
	res, err := sampler.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	return reportFit(st, cfg, res)
}

func runLiveFit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	ds, err := loadObservations(cfg)
	if err != nil {
		return err
	}
	model, err := buildInferenceModel(cfg, ds)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	res, err := viz.RunLive(context.Background(), newSampler(cfg, model))
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Println("sampling aborted")
		return nil
	}
	return reportFit(st, cfg, res)
}

func reportFit(st *storage.Store, cfg *config.Config, res *inference.Result) error {
	merged := res.Merged()
	diags := res.Diagnostics()

	fmt.Println(viz.SummaryTable(merged.Summary(), diags))
	fmt.Println(viz.DiagnosticsNote(diags))

	runID, err := st.SaveFit(storage.RunMetadata{
		Model:      cfg.Model,
		Seed:       cfg.Seed,
		Integrator: cfg.Integrator,
		Projection: cfg.Projection,
		Start:      cfg.Time.Start,
		End:        cfg.Time.End,
		OutStep:    cfg.Time.OutStep,
		Sampler: &storage.SamplerMeta{
			Iterations: cfg.Sampler.Iterations,
			BurnIn:     cfg.Sampler.BurnIn,
			Thin:       cfg.Sampler.Thin,
			Chains:     cfg.Sampler.Chains,
		},
	}, res)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s (%d draws)\n", runID, merged.Len())
	return nil
}

func runBand(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)

	var samples *inference.SampleSet
	caption := "credible band"
	switch {
	case priorBand:
		model, err := buildInferenceModel(cfg, nil)
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
		names := make([]string, len(model.Params))
		for i, p := range model.Params {
			names[i] = p.Name
		}
		samples = &inference.SampleSet{
			Names: names,
			Draws: inference.SamplePrior(model.Params, 200, rng),
		}
		caption = "prior band"
	case len(args) == 1:
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		if meta.Kind != "fit" {
			return fmt.Errorf("run %s is not a fit run", args[0])
		}
		cfg.Model = meta.Model
		cfg.Integrator = meta.Integrator
		cfg.Projection = meta.Projection
		cfg.Seed = meta.Seed
		cfg.Time.Start = meta.Start
		cfg.Time.End = meta.End
		cfg.Time.OutStep = meta.OutStep
		if samples, err = st.LoadSamples(args[0]); err != nil {
			return err
		}
		caption = "posterior band: " + args[0]
	default:
		return fmt.Errorf("give a fit run id or --prior")
	}

	model, err := buildInferenceModel(cfg, nil)
	if err != nil {
		return err
	}
	if err := checkSampleColumns(samples, model.Params); err != nil {
		return err
	}

	series := model.Series()
	if predictive {
		sf := band.ConstSigma(cfg.Noise.Sigma)
		if idx := samples.SigmaIndex(); idx >= 0 {
			sf = band.SigmaAt(idx, cfg.Noise.Sigma)
		}
		series = band.WithNoise(series, sf, rand.NewSource(uint64(cfg.Seed)))
		caption = "predictive " + caption
	}

	fmt.Printf("aggregating %d draws...\n", samples.Len())
	b, err := band.Aggregate(samples.Draws, series, band.Options{})
	if err != nil {
		return err
	}

	if obsFile != "" {
		ds, err := storage.LoadDataset(obsFile)
		if err != nil {
			return err
		}
		fmt.Println(viz.PlotBandWithData(b, ds, caption))
		return nil
	}
	fmt.Println(viz.PlotBand(b, caption))
	return nil
}

func runMode(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	ds, err := loadObservations(cfg)
	if err != nil {
		return err
	}
	model, err := buildInferenceModel(cfg, ds)
	if err != nil {
		return err
	}

	fmt.Printf("grid search: %d points per dimension, %d parameters...\n",
		gridPoints, len(model.Params))
	start := time.Now()
	theta, lp, err := optim.NewGridSearch(model.Params, gridPoints).Search(context.Background(), model)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	for i, p := range model.Params {
		fmt.Printf("  %-8s %.6g\n", p.Name, theta[i])
	}
	fmt.Printf("log posterior: %.4f\n", lp)
	return nil
}

// checkSampleColumns verifies stored draws line up with the priors the
// band will simulate under. A fit made with a custom prior block has
// different columns than the model defaults; simulating such draws would
// silently mis-assign parameters (or worse, under-fill the vector).
func checkSampleColumns(samples *inference.SampleSet, params []inference.Parameter) error {
	if len(samples.Names) < len(params) {
		return fmt.Errorf("run has %d parameter columns %v but the current priors declare %d; "+
			"pass the --config the run was fitted with", len(samples.Names), samples.Names, len(params))
	}
	for i, p := range params {
		if samples.Names[i] != p.Name {
			return fmt.Errorf("run column %d is %q but the current priors declare %q; "+
				"pass the --config the run was fitted with", i, samples.Names[i], p.Name)
		}
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if meta.Kind != "simulate" {
		return fmt.Errorf("run %s is not a simulation run", args[0])
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data")
	}

	project, err := models.Projection(meta.Projection)
	if err != nil {
		return err
	}
	proj := tr.Project(project)

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s, projection: %s\n\n", meta.Model, meta.Projection)

	n := 1
	for n < len(proj) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, proj)

	fmt.Println(viz.PlotSpectrum(analysis.PowerSpectrum(padded), "power spectrum"))
	fmt.Println()

	maxima, minima := analysis.Extrema(proj)
	fmt.Printf("local maxima: %d, minima: %d\n", maxima, minima)
	if analysis.IsOscillatory(proj) {
		period := analysis.DominantPeriod(proj, meta.OutStep)
		fmt.Printf("dominant period: %.0f s (%.1f min)\n", period, period/60)
	} else {
		fmt.Println("no sustained oscillation detected")
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	switch meta.Kind {
	case "simulate":
		tr, err := st.LoadTrajectory(args[0])
		if err != nil {
			return err
		}
		project, err := models.Projection(meta.Projection)
		if err != nil {
			return err
		}
		fmt.Printf("run: %s\nmodel: %s\n\n", meta.ID, meta.Model)
		fmt.Println(viz.PlotTrajectory(tr, project, meta.Projection+" vs time"))
		return nil
	case "fit":
		samples, err := st.LoadSamples(args[0])
		if err != nil {
			return err
		}
		param := traceParam
		if param == "" {
			param = samples.Names[0]
		}
		col, err := samples.ColumnByName(param)
		if err != nil {
			return err
		}
		// Rebuild per-chain series from the metadata chain count.
		numChains := 1
		if meta.Sampler != nil && meta.Sampler.Chains > 0 {
			numChains = meta.Sampler.Chains
		}
		res := splitChains(col, param, numChains)
		fmt.Printf("run: %s\nmodel: %s\n\n", meta.ID, meta.Model)
		fmt.Println(viz.PlotTrace(res, param))
		return nil
	default:
		return fmt.Errorf("unknown run kind %q", meta.Kind)
	}
}

// splitChains reshapes a flat column into equal per-chain results so the
// trace plotter can panel them. Draw counts may differ by one draw per
// chain after thinning; the tail is dropped.
func splitChains(col []float64, param string, chains int) *inference.Result {
	per := len(col) / chains
	res := &inference.Result{Names: []string{param}}
	for c := 0; c < chains; c++ {
		draws := make([][]float64, 0, per)
		for i := c * per; i < (c+1)*per && i < len(col); i++ {
			draws = append(draws, []float64{col[i]})
		}
		res.Chains = append(res.Chains, &inference.ChainResult{Draws: draws})
	}
	return res
}

func runList(cmd *cobra.Command, args []string) error {
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
	fmt.Fprintln(w, "ID\tKIND\tMODEL\tTIME\tINTEG\tPROJ\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Kind,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.Projection,
			run.Seed,
		)
	}
	return w.Flush()
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta       *storage.RunMetadata     `json:"meta"`
		Trajectory *dynamo.Trajectory       `json:"trajectory,omitempty"`
		Samples    *inference.SampleSet     `json:"samples,omitempty"`
		Summary    []inference.ParamSummary `json:"summary,omitempty"`
	}{Meta: meta}

	switch meta.Kind {
	case "simulate":
		if out.Trajectory, err = st.LoadTrajectory(args[0]); err != nil {
			return err
		}
	case "fit":
		if out.Samples, err = st.LoadSamples(args[0]); err != nil {
			return err
		}
		out.Summary = out.Samples.Summary()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
