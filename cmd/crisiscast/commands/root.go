package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"crisiscast/internal/config"
	"crisiscast/internal/ensemble"
	"crisiscast/internal/intel"
	"crisiscast/internal/logging"
	"crisiscast/internal/priors"
	"crisiscast/internal/trajectory"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	flagSeed    int64
	flagRuns    int
	flagWorkers int
	priorsPath  string
	intelPath   string
	outPath     string
	qaPath      string
)

var rootCmd = &cobra.Command{
	Use:   "crisiscast",
	Short: "crisiscast is an ensemble forecaster for civil/political crisis trajectories",
	Long: `Runs a large ensemble of independent stochastic trajectories through a
discrete-time crisis state machine, converting analyst-supplied windowed
probabilities into calibrated daily hazards, and aggregates terminal-outcome
frequencies with bootstrap confidence intervals.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("crisiscast starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForecast(cmd)
	},
}

func runForecast(cmd *cobra.Command) error {
	runs := flagRuns
	if runs <= 0 {
		runs = cfg.DefaultRuns
	}
	workers := flagWorkers
	if workers <= 0 {
		workers = cfg.DefaultWorkers
	}

	priorsDoc, err := priors.Load(priorsPath)
	if err != nil {
		return err
	}
	intelDoc, err := intel.Load(intelPath)
	if err != nil {
		return err
	}

	// Validation runs once, before any trajectory starts. A hard failure
	// aborts here with no partial output written.
	reg := trajectory.Registry(intelDoc.CascadeKeys(), trajectory.DefaultHorizon)
	table, audit, err := priors.ResolveTable(priorsDoc, reg)
	if err != nil {
		return fmt.Errorf("priors validation failed: %w", err)
	}
	for _, w := range audit.Warnings {
		log.Warn().Str("key", w.Key).Msg(w.Message)
	}

	runner := ensemble.NewRunner(ensemble.Config{
		Runs:    runs,
		Seed:    flagSeed,
		Workers: workers,
		Horizon: trajectory.DefaultHorizon,
	}, table, intelDoc)

	result, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := result.WriteFile(outPath); err != nil {
		return err
	}
	if err := writeQADocument(qaPath, audit, table); err != nil {
		return err
	}

	log.Info().
		Str("result", outPath).
		Str("qa", qaPath).
		Int("warnings", len(audit.Warnings)).
		Msg("Forecast written")
	return nil
}

func writeQADocument(path string, audit *priors.Audit, table priors.Table) error {
	doc := priors.QADocument{
		Warnings: audit.Warnings,
		Resolved: table,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal QA document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write QA document: %w", err)
	}
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 1, "base random seed for the ensemble")
	rootCmd.Flags().IntVar(&flagRuns, "runs", 0, "number of trajectories (default from CRISISCAST_RUNS)")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel workers (default from CRISISCAST_WORKERS)")
	rootCmd.Flags().StringVar(&priorsPath, "priors", "priors.json", "path to the priors document")
	rootCmd.Flags().StringVar(&intelPath, "intel", "intel.json", "path to the intelligence document")
	rootCmd.Flags().StringVar(&outPath, "out", "forecast.json", "path for the ensemble result document")
	rootCmd.Flags().StringVar(&qaPath, "qa", "priors-qa.json", "path for the resolved-priors QA document")
}
