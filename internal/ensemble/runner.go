// Package ensemble executes N independent trajectories in parallel and
// reduces them into the forecast result document.
package ensemble

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"crisiscast/internal/intel"
	"crisiscast/internal/priors"
	"crisiscast/internal/trajectory"
)

// Config parameterizes an ensemble run.
type Config struct {
	Runs    int
	Seed    int64
	Workers int
	Horizon int
}

// Runner executes the ensemble. Trajectories share nothing mutable: each run
// owns its own state, sampler cache and random stream, so the only
// synchronization is waiting for completion.
type Runner struct {
	cfg   Config
	table priors.Table
	intel *intel.Document
}

// NewRunner creates a runner over a resolved priors table and intelligence
// document.
func NewRunner(cfg Config, table priors.Table, doc *intel.Document) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Horizon <= 0 {
		cfg.Horizon = trajectory.DefaultHorizon
	}
	return &Runner{cfg: cfg, table: table, intel: doc}
}

// Run executes every trajectory and aggregates the results. Records land in
// a slice indexed by run number, so the aggregate is identical regardless of
// worker count or scheduling.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.cfg.Runs <= 0 {
		return nil, fmt.Errorf("ensemble: run count must be positive, got %d", r.cfg.Runs)
	}

	log.Info().
		Int("runs", r.cfg.Runs).
		Int64("seed", r.cfg.Seed).
		Int("workers", r.cfg.Workers).
		Int("horizon", r.cfg.Horizon).
		Msg("Ensemble starting")

	tcfg := trajectory.Config{
		Horizon: r.cfg.Horizon,
		Table:   r.table,
		Intel:   r.intel,
	}

	records := make([]trajectory.Record, r.cfg.Runs)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := 0; i < r.cfg.Runs; i++ {
		run := i
		g.Go(func() error {
			records[run] = trajectory.New(tcfg, r.cfg.Seed, run).Run()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := aggregate(records, r.cfg)
	log.Info().Int("runs", res.Runs).Msg("Ensemble complete")
	return res, nil
}
