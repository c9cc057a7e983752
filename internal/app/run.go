package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/deptree/internal/ctxlog"
	"github.com/specialistvlad/deptree/internal/plan"
	"github.com/specialistvlad/deptree/internal/runner"
)

// Run loads the configured plan and executes it (or prints its wave order in
// dry-run mode). A non-nil error means the process should exit non-zero,
// including when targets failed or stalled.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "plan", cfg.PlanPath)

	p, err := a.loader.Load(ctx, cfg.PlanPath)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if len(p.Targets) == 0 {
		a.logger.Warn("Plan contains no targets, nothing to do.")
		return nil
	}

	if cfg.DryRun {
		return a.dryRun(p)
	}

	a.logger.Info("🚀 Starting execution.", "targets", len(p.Targets), "workers", cfg.Workers)
	res, err := runner.New(p, cfg.Workers, a.execTarget).Run(ctx)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.",
		"finished", len(res.Finished), "failed", len(res.Failed), "stalled", len(res.Stalled))
	return res.Err()
}

// dryRun prints the wave order of the plan without executing anything.
func (a *App) dryRun(p *plan.Plan) error {
	waves, err := runner.New(p, 1, nil).Waves()
	if err != nil {
		return fmt.Errorf("failed to compute plan order: %w", err)
	}
	for i, wave := range waves {
		fmt.Fprintf(a.out, "wave %d: %s\n", i+1, strings.Join(wave, ", "))
	}
	return nil
}
