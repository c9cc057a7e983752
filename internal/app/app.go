package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/deptree/internal/plan"
)

// PlanLoader abstracts the plan source so tests can inject plans without
// touching the filesystem.
type PlanLoader interface {
	Load(ctx context.Context, path string) (*plan.Plan, error)
}

// App is one configured invocation of deptree.
type App struct {
	out    io.Writer
	logger *slog.Logger
	loader PlanLoader
}

// NewApp assembles an App. Log output and dry-run output both go to outW.
func NewApp(outW io.Writer, cfg *Config, loader PlanLoader) *App {
	return &App{
		out:    outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		loader: loader,
	}
}
