package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/specialistvlad/deptree/internal/ctxlog"
	"github.com/specialistvlad/deptree/internal/plan"
)

// execTarget runs a target's command through the system shell. A target with
// no command is a pure synchronization point and finishes immediately.
func (a *App) execTarget(ctx context.Context, t *plan.Target) error {
	logger := ctxlog.FromContext(ctx)

	if strings.TrimSpace(t.Run) == "" {
		logger.Debug("Target has no command, finishing immediately.", "target", t.Name)
		return nil
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", t.Run)
	cmd.Env = append(os.Environ(), envList(t.Env)...)

	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		logger.Debug("Command output.", "target", t.Name, "output", strings.TrimSpace(string(out)))
	}
	if err != nil {
		return fmt.Errorf("command %q: %w", t.Run, err)
	}
	return nil
}

// envList flattens an env map into KEY=VALUE form for exec.
func envList(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
