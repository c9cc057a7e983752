package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHelpExitsCleanly(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunDryRunEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	planHCL := `
target "compile" {
  run = "true"
}

target "test" {
  run        = "true"
  depends_on = ["compile"]
}
`
	path := filepath.Join(dir, "plan.hcl")
	require.NoError(t, os.WriteFile(path, []byte(planHCL), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-dry-run", "-log-level", "error", path})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "wave 1: compile")
	assert.Contains(t, out.String(), "wave 2: test")
}

func TestRunInvalidPlanFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plan.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`target "broken" {`), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
