package slurm

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// CommandRunner runs an external command to completion and returns its stdout.
// On failure the returned stderr carries whatever the command wrote there.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner is the CommandRunner backed by os/exec.
type ExecRunner struct{}

var _ CommandRunner = ExecRunner{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()), err
}
