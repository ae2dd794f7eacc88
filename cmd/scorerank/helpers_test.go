package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/scorerank/internal/config"
	"github.com/jonathan/scorerank/internal/slurm"
)

// resetFlags restores every flag of cmd to its default so package-level flag
// variables do not leak between tests.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset flag %s: %v", f.Name, err)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
}

// executeCommand runs the root command in-process and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, cmd := range []*cobra.Command{rootCmd, rankCmd, submitCmd} {
		resetFlags(t, cmd)
	}
	cfg = config.Defaults()
	submitRunner = slurm.ExecRunner{}
	for _, key := range []string{config.EnvRoot, config.EnvTopN, config.EnvLogLevel, config.EnvLogFormat, config.EnvSbatchScript} {
		t.Setenv(key, "")
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}
