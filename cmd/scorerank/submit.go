package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/scorerank/internal/observability"
	"github.com/jonathan/scorerank/internal/slurm"
	"github.com/jonathan/scorerank/internal/types"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit one SLURM relax array job per PDB",
	Long: `Submits the relax batch script once for every input PDB in a directory.

Each job is named relax_<pdb> and logs to logs/relax_<pdb>_<array job>_<task>.out/.err.
The job ID reported by sbatch is printed for every input.`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

var (
	submitDir    string
	submitScript string
	submitGlob   string

	// submitRunner runs the scheduler command; tests replace it.
	submitRunner slurm.CommandRunner = slurm.ExecRunner{}
)

func init() {
	submitCmd.Flags().StringVarP(&submitDir, "dir", "d", ".", "Directory holding the inputs and the batch script")
	submitCmd.Flags().StringVarP(&submitScript, "script", "s", "", "Batch script to submit (default relax_array.sbatch)")
	submitCmd.Flags().StringVarP(&submitGlob, "glob", "g", "", "Input file pattern (default *.pdb)")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	script := cfg.SbatchScript
	if submitScript != "" {
		script = submitScript
	}
	pattern := cfg.InputGlob
	if submitGlob != "" {
		pattern = submitGlob
	}

	submitter := slurm.NewSubmitter(slurm.Options{
		Runner:  submitRunner,
		Command: cfg.SbatchCommand,
		Script:  script,
		WorkDir: submitDir,
		LogDir:  cfg.JobLogDir,
		Logger:  logger,
	})

	if err := submitter.CheckScript(); err != nil {
		return fmt.Errorf("%w (put it in %s or pass --script)", err, submitDir)
	}

	inputs, err := slurm.FindInputs(submitDir, pattern)
	if err != nil {
		if errors.Is(err, slurm.ErrNoInputs) {
			return fmt.Errorf("no %s files found in %s", pattern, submitDir)
		}
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintSubmissionStart(len(inputs))

	failed := 0
	submitter.SubmitAll(cmd.Context(), inputs, func(result types.SubmitResult) {
		printer.PrintSubmission(result)
		if !result.OK() {
			failed++
		}
	})

	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(inputs))
	}
	return nil
}
