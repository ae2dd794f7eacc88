package slurm

import (
	"errors"
	"fmt"
)

var (
	// ErrScriptNotFound is returned when the batch script to submit does not exist.
	ErrScriptNotFound = errors.New("sbatch script not found")
	// ErrNoInputs is returned when no input files match the submission pattern.
	ErrNoInputs = errors.New("no input files found")
)

// SubmitError represents a failed scheduler invocation for one input
type SubmitError struct {
	Input  string
	Stderr string
	Cause  error
}

func (e *SubmitError) Error() string {
	msg := fmt.Sprintf("submit %s failed", e.Input)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	return msg
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}
