// Package slurm submits relax jobs to a SLURM cluster through sbatch.
//
// It is a thin wrapper around the scheduler command: it builds the argument list,
// runs the command synchronously and reads the job ID back from its reply.
package slurm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/scorerank/internal/types"
)

// UnknownJobID is reported when the scheduler reply carries no job ID.
const UnknownJobID = "UNKNOWN"

var jobIDPattern = regexp.MustCompile(`Submitted batch job (\d+)`)

// ParseJobID extracts the job ID from sbatch output.
func ParseJobID(output string) string {
	m := jobIDPattern.FindStringSubmatch(output)
	if m == nil {
		return UnknownJobID
	}
	return m[1]
}

// Options configures a Submitter. Zero values select the defaults.
type Options struct {
	Runner  CommandRunner
	Command string // scheduler binary, default "sbatch"
	Script  string // batch script, default "relax_array.sbatch"
	WorkDir string // directory the command runs in; relative inputs resolve against it
	LogDir  string // job log directory relative to WorkDir, default "logs"
	Logger  *zap.Logger
}

// Submitter submits one array job per input file.
type Submitter struct {
	runner  CommandRunner
	command string
	script  string
	workDir string
	logDir  string
	logger  *zap.Logger
}

// NewSubmitter creates a Submitter, filling unset options with defaults.
func NewSubmitter(opts Options) *Submitter {
	s := &Submitter{
		runner:  opts.Runner,
		command: opts.Command,
		script:  opts.Script,
		workDir: opts.WorkDir,
		logDir:  opts.LogDir,
		logger:  opts.Logger,
	}
	if s.runner == nil {
		s.runner = ExecRunner{}
	}
	if s.command == "" {
		s.command = "sbatch"
	}
	if s.script == "" {
		s.script = "relax_array.sbatch"
	}
	if s.logDir == "" {
		s.logDir = "logs"
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

func (s *Submitter) resolve(path string) string {
	if filepath.IsAbs(path) || s.workDir == "" {
		return path
	}
	return filepath.Join(s.workDir, path)
}

// CheckScript verifies the batch script exists.
func (s *Submitter) CheckScript() error {
	info, err := os.Stat(s.resolve(s.script))
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrScriptNotFound, s.script)
	}
	return nil
}

// Args returns the scheduler arguments used to submit input.
func (s *Submitter) Args(input string) []string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	logPrefix := filepath.ToSlash(filepath.Join(s.logDir, "relax_"+base))
	return []string{
		"--job-name=relax_" + base,
		"--output=" + logPrefix + "_%A_%a.out",
		"--error=" + logPrefix + "_%A_%a.err",
		s.script,
		input,
	}
}

// Submit submits a single input and returns the scheduler job ID.
func (s *Submitter) Submit(ctx context.Context, input string) (string, error) {
	if err := os.MkdirAll(s.resolve(s.logDir), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", s.logDir, err)
	}

	args := s.Args(input)
	s.logger.Debug("submitting job",
		zap.String("command", s.command),
		zap.Strings("args", args))

	stdout, stderr, err := s.runner.Run(ctx, s.workDir, s.command, args...)
	if err != nil {
		return "", &SubmitError{Input: input, Stderr: stderr, Cause: err}
	}

	jobID := ParseJobID(stdout)
	if jobID == UnknownJobID {
		s.logger.Warn("scheduler reply carried no job id",
			zap.String("input", input),
			zap.String("stdout", stdout))
	}
	return jobID, nil
}

// SubmitAll submits inputs one after another and reports every outcome, in input order.
// onResult, if non-nil, is called as each submission completes. A failed submission
// does not stop the remaining ones; once ctx is done the rest fail with ctx.Err().
func (s *Submitter) SubmitAll(ctx context.Context, inputs []string, onResult func(types.SubmitResult)) []types.SubmitResult {
	results := make([]types.SubmitResult, 0, len(inputs))
	for _, input := range inputs {
		var result types.SubmitResult
		if err := ctx.Err(); err != nil {
			result = types.SubmitResult{Input: input, Err: err}
		} else {
			jobID, err := s.Submit(ctx, input)
			if err != nil {
				s.logger.Error("submission failed", zap.String("input", input), zap.Error(err))
			}
			result = types.SubmitResult{Input: input, JobID: jobID, Err: err}
		}
		results = append(results, result)
		if onResult != nil {
			onResult(result)
		}
	}
	return results
}

// FindInputs returns the files in dir matching pattern, relative to dir and sorted.
func FindInputs(dir, pattern string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
	}

	inputs := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(dir, match)
		if err != nil {
			rel = match
		}
		inputs = append(inputs, rel)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoInputs, pattern, dir)
	}
	sort.Strings(inputs)
	return inputs, nil
}
