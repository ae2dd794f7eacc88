package slurm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/scorerank/internal/types"
)

type call struct {
	dir  string
	name string
	args []string
}

// fakeRunner records calls and replies from a per-input table.
type fakeRunner struct {
	calls   []call
	replies map[string]string
	fail    map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	input := args[len(args)-1]
	if f.fail[input] {
		return "", "sbatch: error: invalid partition", errors.New("exit status 1")
	}
	return f.replies[input], "", nil
}

func TestParseJobID(t *testing.T) {
	assert.Equal(t, "123456", ParseJobID("Submitted batch job 123456"))
	assert.Equal(t, "42", ParseJobID("warning: something\nSubmitted batch job 42 on cluster gpu\n"))
	assert.Equal(t, UnknownJobID, ParseJobID("Submitted batch job"))
	assert.Equal(t, UnknownJobID, ParseJobID(""))
}

func TestSubmitter_Args(t *testing.T) {
	s := NewSubmitter(Options{})

	args := s.Args("design_7.pdb")
	assert.Equal(t, []string{
		"--job-name=relax_design_7",
		"--output=logs/relax_design_7_%A_%a.out",
		"--error=logs/relax_design_7_%A_%a.err",
		"relax_array.sbatch",
		"design_7.pdb",
	}, args)
}

func TestSubmitter_Submit(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{replies: map[string]string{"a.pdb": "Submitted batch job 1001"}}
	s := NewSubmitter(Options{Runner: runner, WorkDir: dir})

	jobID, err := s.Submit(context.Background(), "a.pdb")
	require.NoError(t, err)
	assert.Equal(t, "1001", jobID)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "sbatch", runner.calls[0].name)
	assert.Equal(t, dir, runner.calls[0].dir)

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSubmitter_SubmitUnknownJobID(t *testing.T) {
	runner := &fakeRunner{replies: map[string]string{"a.pdb": "queued"}}
	s := NewSubmitter(Options{Runner: runner, WorkDir: t.TempDir()})

	jobID, err := s.Submit(context.Background(), "a.pdb")
	require.NoError(t, err)
	assert.Equal(t, UnknownJobID, jobID)
}

func TestSubmitter_SubmitAllContinuesAfterFailure(t *testing.T) {
	runner := &fakeRunner{
		replies: map[string]string{"a.pdb": "Submitted batch job 1", "c.pdb": "Submitted batch job 3"},
		fail:    map[string]bool{"b.pdb": true},
	}
	s := NewSubmitter(Options{Runner: runner, WorkDir: t.TempDir()})

	var streamed []string
	results := s.SubmitAll(context.Background(), []string{"a.pdb", "b.pdb", "c.pdb"}, func(r types.SubmitResult) {
		streamed = append(streamed, r.Input)
	})
	require.Len(t, results, 3)
	assert.Equal(t, []string{"a.pdb", "b.pdb", "c.pdb"}, streamed)

	assert.True(t, results[0].OK())
	assert.Equal(t, "1", results[0].JobID)

	assert.False(t, results[1].OK())
	var submitErr *SubmitError
	require.True(t, errors.As(results[1].Err, &submitErr))
	assert.Equal(t, "b.pdb", submitErr.Input)
	assert.Contains(t, submitErr.Error(), "invalid partition")

	assert.Equal(t, "3", results[2].JobID)
}

func TestSubmitter_SubmitAllCancelled(t *testing.T) {
	runner := &fakeRunner{}
	s := NewSubmitter(Options{Runner: runner, WorkDir: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := s.SubmitAll(ctx, []string{"a.pdb"}, nil)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Empty(t, runner.calls)
}

func TestSubmitter_CheckScript(t *testing.T) {
	dir := t.TempDir()
	s := NewSubmitter(Options{WorkDir: dir})

	assert.ErrorIs(t, s.CheckScript(), ErrScriptNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "relax_array.sbatch"), []byte("#!/bin/bash\n"), 0644))
	assert.NoError(t, s.CheckScript())
}

func TestFindInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdb", "a.pdb", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("ATOM"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.pdb"), 0755))

	inputs, err := FindInputs(dir, "*.pdb")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdb", "b.pdb"}, inputs)
}

func TestFindInputs_None(t *testing.T) {
	_, err := FindInputs(t.TempDir(), "*.pdb")
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestFindInputs_BadPattern(t *testing.T) {
	_, err := FindInputs(t.TempDir(), "[")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoInputs)
}
