package rendering

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/scorerank/internal/types"
)

func sampleReport() *types.FolderReport {
	return &types.FolderReport{
		Folder: "run_a",
		Ranked: []types.ScoreRecord{{Score: -3, Description: "a"}, {Score: -1, Description: "b"}},
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteReport(dir, sampleReport(), 5)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "top_5_scores.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "for: run_a\n")
	assert.Contains(t, string(content), "1     -3.000         a\n")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteReport_IdempotentAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "top_5_scores.txt")
	require.NoError(t, os.WriteFile(target, []byte("stale content that is much longer than the report\n"), 0644))

	_, err := WriteReport(dir, sampleReport(), 5)
	require.NoError(t, err)
	first, err := os.ReadFile(target)
	require.NoError(t, err)

	_, err = WriteReport(dir, sampleReport(), 5)
	require.NoError(t, err)
	second, err := os.ReadFile(target)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, string(first), "stale")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteReport_EmptyReportWritesNothing(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteReport(dir, &types.FolderReport{Folder: "x"}, 5)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "out.txt"), []byte("x"))
	require.Error(t, err)

	var writeErr *WriteError
	assert.True(t, errors.As(err, &writeErr))
}

func TestWriteSummaryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "summary.json")
	summary := &types.RunSummary{
		RunID:     "run-1",
		Root:      "/scratch",
		TopN:      5,
		Processed: 1,
		Reports:   []types.ReportEntry{{Folder: "run_a", OutputPath: "/scratch/run_a/top_5_scores.txt", Ranked: sampleReport().Ranked}},
	}

	require.NoError(t, WriteSummaryJSON(path, summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded types.RunSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Reports, 1)
	assert.Equal(t, "b", decoded.Reports[0].Ranked[1].Description)
}

func TestWriteSummaryJSON_Nil(t *testing.T) {
	assert.Error(t, WriteSummaryJSON(filepath.Join(t.TempDir(), "s.json"), nil))
}
