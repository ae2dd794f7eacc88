package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSummary = `{
  "run_id": "4b7d7c1e-1f0a-4c52-9d0e-6a8f2b1c9e11",
  "root": "/scratch/relax",
  "top_n": 5,
  "processed": 1,
  "skipped": 0,
  "reports": [
    {
      "folder": "run_a",
      "output_path": "/scratch/relax/run_a/top_5_scores.txt",
      "ranked": [{"score": -412.738, "description": "relax_0001"}]
    }
  ]
}`

func TestValidate_ValidSummary(t *testing.T) {
	assert.NoError(t, Validate(RunSummary, []byte(validSummary)))
}

func TestValidate_MissingField(t *testing.T) {
	err := Validate(RunSummary, []byte(`{"run_id": "x", "root": "/r", "top_n": 5, "processed": 0, "reports": []}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, err.Error(), "skipped")
}

func TestValidate_WrongType(t *testing.T) {
	err := Validate(RunSummary, []byte(`{"run_id": "x", "root": "/r", "top_n": "five", "processed": 0, "skipped": 0, "reports": []}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "top_n", validationErr.Errors[0].Field)
}

func TestValidate_EmptyRankedRejected(t *testing.T) {
	doc := `{"run_id": "x", "root": "/r", "top_n": 5, "processed": 1, "skipped": 0,
		"reports": [{"folder": "a", "output_path": "/r/a/top_5_scores.txt", "ranked": []}]}`

	var validationErr *ValidationError
	require.True(t, errors.As(Validate(RunSummary, []byte(doc)), &validationErr))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "schema not found")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(RunSummary, []byte(`{ not json`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, os.WriteFile(path, []byte(validSummary), 0644))

	assert.NoError(t, ValidateFile(RunSummary, path))
}

func TestValidateFile_NotFound(t *testing.T) {
	err := ValidateFile(RunSummary, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
