package rendering

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/scorerank/internal/types"
)

// WriteSummaryJSON writes summary as indented JSON to path, creating parent directories.
func WriteSummaryJSON(path string, summary *types.RunSummary) error {
	if summary == nil {
		return &RenderError{Message: "summary is nil"}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return &RenderError{Message: "failed to marshal run summary", Cause: err}
	}
	data = append(data, '\n')

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	return WriteFileAtomic(path, data)
}
