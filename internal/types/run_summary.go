package types

// RunSummary represents the outcome of ranking every subfolder under a root directory
type RunSummary struct {
	RunID     string        `json:"run_id"`
	Root      string        `json:"root"`
	TopN      int           `json:"top_n"`
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Reports   []ReportEntry `json:"reports"`
}

// ReportEntry represents one processed folder and the artifact written for it
type ReportEntry struct {
	Folder     string        `json:"folder"`
	OutputPath string        `json:"output_path"`
	Ranked     []ScoreRecord `json:"ranked"`
}
