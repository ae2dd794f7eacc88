package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/scorerank/internal/types"
)

const (
	rankWidth  = 6
	scoreWidth = 15
	ruleWidth  = 80
)

// ReportFileName returns the artifact name for a top-n report, e.g. top_5_scores.txt.
func ReportFileName(topN int) string {
	return fmt.Sprintf("top_%d_scores.txt", topN)
}

// RenderTable renders report as the fixed-layout ranking table.
// The folder line uses report.Folder verbatim; ranks start at 1.
func RenderTable(report *types.FolderReport, topN int) (string, error) {
	if report == nil || len(report.Ranked) == 0 {
		return "", &RenderError{Message: "report has no ranked records"}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Top %d rankings (lowest total_score/score) for: %s\n", topN, report.Folder))
	sb.WriteString(fmt.Sprintf("%-*s%-*s%s\n", rankWidth, "rank", scoreWidth, "score", "description"))
	sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for i, rec := range report.Ranked {
		sb.WriteString(fmt.Sprintf("%-*d%-*.3f%s\n", rankWidth, i+1, scoreWidth, rec.Score, rec.Description))
	}
	return sb.String(), nil
}
