// Package scorefile parses Rosetta-style scorefiles into ranked score records.
//
// A scorefile is whitespace-delimited text in which every relevant line starts with the
// SCORE: marker. One marker line declares the column labels (the header); the remaining
// marker lines are data rows interpreted against the most recent header. Parsing is
// tolerant: anything that cannot be interpreted is skipped, never reported.
package scorefile

import (
	"slices"
	"strings"

	"github.com/jonathan/scorerank/internal/types"
)

const (
	// RecordMarker is the line-type tag that starts every header and data line.
	RecordMarker = "SCORE:"
	// LabelDescription labels the identifier column.
	LabelDescription = "description"
	// LabelTotalScore labels the preferred score column.
	LabelTotalScore = "total_score"
	// LabelScore labels the legacy score column, used when total_score is absent.
	LabelScore = "score"
)

// LineKind is the classification of a single physical line.
type LineKind int

const (
	// Ignore lines contribute nothing.
	Ignore LineKind = iota
	// Header lines declare the column layout.
	Header
	// Data lines carry one record under the active layout.
	Data
)

// String returns a lowercase name for the kind.
func (k LineKind) String() string {
	switch k {
	case Header:
		return "header"
	case Data:
		return "data"
	default:
		return "ignore"
	}
}

// Classify decides whether line is a header, a data row or noise.
// schema is the currently active layout, nil when none has been resolved yet.
// The returned fields are the whitespace-separated tokens after the marker; they are
// nil for lines that do not start with the marker.
func Classify(line string, schema *types.HeaderSchema) (LineKind, []string) {
	rest, ok := strings.CutPrefix(line, RecordMarker)
	if !ok {
		return Ignore, nil
	}

	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return Ignore, fields
	}

	// Header detection runs before anything else so a repeated header mid-file
	// is picked up even after a schema exists.
	if isHeader(fields) {
		return Header, fields
	}

	if schema == nil {
		return Ignore, fields
	}

	if fields[0] == schema.RawTokens[0] || len(fields) < schema.Width() {
		return Ignore, fields
	}

	return Data, fields
}

func isHeader(fields []string) bool {
	if !slices.Contains(fields, LabelDescription) {
		return false
	}
	return slices.Contains(fields, LabelTotalScore) || slices.Contains(fields, LabelScore)
}
