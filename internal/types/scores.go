// Package types provides type definitions for structured data used throughout the scorerank system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ScoreRecord is a single (score, identifier) pair recovered from a scorefile data line.
// Score is always finite; lower is better.
type ScoreRecord struct {
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// IdentifierSource records how a header's identifier column was located.
type IdentifierSource int

const (
	// IdentifierLabelled means the header carried an explicit description column.
	IdentifierLabelled IdentifierSource = iota
	// IdentifierFallbackLast means no label was found and the last column is used instead.
	// This is a structural rescue for malformed headers, not a correctness guarantee.
	IdentifierFallbackLast
)

// String returns the variant name.
func (s IdentifierSource) String() string {
	switch s {
	case IdentifierLabelled:
		return "labelled"
	case IdentifierFallbackLast:
		return "fallback_last"
	default:
		return "unknown"
	}
}

// HeaderSchema describes the column layout declared by a scorefile header line.
type HeaderSchema struct {
	ScoreIndex       int              `json:"score_index"`
	IdentifierIndex  int              `json:"identifier_index"`
	IdentifierSource IdentifierSource `json:"identifier_source"`
	RawTokens        []string         `json:"raw_tokens"`
}

// Width returns the number of columns declared by the header.
func (h *HeaderSchema) Width() int {
	return len(h.RawTokens)
}

// Valid reports whether both indices are distinct positions within RawTokens.
func (h *HeaderSchema) Valid() bool {
	if h == nil {
		return false
	}
	n := len(h.RawTokens)
	if h.ScoreIndex < 0 || h.ScoreIndex >= n {
		return false
	}
	if h.IdentifierIndex < 0 || h.IdentifierIndex >= n {
		return false
	}
	return h.ScoreIndex != h.IdentifierIndex
}

// FolderReport is the ranked selection for one experiment folder.
// Ranked is sorted ascending by score and holds at most the configured top-N records.
type FolderReport struct {
	Folder string        `json:"folder"`
	Ranked []ScoreRecord `json:"ranked"`
}

// Best returns the lowest-scoring record, or false when the report is empty.
func (r *FolderReport) Best() (ScoreRecord, bool) {
	if r == nil || len(r.Ranked) == 0 {
		return ScoreRecord{}, false
	}
	return r.Ranked[0], true
}
