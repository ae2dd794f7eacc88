package scorefile

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/scorerank/internal/types"
)

// ExtractRow recovers a record from the fields of a data line.
// It returns false when the score column is out of range, unparseable or not finite.
func ExtractRow(fields []string, schema *types.HeaderSchema) (types.ScoreRecord, bool) {
	if schema == nil || len(fields) == 0 || schema.ScoreIndex >= len(fields) {
		return types.ScoreRecord{}, false
	}

	raw := fields[schema.ScoreIndex]
	if isHexFloat(raw) {
		return types.ScoreRecord{}, false
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return types.ScoreRecord{}, false
	}

	// Rows narrower than the header are rejected by Classify; the bounds check
	// stays for callers that extract without classifying first.
	desc := fields[len(fields)-1]
	if schema.IdentifierIndex < len(fields) {
		desc = fields[schema.IdentifierIndex]
	}

	return types.ScoreRecord{Score: score, Description: desc}, true
}

// isHexFloat reports whether tok uses the 0x form, which ParseFloat accepts but
// scorefiles never contain.
func isHexFloat(tok string) bool {
	tok = strings.TrimLeft(tok, "+-")
	return strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X")
}
