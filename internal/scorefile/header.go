package scorefile

import (
	"slices"

	"github.com/jonathan/scorerank/internal/types"
)

// ResolveHeader derives the column layout from the fields of a header line.
//
// total_score wins over score when both are present. When no description column exists
// the last column is used as identifier and the schema is tagged IdentifierFallbackLast.
// ok is false when fields carry no recognized score column or the two columns collide;
// callers treat that as "no schema yet".
func ResolveHeader(fields []string) (types.HeaderSchema, bool) {
	scoreIdx := slices.Index(fields, LabelTotalScore)
	if scoreIdx < 0 {
		scoreIdx = slices.Index(fields, LabelScore)
	}
	if scoreIdx < 0 {
		return types.HeaderSchema{}, false
	}

	source := types.IdentifierLabelled
	idIdx := slices.Index(fields, LabelDescription)
	if idIdx < 0 {
		source = types.IdentifierFallbackLast
		idIdx = len(fields) - 1
	}

	schema := types.HeaderSchema{
		ScoreIndex:       scoreIdx,
		IdentifierIndex:  idIdx,
		IdentifierSource: source,
		RawTokens:        slices.Clone(fields),
	}
	if !schema.Valid() {
		return types.HeaderSchema{}, false
	}
	return schema, true
}
