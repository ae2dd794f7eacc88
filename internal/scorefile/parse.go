package scorefile

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jonathan/scorerank/internal/types"
)

// Stats counts how the lines of one scorefile were classified.
type Stats struct {
	Lines   int `json:"lines"`
	Headers int `json:"headers"`
	Records int `json:"records"`
	// Dropped counts data lines whose score could not be recovered.
	Dropped int `json:"dropped"`
	Ignored int `json:"ignored"`
}

// Parse reads a scorefile stream and returns its records in encounter order.
// Only errors from r are returned; malformed lines are skipped.
func Parse(r io.Reader) ([]types.ScoreRecord, error) {
	records, _, err := ParseWithStats(r)
	return records, err
}

// ParseWithStats is Parse plus per-kind line counts.
//
// Lines may be of any length; a trailing "\r" is dropped like a line terminator.
//
// Every header line replaces the active schema, so when runs are appended to the same
// file the last header seen governs all data lines after it.
func ParseWithStats(r io.Reader) ([]types.ScoreRecord, Stats, error) {
	var (
		records []types.ScoreRecord
		stats   Stats
		schema  *types.HeaderSchema
	)

	reader := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			stats.Lines++
			kind, fields := Classify(line, schema)
			switch kind {
			case Header:
				resolved, ok := ResolveHeader(fields)
				if !ok {
					stats.Ignored++
					break
				}
				stats.Headers++
				schema = &resolved
			case Data:
				rec, ok := ExtractRow(fields, schema)
				if !ok {
					stats.Dropped++
					break
				}
				stats.Records++
				records = append(records, rec)
			default:
				stats.Ignored++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, stats, err
		}
	}

	if records == nil {
		records = []types.ScoreRecord{}
	}
	return records, stats, nil
}

// ParseFile opens path, parses it and closes it before returning.
// Open and read failures are wrapped in *FileReadError.
func ParseFile(path string) ([]types.ScoreRecord, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, &FileReadError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	records, stats, err := ParseWithStats(f)
	if err != nil {
		return nil, stats, &FileReadError{Path: path, Cause: err}
	}
	return records, stats, nil
}
