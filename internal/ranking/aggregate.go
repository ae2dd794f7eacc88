// Package ranking merges scorefile records per experiment folder and selects the best N.
package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/scorerank/internal/scorefile"
	"github.com/jonathan/scorerank/internal/types"
)

// DefaultTopN is the number of records kept per folder.
const DefaultTopN = 5

// ErrNoRecords is returned when a folder holds no usable score records.
var ErrNoRecords = errors.New("no usable score records")

// ParseFunc parses one scorefile. scorefile.ParseFile is the production implementation.
type ParseFunc func(path string) ([]types.ScoreRecord, scorefile.Stats, error)

// AggregatorOptions configures an Aggregator. Zero values select the defaults.
type AggregatorOptions struct {
	Source  FolderSource
	Parse   ParseFunc
	Matcher FileMatcher
	TopN    int
	Logger  *zap.Logger
}

// Aggregator builds a FolderReport from every candidate scorefile in a folder.
type Aggregator struct {
	source  FolderSource
	parse   ParseFunc
	matcher FileMatcher
	topN    int
	logger  *zap.Logger
}

// NewAggregator creates an Aggregator, filling unset options with defaults.
func NewAggregator(opts AggregatorOptions) *Aggregator {
	a := &Aggregator{
		source:  opts.Source,
		parse:   opts.Parse,
		matcher: opts.Matcher,
		topN:    opts.TopN,
		logger:  opts.Logger,
	}
	if a.source == nil {
		a.source = OSSource{}
	}
	if a.parse == nil {
		a.parse = scorefile.ParseFile
	}
	if a.matcher == (FileMatcher{}) {
		a.matcher = DefaultMatcher
	}
	if a.topN <= 0 {
		a.topN = DefaultTopN
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// TopN returns the configured selection size.
func (a *Aggregator) TopN() int {
	return a.topN
}

// Aggregate parses every candidate scorefile in folder, in ascending file name order,
// and returns the topN lowest-scoring records.
//
// A file that cannot be read is logged and contributes nothing. ErrNoRecords is
// returned when no file contributed a record.
func (a *Aggregator) Aggregate(folder string) (*types.FolderReport, error) {
	folderName := filepath.Base(folder)

	names, err := a.source.Files(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorefiles in %s: %w", folderName, err)
	}

	candidates := make([]string, 0, len(names))
	for _, name := range names {
		if a.matcher.Match(name) {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)

	var all []types.ScoreRecord
	for _, name := range candidates {
		records, stats, err := a.parse(filepath.Join(folder, name))
		if err != nil {
			a.logger.Warn("failed to read scorefile",
				zap.String("folder", folderName),
				zap.String("file", name),
				zap.Error(err))
			continue
		}
		a.logger.Debug("parsed scorefile",
			zap.String("folder", folderName),
			zap.String("file", name),
			zap.Int("lines", stats.Lines),
			zap.Int("headers", stats.Headers),
			zap.Int("records", stats.Records),
			zap.Int("dropped", stats.Dropped))
		all = append(all, records...)
	}

	if len(all) == 0 {
		return nil, ErrNoRecords
	}

	return &types.FolderReport{
		Folder: folderName,
		Ranked: TopN(all, a.topN),
	}, nil
}

// TopN returns the n lowest-scoring records, ascending. Ties keep their input order.
// records is not modified.
func TopN(records []types.ScoreRecord, n int) []types.ScoreRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(x, y types.ScoreRecord) int {
		return cmp.Compare(x.Score, y.Score)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
