// Package pipeline ranks every experiment folder under a root directory.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/scorerank/internal/observability"
	"github.com/jonathan/scorerank/internal/ranking"
	"github.com/jonathan/scorerank/internal/rendering"
	"github.com/jonathan/scorerank/internal/types"
)

// ErrNoSubfolders is returned when the root directory has no candidate folders.
var ErrNoSubfolders = errors.New("no subfolders found")

// RunOptions holds configuration for a ranking run.
//
// Root is required. Source and Parse default to the filesystem and scorefile.ParseFile.
// Out receives per-folder progress and may be nil. RunID tags log lines and the
// summary; a random UUID is used when it is empty.
type RunOptions struct {
	Root    string
	TopN    int
	Matcher ranking.FileMatcher
	Source  ranking.FolderSource
	Parse   ranking.ParseFunc
	Out     io.Writer
	Logger  *zap.Logger
	RunID   string
}

// Run ranks each subfolder of opts.Root in name order, writing one report per folder
// that has usable records. Folders are processed one at a time; ctx is checked
// between folders.
func Run(ctx context.Context, opts RunOptions) (*types.RunSummary, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if opts.Source == nil {
		opts.Source = ranking.OSSource{}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	logger := opts.Logger.With(zap.String("run_id", opts.RunID))
	printer := observability.NewPrinter(opts.Out)

	folders, err := opts.Source.Subfolders(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to discover folders: %w", err)
	}
	if len(folders) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSubfolders, opts.Root)
	}

	agg := ranking.NewAggregator(ranking.AggregatorOptions{
		Source:  opts.Source,
		Parse:   opts.Parse,
		Matcher: opts.Matcher,
		TopN:    opts.TopN,
		Logger:  logger,
	})

	summary := &types.RunSummary{
		RunID:   opts.RunID,
		Root:    opts.Root,
		TopN:    agg.TopN(),
		Reports: []types.ReportEntry{},
	}
	logger.Info("ranking started", zap.String("root", opts.Root), zap.Int("folders", len(folders)))

	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		folderPath := filepath.Join(opts.Root, folder)
		report, err := agg.Aggregate(folderPath)
		if err != nil {
			summary.Skipped++
			if errors.Is(err, ranking.ErrNoRecords) {
				logger.Info("no usable scores", zap.String("folder", folder))
			} else {
				logger.Warn("folder skipped", zap.String("folder", folder), zap.Error(err))
			}
			continue
		}

		outPath, err := rendering.WriteReport(folderPath, report, agg.TopN())
		if err != nil {
			summary.Skipped++
			logger.Error("failed to write report", zap.String("folder", folder), zap.Error(err))
			continue
		}

		summary.Processed++
		summary.Reports = append(summary.Reports, types.ReportEntry{
			Folder:     folder,
			OutputPath: outPath,
			Ranked:     report.Ranked,
		})
		printer.PrintFolderRanking(report, agg.TopN(), outPath)
		logger.Debug("report written", zap.String("folder", folder), zap.String("path", outPath))
	}

	logger.Info("ranking finished",
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}
