package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/scorerank/internal/observability"
	"github.com/jonathan/scorerank/internal/pipeline"
	"github.com/jonathan/scorerank/internal/ranking"
	"github.com/jonathan/scorerank/internal/rendering"
	"github.com/jonathan/scorerank/internal/schemas"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Write the top-scoring structures of every subfolder",
	Long: `Ranks the scorefiles of every non-hidden subfolder of the root directory.

For each folder, all score*.sc files are parsed, their records merged and sorted by
total_score (score for legacy files), lowest first, and the best entries are written
to top_5_scores.txt inside the folder. Folders without usable scores are skipped.`,
	Args: cobra.NoArgs,
	RunE: runRank,
}

var (
	rankRoot        string
	rankTopN        int
	rankSummaryJSON string
	rankVerbose     bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankRoot, "root", "r", "", "Directory whose subfolders are ranked (default: current directory)")
	rankCmd.Flags().IntVarP(&rankTopN, "top", "n", 0, "Number of entries kept per folder (default 5)")
	rankCmd.Flags().StringVar(&rankSummaryJSON, "summary-json", "", "Optional path for a machine-readable run summary")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print the best entry of every folder at the end")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	root := rankRoot
	if root == "" {
		root = cfg.Root
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		root = cwd
	}

	topN := cfg.TopN
	if cmd.Flags().Changed("top") {
		topN = rankTopN
	}
	if topN <= 0 {
		return fmt.Errorf("--top must be positive, got %d", topN)
	}

	summaryPath := rankSummaryJSON
	if summaryPath == "" {
		summaryPath = cfg.SummaryJSON
	}

	out := cmd.OutOrStdout()
	summary, err := pipeline.Run(cmd.Context(), pipeline.RunOptions{
		Root:    root,
		TopN:    topN,
		Matcher: ranking.FileMatcher{Prefix: cfg.FilePrefix, Suffix: cfg.FileSuffix},
		Out:     out,
		Logger:  logger,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrNoSubfolders) {
			return fmt.Errorf("no subfolders found in %s", root)
		}
		return fmt.Errorf("ranking failed: %w", err)
	}

	printer := observability.NewPrinter(out)
	printer.PrintRunDone(summary)
	if rankVerbose {
		printer.PrintRunOverview(summary)
	}

	if summaryPath != "" {
		if err := rendering.WriteSummaryJSON(summaryPath, summary); err != nil {
			return fmt.Errorf("failed to write run summary: %w", err)
		}

		// Schema validation is a safety check, not a requirement
		if err := schemas.ValidateFile(schemas.RunSummary, summaryPath); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				logger.Warn("run summary does not match schema", zap.String("path", summaryPath), zap.Error(err))
			} else {
				logger.Warn("could not validate run summary", zap.String("path", summaryPath), zap.Error(err))
			}
		}
	}

	return nil
}
