package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/batch"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/documents"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/scoring"
)

func scoreCommand() *cobra.Command {
	var goldenDir string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score latest extractions against golden ground truth",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPipeline()
			if err != nil {
				return err
			}
			defer p.close()

			report, err := scoreBatch(cmd, p, goldenDir)
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&goldenDir, "goldens", "", "directory of golden JSON files (overrides config)")

	return cmd
}

func scoreBatch(cmd *cobra.Command, p *pipeline, goldenDir string) (*scoring.BatchReport, error) {
	if goldenDir == "" {
		goldenDir = p.cfg.Pipeline.GoldenDir
	}

	var goldens batch.GoldenSet
	if goldenDir != "" {
		loaded, err := batch.LoadGoldenDir(goldenDir)
		if err != nil {
			return nil, err
		}
		goldens = loaded
	}

	return p.domain.Batch.Score(cmd.Context(), documents.Filters{}, goldens)
}

func printReport(report *scoring.BatchReport) {
	fmt.Printf("documents: %d  covered: %d  coverage: %.2f%%\n",
		report.DocumentsTotal, report.CoveredDocuments, report.CoveragePercent)
	fmt.Printf("fields: %d  correct: %d  accuracy: %.2f%%\n",
		report.FieldsTotal, report.FieldsCorrect, report.AccuracyPercent)
}
