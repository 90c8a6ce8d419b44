package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/documents"
)

func runCommand() *cobra.Command {
	var (
		stem   string
		status string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute extraction runs over matching documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPipeline()
			if err != nil {
				return err
			}
			defer p.close()

			filters := documents.Filters{}
			if stem != "" {
				filters.Stem = &stem
			}
			if status != "" {
				filters.Status = &status
			}

			summary, err := p.domain.Batch.RunBatch(cmd.Context(), filters)
			if err != nil {
				return err
			}

			fmt.Printf("documents: %d  completed: %d  failed: %d\n",
				summary.Total, summary.Completed, summary.Failed)
			for _, e := range summary.Runs {
				fmt.Printf("  %-24s %-12s receipts=%d coached=%d\n",
					e.Stem, e.Status, e.ReceiptCount, e.CoachedFields)
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d document(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stem, "stem", "", "only documents whose stem contains this value")
	cmd.Flags().StringVar(&status, "status", documents.StatusSectioned, "only documents with this status")

	return cmd
}
