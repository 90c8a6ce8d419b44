package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func gateCommand() *cobra.Command {
	var goldenDir string

	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Evaluate the acceptance gate and promote the baseline",
		Long: "Scores the latest extractions against goldens, evaluates the " +
			"acceptance gate, and promotes the metrics as the new baseline when " +
			"they improve on it. Exits nonzero when the gate fails.",
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

			decision, err := p.domain.Batch.Gate(cmd.Context(), *report)
			if err != nil {
				return err
			}

			printReport(report)
			if decision.BaselineBefore != nil {
				fmt.Printf("baseline: coverage %.2f%%  accuracy %.2f%%\n",
					decision.BaselineBefore.CoveragePercent,
					decision.BaselineBefore.AccuracyPercent)
			}
			if decision.Promote {
				fmt.Println("baseline promoted")
			}

			if !decision.Pass {
				return fmt.Errorf("gate failed: %s", strings.Join(decision.FailedClauses(), ", "))
			}

			fmt.Println("gate passed")
			return nil
		},
	}

	cmd.Flags().StringVar(&goldenDir, "goldens", "", "directory of golden JSON files (overrides config)")

	return cmd
}
