// Package gate decides whether a batch of extractions meets release-quality
// bars and whether its metrics become the new baseline. A failed gate is a
// normal, reportable outcome, not an error.
package gate

import (
	"time"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/scoring"
)

// Metrics is the (coverage, accuracy) pair tracked per batch configuration.
type Metrics struct {
	CoveragePercent float64   `json:"coverage_percent"`
	AccuracyPercent float64   `json:"accuracy_percent"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// Thresholds are the fixed quality bars a batch must clear. MaxRegression
// bounds how far accuracy may fall below the stored baseline.
type Thresholds struct {
	Coverage      float64 `toml:"coverage"`
	Accuracy      float64 `toml:"accuracy"`
	MaxRegression float64 `toml:"max_regression"`
}

// Clauses reports each gate clause individually for diagnostics.
type Clauses struct {
	CoverageOK   bool `json:"coverage_ok"`
	AccuracyOK   bool `json:"accuracy_ok"`
	RegressionOK bool `json:"regression_ok"`
}

// Decision is the gate verdict plus everything needed to report it: the
// computed metrics, the clause breakdown, the baseline the batch was judged
// against, and whether the metrics should be promoted as the new baseline.
type Decision struct {
	Pass           bool     `json:"pass"`
	Clauses        Clauses  `json:"clauses"`
	Metrics        Metrics  `json:"metrics"`
	BaselineBefore *Metrics `json:"baseline_before,omitempty"`
	Promote        bool     `json:"promote"`
}

// Evaluate applies the thresholds and regression clause to a batch report.
//
// The gate passes only when coverage and accuracy clear their thresholds
// and, when a baseline exists, accuracy has not regressed beyond
// MaxRegression. Promotion is decided independently of pass/fail: metrics
// that strictly improve on the baseline's accuracy or coverage (or arrive
// when no baseline exists) are promoted, so monotonic improvement is
// recorded even while another clause blocks release.
func Evaluate(report scoring.BatchReport, th Thresholds, baseline *Metrics) Decision {
	metrics := Metrics{
		CoveragePercent: report.CoveragePercent,
		AccuracyPercent: report.AccuracyPercent,
		RecordedAt:      time.Now().UTC(),
	}

	clauses := Clauses{
		CoverageOK:   metrics.CoveragePercent >= th.Coverage,
		AccuracyOK:   metrics.AccuracyPercent >= th.Accuracy,
		RegressionOK: true,
	}
	if baseline != nil {
		clauses.RegressionOK = baseline.AccuracyPercent-metrics.AccuracyPercent <= th.MaxRegression
	}

	return Decision{
		Pass:           clauses.CoverageOK && clauses.AccuracyOK && clauses.RegressionOK,
		Clauses:        clauses,
		Metrics:        metrics,
		BaselineBefore: baseline,
		Promote:        shouldPromote(metrics, baseline),
	}
}

// FailedClauses names the clauses that blocked the gate, for reporting.
func (d Decision) FailedClauses() []string {
	var failed []string
	if !d.Clauses.CoverageOK {
		failed = append(failed, "coverage")
	}
	if !d.Clauses.AccuracyOK {
		failed = append(failed, "accuracy")
	}
	if !d.Clauses.RegressionOK {
		failed = append(failed, "regression")
	}
	return failed
}

func shouldPromote(metrics Metrics, baseline *Metrics) bool {
	if baseline == nil {
		return true
	}
	return metrics.AccuracyPercent > baseline.AccuracyPercent ||
		metrics.CoveragePercent > baseline.CoveragePercent
}
