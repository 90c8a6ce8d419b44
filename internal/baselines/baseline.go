// Package baselines stores the quality baseline the acceptance gate judges
// regressions against. Promotions append rather than replace, so the
// baseline history doubles as a record of pipeline improvement.
package baselines

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/gate"
)

// Baseline is one promoted metrics snapshot.
type Baseline struct {
	ID              uuid.UUID `json:"id"`
	CoveragePercent float64   `json:"coverage_percent"`
	AccuracyPercent float64   `json:"accuracy_percent"`
	PromotedAt      time.Time `json:"promoted_at"`
}

// Metrics converts the row to the gate representation.
func (b Baseline) Metrics() gate.Metrics {
	return gate.Metrics{
		CoveragePercent: b.CoveragePercent,
		AccuracyPercent: b.AccuracyPercent,
		RecordedAt:      b.PromotedAt,
	}
}

// System defines the public contract for baseline persistence.
type System interface {
	Handler() *Handler

	// Current returns the most recently promoted baseline, or nil when no
	// baseline has ever been promoted.
	Current(ctx context.Context) (*gate.Metrics, error)

	Promote(ctx context.Context, m gate.Metrics) (*Baseline, error)
	History(ctx context.Context) ([]Baseline, error)
}
