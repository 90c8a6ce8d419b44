// Package coaching applies learned correction rules to extraction results.
// A delta pairs a target section with a correction payload derived from a
// reviewer disagreement; deltas only ever fill gaps, never overwrite data an
// agent extracted.
package coaching

import (
	"time"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// Delta is one learned correction rule.
type Delta struct {
	ID        uuid.UUID     `json:"id"`
	Section   string        `json:"section"`
	Patch     payload.Value `json:"patch"`
	SourceDoc string        `json:"source_doc,omitempty"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
}

// Policy decides how a delta's patch is spliced into a section value.
// The shipped policy is merge-missing-only; it is a parameter rather than
// hard-coded because partial-agreement handling is expected to evolve.
type Policy func(dst, patch payload.Value) payload.Value

// MergeMissingOnly fills absent or empty fields and never overwrites
// populated values. Idempotent.
func MergeMissingOnly(dst, patch payload.Value) payload.Value {
	return payload.MergeMissing(dst, patch)
}

// Memory is a read-only snapshot of active deltas, loaded once per batch
// and shared across concurrent document runs.
type Memory struct {
	deltas []Delta
	policy Policy
}

// NewMemory builds a snapshot over the given deltas with the given policy.
// A nil policy selects MergeMissingOnly.
func NewMemory(deltas []Delta, policy Policy) *Memory {
	if policy == nil {
		policy = MergeMissingOnly
	}
	active := make([]Delta, 0, len(deltas))
	for _, d := range deltas {
		if d.Active {
			active = append(active, d)
		}
	}
	return &Memory{deltas: active, policy: policy}
}

// Len returns the number of active deltas in the snapshot.
func (m *Memory) Len() int {
	if m == nil {
		return 0
	}
	return len(m.deltas)
}

// Apply patches result with every delta whose target section is absent or
// empty, returning the patched result and the number of deltas applied.
// Populated sections are never touched, and applying the same memory twice
// yields the same result as applying it once.
func (m *Memory) Apply(result payload.Value) (payload.Value, int) {
	if m == nil || len(m.deltas) == 0 {
		return result, 0
	}

	applied := 0
	for _, d := range m.deltas {
		current, ok := result.Field(d.Section)
		if ok && !current.IsEmpty() {
			continue
		}
		result = result.With(d.Section, m.policy(current, d.Patch))
		applied++
	}

	return result, applied
}
