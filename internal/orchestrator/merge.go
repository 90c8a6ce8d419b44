package orchestrator

import (
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// MergePolicy reduces per-agent section values, given in extractor priority
// order, to the single value stored under the section key. Failed agents
// contribute null.
type MergePolicy func(values []payload.Value) payload.Value

// FirstNonEmpty is the default twin policy: the highest-priority agent that
// produced a non-empty value wins outright. Values are never blended.
func FirstNonEmpty(values []payload.Value) payload.Value {
	for _, v := range values {
		if !v.IsEmpty() {
			return v
		}
	}
	return payload.Null()
}

// UnionMissing fills gaps across the pair: the highest-priority non-empty
// value is the base and lower-priority values only contribute fields the
// base left empty.
func UnionMissing(values []payload.Value) payload.Value {
	merged := payload.Null()
	for _, v := range values {
		merged = payload.MergeMissing(merged, v)
	}
	return merged
}
