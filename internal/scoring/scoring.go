// Package scoring quantifies how closely a predicted extraction matches a
// hand-labeled golden reference, tolerating the formatting drift different
// models introduce without masking real discrepancies.
package scoring

import (
	"math"
	"strings"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// Numeric tolerance: values count as equal within 1.0 absolute difference
// or 0.5% relative difference, whichever passes.
const (
	absTolerance = 1.0
	relTolerance = 0.005
)

// Counts accumulates field totals across comparisons. Callers aggregate
// counts over a batch before computing percentages, so documents with few
// fields do not skew the result.
type Counts struct {
	Total   int
	Correct int
}

// Add accumulates other into c.
func (c *Counts) Add(other Counts) {
	c.Total += other.Total
	c.Correct += other.Correct
}

// AccuracyPercent returns Correct/Total as a percentage, or zero when no
// fields were compared.
func (c Counts) AccuracyPercent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Total) * 100
}

// Compare walks predicted and golden structurally and counts leaf fields.
// Objects compare over the union of keys, with a key missing on one side
// counting as one mismatched field. Arrays compare by position up to the
// longer length, out-of-range elements comparing as null. Scalars use
// type-aware equality: tolerant numerics, whitespace/case-insensitive
// strings, exact everything else.
func Compare(predicted, golden payload.Value) Counts {
	pk, gk := predicted.Kind(), golden.Kind()

	switch {
	case pk == payload.KindObject && gk == payload.KindObject:
		return compareObjects(predicted, golden)
	case pk == payload.KindArray && gk == payload.KindArray:
		return compareArrays(predicted, golden)
	default:
		return compareScalar(predicted, golden)
	}
}

func compareObjects(predicted, golden payload.Value) Counts {
	var counts Counts

	keys := make(map[string]struct{})
	for _, k := range predicted.Keys() {
		keys[k] = struct{}{}
	}
	for _, k := range golden.Keys() {
		keys[k] = struct{}{}
	}

	for k := range keys {
		pv, _ := predicted.Field(k)
		gv, _ := golden.Field(k)
		counts.Add(Compare(pv, gv))
	}

	return counts
}

func compareArrays(predicted, golden payload.Value) Counts {
	var counts Counts

	length := max(predicted.Len(), golden.Len())
	for i := range length {
		counts.Add(Compare(item(predicted, i), item(golden, i)))
	}

	return counts
}

func item(v payload.Value, i int) payload.Value {
	if i < v.Len() {
		return v.Items()[i]
	}
	return payload.Null()
}

func compareScalar(predicted, golden payload.Value) Counts {
	counts := Counts{Total: 1}
	if scalarEqual(predicted, golden) {
		counts.Correct = 1
	}
	return counts
}

func scalarEqual(a, b payload.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case payload.KindNull:
		return true
	case payload.KindBool:
		return a.Bool() == b.Bool()
	case payload.KindNumber:
		return numericEqual(a.Number(), b.Number())
	case payload.KindString:
		return normalizeText(a.String()) == normalizeText(b.String())
	}

	// Containers reaching here have mismatched kinds upstream.
	return false
}

func numericEqual(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= absTolerance {
		return true
	}

	scale := max(math.Abs(a), math.Abs(b))
	return diff <= scale*relTolerance
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
