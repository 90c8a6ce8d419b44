package coaching_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/coaching"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

func obj(fields map[string]payload.Value) payload.Value { return payload.Object(fields) }

func delta(section string, patch payload.Value) coaching.Delta {
	return coaching.Delta{
		ID:      uuid.New(),
		Section: section,
		Patch:   patch,
		Active:  true,
	}
}

func TestNewMemoryFiltersInactive(t *testing.T) {
	inactive := delta("fees", payload.Object(nil))
	inactive.Active = false

	memory := coaching.NewMemory([]coaching.Delta{
		delta("governance", payload.Object(nil)),
		inactive,
	}, nil)

	if memory.Len() != 1 {
		t.Errorf("Len() = %d, want 1", memory.Len())
	}
}

func TestApplyFillsEmptySections(t *testing.T) {
	patch := obj(map[string]payload.Value{"total_assets": payload.Number(301339818)})
	memory := coaching.NewMemory([]coaching.Delta{delta("balance_sheet", patch)}, nil)

	result := obj(map[string]payload.Value{
		"governance":    obj(map[string]payload.Value{"chairman": payload.String("A. Svensson")}),
		"balance_sheet": payload.Null(),
	})

	patched, applied := memory.Apply(result)
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}

	section, _ := patched.Field("balance_sheet")
	assets, ok := section.Field("total_assets")
	if !ok || assets.Number() != 301339818 {
		t.Errorf("Field(total_assets) = %v, %v, want 301339818, true", assets.Number(), ok)
	}
}

func TestApplySkipsPopulatedSections(t *testing.T) {
	patch := obj(map[string]payload.Value{"chairman": payload.String("WRONG")})
	memory := coaching.NewMemory([]coaching.Delta{delta("governance", patch)}, nil)

	result := obj(map[string]payload.Value{
		"governance": obj(map[string]payload.Value{"chairman": payload.String("A. Svensson")}),
	})

	patched, applied := memory.Apply(result)
	if applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}

	section, _ := patched.Field("governance")
	chairman, _ := section.Field("chairman")
	if chairman.String() != "A. Svensson" {
		t.Errorf("chairman = %q, want %q", chairman.String(), "A. Svensson")
	}
}

func TestApplyMissingSection(t *testing.T) {
	patch := obj(map[string]payload.Value{"fee_per_sqm": payload.Number(640)})
	memory := coaching.NewMemory([]coaching.Delta{delta("fees", patch)}, nil)

	patched, applied := memory.Apply(payload.Object(nil))
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if _, ok := patched.Field("fees"); !ok {
		t.Error("Field(fees) missing after apply")
	}
}

func TestApplyIdempotent(t *testing.T) {
	patch := obj(map[string]payload.Value{"total_debt": payload.Number(45000000)})
	memory := coaching.NewMemory([]coaching.Delta{delta("loans", patch)}, nil)

	result := obj(map[string]payload.Value{"loans": payload.Null()})

	once, _ := memory.Apply(result)
	twice, _ := memory.Apply(once)

	onceJSON, _ := once.MarshalJSON()
	twiceJSON, _ := twice.MarshalJSON()
	if string(onceJSON) != string(twiceJSON) {
		t.Errorf("second apply changed the result: %s vs %s", onceJSON, twiceJSON)
	}
}

func TestApplyNilMemory(t *testing.T) {
	var memory *coaching.Memory

	result := obj(map[string]payload.Value{"a": payload.Number(1)})
	patched, applied := memory.Apply(result)

	if applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}
	gotJSON, _ := patched.MarshalJSON()
	wantJSON, _ := result.MarshalJSON()
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("nil memory changed the result: %s", gotJSON)
	}
	if memory.Len() != 0 {
		t.Errorf("Len() = %d, want 0", memory.Len())
	}
}
