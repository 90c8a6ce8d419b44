package scoring_test

import (
	"math"
	"testing"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/scoring"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

func obj(fields map[string]payload.Value) payload.Value { return payload.Object(fields) }

func ptr(v payload.Value) *payload.Value { return &v }

func TestCompareScalars(t *testing.T) {
	tests := []struct {
		name      string
		predicted payload.Value
		golden    payload.Value
		correct   int
	}{
		{"null matches null", payload.Null(), payload.Null(), 1},
		{"null misses string", payload.Null(), payload.String("x"), 0},
		{"exact number", payload.Number(100), payload.Number(100), 1},
		{"within absolute tolerance", payload.Number(100.0), payload.Number(100.4), 1},
		{"within relative tolerance", payload.Number(1000), payload.Number(1004), 1},
		{"beyond both tolerances", payload.Number(100), payload.Number(110), 0},
		{"negative numbers near", payload.Number(-2500000), payload.Number(-2500900), 1},
		{"string case and whitespace", payload.String("  A.  Svensson "), payload.String("a. svensson"), 1},
		{"string mismatch", payload.String("KPMG"), payload.String("PwC"), 0},
		{"bool match", payload.Bool(true), payload.Bool(true), 1},
		{"kind mismatch", payload.Number(42), payload.String("42"), 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			counts := scoring.Compare(test.predicted, test.golden)
			if counts.Total != 1 {
				t.Fatalf("Total = %d, want 1", counts.Total)
			}
			if counts.Correct != test.correct {
				t.Errorf("Correct = %d, want %d", counts.Correct, test.correct)
			}
		})
	}
}

func TestCompareObjectsUnionKeys(t *testing.T) {
	predicted := obj(map[string]payload.Value{
		"total_assets": payload.Number(301339818),
		"extra":        payload.String("noise"),
	})
	golden := obj(map[string]payload.Value{
		"total_assets":      payload.Number(301339818),
		"total_liabilities": payload.Number(120000000),
	})

	counts := scoring.Compare(predicted, golden)
	if counts.Total != 3 {
		t.Errorf("Total = %d, want 3", counts.Total)
	}
	if counts.Correct != 1 {
		t.Errorf("Correct = %d, want 1", counts.Correct)
	}
}

func TestCompareArraysByPosition(t *testing.T) {
	predicted := payload.Array(payload.Number(1), payload.Number(2))
	golden := payload.Array(payload.Number(1), payload.Number(2), payload.Number(3))

	counts := scoring.Compare(predicted, golden)
	if counts.Total != 3 {
		t.Errorf("Total = %d, want 3", counts.Total)
	}
	if counts.Correct != 2 {
		t.Errorf("Correct = %d, want 2", counts.Correct)
	}
}

func TestCompareContainerKindMismatch(t *testing.T) {
	counts := scoring.Compare(obj(map[string]payload.Value{"a": payload.Number(1)}), payload.Array(payload.Number(1)))
	if counts.Total != 1 || counts.Correct != 0 {
		t.Errorf("Counts = %+v, want one wrong field", counts)
	}
}

func TestCompareNested(t *testing.T) {
	predicted := obj(map[string]payload.Value{
		"balance_sheet": obj(map[string]payload.Value{
			"total_assets": payload.Number(301339818),
			"total_equity": payload.Number(181000000),
		}),
	})
	golden := obj(map[string]payload.Value{
		"balance_sheet": obj(map[string]payload.Value{
			"total_assets": payload.Number(301339818),
			"total_equity": payload.Number(185000000),
		}),
	})

	counts := scoring.Compare(predicted, golden)
	if counts.Total != 2 || counts.Correct != 1 {
		t.Errorf("Counts = %+v, want {Total:2 Correct:1}", counts)
	}
}

func TestCountsAccuracyPercent(t *testing.T) {
	tests := []struct {
		name   string
		counts scoring.Counts
		want   float64
	}{
		{"empty", scoring.Counts{}, 0},
		{"all correct", scoring.Counts{Total: 10, Correct: 10}, 100},
		{"partial", scoring.Counts{Total: 8, Correct: 6}, 75},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.counts.AccuracyPercent(); got != test.want {
				t.Errorf("AccuracyPercent() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestScoreBatch(t *testing.T) {
	covered := obj(map[string]payload.Value{
		"governance":    obj(map[string]payload.Value{"chairman": payload.String("A. Svensson")}),
		"balance_sheet": obj(map[string]payload.Value{"total_assets": payload.Number(301339818)}),
	})
	golden := obj(map[string]payload.Value{
		"governance":    obj(map[string]payload.Value{"chairman": payload.String("a. svensson")}),
		"balance_sheet": obj(map[string]payload.Value{"total_assets": payload.Number(999)}),
	})
	missingSection := obj(map[string]payload.Value{
		"governance":    obj(map[string]payload.Value{"chairman": payload.String("B. Larsson")}),
		"balance_sheet": payload.Null(),
	})

	batch := []scoring.BatchDocument{
		{ID: "1", Stem: "brf_268882", Predicted: ptr(covered), Golden: ptr(golden)},
		{ID: "2", Stem: "brf_57125", Predicted: ptr(missingSection)},
		{ID: "3", Stem: "brf_81563"},
	}

	report := scoring.ScoreBatch(batch, []string{"governance", "balance_sheet"})

	if report.DocumentsTotal != 3 {
		t.Errorf("DocumentsTotal = %d, want 3", report.DocumentsTotal)
	}
	if report.CoveredDocuments != 1 {
		t.Errorf("CoveredDocuments = %d, want 1", report.CoveredDocuments)
	}
	if math.Abs(report.CoveragePercent-100.0/3) > 1e-9 {
		t.Errorf("CoveragePercent = %v, want %v", report.CoveragePercent, 100.0/3)
	}
	if report.FieldsTotal != 2 {
		t.Errorf("FieldsTotal = %d, want 2", report.FieldsTotal)
	}
	if report.FieldsCorrect != 1 {
		t.Errorf("FieldsCorrect = %d, want 1", report.FieldsCorrect)
	}
	if report.AccuracyPercent != 50 {
		t.Errorf("AccuracyPercent = %v, want 50", report.AccuracyPercent)
	}

	if len(report.Documents) != 3 {
		t.Fatalf("len(Documents) = %d, want 3", len(report.Documents))
	}
	if !report.Documents[0].Covered {
		t.Error("document 1 should be covered")
	}
	if report.Documents[1].Covered {
		t.Error("document 2 should not be covered with null required section")
	}
	if report.Documents[2].Covered {
		t.Error("document 3 should not be covered without a prediction")
	}
	if report.Documents[1].TotalFields != 0 {
		t.Errorf("document without golden scored %d fields, want 0", report.Documents[1].TotalFields)
	}
}

func TestScoreBatchNoRequiredSections(t *testing.T) {
	predicted := obj(map[string]payload.Value{"fees": payload.Null()})
	report := scoring.ScoreBatch([]scoring.BatchDocument{
		{ID: "1", Stem: "a", Predicted: ptr(predicted)},
		{ID: "2", Stem: "b"},
	}, nil)

	if report.CoveredDocuments != 1 {
		t.Errorf("CoveredDocuments = %d, want 1", report.CoveredDocuments)
	}
	if report.CoveragePercent != 50 {
		t.Errorf("CoveragePercent = %v, want 50", report.CoveragePercent)
	}
}

func TestScoreBatchEmpty(t *testing.T) {
	report := scoring.ScoreBatch(nil, nil)
	if report.CoveragePercent != 0 || report.AccuracyPercent != 0 {
		t.Errorf("empty batch report = %+v, want zeroed percentages", report)
	}
}
