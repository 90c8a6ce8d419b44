package config_test

import (
	"slices"
	"testing"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/config"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/gate"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

func TestPipelineDefaults(t *testing.T) {
	var cfg config.PipelineConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ReceiptLog != "receipts.jsonl" {
		t.Errorf("ReceiptLog = %q, want %q", cfg.ReceiptLog, "receipts.jsonl")
	}
	if cfg.MergePolicy != config.MergeFirstNonEmpty {
		t.Errorf("MergePolicy = %q, want %q", cfg.MergePolicy, config.MergeFirstNonEmpty)
	}
	if cfg.Gate.Coverage != 95 || cfg.Gate.Accuracy != 95 || cfg.Gate.MaxRegression != 0.5 {
		t.Errorf("Gate = %+v, want 95/95/0.5", cfg.Gate)
	}
}

func TestPipelineEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvPipelineReceiptLog, "/var/log/receipts.jsonl")
	t.Setenv(config.EnvPipelineMergePolicy, config.MergeUnionMissing)
	t.Setenv(config.EnvPipelineRequiredSections, "governance, balance_sheet")
	t.Setenv(config.EnvGateAccuracy, "90")

	var cfg config.PipelineConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ReceiptLog != "/var/log/receipts.jsonl" {
		t.Errorf("ReceiptLog = %q", cfg.ReceiptLog)
	}
	if cfg.MergePolicy != config.MergeUnionMissing {
		t.Errorf("MergePolicy = %q, want %q", cfg.MergePolicy, config.MergeUnionMissing)
	}
	if !slices.Equal(cfg.RequiredSections, []string{"governance", "balance_sheet"}) {
		t.Errorf("RequiredSections = %v", cfg.RequiredSections)
	}
	if cfg.Gate.Accuracy != 90 {
		t.Errorf("Gate.Accuracy = %v, want 90", cfg.Gate.Accuracy)
	}
}

func TestPipelineValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.PipelineConfig)
	}{
		{"unknown merge policy", func(cfg *config.PipelineConfig) { cfg.MergePolicy = "best_of_both" }},
		{"coverage out of range", func(cfg *config.PipelineConfig) { cfg.Gate.Coverage = 120 }},
		{"accuracy out of range", func(cfg *config.PipelineConfig) { cfg.Gate.Accuracy = -5 }},
		{"negative regression", func(cfg *config.PipelineConfig) { cfg.Gate.MaxRegression = -1 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var cfg config.PipelineConfig
			if err := cfg.Finalize(); err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			test.mutate(&cfg)
			if err := cfg.Finalize(); err == nil {
				t.Error("Finalize() error = nil, want validation error")
			}
		})
	}
}

func TestPipelineMerge(t *testing.T) {
	base := config.PipelineConfig{
		ReceiptLog:  "receipts.jsonl",
		MergePolicy: config.MergeFirstNonEmpty,
		Gate:        gate.Thresholds{Coverage: 95, Accuracy: 95, MaxRegression: 0.5},
	}

	base.Merge(&config.PipelineConfig{
		GoldenDir: "/data/goldens",
		Gate:      gate.Thresholds{Accuracy: 97},
	})

	if base.GoldenDir != "/data/goldens" {
		t.Errorf("GoldenDir = %q", base.GoldenDir)
	}
	if base.Gate.Accuracy != 97 {
		t.Errorf("Gate.Accuracy = %v, want 97", base.Gate.Accuracy)
	}
	if base.Gate.Coverage != 95 || base.ReceiptLog != "receipts.jsonl" {
		t.Error("Merge() overwrote fields the overlay left zero")
	}
}

func TestMergeFunc(t *testing.T) {
	values := []payload.Value{
		payload.Object(map[string]payload.Value{"a": payload.Number(1)}),
		payload.Object(map[string]payload.Value{"a": payload.Number(9), "b": payload.Number(2)}),
	}

	first := config.PipelineConfig{MergePolicy: config.MergeFirstNonEmpty}
	merged := first.MergeFunc()(values)
	if _, ok := merged.Field("b"); ok {
		t.Error("first_non_empty policy blended values")
	}

	union := config.PipelineConfig{MergePolicy: config.MergeUnionMissing}
	merged = union.MergeFunc()(values)
	if b, ok := merged.Field("b"); !ok || b.Number() != 2 {
		t.Error("union_missing policy did not fill missing field")
	}
	a, _ := merged.Field("a")
	if a.Number() != 1 {
		t.Errorf("union_missing overwrote populated field: a = %v", a.Number())
	}
}
