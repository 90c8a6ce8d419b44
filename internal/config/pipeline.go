package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/gate"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/orchestrator"
)

const (
	EnvPipelineReceiptLog       = "ZELDA_PIPELINE_RECEIPT_LOG"
	EnvPipelineMergePolicy      = "ZELDA_PIPELINE_MERGE_POLICY"
	EnvPipelineGoldenDir        = "ZELDA_PIPELINE_GOLDEN_DIR"
	EnvPipelineRequiredSections = "ZELDA_PIPELINE_REQUIRED_SECTIONS"
	EnvGateCoverage             = "ZELDA_GATE_COVERAGE"
	EnvGateAccuracy             = "ZELDA_GATE_ACCURACY"
	EnvGateMaxRegression        = "ZELDA_GATE_MAX_REGRESSION"
)

// Merge policy names accepted by the pipeline config.
const (
	MergeFirstNonEmpty = "first_non_empty"
	MergeUnionMissing  = "union_missing"
)

// PipelineConfig holds orchestration and quality-gate settings.
type PipelineConfig struct {
	ReceiptLog       string          `toml:"receipt_log"`
	MergePolicy      string          `toml:"merge_policy"`
	GoldenDir        string          `toml:"golden_dir"`
	RequiredSections []string        `toml:"required_sections"`
	Gate             gate.Thresholds `toml:"gate"`
}

// MergeFunc resolves the configured policy name to its implementation.
func (c *PipelineConfig) MergeFunc() orchestrator.MergePolicy {
	if c.MergePolicy == MergeUnionMissing {
		return orchestrator.UnionMissing
	}
	return orchestrator.FirstNonEmpty
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.ReceiptLog != "" {
		c.ReceiptLog = overlay.ReceiptLog
	}
	if overlay.MergePolicy != "" {
		c.MergePolicy = overlay.MergePolicy
	}
	if overlay.GoldenDir != "" {
		c.GoldenDir = overlay.GoldenDir
	}
	if len(overlay.RequiredSections) > 0 {
		c.RequiredSections = overlay.RequiredSections
	}
	if overlay.Gate.Coverage != 0 {
		c.Gate.Coverage = overlay.Gate.Coverage
	}
	if overlay.Gate.Accuracy != 0 {
		c.Gate.Accuracy = overlay.Gate.Accuracy
	}
	if overlay.Gate.MaxRegression != 0 {
		c.Gate.MaxRegression = overlay.Gate.MaxRegression
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.ReceiptLog == "" {
		c.ReceiptLog = "receipts.jsonl"
	}
	if c.MergePolicy == "" {
		c.MergePolicy = MergeFirstNonEmpty
	}
	if c.Gate.Coverage == 0 {
		c.Gate.Coverage = 95
	}
	if c.Gate.Accuracy == 0 {
		c.Gate.Accuracy = 95
	}
	if c.Gate.MaxRegression == 0 {
		c.Gate.MaxRegression = 0.5
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineReceiptLog); v != "" {
		c.ReceiptLog = v
	}
	if v := os.Getenv(EnvPipelineMergePolicy); v != "" {
		c.MergePolicy = v
	}
	if v := os.Getenv(EnvPipelineGoldenDir); v != "" {
		c.GoldenDir = v
	}
	if v := os.Getenv(EnvPipelineRequiredSections); v != "" {
		c.RequiredSections = splitSections(v)
	}

	setFloat := func(envVar string, target *float64) {
		if v := os.Getenv(envVar); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*target = f
			}
		}
	}

	setFloat(EnvGateCoverage, &c.Gate.Coverage)
	setFloat(EnvGateAccuracy, &c.Gate.Accuracy)
	setFloat(EnvGateMaxRegression, &c.Gate.MaxRegression)
}

func (c *PipelineConfig) validate() error {
	if c.MergePolicy != MergeFirstNonEmpty && c.MergePolicy != MergeUnionMissing {
		return fmt.Errorf("unknown merge_policy: %q", c.MergePolicy)
	}
	if c.Gate.Coverage < 0 || c.Gate.Coverage > 100 {
		return fmt.Errorf("gate coverage out of range: %.2f", c.Gate.Coverage)
	}
	if c.Gate.Accuracy < 0 || c.Gate.Accuracy > 100 {
		return fmt.Errorf("gate accuracy out of range: %.2f", c.Gate.Accuracy)
	}
	if c.Gate.MaxRegression < 0 {
		return fmt.Errorf("gate max_regression must not be negative: %.2f", c.Gate.MaxRegression)
	}
	return nil
}

func splitSections(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
