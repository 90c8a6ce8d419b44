// Package agents defines the extraction capability contract the orchestrator
// invokes, plus the remote vision-model implementation. Two independent
// implementations of the same contract (the "twin" pair) may be configured;
// the orchestrator is agnostic to how many there are and what transport
// backs them.
package agents

import (
	"context"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// Request carries everything one section extraction needs: the section name,
// its prompt, the 1-based page numbers, and the rendered page images as data
// URIs.
type Request struct {
	Section string
	Prompt  string
	Pages   []int
	Images  []string
}

// Outcome is the result of one extraction attempt. Success means parsed
// structured data came back; otherwise StatusCode and ErrorReason describe
// what went wrong. Parsed distinguishes transport failures from model output
// that arrived but did not decode.
type Outcome struct {
	Success     bool
	StatusCode  int
	Parsed      bool
	Data        payload.Value
	ErrorReason string
}

// Identity describes the backing model of an agent for provenance records.
type Identity struct {
	Provider string
	Model    string
	BaseURL  string
}

// Extractor is the agent capability contract. Implementations must be safe
// for concurrent use across sections.
type Extractor interface {
	// Name identifies the agent in receipts and merge priority.
	Name() string
	// Identity reports the backing provider and model for receipts.
	Identity() Identity
	// Extract performs one extraction attempt. It never returns an error;
	// failures are data, captured in the Outcome and its receipt.
	Extract(ctx context.Context, req Request) Outcome
	// HealthCheck reports whether the agent's backing transport is reachable.
	HealthCheck(ctx context.Context) bool
}
