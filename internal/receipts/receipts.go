// Package receipts records a verifiable provenance trail of every agent
// invocation: an append-only stream of self-describing JSON records, one per
// attempt, written in invocation order and never mutated.
package receipts

import (
	"encoding/hex"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// Fingerprint captures the process environment a receipt was produced in,
// for audit replay.
type Fingerprint struct {
	Hostname  string `json:"hostname"`
	GoVersion string `json:"go_version"`
	PID       int    `json:"pid"`
}

// Receipt is the write-once record of one agent invocation. Consumers read
// the stream sequentially and must tolerate unknown additional fields.
type Receipt struct {
	DocumentID  uuid.UUID   `json:"document_id"`
	Stem        string      `json:"stem"`
	Section     string      `json:"section"`
	Agent       string      `json:"agent"`
	Provider    string      `json:"provider"`
	Model       string      `json:"model"`
	BaseURL     string      `json:"base_url"`
	StatusCode  int         `json:"status_code"`
	Parsed      bool        `json:"parsed"`
	Validated   bool        `json:"validated"`
	LatencyMS   int64       `json:"latency_ms"`
	Pages       []int       `json:"pages"`
	ContentHash string      `json:"content_hash"`
	PairID      uuid.UUID   `json:"pair_id"`
	Error       string      `json:"error,omitempty"`
	Environment Fingerprint `json:"environment"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Hash returns the blake3 content hash of a source document, hex encoded.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CaptureFingerprint snapshots the current process environment.
func CaptureFingerprint() Fingerprint {
	hostname, _ := os.Hostname()
	return Fingerprint{
		Hostname:  hostname,
		GoVersion: runtime.Version(),
		PID:       os.Getpid(),
	}
}
