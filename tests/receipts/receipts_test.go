package receipts_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/receipts"
)

func TestHash(t *testing.T) {
	a := receipts.Hash([]byte("annual report content"))
	b := receipts.Hash([]byte("annual report content"))
	c := receipts.Hash([]byte("different content"))

	if a != b {
		t.Errorf("Hash() not deterministic: %s vs %s", a, b)
	}
	if a == c {
		t.Error("Hash() collision on different content")
	}
	if len(a) != 64 {
		t.Errorf("len(Hash()) = %d, want 64 hex characters", len(a))
	}
}

func TestCaptureFingerprint(t *testing.T) {
	fp := receipts.CaptureFingerprint()
	if fp.GoVersion == "" {
		t.Error("GoVersion is empty")
	}
	if fp.PID == 0 {
		t.Error("PID is zero")
	}
}

func TestCollectorOrder(t *testing.T) {
	collector := receipts.NewCollector()

	first := receipts.Receipt{Section: "governance", Agent: "primary"}
	second := receipts.Receipt{Section: "governance", Agent: "secondary"}

	if err := collector.Log(first); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if err := collector.Log(second); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	logged := collector.Receipts()
	if len(logged) != 2 {
		t.Fatalf("len(Receipts()) = %d, want 2", len(logged))
	}
	if logged[0].Agent != "primary" || logged[1].Agent != "secondary" {
		t.Errorf("Receipts() order = %s, %s", logged[0].Agent, logged[1].Agent)
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.jsonl")

	logger, err := receipts.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	docID := uuid.New()
	pairID := uuid.New()
	stamped := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	entries := []receipts.Receipt{
		{
			DocumentID:  docID,
			Stem:        "brf_268882",
			Section:     "governance",
			Agent:       "primary",
			StatusCode:  200,
			Parsed:      true,
			Validated:   true,
			Pages:       []int{1, 2},
			ContentHash: receipts.Hash([]byte("content")),
			PairID:      pairID,
			CreatedAt:   stamped,
		},
		{
			DocumentID: docID,
			Stem:       "brf_268882",
			Section:    "governance",
			Agent:      "secondary",
			StatusCode: 500,
			Error:      "upstream timeout",
			PairID:     pairID,
		},
	}

	for _, r := range entries {
		if err := logger.Log(r); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer file.Close()

	var read []receipts.Receipt
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var r receipts.Receipt
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		read = append(read, r)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan error = %v", err)
	}

	if len(read) != 2 {
		t.Fatalf("read %d records, want 2", len(read))
	}
	if read[0].Agent != "primary" || read[1].Agent != "secondary" {
		t.Errorf("record order = %s, %s", read[0].Agent, read[1].Agent)
	}
	if !read[0].CreatedAt.Equal(stamped) {
		t.Errorf("CreatedAt = %v, want preserved %v", read[0].CreatedAt, stamped)
	}
	if read[1].CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped on zero-time receipt")
	}
	for i, r := range read {
		if r.Environment.GoVersion == "" {
			t.Errorf("record %d: environment fingerprint not stamped", i)
		}
		if r.PairID != pairID {
			t.Errorf("record %d: PairID = %s, want %s", i, r.PairID, pairID)
		}
	}
	if read[1].Error != "upstream timeout" {
		t.Errorf("Error = %q, want %q", read[1].Error, "upstream timeout")
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.jsonl")

	for range 2 {
		logger, err := receipts.NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		if err := logger.Log(receipts.Receipt{Stem: "brf_57125"}); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
		if err := logger.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("log has %d records after reopen, want 2", lines)
	}
}
