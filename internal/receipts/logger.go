package receipts

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Logger accepts receipts for durable append-only recording.
type Logger interface {
	// Log appends one receipt. Receipts for a single document arrive and
	// must be written in invocation order.
	Log(r Receipt) error
	// Close flushes and releases the underlying sink.
	Close() error
}

// fileLogger appends JSONL records to a single file. A mutex serializes
// writers so interleaved documents never corrupt record boundaries.
type fileLogger struct {
	mu   sync.Mutex
	file *os.File
	env  Fingerprint
}

// NewFileLogger opens (or creates) the receipt log at path in append mode
// and captures the environment fingerprint stamped onto every record.
func NewFileLogger(path string) (Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open receipt log: %w", err)
	}

	return &fileLogger{
		file: file,
		env:  CaptureFingerprint(),
	}, nil
}

func (l *fileLogger) Log(r Receipt) error {
	r.Environment = l.env
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("append receipt: %w", err)
	}
	return nil
}

func (l *fileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
