package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// GoldenSet resolves verified ground-truth extractions by document stem.
type GoldenSet interface {
	Golden(stem string) (*payload.Value, bool)
	Len() int
}

type fileGoldens struct {
	values map[string]payload.Value
}

// LoadGoldenDir reads a directory of golden files, one JSON document per
// file, keyed by filename stem ("brf_268882.json" covers stem
// "brf_268882"). Non-JSON files are ignored; a file that fails to decode
// fails the load.
func LoadGoldenDir(dir string) (GoldenSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read golden dir: %w", err)
	}

	values := make(map[string]payload.Value)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read golden %s: %w", entry.Name(), err)
		}

		v, err := payload.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode golden %s: %w", entry.Name(), err)
		}

		stem := strings.TrimSuffix(entry.Name(), ".json")
		values[stem] = v
	}

	return &fileGoldens{values: values}, nil
}

// Goldens builds a GoldenSet from an in-memory map, for callers that source
// ground truth from somewhere other than disk.
func Goldens(values map[string]payload.Value) GoldenSet {
	return &fileGoldens{values: values}
}

func (g *fileGoldens) Golden(stem string) (*payload.Value, bool) {
	v, ok := g.values[stem]
	if !ok {
		return nil, false
	}
	return &v, true
}

func (g *fileGoldens) Len() int {
	return len(g.values)
}
