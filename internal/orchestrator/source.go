package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/storage"
)

// StorageSource adapts blob storage to the Source contract by buffering the
// full document. Annual reports are small enough to hold in memory for
// hashing and page rendering.
type StorageSource struct {
	Store storage.System
}

func (s StorageSource) Download(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.Store.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}
