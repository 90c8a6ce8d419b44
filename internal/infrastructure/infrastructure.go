// Package infrastructure provides core service initialization for
// application startup. It assembles common dependencies (logging, database,
// storage, receipt logging) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/config"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/receipts"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/database"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/lifecycle"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, blob storage, and the receipt log.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Receipts  receipts.Logger
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	receiptLog, err := receipts.NewFileLogger(cfg.Pipeline.ReceiptLog)
	if err != nil {
		return nil, fmt.Errorf("receipt log init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Receipts:  receiptLog,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle
// coordinator. The receipt log closes on shutdown after in-flight runs
// drain.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	i.Lifecycle.OnShutdown(func() {
		if err := i.Receipts.Close(); err != nil {
			i.Logger.Warn("receipt log close failed", "error", err)
		}
	})
	return nil
}
