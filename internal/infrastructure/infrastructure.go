// Package infrastructure assembles the shared subsystems behind the
// domain layer: lifecycle coordination, logging, database, and blob storage.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kitelabs/kite/internal/config"
	"github.com/kitelabs/kite/pkg/database"
	"github.com/kitelabs/kite/pkg/lifecycle"
	"github.com/kitelabs/kite/pkg/storage"
)

// Infrastructure holds the shared subsystems used by all domain systems.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New constructs the infrastructure layer from finalized configuration.
// Subsystems are created but not connected until Start is called.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	lc := lifecycle.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("create database system: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create storage system: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers startup and shutdown hooks for each subsystem and
// waits for startup to complete.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start database system: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start storage system: %w", err)
	}

	i.Lifecycle.WaitForStartup()
	return nil
}
