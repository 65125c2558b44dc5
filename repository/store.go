package repository

import (
	"context"
	"fmt"

	"betbot/application"
	"betbot/database"
	"betbot/events"
	"betbot/repository/embedded"

	log "github.com/sirupsen/logrus"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StoreConfig selects and configures the backing store
type StoreConfig struct {
	Driver     string
	Postgres   database.PostgresConfig
	SQLitePath string
}

// Store is a migrated, connected store
type Store struct {
	UnitOfWorkFactory application.UnitOfWorkFactory
	close             func() error
}

// Close releases the store's connections
func (s *Store) Close() error {
	return s.close()
}

// OpenStore migrates the configured store to the latest schema and connects to it.
// Every command shares it, and so do the tests of the embedded store.
func OpenStore(ctx context.Context, cfg StoreConfig, publisher events.Publisher) (*Store, error) {
	switch cfg.Driver {
	case DriverPostgres:
		log.Info("Running database migrations...")
		if err := database.MigratePostgres(cfg.Postgres); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		db, err := database.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}

		return &Store{
			UnitOfWorkFactory: NewUnitOfWorkFactory(db, publisher),
			close: func() error {
				db.Close()
				return nil
			},
		}, nil

	case DriverSQLite:
		db, err := database.NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := embedded.Migrate(db); err != nil {
			_ = database.CloseSQLite(db)
			return nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("Embedded store opened")

		return &Store{
			UnitOfWorkFactory: embedded.NewUnitOfWorkFactory(db, publisher),
			close:             func() error { return database.CloseSQLite(db) },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
