package cmd

import (
	"context"
	"fmt"
	"strconv"

	"betbot/config"
	"betbot/database"
	"betbot/repository"

	log "github.com/sirupsen/logrus"
)

// Migrate runs a schema command against the configured store.
// The embedded store only migrates forward, and it does so on every start.
func Migrate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: betbot migrate [up|down [steps]|status]")
	}

	cfg, err := config.LoadStore()
	if err != nil {
		return err
	}
	cfg.ConfigureLogging()

	if cfg.StoreDriver == config.StoreDriverSQLite {
		if args[0] != "up" {
			return fmt.Errorf("migrate %s is not supported by the sqlite store", args[0])
		}
		store, err := repository.OpenStore(ctx, storeConfig(cfg), nil)
		if err != nil {
			return err
		}
		return store.Close()
	}

	migrator, err := database.NewMigrator(cfg.Postgres())
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch args[0] {
	case "up":
		return migrator.Up()
	case "down":
		steps := 1
		if len(args) > 1 {
			if steps, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid step count %q: %w", args[1], err)
			}
		}
		return migrator.Down(steps)
	case "status":
		status, err := migrator.Status()
		if err != nil {
			return err
		}
		log.WithField("status", status.String()).Info("Postgres schema status")
		return nil
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}
