package embedded

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates the embedded store schema
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&userRow{},
		&balanceHistoryRow{},
		&guildSettingsRow{},
		&betRow{},
		&betEntryRow{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate embedded store: %w", err)
	}

	log.Debug("Embedded store schema is up to date")
	return nil
}
