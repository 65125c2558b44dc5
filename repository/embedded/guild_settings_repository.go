package embedded

import (
	"context"
	"errors"
	"fmt"

	"betbot/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GuildSettingsRepository implements the GuildSettingsRepository interface on the embedded store
type GuildSettingsRepository struct {
	db *gorm.DB
}

// NewGuildSettingsRepository creates a new guild settings repository
func NewGuildSettingsRepository(db *gorm.DB) *GuildSettingsRepository {
	return &GuildSettingsRepository{db: db}
}

// Get retrieves guild settings, nil when the guild was never configured
func (r *GuildSettingsRepository) Get(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	var row guildSettingsRow
	err := r.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings for guild %d: %w", guildID, err)
	}

	return &entities.GuildSettings{
		GuildID:          row.GuildID,
		BettingChannelID: row.BettingChannelID,
	}, nil
}

// Upsert creates or replaces the guild settings
func (r *GuildSettingsRepository) Upsert(ctx context.Context, settings *entities.GuildSettings) error {
	row := &guildSettingsRow{
		GuildID:          settings.GuildID,
		BettingChannelID: settings.BettingChannelID,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"betting_channel_id", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to save guild settings for guild %d: %w", settings.GuildID, err)
	}

	return nil
}
