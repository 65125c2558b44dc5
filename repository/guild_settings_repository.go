package repository

import (
	"context"
	"errors"
	"fmt"

	"betbot/database"
	"betbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// GuildSettingsRepository implements the GuildSettingsRepository interface
type GuildSettingsRepository struct {
	q Queryable
}

// NewGuildSettingsRepository creates a new guild settings repository
func NewGuildSettingsRepository(db *database.DB) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: db.Pool}
}

// newGuildSettingsRepository creates a new guild settings repository with a transaction
func newGuildSettingsRepository(tx Queryable) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: tx}
}

// Get retrieves guild settings, nil when the guild was never configured
func (r *GuildSettingsRepository) Get(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	query := `
		SELECT guild_id, betting_channel_id
		FROM guild_settings
		WHERE guild_id = $1
	`

	var settings entities.GuildSettings
	err := r.q.QueryRow(ctx, query, guildID).Scan(&settings.GuildID, &settings.BettingChannelID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings for guild %d: %w", guildID, err)
	}

	return &settings, nil
}

// Upsert creates or replaces the guild settings
func (r *GuildSettingsRepository) Upsert(ctx context.Context, settings *entities.GuildSettings) error {
	query := `
		INSERT INTO guild_settings (guild_id, betting_channel_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE
		SET betting_channel_id = EXCLUDED.betting_channel_id,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, settings.GuildID, settings.BettingChannelID); err != nil {
		return fmt.Errorf("failed to save guild settings for guild %d: %w", settings.GuildID, err)
	}

	return nil
}
