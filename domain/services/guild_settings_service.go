package services

import (
	"context"
	"fmt"

	"betbot/domain/entities"
	"betbot/domain/interfaces"
)

// guildSettingsService implements the GuildSettingsService interface
type guildSettingsService struct {
	guildSettingsRepo interfaces.GuildSettingsRepository
}

// NewGuildSettingsService creates a new guild settings service
func NewGuildSettingsService(guildSettingsRepo interfaces.GuildSettingsRepository) interfaces.GuildSettingsService {
	return &guildSettingsService{
		guildSettingsRepo: guildSettingsRepo,
	}
}

// SetChannel designates the guild's betting channel, replacing any previous one
func (s *guildSettingsService) SetChannel(ctx context.Context, guildID, channelID int64) error {
	if guildID == 0 || channelID == 0 {
		return entities.NewError(entities.KindInvalidInput, "guild %d, channel %d", guildID, channelID)
	}

	settings := &entities.GuildSettings{
		GuildID:          guildID,
		BettingChannelID: channelID,
	}
	if err := s.guildSettingsRepo.Upsert(ctx, settings); err != nil {
		return fmt.Errorf("failed to save guild settings: %w", err)
	}

	return nil
}

// RequireChannel fails unless channelID is the guild's configured betting channel
func (s *guildSettingsService) RequireChannel(ctx context.Context, guildID, channelID int64) error {
	settings, err := s.guildSettingsRepo.Get(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	if settings == nil || settings.BettingChannelID == 0 {
		return entities.NewError(entities.KindChannelNotConfigured, "guild %d", guildID)
	}
	if settings.BettingChannelID != channelID {
		return entities.NewWrongChannelError(settings.BettingChannelID)
	}

	return nil
}

// GetSettings returns the guild's settings or nil when none were saved
func (s *guildSettingsService) GetSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	settings, err := s.guildSettingsRepo.Get(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	return settings, nil
}
