package embedded

import (
	"context"
	"errors"
	"fmt"
	"time"

	"betbot/domain/entities"

	"gorm.io/gorm"
)

// BetRepository implements the BetRepository interface on the embedded store
type BetRepository struct {
	db *gorm.DB
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *gorm.DB) *BetRepository {
	return &BetRepository{db: db}
}

// Create inserts a new open bet
func (r *BetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	row := &betRow{
		GuildID:   bet.GuildID,
		ChannelID: bet.ChannelID,
		Title:     bet.Title,
		Amount:    bet.Amount,
		OwnerID:   bet.OwnerID,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	bet.ID = row.ID
	bet.IsClosed = false
	bet.SettledAt = nil
	bet.CreatedAt = row.CreatedAt
	return nil
}

// GetByID retrieves a bet by ID
func (r *BetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	var row betRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", id, err)
	}
	return row.toEntity(), nil
}

// GetByIDForUpdate retrieves a bet by ID. SQLite has no row locks; the single
// store connection already serializes transactions.
func (r *BetRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Bet, error) {
	return r.GetByID(ctx, id)
}

// ListOpen returns open bets of a channel, newest first
func (r *BetRepository) ListOpen(ctx context.Context, guildID, channelID int64) ([]*entities.Bet, error) {
	var rows []betRow
	err := r.db.WithContext(ctx).
		Where("channel_id = ? AND guild_id = ? AND is_closed = ?", channelID, guildID, false).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list open bets: %w", err)
	}

	bets := make([]*entities.Bet, 0, len(rows))
	for i := range rows {
		bets = append(bets, rows[i].toEntity())
	}
	return bets, nil
}

// Close flips the closed flag. It returns false when the bet was already closed.
func (r *BetRepository) Close(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&betRow{}).
		Where("id = ? AND is_closed = ?", id, false).
		Update("is_closed", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to close bet %d: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// MarkSettled stamps the settlement time of a closed, unsettled bet
func (r *BetRepository) MarkSettled(ctx context.Context, id int64, settledAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&betRow{}).
		Where("id = ? AND is_closed = ? AND settled_at IS NULL", id, true).
		Update("settled_at", settledAt.UTC())
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark bet %d settled: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}
