package embedded

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"betbot/domain/entities"

	"gorm.io/gorm"
)

// BetEntryRepository implements the BetEntryRepository interface on the embedded store
type BetEntryRepository struct {
	db *gorm.DB
}

// NewBetEntryRepository creates a new bet entry repository
func NewBetEntryRepository(db *gorm.DB) *BetEntryRepository {
	return &BetEntryRepository{db: db}
}

// Create inserts an entry. The (bet_id, user_id) key rejects a second entry per user.
func (r *BetEntryRepository) Create(ctx context.Context, entry *entities.BetEntry) error {
	row := &betEntryRow{
		BetID:      entry.BetID,
		UserID:     entry.UserID,
		Choice:     entry.Choice,
		ChoiceNorm: entry.ChoiceNorm,
	}
	err := r.db.WithContext(ctx).Create(row).Error
	if isDuplicateKey(err) {
		return entities.NewError(entities.KindAlreadyJoined, "user %d in bet %d", entry.UserID, entry.BetID)
	}
	if err != nil {
		return fmt.Errorf("failed to create entry for bet %d: %w", entry.BetID, err)
	}

	entry.CreatedAt = row.CreatedAt
	return nil
}

// GetByBetAndUser returns the user's entry, nil when the user has not joined
func (r *BetEntryRepository) GetByBetAndUser(ctx context.Context, betID, userID int64) (*entities.BetEntry, error) {
	var row betEntryRow
	err := r.db.WithContext(ctx).Where("bet_id = ? AND user_id = ?", betID, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry of user %d in bet %d: %w", userID, betID, err)
	}
	return row.toEntity(), nil
}

// GetByBet returns all entries of a bet in submission order
func (r *BetEntryRepository) GetByBet(ctx context.Context, betID int64) ([]*entities.BetEntry, error) {
	var rows []betEntryRow
	err := r.db.WithContext(ctx).
		Where("bet_id = ?", betID).
		Order("rowid ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for bet %d: %w", betID, err)
	}

	entries := make([]*entities.BetEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].toEntity())
	}
	return entries, nil
}

// CountByBet returns the number of entries of a bet
func (r *BetEntryRepository) CountByBet(ctx context.Context, betID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&betEntryRow{}).Where("bet_id = ?", betID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for bet %d: %w", betID, err)
	}
	return count, nil
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
