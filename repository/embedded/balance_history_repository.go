package embedded

import (
	"context"
	"fmt"

	"betbot/domain/entities"

	"gorm.io/gorm"
)

// BalanceHistoryRepository implements the BalanceHistoryRepository interface on the embedded store
type BalanceHistoryRepository struct {
	db *gorm.DB
}

// NewBalanceHistoryRepository creates a new balance history repository
func NewBalanceHistoryRepository(db *gorm.DB) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{db: db}
}

// Record creates a new balance history entry
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	row := &balanceHistoryRow{
		UserID:          history.UserID,
		BalanceBefore:   history.BalanceBefore,
		BalanceAfter:    history.BalanceAfter,
		ChangeAmount:    history.ChangeAmount,
		TransactionType: string(history.TransactionType),
		RelatedBetID:    history.RelatedBetID,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to record balance history for user %d: %w", history.UserID, err)
	}

	history.ID = row.ID
	history.CreatedAt = row.CreatedAt
	return nil
}

// GetByUser returns the most recent balance history entries for a user
func (r *BalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error) {
	var rows []balanceHistoryRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for user %d: %w", userID, err)
	}

	history := make([]*entities.BalanceHistory, 0, len(rows))
	for i := range rows {
		history = append(history, rows[i].toEntity())
	}
	return history, nil
}
