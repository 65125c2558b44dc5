package embedded

import (
	"context"
	"errors"
	"fmt"
	"time"

	"betbot/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements the UserRepository interface on the embedded store
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) get(ctx context.Context, userID int64) (*userRow, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByID retrieves a user by their Discord ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	row, err := r.get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if row == nil {
		return nil, nil
	}
	return row.toEntity(), nil
}

// GetOrCreate inserts the account unless it exists
func (r *UserRepository) GetOrCreate(ctx context.Context, userID int64, initialBalance int64) (*entities.User, bool, error) {
	row := &userRow{UserID: userID, Balance: initialBalance}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create user %d: %w", userID, result.Error)
	}
	created := result.RowsAffected == 1

	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, fmt.Errorf("user %d not found after insert", userID)
	}
	return user, created, nil
}

// AddBalance credits amount and returns the new balance
func (r *UserRepository) AddBalance(ctx context.Context, userID int64, amount int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&userRow{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to add balance for user %d: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("user %d not found", userID)
	}
	return r.balance(ctx, userID)
}

// DeductBalance debits amount only if the balance covers it
func (r *UserRepository) DeductBalance(ctx context.Context, userID int64, amount int64) (int64, bool, error) {
	result := r.db.WithContext(ctx).
		Model(&userRow{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return 0, false, fmt.Errorf("failed to deduct balance for user %d: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	balance, err := r.balance(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

// ClaimDaily credits reward if the previous claim is at or before eligibleBefore.
// The store runs on a single connection, so the read and the write below cannot interleave
// with another transaction.
func (r *UserRepository) ClaimDaily(ctx context.Context, userID int64, reward int64, claimedAt time.Time, eligibleBefore time.Time) (int64, bool, error) {
	row, err := r.get(ctx, userID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if row == nil {
		return 0, false, fmt.Errorf("user %d not found", userID)
	}
	if row.LastClaimAt != nil && row.LastClaimAt.After(eligibleBefore) {
		return 0, false, nil
	}

	err = r.db.WithContext(ctx).
		Model(&userRow{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"balance":       gorm.Expr("balance + ?", reward),
			"last_claim_at": claimedAt.UTC(),
		}).Error
	if err != nil {
		return 0, false, fmt.Errorf("failed to claim daily reward for user %d: %w", userID, err)
	}

	return row.Balance + reward, true, nil
}

// GetTopByBalance returns accounts ordered by balance desc, user id asc
func (r *UserRepository) GetTopByBalance(ctx context.Context, limit int) ([]*entities.User, error) {
	var rows []userRow
	err := r.db.WithContext(ctx).
		Order("balance DESC").
		Order("user_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances: %w", err)
	}

	users := make([]*entities.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toEntity())
	}
	return users, nil
}

func (r *UserRepository) balance(ctx context.Context, userID int64) (int64, error) {
	row, err := r.get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to read balance for user %d: %w", userID, err)
	}
	if row == nil {
		return 0, fmt.Errorf("user %d not found", userID)
	}
	return row.Balance, nil
}
