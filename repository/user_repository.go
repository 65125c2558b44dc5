package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"betbot/database"
	"betbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, balance, last_claim_at, created_at, updated_at`

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepository creates a new user repository with a transaction
func newUserRepository(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.UserID,
		&user.Balance,
		&user.LastClaimAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their Discord ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

// GetOrCreate inserts the account unless it exists. Concurrent first references are idempotent.
func (r *UserRepository) GetOrCreate(ctx context.Context, userID int64, initialBalance int64) (*entities.User, bool, error) {
	insert := `
		INSERT INTO users (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, insert, userID, initialBalance))
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create user %d: %w", userID, err)
	}

	// Conflict: the row already exists
	user, err = r.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, fmt.Errorf("user %d not found after insert conflict", userID)
	}
	return user, false, nil
}

// AddBalance credits amount and returns the new balance
func (r *UserRepository) AddBalance(ctx context.Context, userID int64, amount int64) (int64, error) {
	query := `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, userID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("user %d not found", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add balance for user %d: %w", userID, err)
	}
	return balance, nil
}

// DeductBalance debits amount only if the balance covers it
func (r *UserRepository) DeductBalance(ctx context.Context, userID int64, amount int64) (int64, bool, error) {
	query := `
		UPDATE users
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, userID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to deduct balance for user %d: %w", userID, err)
	}
	return balance, true, nil
}

// ClaimDaily credits reward if the previous claim is at or before eligibleBefore
func (r *UserRepository) ClaimDaily(ctx context.Context, userID int64, reward int64, claimedAt time.Time, eligibleBefore time.Time) (int64, bool, error) {
	query := `
		UPDATE users
		SET balance = balance + $2, last_claim_at = $3, updated_at = NOW()
		WHERE user_id = $1 AND (last_claim_at IS NULL OR last_claim_at <= $4)
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, userID, reward, claimedAt, eligibleBefore).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to claim daily reward for user %d: %w", userID, err)
	}
	return balance, true, nil
}

// GetTopByBalance returns accounts ordered by balance desc, user id asc
func (r *UserRepository) GetTopByBalance(ctx context.Context, limit int) ([]*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY balance DESC, user_id ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
