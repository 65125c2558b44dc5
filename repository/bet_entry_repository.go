package repository

import (
	"context"
	"errors"
	"fmt"

	"betbot/database"
	"betbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BetEntryRepository implements the BetEntryRepository interface
type BetEntryRepository struct {
	q Queryable
}

// NewBetEntryRepository creates a new bet entry repository
func NewBetEntryRepository(db *database.DB) *BetEntryRepository {
	return &BetEntryRepository{q: db.Pool}
}

// newBetEntryRepository creates a new bet entry repository with a transaction
func newBetEntryRepository(tx Queryable) *BetEntryRepository {
	return &BetEntryRepository{q: tx}
}

// Create inserts an entry. The (bet_id, user_id) key rejects a second entry per user.
func (r *BetEntryRepository) Create(ctx context.Context, entry *entities.BetEntry) error {
	query := `
		INSERT INTO bet_entries (bet_id, user_id, choice, choice_norm)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query, entry.BetID, entry.UserID, entry.Choice, entry.ChoiceNorm).Scan(&entry.CreatedAt)
	if isUniqueViolation(err) {
		return entities.NewError(entities.KindAlreadyJoined, "user %d in bet %d", entry.UserID, entry.BetID)
	}
	if err != nil {
		return fmt.Errorf("failed to create entry for bet %d: %w", entry.BetID, err)
	}

	return nil
}

// GetByBetAndUser returns the user's entry, nil when the user has not joined
func (r *BetEntryRepository) GetByBetAndUser(ctx context.Context, betID, userID int64) (*entities.BetEntry, error) {
	query := `
		SELECT bet_id, user_id, choice, choice_norm, created_at
		FROM bet_entries
		WHERE bet_id = $1 AND user_id = $2
	`

	var entry entities.BetEntry
	err := r.q.QueryRow(ctx, query, betID, userID).Scan(
		&entry.BetID,
		&entry.UserID,
		&entry.Choice,
		&entry.ChoiceNorm,
		&entry.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry of user %d in bet %d: %w", userID, betID, err)
	}

	return &entry, nil
}

// GetByBet returns all entries of a bet in submission order
func (r *BetEntryRepository) GetByBet(ctx context.Context, betID int64) ([]*entities.BetEntry, error) {
	query := `
		SELECT bet_id, user_id, choice, choice_norm, created_at
		FROM bet_entries
		WHERE bet_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.q.Query(ctx, query, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for bet %d: %w", betID, err)
	}
	defer rows.Close()

	var entries []*entities.BetEntry
	for rows.Next() {
		var entry entities.BetEntry
		if err := rows.Scan(&entry.BetID, &entry.UserID, &entry.Choice, &entry.ChoiceNorm, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

// CountByBet returns the number of entries of a bet
func (r *BetEntryRepository) CountByBet(ctx context.Context, betID int64) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bet_entries WHERE bet_id = $1`, betID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for bet %d: %w", betID, err)
	}
	return count, nil
}
