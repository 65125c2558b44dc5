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

const betColumns = `id, guild_id, channel_id, title, amount, owner_id, is_closed, settled_at, created_at`

// BetRepository implements the BetRepository interface
type BetRepository struct {
	q Queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepository creates a new bet repository with a transaction
func newBetRepository(tx Queryable) *BetRepository {
	return &BetRepository{q: tx}
}

func scanBet(row pgx.Row) (*entities.Bet, error) {
	var bet entities.Bet
	err := row.Scan(
		&bet.ID,
		&bet.GuildID,
		&bet.ChannelID,
		&bet.Title,
		&bet.Amount,
		&bet.OwnerID,
		&bet.IsClosed,
		&bet.SettledAt,
		&bet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// Create inserts a new open bet
func (r *BetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	query := `
		INSERT INTO bets (guild_id, channel_id, title, amount, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.GuildID,
		bet.ChannelID,
		bet.Title,
		bet.Amount,
		bet.OwnerID,
	).Scan(&bet.ID, &bet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

// GetByID retrieves a bet by ID
func (r *BetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	return r.get(ctx, `SELECT `+betColumns+` FROM bets WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a bet by ID and locks the row until the transaction ends
func (r *BetRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Bet, error) {
	return r.get(ctx, `SELECT `+betColumns+` FROM bets WHERE id = $1 FOR UPDATE`, id)
}

func (r *BetRepository) get(ctx context.Context, query string, id int64) (*entities.Bet, error) {
	bet, err := scanBet(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", id, err)
	}
	return bet, nil
}

// ListOpen returns open bets of a channel, newest first
func (r *BetRepository) ListOpen(ctx context.Context, guildID, channelID int64) ([]*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE channel_id = $1 AND guild_id = $2 AND is_closed = FALSE
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, channelID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open bets: %w", err)
	}
	defer rows.Close()

	var bets []*entities.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bets: %w", err)
	}

	return bets, nil
}

// Close flips the closed flag. It returns false when the bet was already closed.
func (r *BetRepository) Close(ctx context.Context, id int64) (bool, error) {
	result, err := r.q.Exec(ctx, `UPDATE bets SET is_closed = TRUE WHERE id = $1 AND is_closed = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("failed to close bet %d: %w", id, err)
	}
	return result.RowsAffected() == 1, nil
}

// MarkSettled stamps the settlement time of a closed, unsettled bet
func (r *BetRepository) MarkSettled(ctx context.Context, id int64, settledAt time.Time) (bool, error) {
	query := `
		UPDATE bets
		SET settled_at = $2
		WHERE id = $1 AND is_closed = TRUE AND settled_at IS NULL
	`

	result, err := r.q.Exec(ctx, query, id, settledAt)
	if err != nil {
		return false, fmt.Errorf("failed to mark bet %d settled: %w", id, err)
	}
	return result.RowsAffected() == 1, nil
}
