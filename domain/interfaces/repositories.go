package interfaces

import (
	"context"
	"time"

	"betbot/domain/entities"
	"betbot/domain/events"
)

// UserRepository defines the interface for ledger account data access
type UserRepository interface {
	// GetByID returns nil, nil when the account does not exist
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	// GetOrCreate inserts the account at initialBalance unless it already exists.
	// created reports whether this call inserted the row.
	GetOrCreate(ctx context.Context, userID int64, initialBalance int64) (user *entities.User, created bool, err error)
	// AddBalance credits amount and returns the new balance
	AddBalance(ctx context.Context, userID int64, amount int64) (int64, error)
	// DeductBalance debits amount only if the balance covers it.
	// ok is false when the balance was too low and nothing changed.
	DeductBalance(ctx context.Context, userID int64, amount int64) (newBalance int64, ok bool, err error)
	// ClaimDaily credits reward and stamps claimedAt only if the previous claim is at or before eligibleBefore.
	// ok is false when the cooldown is still active and nothing changed.
	ClaimDaily(ctx context.Context, userID int64, reward int64, claimedAt time.Time, eligibleBefore time.Time) (newBalance int64, ok bool, err error)
	// GetTopByBalance returns accounts ordered by balance desc, user id asc
	GetTopByBalance(ctx context.Context, limit int) ([]*entities.User, error)
}

// BalanceHistoryRepository defines the interface for the ledger audit trail
type BalanceHistoryRepository interface {
	Record(ctx context.Context, history *entities.BalanceHistory) error
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error)
}

// GuildSettingsRepository defines the interface for per-guild settings
type GuildSettingsRepository interface {
	// Get returns nil, nil when the guild has no settings
	Get(ctx context.Context, guildID int64) (*entities.GuildSettings, error)
	// Upsert replaces the guild's settings
	Upsert(ctx context.Context, settings *entities.GuildSettings) error
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create inserts the bet and sets its ID and CreatedAt
	Create(ctx context.Context, bet *entities.Bet) error
	// GetByID returns nil, nil when the bet does not exist
	GetByID(ctx context.Context, id int64) (*entities.Bet, error)
	// GetByIDForUpdate is GetByID holding a row lock until the transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Bet, error)
	// ListOpen returns open bets of a channel, newest first
	ListOpen(ctx context.Context, guildID, channelID int64) ([]*entities.Bet, error)
	// Close flips the closed flag. It returns false when the bet was already closed.
	Close(ctx context.Context, id int64) (bool, error)
	// MarkSettled stamps the settlement time. It returns false unless the bet is closed and unsettled.
	MarkSettled(ctx context.Context, id int64, settledAt time.Time) (bool, error)
}

// BetEntryRepository defines the interface for bet entry data access
type BetEntryRepository interface {
	// Create inserts the entry. A second entry for the same user fails with entities.ErrAlreadyJoined.
	Create(ctx context.Context, entry *entities.BetEntry) error
	// GetByBetAndUser returns nil, nil when the user has not joined
	GetByBetAndUser(ctx context.Context, betID, userID int64) (*entities.BetEntry, error)
	// GetByBet returns entries in submission order
	GetByBet(ctx context.Context, betID int64) ([]*entities.BetEntry, error)
	CountByBet(ctx context.Context, betID int64) (int64, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
