package interfaces

import (
	"context"
	"time"

	"betbot/domain/entities"
)

// ClaimResult is the outcome of a successful daily claim
type ClaimResult struct {
	Reward     int64
	NewBalance int64
}

// JoinResult is the outcome of a successful join
type JoinResult struct {
	Bet        *entities.Bet
	Choice     string
	Pot        int64
	NewBalance int64
}

// SettlementResult is the outcome of a settlement
type SettlementResult struct {
	Bet       *entities.Bet
	Pot       int64
	WinnerIDs []int64
	Payout    int64 // per winner
}

// LedgerService manages balances, the daily claim and the audit trail
type LedgerService interface {
	GetOrInitBalance(ctx context.Context, userID int64) (int64, error)
	AdjustBalance(ctx context.Context, userID int64, delta int64, transactionType entities.TransactionType, relatedBetID *int64) (int64, error)
	ClaimDaily(ctx context.Context, userID int64, now time.Time) (*ClaimResult, error)
	TopBalances(ctx context.Context, limit int) ([]*entities.User, error)
	History(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error)
}

// GuildSettingsService manages the per-guild betting channel
type GuildSettingsService interface {
	SetChannel(ctx context.Context, guildID, channelID int64) error
	RequireChannel(ctx context.Context, guildID, channelID int64) error
	GetSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error)
}

// BetService manages the bet lifecycle up to closing
type BetService interface {
	Create(ctx context.Context, guildID, channelID, ownerID int64, title string, amount int64) (*entities.Bet, error)
	Join(ctx context.Context, guildID, channelID, userID, betID int64, choice string) (*JoinResult, error)
	Close(ctx context.Context, guildID, channelID, userID, betID int64) (*entities.Bet, error)
	ListOpen(ctx context.Context, guildID, channelID int64) ([]*entities.Bet, error)
	Snapshot(ctx context.Context, betID int64) (*entities.BetSnapshot, error)
	SnapshotInChannel(ctx context.Context, guildID, channelID, betID int64) (*entities.BetSnapshot, error)
}

// SettlementService pays out closed bets
type SettlementService interface {
	Settle(ctx context.Context, guildID, channelID, userID, betID int64, winningChoices []string) (*SettlementResult, error)
}
