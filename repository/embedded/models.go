package embedded

import (
	"time"

	"betbot/domain/entities"
)

type userRow struct {
	UserID      int64 `gorm:"primaryKey;autoIncrement:false"`
	Balance     int64 `gorm:"not null;check:chk_users_balance,balance >= 0"`
	LastClaimAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (userRow) TableName() string {
	return "users"
}

func (r *userRow) toEntity() *entities.User {
	return &entities.User{
		UserID:      r.UserID,
		Balance:     r.Balance,
		LastClaimAt: r.LastClaimAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type balanceHistoryRow struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	UserID          int64  `gorm:"not null;index:idx_balance_history_user"`
	BalanceBefore   int64  `gorm:"not null"`
	BalanceAfter    int64  `gorm:"not null"`
	ChangeAmount    int64  `gorm:"not null"`
	TransactionType string `gorm:"size:32;not null"`
	RelatedBetID    *int64
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (balanceHistoryRow) TableName() string {
	return "balance_history"
}

func (r *balanceHistoryRow) toEntity() *entities.BalanceHistory {
	return &entities.BalanceHistory{
		ID:              r.ID,
		UserID:          r.UserID,
		BalanceBefore:   r.BalanceBefore,
		BalanceAfter:    r.BalanceAfter,
		ChangeAmount:    r.ChangeAmount,
		TransactionType: entities.TransactionType(r.TransactionType),
		RelatedBetID:    r.RelatedBetID,
		CreatedAt:       r.CreatedAt,
	}
}

type guildSettingsRow struct {
	GuildID          int64     `gorm:"primaryKey;autoIncrement:false"`
	BettingChannelID int64     `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (guildSettingsRow) TableName() string {
	return "guild_settings"
}

type betRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	GuildID   int64  `gorm:"not null;index:idx_bets_open,priority:2"`
	ChannelID int64  `gorm:"not null;index:idx_bets_open,priority:1"`
	Title     string `gorm:"not null"`
	Amount    int64  `gorm:"not null;check:chk_bets_amount,amount > 0"`
	OwnerID   int64  `gorm:"not null"`
	IsClosed  bool   `gorm:"not null;default:false;index:idx_bets_open,priority:3"`
	SettledAt *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (betRow) TableName() string {
	return "bets"
}

func (r *betRow) toEntity() *entities.Bet {
	return &entities.Bet{
		ID:        r.ID,
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		Title:     r.Title,
		Amount:    r.Amount,
		OwnerID:   r.OwnerID,
		IsClosed:  r.IsClosed,
		SettledAt: r.SettledAt,
		CreatedAt: r.CreatedAt,
	}
}

// betEntryRow keeps SQLite's implicit rowid, which records submission order.
// Entries go away with their bet.
type betEntryRow struct {
	BetID      int64     `gorm:"primaryKey;autoIncrement:false;index:idx_entries_norm,priority:1"`
	UserID     int64     `gorm:"primaryKey;autoIncrement:false"`
	Choice     string    `gorm:"not null"`
	ChoiceNorm string    `gorm:"not null;index:idx_entries_norm,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Bet *betRow `gorm:"foreignKey:BetID;references:ID;constraint:OnDelete:CASCADE"`
}

func (betEntryRow) TableName() string {
	return "bet_entries"
}

func (r *betEntryRow) toEntity() *entities.BetEntry {
	return &entities.BetEntry{
		BetID:      r.BetID,
		UserID:     r.UserID,
		Choice:     r.Choice,
		ChoiceNorm: r.ChoiceNorm,
		CreatedAt:  r.CreatedAt,
	}
}
