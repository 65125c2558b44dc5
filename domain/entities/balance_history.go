package entities

import "time"

// TransactionType represents the type of ledger movement
type TransactionType string

const (
	TransactionTypeInitial    TransactionType = "initial"
	TransactionTypeBetStake   TransactionType = "bet_stake"
	TransactionTypeBetPayout  TransactionType = "bet_payout"
	TransactionTypeDailyClaim TransactionType = "daily_claim"
)

// BalanceHistory is an append-only audit row for one balance movement
type BalanceHistory struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	BalanceBefore   int64           `json:"balance_before"`
	BalanceAfter    int64           `json:"balance_after"`
	ChangeAmount    int64           `json:"change_amount"`
	TransactionType TransactionType `json:"transaction_type"`
	RelatedBetID    *int64          `json:"related_bet_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
