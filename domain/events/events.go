package events

import "betbot/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange EventType = "balance_change"
	EventTypeUserCreated   EventType = "user_created"
	EventTypeDailyClaimed  EventType = "daily_claimed"
	EventTypeBetCreated    EventType = "bet_created"
	EventTypeBetJoined     EventType = "bet_joined"
	EventTypeBetClosed     EventType = "bet_closed"
	EventTypeBetSettled    EventType = "bet_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	ChangeAmount    int64
	TransactionType entities.TransactionType
	RelatedBetID    *int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a lazily created ledger account
type UserCreatedEvent struct {
	UserID         int64
	InitialBalance int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// DailyClaimedEvent represents a successful daily claim
type DailyClaimedEvent struct {
	UserID     int64
	Reward     int64
	NewBalance int64
}

func (e DailyClaimedEvent) Type() EventType {
	return EventTypeDailyClaimed
}

// BetCreatedEvent represents a newly opened bet
type BetCreatedEvent struct {
	BetID     int64
	GuildID   int64
	ChannelID int64
	OwnerID   int64
	Title     string
	Amount    int64
}

func (e BetCreatedEvent) Type() EventType {
	return EventTypeBetCreated
}

// BetJoinedEvent represents a new entry in a bet
type BetJoinedEvent struct {
	BetID  int64
	UserID int64
	Choice string
	Pot    int64
}

func (e BetJoinedEvent) Type() EventType {
	return EventTypeBetJoined
}

// BetClosedEvent represents a bet that stopped accepting entries
type BetClosedEvent struct {
	BetID   int64
	GuildID int64
	OwnerID int64
}

func (e BetClosedEvent) Type() EventType {
	return EventTypeBetClosed
}

// BetSettledEvent represents a settled bet and its payouts
type BetSettledEvent struct {
	BetID     int64
	GuildID   int64
	Pot       int64
	WinnerIDs []int64
	Payout    int64
}

func (e BetSettledEvent) Type() EventType {
	return EventTypeBetSettled
}
