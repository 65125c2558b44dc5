package entities

import "time"

// BetState is derived from the closed flag and the settlement mark
type BetState string

const (
	BetStateOpen    BetState = "open"
	BetStateClosed  BetState = "closed"
	BetStateSettled BetState = "settled"
)

// Bet is a wager created in a guild channel. Every participant pays the same stake.
type Bet struct {
	ID        int64      `json:"id"`
	GuildID   int64      `json:"guild_id"`
	ChannelID int64      `json:"channel_id"`
	Title     string     `json:"title"`
	Amount    int64      `json:"amount"`
	OwnerID   int64      `json:"owner_id"`
	IsClosed  bool       `json:"is_closed"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// State returns the lifecycle state of the bet
func (b *Bet) State() BetState {
	switch {
	case b.SettledAt != nil:
		return BetStateSettled
	case b.IsClosed:
		return BetStateClosed
	default:
		return BetStateOpen
	}
}

// IsOpen reports whether the bet still accepts entries
func (b *Bet) IsOpen() bool {
	return b.State() == BetStateOpen
}

// IsSettled reports whether payouts were already applied
func (b *Bet) IsSettled() bool {
	return b.SettledAt != nil
}

// InChannel reports whether the bet belongs to the given channel
func (b *Bet) InChannel(channelID int64) bool {
	return b.ChannelID == channelID
}

// BetEntry is one user's participation in a bet
type BetEntry struct {
	BetID      int64     `json:"bet_id"`
	UserID     int64     `json:"user_id"`
	Choice     string    `json:"choice"`
	ChoiceNorm string    `json:"choice_norm"`
	CreatedAt  time.Time `json:"created_at"`
}

// BetSnapshot is a bet together with its entries in submission order
type BetSnapshot struct {
	Bet     *Bet        `json:"bet"`
	Entries []*BetEntry `json:"entries"`
}

// Pot returns entries times stake
func (s *BetSnapshot) Pot() int64 {
	return int64(len(s.Entries)) * s.Bet.Amount
}
