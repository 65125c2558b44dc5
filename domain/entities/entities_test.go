package entities

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_ClaimRetryHours(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("never claimed", func(t *testing.T) {
		user := &User{UserID: 1}
		assert.True(t, user.CanClaim(now))
		assert.Equal(t, int64(0), user.ClaimRetryHours(now))
	})

	t.Run("claimed exactly 24h ago", func(t *testing.T) {
		last := now.Add(-24 * time.Hour)
		user := &User{UserID: 1, LastClaimAt: &last}
		assert.True(t, user.CanClaim(now))
	})

	t.Run("remaining hours are rounded up", func(t *testing.T) {
		last := now.Add(-(22*time.Hour + 30*time.Minute))
		user := &User{UserID: 1, LastClaimAt: &last}
		assert.False(t, user.CanClaim(now))
		assert.Equal(t, int64(2), user.ClaimRetryHours(now))
	})

	t.Run("just claimed", func(t *testing.T) {
		user := &User{UserID: 1, LastClaimAt: &now}
		assert.Equal(t, int64(24), user.ClaimRetryHours(now))
	})
}

func TestBet_State(t *testing.T) {
	settled := time.Now()

	assert.Equal(t, BetStateOpen, (&Bet{}).State())
	assert.Equal(t, BetStateClosed, (&Bet{IsClosed: true}).State())
	assert.Equal(t, BetStateSettled, (&Bet{IsClosed: true, SettledAt: &settled}).State())
	assert.True(t, (&Bet{}).IsOpen())
	assert.False(t, (&Bet{IsClosed: true}).IsOpen())
}

func TestBetSnapshot_Pot(t *testing.T) {
	snapshot := &BetSnapshot{
		Bet:     &Bet{Amount: 10},
		Entries: []*BetEntry{{UserID: 1}, {UserID: 2}, {UserID: 3}},
	}
	assert.Equal(t, int64(30), snapshot.Pot())
}

func TestNormalizeChoice(t *testing.T) {
	assert.Equal(t, "team a", NormalizeChoice("  Team A "))
	assert.Equal(t, NormalizeChoice("STRASSE"), NormalizeChoice("straße"))
	assert.Equal(t, "", NormalizeChoice("   "))
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("join failed: %w", NewInsufficientFundsError(10, 5))

	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindInsufficientFunds, KindOf(err))

	domainErr, ok := AsError(err)
	assert.True(t, ok)
	assert.Equal(t, int64(10), domainErr.Required)
	assert.Equal(t, int64(5), domainErr.Available)

	assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
}
