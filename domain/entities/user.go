package entities

import "time"

// DailyClaimCooldown is the minimum time between two daily claims
const DailyClaimCooldown = 24 * time.Hour

// User is a ledger account. Accounts are created lazily the first time a user is referenced.
type User struct {
	UserID      int64      `json:"user_id"`
	Balance     int64      `json:"balance"`
	LastClaimAt *time.Time `json:"last_claim_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CanClaim reports whether the daily reward is available at now
func (u *User) CanClaim(now time.Time) bool {
	return u.LastClaimAt == nil || now.Sub(*u.LastClaimAt) >= DailyClaimCooldown
}

// ClaimRetryHours returns the whole hours left until the next claim, rounded up.
// It returns 0 when a claim is possible.
func (u *User) ClaimRetryHours(now time.Time) int64 {
	if u.CanClaim(now) {
		return 0
	}
	remaining := DailyClaimCooldown - now.Sub(*u.LastClaimAt)
	hours := int64(remaining / time.Hour)
	if remaining%time.Hour != 0 {
		hours++
	}
	return hours
}
