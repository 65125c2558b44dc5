package balance

import (
	"time"

	"betbot/application"
	"betbot/bot/common"
	"betbot/domain/services"
)

// Feature answers the guild-agnostic ledger sub-commands
type Feature struct {
	uowFactory   application.UnitOfWorkFactory
	ledgerConfig services.LedgerConfig
	now          func() time.Time
}

// New creates a new balance feature instance
func New(uowFactory application.UnitOfWorkFactory, ledgerConfig services.LedgerConfig) *Feature {
	return &Feature{
		uowFactory:   uowFactory,
		ledgerConfig: ledgerConfig,
		now:          time.Now,
	}
}

// SetClock replaces the time source used for daily claims
func (f *Feature) SetClock(now func() time.Time) {
	f.now = now
}

// Subcommands returns the /bet sub-commands this feature answers
func (f *Feature) Subcommands() map[string]common.SubcommandHandler {
	return map[string]common.SubcommandHandler{
		"balance":     f.handleBalance,
		"leaderboard": f.handleLeaderboard,
		"claim":       f.handleClaim,
		"history":     f.handleHistory,
	}
}
