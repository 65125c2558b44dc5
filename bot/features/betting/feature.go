package betting

import (
	"betbot/application"
	"betbot/bot/common"
	"betbot/domain/services"
)

// Feature answers the wager lifecycle sub-commands
type Feature struct {
	uowFactory   application.UnitOfWorkFactory
	ledgerConfig services.LedgerConfig
}

// New creates a new betting feature instance
func New(uowFactory application.UnitOfWorkFactory, ledgerConfig services.LedgerConfig) *Feature {
	return &Feature{
		uowFactory:   uowFactory,
		ledgerConfig: ledgerConfig,
	}
}

// Subcommands returns the /bet sub-commands this feature answers
func (f *Feature) Subcommands() map[string]common.SubcommandHandler {
	return map[string]common.SubcommandHandler{
		"create": f.handleCreate,
		"list":   f.handleList,
		"join":   f.handleJoin,
		"status": f.handleStatus,
		"close":  f.handleClose,
		"settle": f.handleSettle,
	}
}
