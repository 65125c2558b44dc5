package settings

import (
	"betbot/application"
	"betbot/bot/common"
	"betbot/domain/services"
)

// Feature handles the per-guild betting channel
type Feature struct {
	uowFactory   application.UnitOfWorkFactory
	ledgerConfig services.LedgerConfig
}

// NewFeature creates a new settings feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory, ledgerConfig services.LedgerConfig) *Feature {
	return &Feature{
		uowFactory:   uowFactory,
		ledgerConfig: ledgerConfig,
	}
}

// Subcommands returns the /bet sub-commands this feature answers
func (f *Feature) Subcommands() map[string]common.SubcommandHandler {
	return map[string]common.SubcommandHandler{
		"setchannel": f.handleSetChannel,
	}
}
