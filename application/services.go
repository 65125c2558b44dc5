package application

import (
	"context"
	"fmt"

	"betbot/domain/interfaces"
	"betbot/domain/services"
)

// Services bundles the domain services bound to one unit of work
type Services struct {
	Ledger        interfaces.LedgerService
	GuildSettings interfaces.GuildSettingsService
	Bets          interfaces.BetService
	Settlement    interfaces.SettlementService
}

// NewServices instantiates the domain services with repositories from uow
func NewServices(uow UnitOfWork, ledgerConfig services.LedgerConfig) *Services {
	ledger := services.NewLedgerService(
		uow.UserRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		ledgerConfig,
	)
	guildSettings := services.NewGuildSettingsService(uow.GuildSettingsRepository())

	return &Services{
		Ledger:        ledger,
		GuildSettings: guildSettings,
		Bets: services.NewBetService(
			uow.BetRepository(),
			uow.BetEntryRepository(),
			ledger,
			guildSettings,
			uow.EventBus(),
		),
		Settlement: services.NewSettlementService(
			uow.BetRepository(),
			uow.BetEntryRepository(),
			ledger,
			guildSettings,
			uow.EventBus(),
		),
	}
}

// RunInUnitOfWork runs fn inside a fresh unit of work and commits when fn succeeds.
// Any error from fn rolls the transaction back and drops its events.
func RunInUnitOfWork(ctx context.Context, factory UnitOfWorkFactory, ledgerConfig services.LedgerConfig, fn func(svc *Services) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(NewServices(uow, ledgerConfig)); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
