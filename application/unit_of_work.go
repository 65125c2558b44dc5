package application

import (
	"context"

	"betbot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events.
	// It is a no-op after Commit, so it can always be deferred.
	Rollback() error

	// Repository getters
	UserRepository() interfaces.UserRepository
	BalanceHistoryRepository() interfaces.BalanceHistoryRepository
	GuildSettingsRepository() interfaces.GuildSettingsRepository
	BetRepository() interfaces.BetRepository
	BetEntryRepository() interfaces.BetEntryRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TransactionalEventPublisher holds events until the surrounding transaction finishes
type TransactionalEventPublisher interface {
	interfaces.EventPublisher
	Flush(ctx context.Context) error
	Discard()
}
