package embedded

import (
	"context"
	"fmt"

	"betbot/application"
	"betbot/domain/interfaces"
	"betbot/events"

	"gorm.io/gorm"
)

// unitOfWork implements the UnitOfWork interface over a gorm transaction
type unitOfWork struct {
	db                 *gorm.DB
	tx                 *gorm.DB
	ctx                context.Context
	transactionalBus   application.TransactionalEventPublisher
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	guildSettingsRepo  interfaces.GuildSettingsRepository
	betRepo            interfaces.BetRepository
	betEntryRepo       interfaces.BetEntryRepository
}

type unitOfWorkFactory struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewUnitOfWorkFactory creates a UnitOfWork factory for the embedded store
func NewUnitOfWorkFactory(db *gorm.DB, publisher events.Publisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:        db,
		publisher: publisher,
	}
}

// Create returns a unit of work whose events are delivered to the factory's publisher after commit
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.publisher),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = NewUserRepository(tx)
	u.balanceHistoryRepo = NewBalanceHistoryRepository(tx)
	u.guildSettingsRepo = NewGuildSettingsRepository(tx)
	u.betRepo = NewBetRepository(tx)
	u.betEntryRepo = NewBetEntryRepository(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit().Error
	u.tx = nil
	if err != nil {
		u.transactionalBus.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return u.transactionalBus.Flush(u.ctx)
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback().Error
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

func (u *unitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	if u.balanceHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceHistoryRepo
}

func (u *unitOfWork) GuildSettingsRepository() interfaces.GuildSettingsRepository {
	if u.guildSettingsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildSettingsRepo
}

func (u *unitOfWork) BetRepository() interfaces.BetRepository {
	if u.betRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.betRepo
}

func (u *unitOfWork) BetEntryRepository() interfaces.BetEntryRepository {
	if u.betEntryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.betEntryRepo
}

func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.transactionalBus
}
