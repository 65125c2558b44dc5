package repository

import (
	"context"
	"sync"
	"testing"

	"betbot/domain/events"
	"betbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	publisher := &recordingPublisher{}
	factory := NewUnitOfWorkFactory(testDB.DB, publisher)
	ctx := context.Background()

	t.Run("rollback discards writes and events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		_, _, err := uow.UserRepository().GetOrCreate(ctx, 42, 100)
		require.NoError(t, err)
		require.NoError(t, uow.EventBus().Publish(events.UserCreatedEvent{UserID: 42, InitialBalance: 100}))

		require.NoError(t, uow.Rollback())
		assert.Equal(t, 0, publisher.count())

		user, err := NewUserRepository(testDB.DB).GetByID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("commit persists writes and flushes events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		_, _, err := uow.UserRepository().GetOrCreate(ctx, 42, 100)
		require.NoError(t, err)
		require.NoError(t, uow.EventBus().Publish(events.UserCreatedEvent{UserID: 42, InitialBalance: 100}))

		require.NoError(t, uow.Commit())
		assert.Equal(t, 1, publisher.count())

		user, err := NewUserRepository(testDB.DB).GetByID(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(100), user.Balance)
	})

	t.Run("repositories require begin", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() { uow.UserRepository() })
	})
}
