package embedded

import (
	"context"
	"testing"
	"time"

	"betbot/database"
	"betbot/domain/entities"
	domainevents "betbot/domain/events"
	"betbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteConnection(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.CloseSQLite(db)
	})

	require.NoError(t, Migrate(db))
	return db
}

func TestUserRepository(t *testing.T) {
	db := setupStore(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("lazy creation", func(t *testing.T) {
		missing, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, missing)

		user, created, err := repo.GetOrCreate(ctx, 1, 100)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(100), user.Balance)

		user, created, err = repo.GetOrCreate(ctx, 1, 100)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(100), user.Balance)
	})

	t.Run("conditional debit", func(t *testing.T) {
		balance, ok, err := repo.DeductBalance(ctx, 1, 60)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(40), balance)

		_, ok, err = repo.DeductBalance(ctx, 1, 60)
		require.NoError(t, err)
		assert.False(t, ok)

		balance, err = repo.AddBalance(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(45), balance)
	})

	t.Run("daily claim cooldown", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		balance, ok, err := repo.ClaimDaily(ctx, 1, 10, now, now.Add(-entities.DailyClaimCooldown))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(55), balance)

		later := now.Add(23 * time.Hour)
		_, ok, err = repo.ClaimDaily(ctx, 1, 10, later, later.Add(-entities.DailyClaimCooldown))
		require.NoError(t, err)
		assert.False(t, ok)

		user, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, user.LastClaimAt)
		assert.True(t, now.Equal(*user.LastClaimAt))
	})

	t.Run("leaderboard order", func(t *testing.T) {
		_, _, err := repo.GetOrCreate(ctx, 2, 500)
		require.NoError(t, err)
		_, _, err = repo.GetOrCreate(ctx, 3, 55)
		require.NoError(t, err)

		users, err := repo.GetTopByBalance(ctx, 10)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, []int64{2, 1, 3}, []int64{users[0].UserID, users[1].UserID, users[2].UserID})
	})
}

func TestBetRepositories(t *testing.T) {
	db := setupStore(t)
	bets := NewBetRepository(db)
	entries := NewBetEntryRepository(db)
	ctx := context.Background()

	bet := &entities.Bet{GuildID: 1, ChannelID: 2, Title: "Finale", Amount: 10, OwnerID: 3}
	require.NoError(t, bets.Create(ctx, bet))
	require.NotZero(t, bet.ID)

	second := &entities.Bet{GuildID: 1, ChannelID: 2, Title: "Halbfinale", Amount: 5, OwnerID: 3}
	require.NoError(t, bets.Create(ctx, second))

	open, err := bets.ListOpen(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, second.ID, open[0].ID)

	for i, choice := range []string{"Rot", "Blau", "rot"} {
		require.NoError(t, entries.Create(ctx, &entities.BetEntry{
			BetID:      bet.ID,
			UserID:     int64(10 - i),
			Choice:     choice,
			ChoiceNorm: entities.NormalizeChoice(choice),
		}))
	}

	err = entries.Create(ctx, &entities.BetEntry{BetID: bet.ID, UserID: 10, Choice: "Blau", ChoiceNorm: "blau"})
	assert.ErrorIs(t, err, entities.ErrAlreadyJoined)

	list, err := entries.GetByBet(ctx, bet.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{10, 9, 8}, []int64{list[0].UserID, list[1].UserID, list[2].UserID})

	count, err := entries.CountByBet(ctx, bet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	closed, err := bets.Close(ctx, bet.ID)
	require.NoError(t, err)
	assert.True(t, closed)
	closed, err = bets.Close(ctx, bet.ID)
	require.NoError(t, err)
	assert.False(t, closed)

	marked, err := bets.MarkSettled(ctx, bet.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, marked)
	marked, err = bets.MarkSettled(ctx, bet.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, marked)

	fetched, err := bets.GetByIDForUpdate(ctx, bet.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BetStateSettled, fetched.State())

	open, err = bets.ListOpen(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, open, 1)
}

func TestBetEntriesBelongToBet(t *testing.T) {
	db := setupStore(t)
	bets := NewBetRepository(db)
	entries := NewBetEntryRepository(db)
	ctx := context.Background()

	err := entries.Create(ctx, &entities.BetEntry{BetID: 999, UserID: 1, Choice: "A", ChoiceNorm: "a"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrAlreadyJoined)

	bet := &entities.Bet{GuildID: 1, ChannelID: 2, Title: "Finale", Amount: 10, OwnerID: 3}
	require.NoError(t, bets.Create(ctx, bet))
	require.NoError(t, entries.Create(ctx, &entities.BetEntry{BetID: bet.ID, UserID: 1, Choice: "A", ChoiceNorm: "a"}))

	require.NoError(t, db.Exec("DELETE FROM bets WHERE id = ?", bet.ID).Error)

	count, err := entries.CountByBet(ctx, bet.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGuildSettingsAndHistory(t *testing.T) {
	db := setupStore(t)
	ctx := context.Background()

	settings := NewGuildSettingsRepository(db)
	require.NoError(t, settings.Upsert(ctx, &entities.GuildSettings{GuildID: 1, BettingChannelID: 2}))
	require.NoError(t, settings.Upsert(ctx, &entities.GuildSettings{GuildID: 1, BettingChannelID: 3}))

	got, err := settings.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.BettingChannelID)

	history := NewBalanceHistoryRepository(db)
	betID := int64(7)
	require.NoError(t, history.Record(ctx, &entities.BalanceHistory{
		UserID: 1, BalanceBefore: 0, BalanceAfter: 100, ChangeAmount: 100,
		TransactionType: entities.TransactionTypeInitial,
	}))
	require.NoError(t, history.Record(ctx, &entities.BalanceHistory{
		UserID: 1, BalanceBefore: 100, BalanceAfter: 90, ChangeAmount: -10,
		TransactionType: entities.TransactionTypeBetStake, RelatedBetID: &betID,
	}))

	rows, err := history.GetByUser(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entities.TransactionTypeBetStake, rows[0].TransactionType)
	require.NotNil(t, rows[0].RelatedBetID)
	assert.Equal(t, betID, *rows[0].RelatedBetID)
}

func TestUnitOfWork(t *testing.T) {
	db := setupStore(t)
	ctx := context.Background()

	bus := events.NewBus()
	delivered := make(chan domainevents.Event, 4)
	bus.SubscribeAll(func(ctx context.Context, event domainevents.Event) {
		delivered <- event
	})
	factory := NewUnitOfWorkFactory(db, bus)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, _, err := uow.UserRepository().GetOrCreate(ctx, 5, 100)
	require.NoError(t, err)
	require.NoError(t, uow.EventBus().Publish(domainevents.UserCreatedEvent{UserID: 5, InitialBalance: 100}))
	require.NoError(t, uow.Rollback())
	bus.Wait()
	assert.Len(t, delivered, 0)

	user, err := NewUserRepository(db).GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, user)

	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, _, err = uow.UserRepository().GetOrCreate(ctx, 5, 100)
	require.NoError(t, err)
	require.NoError(t, uow.EventBus().Publish(domainevents.UserCreatedEvent{UserID: 5, InitialBalance: 100}))
	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Rollback())
	bus.Wait()
	assert.Len(t, delivered, 1)

	user, err = NewUserRepository(db).GetByID(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, user)
}
