package repository

import (
	"context"
	"path/filepath"
	"testing"

	"betbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, store *Store, userID int64) {
	t.Helper()
	ctx := context.Background()

	uow := store.UnitOfWorkFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	_, created, err := uow.UserRepository().GetOrCreate(ctx, userID, 100)
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, uow.Commit())
}

func TestOpenStore_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bets.sqlite")
	cfg := StoreConfig{Driver: DriverSQLite, SQLitePath: path}
	publisher := &recordingPublisher{}

	store, err := OpenStore(context.Background(), cfg, publisher)
	require.NoError(t, err)
	createUser(t, store, 7)
	require.NoError(t, store.Close())

	// Reopening migrates again and keeps the data
	store, err = OpenStore(context.Background(), cfg, publisher)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	uow := store.UnitOfWorkFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(100), user.Balance)
}

func TestOpenStore_Postgres(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	store, err := OpenStore(context.Background(), StoreConfig{
		Driver:   DriverPostgres,
		Postgres: testDB.Config,
	}, &recordingPublisher{})
	require.NoError(t, err)
	defer store.Close()

	createUser(t, store, 8)

	user, err := NewUserRepository(testDB.DB).GetByID(context.Background(), 8)
	require.NoError(t, err)
	require.NotNil(t, user)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), StoreConfig{Driver: "mysql"}, nil)
	assert.ErrorContains(t, err, `unknown store driver "mysql"`)
}
