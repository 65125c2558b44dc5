package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"betbot/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestDatabase is a freshly migrated database of the shared test server
type TestDatabase struct {
	DB     *database.DB
	Config database.PostgresConfig
}

// server is started once per test binary and shared by every TestDatabase.
// The testcontainers reaper removes it when the binary exits.
var server struct {
	once  sync.Once
	admin *database.DB
	url   string
	err   error
}

func startServer() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("betbot_admin"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{"test": "betbot-repository"}),
	)
	if err != nil {
		server.err = err
		return
	}

	server.url, server.err = container.ConnectionString(ctx, "sslmode=disable")
	if server.err != nil {
		return
	}
	server.admin, server.err = database.OpenPostgres(ctx, database.PostgresConfig{URL: server.url, MaxConns: 2})
}

// SetupTestDatabase creates and migrates a database of its own for t on the
// shared server, and drops it when t finishes.
// The test is skipped in -short mode since it needs a container runtime.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	server.once.Do(startServer)
	require.NoError(t, server.err, "failed to start the postgres test server")

	ctx := context.Background()
	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ident := pgx.Identifier{name}.Sanitize()

	_, err := server.admin.Exec(ctx, "CREATE DATABASE "+ident)
	require.NoError(t, err)

	testDB := &TestDatabase{
		Config: database.PostgresConfig{URL: server.url, Database: name, MaxConns: 4},
	}
	t.Cleanup(func() {
		if testDB.DB != nil {
			testDB.DB.Close()
		}
		dropCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := server.admin.Exec(dropCtx, "DROP DATABASE IF EXISTS "+ident+" WITH (FORCE)"); err != nil {
			t.Logf("Warning: failed to drop test database %s: %v", name, err)
		}
	})

	require.NoError(t, database.MigratePostgres(testDB.Config))

	testDB.DB, err = database.OpenPostgres(ctx, testDB.Config)
	require.NoError(t, err)

	return testDB
}
