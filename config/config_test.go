package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DISCORD_TOKEN", "DISCORD_APP_ID", "APP_ID", "DISCORD_PUBLIC_KEY", "PUBLIC_KEY", "GUILD_ID",
		"BOT_MODE", "HTTP_ADDR", "PORT", "STORE_DRIVER", "DATABASE_URL", "DATABASE_NAME", "DATABASE_MAX_CONNS", "DB_PATH",
		"STARTING_BALANCE", "DAILY_REWARD", "DEFAULT_LOCALE", "NATS_URL", "LOG_LEVEL", "LOG_FORMAT",
		"ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_PUBLIC_KEY", "abc")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, BotModeWebhook, cfg.BotMode)
	assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "bets.sqlite", cfg.DBPath)
	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, int64(100), cfg.StartingBalance)
	assert.Equal(t, int64(10), cfg.DailyReward)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_MODE", BotModeGateway)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("APP_ID", "123")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("DATABASE_NAME", "bets")
	t.Setenv("PORT", "8080")
	t.Setenv("STARTING_BALANCE", "250")
	t.Setenv("DAILY_REWARD", "not-a-number")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "123", cfg.AppID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, int64(250), cfg.StartingBalance)
	assert.Equal(t, int64(10), cfg.DailyReward)

	connString, err := cfg.Postgres().ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/bets?sslmode=disable", connString)
}

func TestLoadStoreSkipsDiscordSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("DATABASE_MAX_CONNS", "4")

	_, err := load()
	require.Error(t, err, "the bot itself needs a public key")

	cfg, err := LoadStore()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, int32(4), cfg.Postgres().MaxConns)

	t.Setenv("STORE_DRIVER", "mysql")
	_, err = LoadStore()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"webhook without key", func(c *Config) { c.PublicKey = "" }, "DISCORD_PUBLIC_KEY"},
		{"gateway without token", func(c *Config) { c.BotMode = BotModeGateway }, "DISCORD_TOKEN"},
		{"unknown mode", func(c *Config) { c.BotMode = "carrier-pigeon" }, "BOT_MODE"},
		{"postgres without url", func(c *Config) { c.StoreDriver = StoreDriverPostgres }, "DATABASE_URL"},
		{"unknown driver", func(c *Config) { c.StoreDriver = "mysql" }, "STORE_DRIVER"},
		{"negative starting balance", func(c *Config) { c.StartingBalance = -1 }, "STARTING_BALANCE"},
		{"zero daily reward", func(c *Config) { c.DailyReward = 0 }, "DAILY_REWARD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig()
			cfg.PublicKey = "abc"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetReturnsTestConfig(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	testCfg := NewTestConfig()
	SetTestConfig(testCfg)
	assert.Same(t, testCfg, Get())
}
