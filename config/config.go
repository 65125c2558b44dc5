package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"betbot/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Bot transport modes
const (
	BotModeWebhook = "webhook"
	BotModeGateway = "gateway"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	AppID        string
	PublicKey    string // hex encoded ed25519 key used to verify interaction requests
	GuildID      string // Optional guild for guild-scoped command registration
	BotMode      string

	// HTTP configuration
	HTTPAddr string

	// Storage configuration
	StoreDriver  string
	DatabaseURL      string
	DatabaseName     string
	DatabaseMaxConns int32
	DBPath           string

	// Ledger configuration
	StartingBalance int64
	DailyReward     int64

	// Presentation
	DefaultLocale string

	// NATS configuration
	NATSServers string // Empty disables event forwarding

	// Logging
	LogLevel  string
	LogFormat string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// Postgres returns the settings of the Postgres store
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		URL:            c.DatabaseURL,
		Database:       c.DatabaseName,
		MaxConns:       c.DatabaseMaxConns,
		ConnectTimeout: 10 * time.Second,
	}
}

// LoadStore reads the environment but only validates the storage settings.
// Maintenance commands such as migrate use it so they need no Discord credentials.
func LoadStore() (*Config, error) {
	config := fromEnv()
	if err := config.validateStore(); err != nil {
		return nil, err
	}
	return config, nil
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := fromEnv()
	if config.Environment != "test" {
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	return config, nil
}

func fromEnv() *Config {
	// A missing .env file is fine, real deployments use the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		AppID:        os.Getenv("DISCORD_APP_ID"),
		PublicKey:    os.Getenv("DISCORD_PUBLIC_KEY"),
		GuildID:      os.Getenv("GUILD_ID"),
		BotMode:      getEnvWithDefault("BOT_MODE", BotModeWebhook),

		// HTTP
		HTTPAddr: os.Getenv("HTTP_ADDR"),

		// Storage
		StoreDriver:  os.Getenv("STORE_DRIVER"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		DBPath:       getEnvWithDefault("DB_PATH", "bets.sqlite"),

		// Ledger settings with defaults
		StartingBalance: 100,
		DailyReward:     10,

		DefaultLocale: getEnvWithDefault("DEFAULT_LOCALE", "en"),

		// NATS
		NATSServers: os.Getenv("NATS_URL"),

		// Logging
		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.AppID == "" {
		config.AppID = os.Getenv("APP_ID")
	}
	if config.PublicKey == "" {
		config.PublicKey = os.Getenv("PUBLIC_KEY")
	}
	if config.HTTPAddr == "" {
		config.HTTPAddr = ":" + getEnvWithDefault("PORT", "3000")
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsed, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsed
		}
	}
	if reward := os.Getenv("DAILY_REWARD"); reward != "" {
		if parsed, err := strconv.ParseInt(reward, 10, 64); err == nil {
			config.DailyReward = parsed
		}
	}
	if maxConns := os.Getenv("DATABASE_MAX_CONNS"); maxConns != "" {
		if parsed, err := strconv.ParseInt(maxConns, 10, 32); err == nil {
			config.DatabaseMaxConns = int32(parsed)
		}
	}

	// Postgres when a server is configured, the embedded file otherwise
	if config.StoreDriver == "" {
		if config.DatabaseURL != "" {
			config.StoreDriver = StoreDriverPostgres
		} else {
			config.StoreDriver = StoreDriverSQLite
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	return config
}

// Validate checks that the settings required by the selected mode and driver are present
func (c *Config) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLedgerAndBot()
}

func (c *Config) validateStore() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
			return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	case StoreDriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c *Config) validateLedgerAndBot() error {
	switch c.BotMode {
	case BotModeWebhook:
		if c.PublicKey == "" {
			return fmt.Errorf("DISCORD_PUBLIC_KEY is required in webhook mode")
		}
	case BotModeGateway:
		if c.DiscordToken == "" {
			return fmt.Errorf("DISCORD_TOKEN is required in gateway mode")
		}
	default:
		return fmt.Errorf("unknown BOT_MODE %q", c.BotMode)
	}

	if c.StartingBalance < 0 {
		return fmt.Errorf("STARTING_BALANCE cannot be negative")
	}
	if c.DailyReward <= 0 {
		return fmt.Errorf("DAILY_REWARD must be positive")
	}
	return nil
}

// ConfigureLogging applies the configured level and format to the global logrus logger
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	log.SetOutput(os.Stdout)
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		BotMode:         BotModeWebhook,
		StoreDriver:     StoreDriverSQLite,
		DBPath:          ":memory:",
		StartingBalance: 100,
		DailyReward:     10,
		DefaultLocale:   "en",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}
