package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// PostgresConfig locates the Postgres store. Database, when set, replaces the
// database of URL so one server URL can serve several environments.
type PostgresConfig struct {
	URL            string
	Database       string
	MaxConns       int32
	ConnectTimeout time.Duration
}

// ConnString returns the connection string with Database applied. URLs without
// an sslmode get sslmode=disable; key=value DSNs are extended with dbname.
func (c PostgresConfig) ConnString() (string, error) {
	if c.URL == "" {
		return "", fmt.Errorf("postgres URL is empty")
	}

	if !strings.Contains(c.URL, "://") {
		if c.Database == "" {
			return c.URL, nil
		}
		return c.URL + " dbname=" + c.Database, nil
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("invalid postgres URL: %w", err)
	}
	if c.Database != "" {
		u.Path = "/" + c.Database
	}

	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// DB is the pgx pool backing the Postgres repositories
type DB struct {
	*pgxpool.Pool
}

// OpenPostgres connects a pool. Every session runs in UTC since claim cooldowns
// are computed from stored timestamps.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*DB, error) {
	connString, err := cfg.ConnString()
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "betbot"
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres at %s: %w", poolConfig.ConnConfig.Host, err)
	}

	log.WithFields(log.Fields{
		"host":      poolConfig.ConnConfig.Host,
		"database":  poolConfig.ConnConfig.Database,
		"max_conns": poolConfig.MaxConns,
	}).Info("Connected to postgres")

	return &DB{Pool: pool}, nil
}
