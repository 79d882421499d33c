package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/symbol-chain/catapult-gateway/pkg/retry"
	"github.com/symbol-chain/catapult-gateway/pkg/utils"
)

// ErrNotImplemented is returned by collaborators this module carries only as
// an interface (the peer-node binary client) per the engine's documented
// non-goals.
var ErrNotImplemented = errors.New("store: not implemented")

// Client is the document store adapter's connection to the backing
// ClickHouse database. It is the columnar substitute for the document
// database spec.md describes: the read-only operations in query.go
// (FindOne, Find, CountDocuments) are a thin SQL-building layer over it.
// Aggregations are nested SELECTs built in pkg/entities and run via Find.
type Client struct {
	Logger   *zap.Logger
	Conn     driver.Conn
	Database string

	// queryPool bounds the number of ClickHouse queries in flight across all
	// HTTP requests, mirroring the DSA's "owns a pool of store connections"
	// resource-sharing responsibility (spec.md §5).
	queryPool pond.Pool
}

// Config carries the connection and pool settings read from the
// environment (spec.md §6.2 "db.url", "db.name").
type Config struct {
	DSN             string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ConfigFromEnv builds a Config from the recognized environment options
// (SPEC_FULL.md §6.2).
func ConfigFromEnv() Config {
	return Config{
		DSN:             utils.Env("CLICKHOUSE_ADDR", "clickhouse://localhost:9000?sslmode=disable"),
		Database:        utils.Env("CLICKHOUSE_DATABASE", "catapult"),
		MaxOpenConns:    utils.EnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    utils.EnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 50),
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// New connects to ClickHouse with exponential backoff around the initial
// ping, then wraps the connection with a bounded query pool.
func New(ctx context.Context, logger *zap.Logger, cfg Config) (*Client, error) {
	connCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	username, password := extractCredentials(cfg.DSN)
	replicas := extractReplicas(cfg.DSN)

	options := &clickhouse.Options{
		Addr:             replicas,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: username,
			Password: password,
		},
		DialTimeout:     30 * time.Second,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		Settings: clickhouse.Settings{
			// 64-bit integers must survive aggregation without being
			// widened/narrowed, per spec.md §4.1.
			"output_format_json_quote_64bit_integers": 0,
		},
	}

	client := &Client{Logger: logger, Database: cfg.Database}

	retryCfg := retry.DefaultConfig()
	err := retry.WithBackoff(connCtx, retryCfg, logger, "clickhouse_connection", func() error {
		conn, openErr := clickhouse.Open(options)
		if openErr != nil {
			return fmt.Errorf("open clickhouse connection: %w", openErr)
		}
		if pingErr := conn.Ping(connCtx); pingErr != nil {
			return fmt.Errorf("ping clickhouse: %w", pingErr)
		}
		client.Conn = conn
		return nil
	})
	if err != nil {
		return nil, err
	}

	client.queryPool = pond.NewPool(cfg.MaxOpenConns, pond.WithQueueSize(cfg.MaxOpenConns*4))

	logger.Info("clickhouse connection established",
		zap.String("database", cfg.Database),
		zap.Strings("replicas", replicas),
		zap.Int("max_open_conns", cfg.MaxOpenConns))

	return client, nil
}

// run submits fn to the bounded query pool and blocks until it has run (or
// the submission is dropped because ctx was already done), grounded on the
// teacher's pool.NewGroupContext(ctx)/group.Submit/group.Wait fan-out
// pattern, repurposed here for a single bounded task instead of a fan-out
// group.
func (c *Client) run(ctx context.Context, fn func() error) error {
	group := c.queryPool.NewGroupContext(ctx)
	group.Submit(func() {
		if ctx.Err() != nil {
			return
		}
		_ = fn()
	})
	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		return err
	}
	return ctx.Err()
}

// Select runs a query expected to return zero or more rows into dest,
// routed through the bounded query pool.
func (c *Client) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	var selErr error
	err := c.run(ctx, func() error {
		selErr = c.Conn.Select(ctx, dest, query, args...)
		return selErr
	})
	if selErr != nil {
		return selErr
	}
	return err
}

// QueryRow runs a query expected to return at most one row, routed through
// the bounded query pool.
func (c *Client) QueryRow(ctx context.Context, query string, args ...interface{}) driver.Row {
	var row driver.Row
	_ = c.run(ctx, func() error {
		row = c.Conn.QueryRow(ctx, query, args...)
		return nil
	})
	return row
}

// Exec runs a statement with no result rows, routed through the bounded
// query pool.
func (c *Client) Exec(ctx context.Context, query string, args ...interface{}) error {
	var execErr error
	err := c.run(ctx, func() error {
		execErr = c.Conn.Exec(ctx, query, args...)
		return execErr
	})
	if execErr != nil {
		return execErr
	}
	return err
}

// Ping verifies connectivity, used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.Conn.Ping(ctx)
}

// Close releases the underlying connection and stops the query pool.
func (c *Client) Close() error {
	c.queryPool.StopAndWait()
	return c.Conn.Close()
}

// IsNoRows reports whether err signals "no matching row", the ClickHouse
// driver's equivalent of sql.ErrNoRows.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// SanitizeName adapts an arbitrary identifier into a ClickHouse-safe
// database/table name.
func SanitizeName(id string) string {
	s := strings.ToLower(id)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, ".", "_")
	return s
}

func extractReplicas(dsn string) []string {
	cleaned := strings.TrimPrefix(dsn, "clickhouse://")
	cleaned = strings.TrimPrefix(cleaned, "tcp://")

	hostPart := cleaned
	if idx := strings.Index(cleaned, "@"); idx != -1 {
		hostPart = cleaned[idx+1:]
	}
	if idx := strings.IndexAny(hostPart, "/?"); idx != -1 {
		hostPart = hostPart[:idx]
	}

	replicas := strings.Split(hostPart, ",")
	result := make([]string, 0, len(replicas))
	for _, r := range replicas {
		r = strings.TrimSpace(r)
		if r != "" {
			result = append(result, r)
		}
	}
	if len(result) == 0 {
		return []string{"localhost:9000"}
	}
	return result
}

func extractCredentials(dsn string) (string, string) {
	dsn = strings.TrimPrefix(dsn, "clickhouse://")
	dsn = strings.TrimPrefix(dsn, "tcp://")

	atIdx := strings.Index(dsn, "@")
	if atIdx == -1 {
		return "default", ""
	}
	credentials := dsn[:atIdx]
	colonIdx := strings.Index(credentials, ":")
	if colonIdx == -1 {
		return credentials, ""
	}
	return credentials[:colonIdx], credentials[colonIdx+1:]
}
