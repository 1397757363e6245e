package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"           // PostgreSQL driver
	"github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/platinummonkey/quill/pkg/storage"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// SQLStore implements posts.Store and auth.UserSource over database/sql
type SQLStore struct {
	db     *sql.DB
	driver string
}

// New opens a store for the configured driver and verifies connectivity
func New(config storage.Config) (*SQLStore, error) {
	var (
		db  *sql.DB
		err error
	)

	switch config.Driver {
	case DriverPostgres:
		db, err = sql.Open("postgres", config.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		db.SetMaxOpenConns(config.PostgresMaxConns)
		db.SetMaxIdleConns(config.PostgresMinConns)
		db.SetConnMaxLifetime(1 * time.Hour)
		db.SetConnMaxIdleTime(10 * time.Minute)
	case DriverSQLite:
		// _cslike keeps LIKE case-sensitive on every pooled connection,
		// matching PostgreSQL semantics for title search.
		dsn := config.SQLitePath + "?_fk=1&_cslike=1"
		db, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", config.Driver)
	}

	timeout := config.PostgresTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLStore{db: db, driver: config.Driver}, nil
}

// NewWithDB wraps an existing database handle. Used by tests.
func NewWithDB(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// DB exposes the underlying handle for health checks and pool metrics
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Ping checks database connectivity
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a uniqueness constraint failure
// from either driver.
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// escapeLike escapes LIKE metacharacters so a query string only ever
// matches literally.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}
