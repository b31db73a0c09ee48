// Package pool owns the lifetime of the bounded set of database connections.
//
// The pool is built once at start-up. If the database cannot be reached at
// that moment the Manager stays degraded for the life of the process: every
// acquire fails with an unavailable error and no reconnection is attempted.
package pool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"asistencia-api/internal/apperr"
	"asistencia-api/pkg/sl"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var ErrNotInitialized = errors.New("database pool is not initialized")

type Config struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// DSN renders the driver specific connection string.
func (c Config) DSN() (string, error) {
	const op = "storage.pool.Config.DSN"

	switch c.Driver {
	case DriverPostgres:
		port := c.Port
		if port == 0 {
			port = 5432
		}
		q := url.Values{}
		if c.SSLMode != "" {
			q.Set("sslmode", c.SSLMode)
		}
		if c.ConnectTimeout > 0 {
			q.Set("connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(port)),
			Path:     "/" + c.Name,
			RawQuery: q.Encode(),
		}
		return u.String(), nil
	case DriverMySQL:
		port := c.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(port))
		mc.DBName = c.Name
		mc.ParseTime = true
		// report matched rows so an UPDATE that changes nothing is not a miss
		mc.ClientFoundRows = true
		if c.ConnectTimeout > 0 {
			mc.Timeout = c.ConnectTimeout
		}
		return mc.FormatDSN(), nil
	default:
		return "", fmt.Errorf("%s: unsupported driver %q", op, c.Driver)
	}
}

type Manager struct {
	db      *sqlx.DB
	initErr error
}

// New opens the pool and verifies it with a single ping. It never returns
// nil: on failure the returned Manager is degraded and reports the cause
// through Ready.
func New(ctx context.Context, cfg Config, log *slog.Logger) *Manager {
	const op = "storage.pool.New"

	log = log.With(slog.String("op", op), slog.String("driver", cfg.Driver))

	db, err := open(ctx, cfg)
	if err != nil {
		log.Error("Failed to create database pool, database routes will answer 503", sl.Err(err))
		return &Manager{initErr: fmt.Errorf("%s: %w", op, err)}
	}

	log.Info("Database pool ready",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Name),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return &Manager{db: db}
}

func open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Wrap builds a ready Manager around an already opened handle.
func Wrap(db *sqlx.DB) *Manager {
	if db == nil {
		return &Manager{initErr: ErrNotInitialized}
	}
	return &Manager{db: db}
}

// Ready reports why the pool cannot hand out connections, or nil.
func (m *Manager) Ready() error {
	if m == nil {
		return apperr.Unavailable(ErrNotInitialized)
	}
	if m.db == nil {
		cause := m.initErr
		if cause == nil {
			cause = ErrNotInitialized
		}
		return apperr.Unavailable(cause)
	}
	return nil
}

// Acquire takes a dedicated connection, blocking while the pool is
// exhausted. The caller must Close it.
func (m *Manager) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	const op = "storage.pool.Acquire"

	if err := m.Ready(); err != nil {
		return nil, err
	}

	conn, err := m.db.Connx(ctx)
	if err != nil {
		return nil, apperr.Unavailable(fmt.Errorf("%s: %w", op, err))
	}

	return conn, nil
}

// WithConn runs fn on an acquired connection and releases it on every exit
// path, panics included.
func (m *Manager) WithConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

func (m *Manager) Ping(ctx context.Context) error {
	if err := m.Ready(); err != nil {
		return err
	}
	if err := m.db.PingContext(ctx); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

// DB exposes the underlying handle, nil while degraded.
func (m *Manager) DB() *sqlx.DB {
	if m == nil {
		return nil
	}
	return m.db
}

func (m *Manager) Stats() sql.DBStats {
	if m == nil || m.db == nil {
		return sql.DBStats{}
	}
	return m.db.Stats()
}

func (m *Manager) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}
