package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ErrNoDSN is returned when the MySQL driver is selected without a DSN.
var ErrNoDSN = errors.New("DB_DSN_PRIMARY is not set")

// PoolConfig holds the connection pool limits.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPool mirrors the limits the storefront API has always run with.
var DefaultPool = PoolConfig{
	MaxOpenConns:    25,
	MaxIdleConns:    25,
	ConnMaxLifetime: 5 * time.Minute,
}

// OpenDBWithDSN creates and verifies a MySQL connection pool.
func OpenDBWithDSN(ctx context.Context, dsn string, pool PoolConfig, log *slog.Logger) (*sql.DB, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}

	// 1. Open a new connection pool.
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// 2. Configure the connection pool settings.
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	// 3. Ping the database to verify the connection.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Error("database ping failed", slog.Any("err", err))
		_ = db.Close()
		return nil, err
	}

	log.Info("database connection pool established")
	return db, nil
}
