package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultMySQLTable is the table MySQL stores its keys in.
const DefaultMySQLTable = "storefront_kv"

// MySQL is a Store backed by a single key/value table.
type MySQL struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

// NewMySQL wraps an open connection pool. An empty table name selects
// DefaultMySQLTable.
func NewMySQL(db *sql.DB, table string) *MySQL {
	if table == "" {
		table = DefaultMySQLTable
	}
	return &MySQL{db: db, table: table, now: time.Now}
}

// Migrate creates the key/value table if it does not exist.
func (s *MySQL) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			storage_key VARCHAR(191) NOT NULL PRIMARY KEY,
			value MEDIUMBLOB NOT NULL,
			updated_at DATETIME NOT NULL
		)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

func (s *MySQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	query := fmt.Sprintf("SELECT value FROM %s WHERE storage_key = ?", s.table)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *MySQL) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (storage_key, value, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			value = VALUES(value),
			updated_at = VALUES(updated_at)`, s.table)
	if _, err := s.db.ExecContext(ctx, query, key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *MySQL) Remove(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE storage_key = ?", s.table)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
