package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MySQLBackend persists entries in the client_storage table.
type MySQLBackend struct {
	DB  *sql.DB
	TTL time.Duration
}

const clientStorageDDL = `
CREATE TABLE IF NOT EXISTS client_storage (
	scope VARCHAR(64) NOT NULL,
	k VARCHAR(64) NOT NULL,
	v MEDIUMTEXT NOT NULL,
	expires_at DATETIME NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	PRIMARY KEY (scope, k),
	KEY idx_expires (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

func (b MySQLBackend) EnsureTable(ctx context.Context) error {
	if b.DB == nil {
		return fmt.Errorf("client storage db is not configured")
	}
	_, err := b.DB.ExecContext(ctx, clientStorageDDL)
	return err
}

func (b MySQLBackend) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var value string
	err := b.DB.QueryRowContext(ctx, `
		SELECT v FROM client_storage
		WHERE scope = ? AND k = ? AND (expires_at IS NULL OR expires_at > ?)
		LIMIT 1
	`, scope, key, time.Now().UTC()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read client storage: %w", err)
	}
	return value, true, nil
}

func (b MySQLBackend) Set(ctx context.Context, scope, key, value string) error {
	var expires any
	if b.TTL > 0 {
		expires = time.Now().UTC().Add(b.TTL)
	}
	_, err := b.DB.ExecContext(ctx, `
		INSERT INTO client_storage (scope, k, v, expires_at) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE v = VALUES(v), expires_at = VALUES(expires_at)
	`, scope, key, value, expires)
	if err != nil {
		return fmt.Errorf("write client storage: %w", err)
	}
	return nil
}

func (b MySQLBackend) Remove(ctx context.Context, scope, key string) error {
	if _, err := b.DB.ExecContext(ctx, `DELETE FROM client_storage WHERE scope = ? AND k = ?`, scope, key); err != nil {
		return fmt.Errorf("delete client storage: %w", err)
	}
	return nil
}

func (b MySQLBackend) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := b.DB.ExecContext(ctx, `DELETE FROM client_storage WHERE expires_at IS NOT NULL AND expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge client storage: %w", err)
	}
	return res.RowsAffected()
}
