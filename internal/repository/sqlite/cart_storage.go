package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nikolayk812/hgshop/internal/port"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS cart_records (
	owner_id    TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	payload     BLOB NOT NULL,
	updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (owner_id, storage_key)
)`

// CartStorage keeps cart records in a local sqlite file.
type CartStorage struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*CartStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	// sqlite serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.ExecContext schema: %w", err)
	}

	return &CartStorage{db: db}, nil
}

func (s *CartStorage) Close() error {
	return s.db.Close()
}

func (s *CartStorage) Get(ctx context.Context, ownerID, key string) ([]byte, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cart_records WHERE owner_id = ? AND storage_key = ?`,
		ownerID, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.QueryRowContext: %w", err)
	}

	return payload, nil
}

func (s *CartStorage) Put(ctx context.Context, ownerID, key string, value []byte) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_records (owner_id, storage_key, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (owner_id, storage_key)
		DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		ownerID, key, value,
	)
	if err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

func (s *CartStorage) Delete(ctx context.Context, ownerID, key string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_records WHERE owner_id = ? AND storage_key = ?`,
		ownerID, key,
	)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("res.RowsAffected: %w", err)
	}

	return n > 0, nil
}
