package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/hgshop/internal/db"
	"github.com/nikolayk812/hgshop/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartStorage {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartStorage {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) Get(ctx context.Context, ownerID, key string) ([]byte, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	row, err := r.q.GetCartRecord(ctx, db.GetCartRecordParams{
		OwnerID:    ownerID,
		StorageKey: key,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("q.GetCartRecord: %w", err)
	}

	return row.Payload, nil
}

func (r *cartRepository) Put(ctx context.Context, ownerID, key string, value []byte) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		err := q.UpsertCartRecord(ctx, db.UpsertCartRecordParams{
			OwnerID:    ownerID,
			StorageKey: key,
			Payload:    value,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.UpsertCartRecord: %w", err)
		}
		return struct{}{}, nil
	})

	return err
}

func (r *cartRepository) Delete(ctx context.Context, ownerID, key string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteCartRecord(ctx, db.DeleteCartRecordParams{
		OwnerID:    ownerID,
		StorageKey: key,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartRecord: %w", err)
	}

	return rowsAffected > 0, nil
}
