package port

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// CartStorage is a key-value store scoped by owner. Put overwrites the whole value.
type CartStorage interface {
	Get(ctx context.Context, ownerID, key string) ([]byte, error)
	Put(ctx context.Context, ownerID, key string, value []byte) error
	Delete(ctx context.Context, ownerID, key string) (bool, error)
}
