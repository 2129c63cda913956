package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/hgshop/internal/port"
)

type recordKey struct {
	ownerID string
	key     string
}

// CartStorage is an in-memory port.CartStorage. Values are copied in and out.
type CartStorage struct {
	mu      sync.RWMutex
	records map[recordKey][]byte
}

func NewCartStorage() *CartStorage {
	return &CartStorage{
		records: make(map[recordKey][]byte),
	}
}

func (s *CartStorage) Get(_ context.Context, ownerID, key string) ([]byte, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[recordKey{ownerID, key}]
	if !ok {
		return nil, port.ErrNotFound
	}
	return slices.Clone(value), nil
}

func (s *CartStorage) Put(_ context.Context, ownerID, key string, value []byte) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[recordKey{ownerID, key}] = slices.Clone(value)
	return nil
}

func (s *CartStorage) Delete(_ context.Context, ownerID, key string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{ownerID, key}
	if _, ok := s.records[k]; !ok {
		return false, nil
	}
	delete(s.records, k)
	return true, nil
}
