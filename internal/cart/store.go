package cart

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/nikolayk812/hgshop/internal/port"
	"go.uber.org/zap"
)

// Observer is called after every mutation with a snapshot of the cart.
type Observer func(snapshot domain.Cart)

type Deps struct {
	Catalog   port.Catalog
	Storage   port.CartStorage
	Formatter domain.MoneyFormatter
	Logger    *zap.Logger
}

// Store owns the cart of one owner. It is not safe for concurrent use:
// one Store serves one user action at a time.
type Store struct {
	ownerID string
	deps    Deps
	codec   Codec
	cart    domain.Cart

	observers map[int]Observer
	nextObs   int
}

// Load never fails. Absent, unreadable or corrupt records yield an empty cart.
func Load(ctx context.Context, ownerID string, deps Deps) *Store {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &Store{
		ownerID:   ownerID,
		deps:      deps,
		codec:     Codec{Currency: deps.Catalog.Currency()},
		observers: make(map[int]Observer),
	}

	data, err := deps.Storage.Get(ctx, ownerID, StorageKey)
	switch {
	case errors.Is(err, port.ErrNotFound):
		return s
	case err != nil:
		deps.Logger.Error("cart record read failed, starting empty",
			zap.String("owner_id", ownerID), zap.Error(err))
		return s
	}

	c, err := s.codec.Decode(data)
	if err != nil {
		deps.Logger.Warn("cart record is corrupt, starting empty",
			zap.String("owner_id", ownerID), zap.Error(err))

		if _, delErr := deps.Storage.Delete(ctx, ownerID, StorageKey); delErr != nil {
			deps.Logger.Error("corrupt cart record delete failed",
				zap.String("owner_id", ownerID), zap.Error(delErr))
		}
		return s
	}

	s.cart = c
	return s
}

func (s *Store) OwnerID() string {
	return s.ownerID
}

// AddItem is a no-op for products missing from the catalog.
func (s *Store) AddItem(ctx context.Context, productID string, size domain.Size, colorID string) error {
	product, ok := s.deps.Catalog.Product(productID)
	if !ok {
		return nil
	}

	size = domain.ResolveSelection(size, s.deps.Catalog.Sizes())
	color := resolveColor(colorID, s.deps.Catalog.Colors())

	s.cart.Add(product, size, color)

	return s.commit(ctx)
}

func (s *Store) IncrementLine(ctx context.Context, key domain.LineKey) error {
	if !s.cart.Increment(key) {
		return nil
	}
	return s.commit(ctx)
}

func (s *Store) DecrementLine(ctx context.Context, key domain.LineKey) error {
	if !s.cart.Decrement(key) {
		return nil
	}
	return s.commit(ctx)
}

func (s *Store) RemoveLine(ctx context.Context, key domain.LineKey) error {
	if !s.cart.Remove(key) {
		return nil
	}
	return s.commit(ctx)
}

func (s *Store) Subtotal() domain.Money {
	return s.cart.Subtotal(s.deps.Catalog.Currency())
}

func (s *Store) ItemCount() int {
	return s.cart.ItemCount()
}

func (s *Store) Lines() []domain.CartLine {
	return slices.Clone(s.cart.Lines)
}

func (s *Store) Snapshot() domain.Cart {
	return s.cart.Clone()
}

// SummaryLines yields one human-readable line per cart line.
// Each range over the sequence reads the cart as it is at that moment.
func (s *Store) SummaryLines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range s.cart.Lines {
			if !yield(SummaryLine(l, s.deps.Formatter)) {
				return
			}
		}
	}
}

func SummaryLine(l domain.CartLine, f domain.MoneyFormatter) string {
	return fmt.Sprintf("%s — %s / %s x%d = %s", l.Title, l.Size, l.ColorName, l.Quantity, f.Format(l.Total()))
}

// Subscribe registers o and returns a func that removes it.
func (s *Store) Subscribe(o Observer) func() {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o

	return func() {
		delete(s.observers, id)
	}
}

// commit persists the full cart and then notifies observers.
// Observers are notified even when the write fails.
func (s *Store) commit(ctx context.Context) error {
	err := s.persist(ctx)
	s.notify()
	return err
}

func (s *Store) persist(ctx context.Context) error {
	data, err := s.codec.Encode(s.cart)
	if err != nil {
		return fmt.Errorf("codec.Encode: %w", err)
	}

	if err := s.deps.Storage.Put(ctx, s.ownerID, StorageKey, data); err != nil {
		return fmt.Errorf("storage.Put: %w", err)
	}

	return nil
}

func (s *Store) notify() {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if o, ok := s.observers[id]; ok {
			o(s.cart.Clone())
		}
	}
}

func resolveColor(colorID string, colors []domain.Color) domain.Color {
	ids := make([]string, len(colors))
	for i, c := range colors {
		ids[i] = c.ID
	}

	chosen := domain.ResolveSelection(colorID, ids)
	for _, c := range colors {
		if c.ID == chosen {
			return c
		}
	}
	return domain.Color{}
}
