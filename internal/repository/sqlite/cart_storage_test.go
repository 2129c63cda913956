package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/hgshop/internal/port"
	"github.com/nikolayk812/hgshop/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStorage(t *testing.T) *sqlite.CartStorage {
	t.Helper()

	s, err := sqlite.Open(t.Context(), filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})

	return s
}

func TestCartStorage_PutGet(t *testing.T) {
	ctx := t.Context()
	s := openStorage(t)
	ownerID := gofakeit.UUID()

	_, err := s.Get(ctx, ownerID, "hg_cart_v2")
	require.ErrorIs(t, err, port.ErrNotFound)

	require.NoError(t, s.Put(ctx, ownerID, "hg_cart_v2", []byte(`[{"id":"tee-1"}]`)))
	require.NoError(t, s.Put(ctx, ownerID, "hg_cart_v2", []byte(`[]`)))

	got, err := s.Get(ctx, ownerID, "hg_cart_v2")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestCartStorage_Reopen(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "carts.db")
	ownerID := gofakeit.UUID()

	s, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, ownerID, "hg_cart_v2", []byte(`[]`)))
	require.NoError(t, s.Close())

	s, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, ownerID, "hg_cart_v2")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestCartStorage_Delete(t *testing.T) {
	ctx := t.Context()
	s := openStorage(t)
	ownerID := gofakeit.UUID()

	deleted, err := s.Delete(ctx, ownerID, "hg_cart_v2")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, s.Put(ctx, ownerID, "hg_cart_v2", []byte(`[]`)))

	deleted, err = s.Delete(ctx, ownerID, "hg_cart_v2")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.Get(ctx, "", "hg_cart_v2")
	assert.EqualError(t, err, "ownerID is empty")
}
