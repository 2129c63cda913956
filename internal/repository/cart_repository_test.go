package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/hgshop/internal/cart"
	"github.com/nikolayk812/hgshop/internal/port"
	"github.com/nikolayk812/hgshop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type cartRepositorySuite struct {
	suite.Suite

	repo      port.CartStorage
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewCart(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *cartRepositorySuite) TestPut() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		values    [][]byte
		wantError string
	}{
		{
			name:    "put record: ok",
			ownerID: gofakeit.UUID(),
			values:  [][]byte{randomPayload()},
		},
		{
			name:    "put twice overwrites: ok",
			ownerID: gofakeit.UUID(),
			values: [][]byte{
				[]byte(`[{"id":"tee-1","title":"HG Classic Tee","price":350,"size":"M","color":"Black","qty":1,"img":"a.svg"}]`),
				[]byte(`[]`),
			},
		},
		{
			name:      "put with empty owner ID: error",
			ownerID:   "",
			values:    [][]byte{randomPayload()},
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			var err error
			for _, v := range tt.values {
				err = suite.repo.Put(ctx, tt.ownerID, cart.StorageKey, v)
			}
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			got, err := suite.repo.Get(ctx, tt.ownerID, cart.StorageKey)
			require.NoError(t, err)
			assert.Equal(t, tt.values[len(tt.values)-1], got)
		})
	}
}

func (suite *cartRepositorySuite) TestGet() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		key       string
		setup     []byte
		wantError error
		wantText  string
	}{
		{
			name:    "get existing record: ok",
			ownerID: gofakeit.UUID(),
			key:     cart.StorageKey,
			setup:   randomPayload(),
		},
		{
			name:      "get missing record: not found",
			ownerID:   gofakeit.UUID(),
			key:       cart.StorageKey,
			wantError: port.ErrNotFound,
		},
		{
			name:      "get record under other key: not found",
			ownerID:   gofakeit.UUID(),
			key:       "hg_cart_v1",
			setup:     randomPayload(),
			wantError: port.ErrNotFound,
		},
		{
			name:     "get with empty owner ID: error",
			ownerID:  "",
			key:      cart.StorageKey,
			wantText: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup != nil {
				require.NoError(t, suite.repo.Put(ctx, tt.ownerID, cart.StorageKey, tt.setup))
			}

			got, err := suite.repo.Get(ctx, tt.ownerID, tt.key)
			switch {
			case tt.wantError != nil:
				require.ErrorIs(t, err, tt.wantError)
				return
			case tt.wantText != "":
				require.EqualError(t, err, tt.wantText)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.setup, got)
		})
	}
}

func (suite *cartRepositorySuite) TestDelete() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		ownerID     string
		setup       bool
		wantDeleted bool
		wantError   string
	}{
		{
			name:        "delete existing record: ok",
			ownerID:     gofakeit.UUID(),
			setup:       true,
			wantDeleted: true,
		},
		{
			name:        "delete missing record: not found",
			ownerID:     gofakeit.UUID(),
			wantDeleted: false,
		},
		{
			name:      "delete with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup {
				require.NoError(t, suite.repo.Put(ctx, tt.ownerID, cart.StorageKey, randomPayload()))
			}

			deleted, err := suite.repo.Delete(ctx, tt.ownerID, cart.StorageKey)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)

			_, err = suite.repo.Get(ctx, tt.ownerID, cart.StorageKey)
			assert.ErrorIs(t, err, port.ErrNotFound)
		})
	}
}

func (suite *cartRepositorySuite) TestPutWithTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := repository.NewCartWithTx(tx)
	require.NoError(t, txRepo.Put(ctx, ownerID, cart.StorageKey, randomPayload()))

	require.NoError(t, tx.Rollback(ctx))

	_, err = suite.repo.Get(ctx, ownerID, cart.StorageKey)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_records")
	suite.NoError(err)
}

func randomPayload() []byte {
	return []byte(gofakeit.Sentence(8))
}
