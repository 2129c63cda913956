package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikolayk812/hgshop/internal/catalog"
	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()

	products := c.ListProducts()
	require.Len(t, products, 4)
	assert.Equal(t, "tee-1", products[0].ID)
	assert.Equal(t, "HG Classic Tee", products[0].Title)
	assert.Equal(t, "350", products[0].Price.Amount.String())
	assert.Equal(t, "products/tshirt1.svg", products[0].ImageRef)
	assert.Equal(t, currency.ZAR, c.Currency())

	assert.Equal(t, domain.Sizes, c.Sizes())
	require.Len(t, c.Colors(), 2)
	assert.Equal(t, domain.Color{ID: "black", Name: "Black", Hex: "#111111", Text: "#ffffff"}, c.Colors()[0])

	p, ok := c.Product("tee-4")
	require.True(t, ok)
	assert.Equal(t, "HG Premium Tee", p.Title)

	_, ok = c.Product("nope")
	assert.False(t, ok)
}

func TestDefault_ListIsACopy(t *testing.T) {
	c := catalog.Default()

	products := c.ListProducts()
	products[0].Title = "changed"

	assert.Equal(t, "HG Classic Tee", c.ListProducts()[0].Title)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "bad currency",
			yaml:    "currency: XXXX\nsizes: [S]\ncolors: [{id: b, name: B}]\n",
			wantErr: "currency[XXXX] is not valid",
		},
		{
			name:    "bad size",
			yaml:    "currency: ZAR\nsizes: [XS]\ncolors: [{id: b, name: B}]\n",
			wantErr: "size[XS] is not valid",
		},
		{
			name:    "no colors",
			yaml:    "currency: ZAR\nsizes: [S]\n",
			wantErr: "colors are empty",
		},
		{
			name:    "bad price",
			yaml:    "currency: ZAR\nsizes: [S]\ncolors: [{id: b, name: B}]\nproducts: [{id: p, title: P, price: abc}]\n",
			wantErr: "price[abc] of product[p] is not valid",
		},
		{
			name:    "duplicate product",
			yaml:    "currency: ZAR\nsizes: [S]\ncolors: [{id: b, name: B}]\nproducts: [{id: p, price: '1'}, {id: p, price: '2'}]\n",
			wantErr: "product[p] is duplicated",
		},
		{
			name:    "duplicate color id",
			yaml:    "currency: ZAR\nsizes: [S]\ncolors: [{id: b, name: Black}, {id: b, name: Blue}]\n",
			wantErr: "color[b] is duplicated",
		},
		{
			name:    "duplicate color name",
			yaml:    "currency: ZAR\nsizes: [S]\ncolors: [{id: black, name: Black}, {id: jet, name: Black}]\n",
			wantErr: "color name[Black] is duplicated",
		},
		{
			name:    "separator in color name",
			yaml:    "currency: ZAR\nsizes: [S]\ncolors: [{id: b, name: Black__Red}]\n",
			wantErr: `must not contain "__"`,
		},
		{
			name:    "separator in product id",
			yaml:    "currency: ZAR\nsizes: [S]\ncolors: [{id: b, name: B}]\nproducts: [{id: tee__1, price: '1'}]\n",
			wantErr: "product[tee__1]",
		},
		{
			name:    "unknown field",
			yaml:    "currency: ZAR\nflavour: mint\n",
			wantErr: "yaml.Decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ColorNamesNeedingEscape(t *testing.T) {
	c, err := catalog.Load(strings.NewReader(`currency: ZAR
sizes: [M]
colors:
  - {id: heather, name: Heather Grey}
  - {id: cotton, name: 100% Cotton}
  - {id: navy-white, name: Navy/White}
`))
	require.NoError(t, err)
	assert.Len(t, c.Colors(), 3)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `currency: USD
sizes: [M, L]
colors:
  - id: red
    name: Red
products:
  - id: cap-1
    title: Cap
    price: "19.99"
    img: cap.svg
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := catalog.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, currency.USD, c.Currency())
	assert.Equal(t, []domain.Size{domain.SizeM, domain.SizeL}, c.Sizes())
	require.Len(t, c.ListProducts(), 1)
	assert.Equal(t, "19.99", c.ListProducts()[0].Price.Amount.String())

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "os.Open")
}
