package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/nikolayk812/hgshop/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Currency string        `yaml:"currency"`
	Sizes    []string      `yaml:"sizes"`
	Colors   []colorFile   `yaml:"colors"`
	Products []productFile `yaml:"products"`
}

type colorFile struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
	Text string `yaml:"text"`
}

type productFile struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Price string `yaml:"price"`
	Img   string `yaml:"img"`
}

type staticCatalog struct {
	currency currency.Unit
	products []domain.Product
	byID     map[string]int
	sizes    []domain.Size
	colors   []domain.Color
}

// Default returns the compiled-in catalog.
func Default() port.Catalog {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

func LoadFile(path string) (port.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog[%s]: %w", path, err)
	}
	return c, nil
}

func Load(r io.Reader) (port.Catalog, error) {
	var file catalogFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("yaml.Decode: %w", err)
	}

	return mapFileToCatalog(file)
}

func mapFileToCatalog(file catalogFile) (*staticCatalog, error) {
	unit, err := currency.ParseISO(file.Currency)
	if err != nil {
		return nil, fmt.Errorf("currency[%s] is not valid: %w", file.Currency, err)
	}

	c := &staticCatalog{
		currency: unit,
		byID:     make(map[string]int, len(file.Products)),
	}

	for _, s := range file.Sizes {
		size := domain.Size(s)
		if !size.Valid() {
			return nil, fmt.Errorf("size[%s] is not valid", s)
		}
		c.sizes = append(c.sizes, size)
	}
	if len(c.sizes) == 0 {
		return nil, fmt.Errorf("sizes are empty")
	}

	colorIDs := make(map[string]struct{}, len(file.Colors))
	colorNames := make(map[string]struct{}, len(file.Colors))
	for _, cf := range file.Colors {
		if cf.ID == "" || cf.Name == "" {
			return nil, fmt.Errorf("color id and name are required")
		}
		if err := checkKeyPart(cf.ID, cf.Name); err != nil {
			return nil, fmt.Errorf("color[%s]: %w", cf.ID, err)
		}
		if _, dup := colorIDs[cf.ID]; dup {
			return nil, fmt.Errorf("color[%s] is duplicated", cf.ID)
		}
		// lines are keyed by color name
		if _, dup := colorNames[cf.Name]; dup {
			return nil, fmt.Errorf("color name[%s] is duplicated", cf.Name)
		}
		colorIDs[cf.ID] = struct{}{}
		colorNames[cf.Name] = struct{}{}

		c.colors = append(c.colors, domain.Color{ID: cf.ID, Name: cf.Name, Hex: cf.Hex, Text: cf.Text})
	}
	if len(c.colors) == 0 {
		return nil, fmt.Errorf("colors are empty")
	}

	for _, pf := range file.Products {
		product, err := mapProductFileToDomain(pf, unit)
		if err != nil {
			return nil, fmt.Errorf("mapProductFileToDomain: %w", err)
		}
		if _, dup := c.byID[product.ID]; dup {
			return nil, fmt.Errorf("product[%s] is duplicated", product.ID)
		}

		c.byID[product.ID] = len(c.products)
		c.products = append(c.products, product)
	}

	return c, nil
}

func mapProductFileToDomain(pf productFile, unit currency.Unit) (domain.Product, error) {
	if pf.ID == "" {
		return domain.Product{}, fmt.Errorf("product id is empty")
	}
	if err := checkKeyPart(pf.ID); err != nil {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", pf.ID, err)
	}

	price, err := decimal.NewFromString(pf.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price[%s] of product[%s] is not valid: %w", pf.Price, pf.ID, err)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf("price of product[%s] is negative", pf.ID)
	}

	return domain.Product{
		ID:       pf.ID,
		Title:    pf.Title,
		Price:    domain.NewMoney(price, unit),
		ImageRef: pf.Img,
	}, nil
}

// checkKeyPart rejects values that would split a line key apart.
func checkKeyPart(values ...string) error {
	for _, v := range values {
		if domain.ContainsKeySeparator(v) {
			return fmt.Errorf("value[%s] must not contain %q", v, domain.LineKeySeparator)
		}
	}
	return nil
}

func (c *staticCatalog) ListProducts() []domain.Product {
	return slices.Clone(c.products)
}

func (c *staticCatalog) Product(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

func (c *staticCatalog) Sizes() []domain.Size {
	return slices.Clone(c.sizes)
}

func (c *staticCatalog) Colors() []domain.Color {
	return slices.Clone(c.colors)
}

func (c *staticCatalog) Currency() currency.Unit {
	return c.currency
}
