package view

import (
	"context"
	"fmt"

	"github.com/nikolayk812/hgshop/internal/cart"
	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/nikolayk812/hgshop/internal/port"
)

type SizeOption struct {
	Value    domain.Size
	Selected bool
}

type ColorOption struct {
	ID     string
	Name   string
	Hex    string
	Border string
	Active bool
}

type ProductCard struct {
	ID       string
	Title    string
	Price    string
	ImageRef string
	Sizes    []SizeOption
	Colors   []ColorOption
}

// selection is the explicit choice made on one card. Empty fields mean no choice yet.
type selection struct {
	size  domain.Size
	color string
}

// CatalogView renders product cards. Each card has its own size and color selection.
type CatalogView struct {
	catalog    port.Catalog
	formatter  domain.MoneyFormatter
	selections map[string]selection
}

func NewCatalogView(catalog port.Catalog, formatter domain.MoneyFormatter) *CatalogView {
	return &CatalogView{
		catalog:    catalog,
		formatter:  formatter,
		selections: make(map[string]selection),
	}
}

func (v *CatalogView) SelectSize(productID string, size domain.Size) {
	sel := v.selections[productID]
	sel.size = size
	v.selections[productID] = sel
}

func (v *CatalogView) SelectColor(productID, colorID string) {
	sel := v.selections[productID]
	sel.color = colorID
	v.selections[productID] = sel
}

// Selection returns the card's effective size and color id, defaults applied.
func (v *CatalogView) Selection(productID string) (domain.Size, string) {
	sel := v.selections[productID]

	colorIDs := make([]string, 0, len(v.catalog.Colors()))
	for _, c := range v.catalog.Colors() {
		colorIDs = append(colorIDs, c.ID)
	}

	return domain.ResolveSelection(sel.size, v.catalog.Sizes()),
		domain.ResolveSelection(sel.color, colorIDs)
}

func (v *CatalogView) Cards() []ProductCard {
	products := v.catalog.ListProducts()
	cards := make([]ProductCard, 0, len(products))

	for _, p := range products {
		cards = append(cards, v.card(p))
	}
	return cards
}

func (v *CatalogView) Card(productID string) (ProductCard, bool) {
	p, ok := v.catalog.Product(productID)
	if !ok {
		return ProductCard{}, false
	}
	return v.card(p), true
}

func (v *CatalogView) card(p domain.Product) ProductCard {
	size, colorID := v.Selection(p.ID)

	card := ProductCard{
		ID:       p.ID,
		Title:    p.Title,
		Price:    v.formatter.Format(p.Price),
		ImageRef: p.ImageRef,
	}

	for _, s := range v.catalog.Sizes() {
		card.Sizes = append(card.Sizes, SizeOption{Value: s, Selected: s == size})
	}

	for _, c := range v.catalog.Colors() {
		border := c.Hex
		if c.Hex == "#ffffff" {
			border = "#ddd"
		}
		card.Colors = append(card.Colors, ColorOption{
			ID:     c.ID,
			Name:   c.Name,
			Hex:    c.Hex,
			Border: border,
			Active: c.ID == colorID,
		})
	}

	return card
}

// Add reads the card's selection now and adds it to the store.
func (v *CatalogView) Add(ctx context.Context, store *cart.Store, productID string) error {
	size, colorID := v.Selection(productID)

	if err := store.AddItem(ctx, productID, size, colorID); err != nil {
		return fmt.Errorf("store.AddItem: %w", err)
	}
	return nil
}
