package view

import (
	"net/url"
	"strings"

	"github.com/nikolayk812/hgshop/internal/cart"
	"github.com/nikolayk812/hgshop/internal/domain"
	"golang.org/x/text/currency"
)

const (
	EmptyCartPlaceholder = "No items yet."
	EmptySummary         = "No items in cart."
)

type CartLineView struct {
	Key       string      `json:"key"`
	KeyPath   string      `json:"keyPath"`
	Title     string      `json:"title"`
	Size      domain.Size `json:"size"`
	ColorName string      `json:"color"`
	Quantity  int         `json:"qty"`
	ImageRef  string      `json:"img"`
	LineTotal string      `json:"lineTotal"`
}

type CartModel struct {
	Empty       bool           `json:"empty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Lines       []CartLineView `json:"lines"`
	Subtotal    string         `json:"subtotal"`
	Total       string         `json:"total"`
	ItemCount   int            `json:"itemCount"`
	Summary     string         `json:"summary"`
}

// CartView re-renders its model on every store mutation.
type CartView struct {
	formatter   domain.MoneyFormatter
	unit        currency.Unit
	model       CartModel
	renders     int
	unsubscribe func()
}

func NewCartView(store *cart.Store, formatter domain.MoneyFormatter) *CartView {
	v := &CartView{
		formatter: formatter,
		unit:      store.Subtotal().Currency,
	}

	v.render(store.Snapshot())
	v.unsubscribe = store.Subscribe(v.render)

	return v
}

func (v *CartView) Model() CartModel {
	return v.model
}

// Renders counts full renders, including the initial one.
func (v *CartView) Renders() int {
	return v.renders
}

func (v *CartView) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

func (v *CartView) render(c domain.Cart) {
	v.renders++
	v.model = RenderCart(c, v.unit, v.formatter)
}

// RenderCart maps cart state to the cart panel model.
func RenderCart(c domain.Cart, unit currency.Unit, f domain.MoneyFormatter) CartModel {
	subtotal := f.Format(c.Subtotal(unit))

	m := CartModel{
		Empty:     len(c.Lines) == 0,
		Lines:     make([]CartLineView, 0, len(c.Lines)),
		Subtotal:  subtotal,
		Total:     subtotal,
		ItemCount: c.ItemCount(),
		Summary:   EmptySummary,
	}

	if m.Empty {
		m.Placeholder = EmptyCartPlaceholder
		return m
	}

	summary := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		m.Lines = append(m.Lines, CartLineView{
			Key:       l.Key().String(),
			KeyPath:   url.PathEscape(l.Key().String()),
			Title:     l.Title,
			Size:      l.Size,
			ColorName: l.ColorName,
			Quantity:  l.Quantity,
			ImageRef:  l.ImageRef,
			LineTotal: f.Format(l.Total()),
		})
		summary = append(summary, cart.SummaryLine(l, f))
	}
	m.Summary = strings.Join(summary, "\n")

	return m
}
