package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/currency"
)

const LineKeySeparator = "__"

func ContainsKeySeparator(s string) bool {
	return strings.Contains(s, LineKeySeparator)
}

// LineKey identifies a cart line. Two adds with equal keys merge into one line.
type LineKey struct {
	ProductID string
	Size      Size
	Color     string
}

func (k LineKey) String() string {
	return k.ProductID + LineKeySeparator + string(k.Size) + LineKeySeparator + k.Color
}

func ParseLineKey(s string) (LineKey, error) {
	parts := strings.Split(s, LineKeySeparator)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return LineKey{}, fmt.Errorf("line key[%s] is not valid", s)
	}

	return LineKey{
		ProductID: parts[0],
		Size:      Size(parts[1]),
		Color:     parts[2],
	}, nil
}

type CartLine struct {
	ProductID string
	Title     string
	UnitPrice Money
	Size      Size
	ColorName string
	Quantity  int
	ImageRef  string
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Size: l.Size, Color: l.ColorName}
}

func (l CartLine) Total() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// Cart keeps lines in insertion order, which is also display order.
type Cart struct {
	Lines []CartLine
}

func (c *Cart) index(key LineKey) int {
	return slices.IndexFunc(c.Lines, func(l CartLine) bool {
		return l.Key() == key
	})
}

// Add merges into the line with the same key or appends a new line with quantity 1.
func (c *Cart) Add(p Product, size Size, color Color) {
	key := LineKey{ProductID: p.ID, Size: size, Color: color.Name}

	if i := c.index(key); i >= 0 {
		c.Lines[i].Quantity = saturatingAdd(c.Lines[i].Quantity, 1)
		return
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		UnitPrice: p.Price,
		Size:      size,
		ColorName: color.Name,
		Quantity:  1,
		ImageRef:  p.ImageRef,
	})
}

func (c *Cart) Increment(key LineKey) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	c.Lines[i].Quantity = saturatingAdd(c.Lines[i].Quantity, 1)
	return true
}

// Decrement never goes below 1. Only Remove deletes a line.
func (c *Cart) Decrement(key LineKey) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	c.Lines[i].Quantity = max(1, c.Lines[i].Quantity-1)
	return true
}

func (c *Cart) Remove(key LineKey) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	c.Lines = slices.Delete(c.Lines, i, i+1)
	return true
}

func (c *Cart) Subtotal(unit currency.Unit) Money {
	total := Money{Currency: unit}
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.Lines {
		n = saturatingAdd(n, l.Quantity)
	}
	return n
}

// saturatingAdd adds non-negative counts, stopping at math.MaxInt.
func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func (c *Cart) Clone() Cart {
	return Cart{Lines: slices.Clone(c.Lines)}
}
