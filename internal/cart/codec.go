package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// StorageKey is the record key. The suffix is the encoding version.
const StorageKey = "hg_cart_v2"

var ErrCorruptRecord = errors.New("cart record is corrupt")

type lineRecord struct {
	ID    *string      `json:"id"`
	Title *string      `json:"title"`
	Price *json.Number `json:"price"`
	Size  *string      `json:"size"`
	Color *string      `json:"color"`
	Qty   *int         `json:"qty"`
	Img   *string      `json:"img"`
}

// Codec converts carts to and from the stored record.
// The record carries no currency, so amounts are decoded in Currency.
type Codec struct {
	Currency currency.Unit
}

func (c Codec) Encode(cart domain.Cart) ([]byte, error) {
	records := make([]lineRecord, 0, len(cart.Lines))

	for _, l := range cart.Lines {
		price := json.Number(l.UnitPrice.Amount.String())
		size := string(l.Size)

		records = append(records, lineRecord{
			ID:    &l.ProductID,
			Title: &l.Title,
			Price: &price,
			Size:  &size,
			Color: &l.ColorName,
			Qty:   &l.Quantity,
			Img:   &l.ImageRef,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return data, nil
}

// Decode rejects the whole record when any line is malformed.
func (c Codec) Decode(data []byte) (domain.Cart, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.Cart{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var records []lineRecord
	if err := dec.Decode(&records); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Cart{}, fmt.Errorf("%w: trailing data", ErrCorruptRecord)
	}

	var cart domain.Cart
	seen := make(map[domain.LineKey]struct{}, len(records))

	for i, rec := range records {
		line, err := c.mapRecordToDomain(rec)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("%w: line[%d]: %w", ErrCorruptRecord, i, err)
		}

		if _, dup := seen[line.Key()]; dup {
			return domain.Cart{}, fmt.Errorf("%w: line[%d]: key[%s] is duplicated", ErrCorruptRecord, i, line.Key())
		}
		seen[line.Key()] = struct{}{}

		cart.Lines = append(cart.Lines, line)
	}

	return cart, nil
}

func (c Codec) mapRecordToDomain(rec lineRecord) (domain.CartLine, error) {
	if rec.ID == nil || rec.Title == nil || rec.Price == nil || rec.Size == nil ||
		rec.Color == nil || rec.Qty == nil || rec.Img == nil {
		return domain.CartLine{}, fmt.Errorf("missing field")
	}

	if *rec.ID == "" || *rec.Color == "" {
		return domain.CartLine{}, fmt.Errorf("id and color must not be empty")
	}

	size := domain.Size(*rec.Size)
	if !size.Valid() {
		return domain.CartLine{}, fmt.Errorf("size[%s] is not valid", *rec.Size)
	}

	if *rec.Qty < 1 {
		return domain.CartLine{}, fmt.Errorf("qty[%d] is below 1", *rec.Qty)
	}

	price, err := decimal.NewFromString(rec.Price.String())
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("price[%s] is not valid: %w", rec.Price.String(), err)
	}
	if price.IsNegative() {
		return domain.CartLine{}, fmt.Errorf("price[%s] is negative", rec.Price.String())
	}

	return domain.CartLine{
		ProductID: *rec.ID,
		Title:     *rec.Title,
		UnitPrice: domain.NewMoney(price, c.Currency),
		Size:      size,
		ColorName: *rec.Color,
		Quantity:  *rec.Qty,
		ImageRef:  *rec.Img,
	}, nil
}
