package port

import (
	"github.com/nikolayk812/hgshop/internal/domain"
	"golang.org/x/text/currency"
)

type Catalog interface {
	ListProducts() []domain.Product
	Product(id string) (domain.Product, bool)
	Sizes() []domain.Size
	Colors() []domain.Color
	Currency() currency.Unit
}
