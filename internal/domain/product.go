package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product identifies a sellable good. Two products are equal when both code
// and description match, so a Product can be compared with == and used as a
// map key.
type Product struct {
	code        int64
	description string
}

func NewProduct(code int64, description string) Product {
	return Product{code: code, description: description}
}

func (p Product) Code() int64 {
	return p.code
}

func (p Product) Description() string {
	return p.description
}

func (p Product) Equal(other Product) bool {
	return p == other
}

// IsZero reports whether p is the zero Product, which stands for a missing product.
func (p Product) IsZero() bool {
	return p == Product{}
}

func (p Product) String() string {
	return fmt.Sprintf("Product[code=%d description=%s]", p.code, p.description)
}

// CatalogItem is a product as offered by the catalog, with its list price.
type CatalogItem struct {
	Product   Product
	ListPrice decimal.Decimal
	CreatedAt time.Time
}
