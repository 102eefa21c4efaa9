package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is one product's quantity and unit price within a cart. It is
// never modified; updates replace the item in the cart.
//
// NewLineItem stores the quantity verbatim, including negative values.
// Cart.AddItem is the place where non-positive quantities are rejected.
type LineItem struct {
	product   Product
	unitPrice decimal.Decimal
	quantity  int
}

func NewLineItem(product Product, unitPrice decimal.Decimal, quantity int) LineItem {
	return LineItem{product: product, unitPrice: unitPrice, quantity: quantity}
}

func (i LineItem) Product() Product {
	return i.product
}

func (i LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i LineItem) Quantity() int {
	return i.quantity
}

// Total returns unitPrice * quantity without rounding.
func (i LineItem) Total() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// SumLineItems adds the line totals of items. It returns exact zero for no items.
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}

func (i LineItem) String() string {
	return fmt.Sprintf("LineItem[product=%s unitPrice=%s quantity=%d]", i.product, i.unitPrice, i.quantity)
}
