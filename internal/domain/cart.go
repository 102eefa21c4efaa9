package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Cart is the ordered list of line items a single customer is assembling.
// It holds at most one line item per distinct Product. All methods are safe
// for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem adds quantity units of product at unitPrice. When the product is
// already in the cart its line item is replaced in place: quantities are
// summed and the given unit price wins.
func (c *Cart) AddItem(product Product, unitPrice decimal.Decimal, quantity int) error {
	if product.IsZero() {
		return fmt.Errorf("%w: product required", ErrInvalidItem)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidItem, quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if pos := c.indexOf(product); pos >= 0 {
		c.items[pos] = NewLineItem(product, unitPrice, c.items[pos].quantity+quantity)
		return nil
	}
	c.items = append(c.items, NewLineItem(product, unitPrice, quantity))
	return nil
}

// RemoveItem removes the line item for product and reports whether one existed.
func (c *Cart) RemoveItem(product Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos := c.indexOf(product)
	if pos < 0 {
		return false
	}
	c.removeAt(pos)
	return true
}

// RemoveItemAt removes the line item at position (0 is the first item added).
// Out of range positions leave the cart unchanged and return false.
func (c *Cart) RemoveItemAt(position int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if position < 0 || position >= len(c.items) {
		return false
	}
	c.removeAt(position)
	return true
}

// Total sums the line totals. An empty cart totals exactly zero.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	return SumLineItems(c.items)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) indexOf(product Product) int {
	for i, item := range c.items {
		if item.product.Equal(product) {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(pos int) {
	c.items = append(c.items[:pos], c.items[pos+1:]...)
}
