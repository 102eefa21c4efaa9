package domain

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// ticketScale is the number of decimal places of the average ticket.
const ticketScale = 2

// CartRegistry maps customer identifiers to their carts. Locks are always
// taken registry first, then cart.
type CartRegistry struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewCartRegistry() *CartRegistry {
	return &CartRegistry{carts: make(map[string]*Cart)}
}

// GetOrCreate returns the customer's cart, registering a new empty one when
// none exists yet.
func (r *CartRegistry) GetOrCreate(customerID string) (*Cart, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customer id required", ErrInvalidCustomer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[customerID]; ok {
		return cart, nil
	}
	cart := NewCart()
	r.carts[customerID] = cart
	return cart, nil
}

// Get returns the customer's cart without creating one.
func (r *CartRegistry) Get(customerID string) (*Cart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[customerID]
	return cart, ok
}

// Invalidate discards the customer's cart and reports whether one existed.
func (r *CartRegistry) Invalidate(customerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[customerID]; !ok {
		return false
	}
	delete(r.carts, customerID)
	return true
}

// AverageTicket returns the mean cart total rounded to two decimals, half to
// even, together with the number of carts averaged. It returns ErrNoCarts
// when no cart is registered.
func (r *CartRegistry) AverageTicket() (decimal.Decimal, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := len(r.carts)
	if count == 0 {
		return decimal.Zero, 0, ErrNoCarts
	}
	sum := decimal.Zero
	for _, cart := range r.carts {
		sum = sum.Add(cart.Total())
	}
	return divRoundHalfEven(sum, decimal.NewFromInt(int64(count)), ticketScale), count, nil
}

func (r *CartRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}

// Customers returns the registered customer identifiers, sorted.
func (r *CartRegistry) Customers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.carts))
	for id := range r.carts {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// divRoundHalfEven divides d by d2 and rounds the exact quotient to scale
// places using banker's rounding. d2 must be positive.
func divRoundHalfEven(d, d2 decimal.Decimal, scale int32) decimal.Decimal {
	q, rem := d.QuoRem(d2, scale)
	if rem.IsZero() {
		return q.Round(scale)
	}

	// rem is below one unit of the last place times d2; compare twice the
	// remainder to that unit to find which side of the tie the quotient is on.
	unit := decimal.New(1, -scale)
	cmp := rem.Abs().Mul(decimal.NewFromInt(2)).Cmp(d2.Mul(unit))
	step := unit
	if d.IsNegative() {
		step = unit.Neg()
	}
	switch {
	case cmp > 0:
		q = q.Add(step)
	case cmp == 0 && q.Shift(scale).BigInt().Bit(0) == 1:
		q = q.Add(step)
	}
	return q.Round(scale)
}
