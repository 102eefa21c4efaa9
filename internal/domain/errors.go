package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidItem is returned when an item is added without a product or with a non-positive quantity.
	ErrInvalidItem = errors.New("invalid item")
	// ErrInvalidCustomer is returned for a blank customer identifier.
	ErrInvalidCustomer = errors.New("invalid customer")
	// ErrNoCarts is returned by CartRegistry.AverageTicket when no cart is registered.
	ErrNoCarts = errors.New("no carts registered")
)
