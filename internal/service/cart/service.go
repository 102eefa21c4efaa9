package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopping-cart/internal/domain"

	"github.com/shopspring/decimal"
)

type Service struct {
	registry    *domain.CartRegistry
	productRepo productRepo
}

type productRepo interface {
	GetByCode(ctx context.Context, code int64) (*domain.CatalogItem, error)
}

func New(registry *domain.CartRegistry, productRepo productRepo) *Service {
	return &Service{registry: registry, productRepo: productRepo}
}

// AddItemInput adds a catalog product to a cart. UnitPrice defaults to the
// catalog list price when omitted.
type AddItemInput struct {
	ProductCode int64   `json:"productCode"`
	UnitPrice   *string `json:"unitPrice,omitempty"`
	Quantity    int     `json:"quantity"`
}

// RemoveItemInput identifies the product to remove. Without a description
// the product is resolved through the catalog.
type RemoveItemInput struct {
	ProductCode int64
	Description string
}

// Open returns the customer's cart, creating an empty one if needed.
func (s *Service) Open(_ context.Context, customerID string) (*domain.Cart, error) {
	return s.registry.GetOrCreate(customerID)
}

func (s *Service) Get(_ context.Context, customerID string) (*domain.Cart, error) {
	cart, ok := s.registry.Get(customerID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

func (s *Service) Customers(_ context.Context) []string {
	return s.registry.Customers()
}

func (s *Service) AddItem(ctx context.Context, customerID string, in AddItemInput) (*domain.Cart, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidItem)
	}
	if s.productRepo == nil {
		return nil, errors.New("product repository unavailable")
	}
	item, err := s.productRepo.GetByCode(ctx, in.ProductCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", in.ProductCode, domain.ErrNotFound)
		}
		return nil, err
	}

	price := item.ListPrice
	if in.UnitPrice != nil {
		price, err = decimal.NewFromString(strings.TrimSpace(*in.UnitPrice))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid unit price %q", domain.ErrInvalidItem, *in.UnitPrice)
		}
	}

	cart, err := s.registry.GetOrCreate(customerID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(item.Product, price, in.Quantity); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem reports false when the customer has no cart or the product is
// not in it.
func (s *Service) RemoveItem(ctx context.Context, customerID string, in RemoveItemInput) (bool, error) {
	cart, ok := s.registry.Get(customerID)
	if !ok {
		return false, nil
	}

	product := domain.NewProduct(in.ProductCode, in.Description)
	if in.Description == "" {
		if s.productRepo == nil {
			return false, errors.New("product repository unavailable")
		}
		item, err := s.productRepo.GetByCode(ctx, in.ProductCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		product = item.Product
	}
	return cart.RemoveItem(product), nil
}

func (s *Service) RemoveItemAt(_ context.Context, customerID string, position int) bool {
	cart, ok := s.registry.Get(customerID)
	if !ok {
		return false
	}
	return cart.RemoveItemAt(position)
}

func (s *Service) Invalidate(_ context.Context, customerID string) bool {
	return s.registry.Invalidate(customerID)
}

// AverageTicket returns the average ticket and the number of carts it covers.
func (s *Service) AverageTicket(_ context.Context) (decimal.Decimal, int, error) {
	return s.registry.AverageTicket()
}
