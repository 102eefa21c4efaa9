package seed

import (
	"context"
	"fmt"

	"shopping-cart/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}

type productSeed struct {
	Code        int64
	Description string
	Price       string
}

var demoProducts = []productSeed{
	{Code: 1, Description: "Demo T-Shirt", Price: "19.99"},
	{Code: 2, Description: "Demo Mug", Price: "12.99"},
	{Code: 3, Description: "Demo Sticker Pack", Price: "3.50"},
	{Code: 4, Description: "Demo Notebook", Price: "7.25"},
}

// Apply writes the demo catalog. It is idempotent since every write is an upsert.
func Apply(ctx context.Context, repo ProductWriter) (int, error) {
	for i, p := range demoProducts {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return i, fmt.Errorf("parse price for product %d: %w", p.Code, err)
		}
		item := domain.CatalogItem{
			Product:   domain.NewProduct(p.Code, p.Description),
			ListPrice: price,
		}
		if _, err := repo.Upsert(ctx, item); err != nil {
			return i, fmt.Errorf("upsert product %d: %w", p.Code, err)
		}
	}
	return len(demoProducts), nil
}
