package product

import (
	"context"

	"shopping-cart/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	GetByCode(ctx context.Context, code int64) (*domain.CatalogItem, error)
	Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}
