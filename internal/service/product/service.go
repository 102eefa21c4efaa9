package product

import (
	"context"

	"shopping-cart/internal/domain"
	productrepo "shopping-cart/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, code int64) (*domain.CatalogItem, error) {
	return s.repo.GetByCode(ctx, code)
}
