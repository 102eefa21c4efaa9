package product

import (
	"context"
	"sort"
	"sync"
	"time"

	"shopping-cart/internal/domain"
)

// memoryRepo keeps the catalog in process memory. It backs the API when no
// database is configured.
type memoryRepo struct {
	mu    sync.RWMutex
	items map[int64]domain.CatalogItem
	now   func() time.Time
}

func NewMemory(items ...domain.CatalogItem) Repository {
	r := &memoryRepo{items: make(map[int64]domain.CatalogItem), now: time.Now}
	for _, item := range items {
		_, _ = r.Upsert(context.Background(), item)
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]domain.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.CatalogItem, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Product.Code() < result[j].Product.Code()
	})
	return result, nil
}

func (r *memoryRepo) GetByCode(_ context.Context, code int64) (*domain.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *memoryRepo) Upsert(_ context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := item.Product.Code()
	if existing, ok := r.items[code]; ok {
		item.CreatedAt = existing.CreatedAt
	} else {
		item.CreatedAt = r.now().UTC()
	}
	r.items[code] = item
	return &item, nil
}
