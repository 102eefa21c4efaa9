package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"shopping-cart/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.CatalogItem, error) {
	const q = `
SELECT code, description, list_price::text, created_at
FROM products
ORDER BY code ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByCode(ctx context.Context, code int64) (*domain.CatalogItem, error) {
	const q = `
SELECT code, description, list_price::text, created_at
FROM products
WHERE code = $1
`
	item, err := scanItem(r.pool.QueryRow(ctx, q, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get code=%d not found", code)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get code=%d error=%v", code, err)
		return nil, err
	}
	r.logger.Printf("product repo: get code=%d description=%s", code, item.Product.Description())
	return item, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	const q = `
INSERT INTO products (code, description, list_price)
VALUES ($1, $2, $3::text::numeric)
ON CONFLICT (code) DO UPDATE SET
    description = EXCLUDED.description,
    list_price = EXCLUDED.list_price
RETURNING created_at
`
	code := item.Product.Code()
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, q, code, item.Product.Description(), item.ListPrice.String()).Scan(&createdAt)
	if err != nil {
		r.logger.Printf("product repo: upsert code=%d error=%v", code, err)
		return nil, err
	}
	res := item
	res.CreatedAt = createdAt
	r.logger.Printf("product repo: upserted code=%d list_price=%s", code, item.ListPrice)
	return &res, nil
}

func scanItem(row pgx.Row) (*domain.CatalogItem, error) {
	var (
		code        int64
		description string
		price       string
		createdAt   time.Time
	)
	if err := row.Scan(&code, &description, &price, &createdAt); err != nil {
		return nil, err
	}
	listPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("product repo: parse list_price %q for code=%d: %w", price, code, err)
	}
	return &domain.CatalogItem{
		Product:   domain.NewProduct(code, description),
		ListPrice: listPrice,
		CreatedAt: createdAt,
	}, nil
}
