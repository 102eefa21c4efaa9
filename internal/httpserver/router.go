package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"shopping-cart/internal/domain"
	cartsvc "shopping-cart/internal/service/cart"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type productService interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	Get(ctx context.Context, code int64) (*domain.CatalogItem, error)
}

type cartService interface {
	Open(ctx context.Context, customerID string) (*domain.Cart, error)
	Get(ctx context.Context, customerID string) (*domain.Cart, error)
	Customers(ctx context.Context) []string
	AddItem(ctx context.Context, customerID string, in cartsvc.AddItemInput) (*domain.Cart, error)
	RemoveItem(ctx context.Context, customerID string, in cartsvc.RemoveItemInput) (bool, error)
	RemoveItemAt(ctx context.Context, customerID string, position int) bool
	Invalidate(ctx context.Context, customerID string) bool
	AverageTicket(ctx context.Context) (decimal.Decimal, int, error)
}

// Deps carries the services the API is built on.
type Deps struct {
	ProductSvc     productService
	CartSvc        cartService
	AllowedOrigins []string
}

type handlers struct {
	logger   *log.Logger
	products productService
	carts    cartService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.ProductSvc == nil || deps.CartSvc == nil {
		return nil, errors.New("product and cart services are required")
	}
	corsCfg := corsConfig(deps.AllowedOrigins)
	if err := corsCfg.Validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{logger: logger, products: deps.ProductSvc, carts: deps.CartSvc}

	router.GET("/products", h.listProducts)
	router.GET("/products/:code", h.getProduct)

	router.GET("/carts", h.listCarts)
	router.PUT("/carts/:customerId", h.openCart)
	router.GET("/carts/:customerId", h.getCart)
	router.DELETE("/carts/:customerId", h.invalidateCart)
	router.POST("/carts/:customerId/items", h.addItem)
	router.DELETE("/carts/:customerId/items/:productCode", h.removeItem)
	router.DELETE("/carts/:customerId/positions/:position", h.removeItemAt)

	router.GET("/average-ticket", h.averageTicket)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
