package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopping-cart/internal/config"
	"shopping-cart/internal/db"
	"shopping-cart/internal/domain"
	"shopping-cart/internal/httpserver"
	productrepo "shopping-cart/internal/repository/product"
	"shopping-cart/internal/seed"
	cartsvc "shopping-cart/internal/service/cart"
	productsvc "shopping-cart/internal/service/product"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		dbpool      *pgxpool.Pool
		productRepo productrepo.Repository
	)
	if cfg.UsesDatabase() {
		var err error
		dbpool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer dbpool.Close()
		productRepo = productrepo.NewPostgres(dbpool, logger)
	} else {
		productRepo = productrepo.NewMemory()
		n, err := seed.Apply(ctx, productRepo)
		if err != nil {
			logger.Fatalf("seed memory catalog: %v", err)
		}
		logger.Printf("DB_DSN not set, using in-memory catalog with %d demo products", n)
	}

	registry := domain.NewCartRegistry()
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(registry, productRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc:     productService,
		CartSvc:        cartService,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped, %d carts discarded", registry.Len())
	}
}
