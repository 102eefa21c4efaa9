package main

import (
	"context"
	"flag"
	"log"
	"os"

	"shopping-cart/internal/config"
	"shopping-cart/internal/db"
	"shopping-cart/internal/migrate"
)

func main() {
	var down bool
	flag.BoolVar(&down, "down", false, "Revert the most recent migration instead of applying all")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if !cfg.UsesDatabase() {
		logger.Fatalf("DB_DSN is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			logger.Fatalf("rollback migration: %v", err)
		}
	} else if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	version, dirty, ok, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Fatalf("read version: %v", err)
	}
	if !ok {
		logger.Println("schema empty")
		return
	}
	logger.Printf("schema at version %d (dirty=%t)", version, dirty)
}
