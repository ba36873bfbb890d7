package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	cartapp "github.com/shophub/storefront/internal/cart/app"
	cartredis "github.com/shophub/storefront/internal/cart/infra/redis"

	catalogapp "github.com/shophub/storefront/internal/catalog/app"
	"github.com/shophub/storefront/internal/catalog/infra/fakestore"

	checkoutapp "github.com/shophub/storefront/internal/checkout/app"
	checkoutadapter "github.com/shophub/storefront/internal/checkout/infra/adapter"

	docstorepg "github.com/shophub/storefront/internal/docstore/postgres"
	favoritesapp "github.com/shophub/storefront/internal/favorites/app"
	"github.com/shophub/storefront/internal/gateway"
	identityapp "github.com/shophub/storefront/internal/identity/app"
	messagesapp "github.com/shophub/storefront/internal/messages/app"
	orderapp "github.com/shophub/storefront/internal/order/app"

	"github.com/shophub/storefront/pkg/config"
	"github.com/shophub/storefront/pkg/logger"
	"github.com/shophub/storefront/pkg/postgres"
	"github.com/shophub/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	pool, err := postgres.Open(ctx, postgres.Config{
		Host: cfg.PostgresHost,
		Port: cfg.PostgresPort,
		User: cfg.PostgresUser,
		Pass: cfg.PostgresPass,
		DB:   cfg.PostgresDB,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()

	store := docstorepg.New(pool)
	if err := store.Migrate(ctx); err != nil {
		log.Error("migrate failed", slog.Any("err", err))
		os.Exit(1)
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	// Catalog
	catalogSource := fakestore.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	catalogSvc := catalogapp.NewService(catalogSource)

	// Cart
	cartStore := cartredis.NewStore(rdb)
	cartSvc := cartapp.NewService(cartStore)

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	checkoutSvc := checkoutapp.NewService(cartReader, catalogReader, 10)

	// Document-backed contexts
	orderSvc := orderapp.NewService(store)
	favoritesSvc := favoritesapp.NewService(store)
	identitySvc := identityapp.NewService(store, cfg.JWTSecret, cfg.JWTTTL)
	messagesSvc := messagesapp.NewService(store)

	server := gateway.NewServer(gateway.Options{
		Log:       log,
		Catalog:   catalogSvc,
		Cart:      cartSvc,
		Checkout:  checkoutSvc,
		Orders:    orderSvc,
		Favorites: favoritesSvc,
		Identity:  identitySvc,
		Messages:  messagesSvc,
		AdminPIN:  cfg.AdminPIN,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
