package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"jewelcart/internal/cache"
	"jewelcart/internal/config"
	"jewelcart/internal/db"
	"jewelcart/internal/httpserver"
	customerrepo "jewelcart/internal/repository/customer"
	linerepo "jewelcart/internal/repository/line"
	productrepo "jewelcart/internal/repository/product"
	tokenrepo "jewelcart/internal/repository/token"
	wishlistrepo "jewelcart/internal/repository/wishlist"
	cartsvc "jewelcart/internal/service/cart"
	customersvc "jewelcart/internal/service/customer"
	videocartsvc "jewelcart/internal/service/videocart"
	wishlistsvc "jewelcart/internal/service/wishlist"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var cartCache cache.CartCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		cartCache = cache.NewRedisCache(client)
		logger.Printf("cart cache enabled at %s", cfg.RedisAddr)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartLineRepo := linerepo.NewPostgres(dbpool, linerepo.CartTable)
	videoLineRepo := linerepo.NewPostgres(dbpool, linerepo.VideoCartTable)
	wishlistRepo := wishlistrepo.NewPostgres(dbpool)
	customerRepo := customerrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	cartService := cartsvc.New(cartLineRepo, productRepo, cartCache, logger)
	videoCartService := videocartsvc.New(videoLineRepo, productRepo)
	wishlistService := wishlistsvc.New(wishlistRepo, productRepo)
	customerService := customersvc.New(customerRepo, tokenRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:      cartService,
		WishlistSvc:  wishlistService,
		VideoCartSvc: videoCartService,
		CustomerSvc:  customerService,
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
