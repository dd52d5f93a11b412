package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"online-bookstore/internal/config"
	"online-bookstore/internal/db"
	"online-bookstore/internal/httpserver"
	bookrepo "online-bookstore/internal/repository/book"
	cartrepo "online-bookstore/internal/repository/cart"
	"online-bookstore/internal/repository/inventory"
	orderrepo "online-bookstore/internal/repository/order"
	tokenrepo "online-bookstore/internal/repository/token"
	userrepo "online-bookstore/internal/repository/user"
	booksvc "online-bookstore/internal/service/book"
	cartsvc "online-bookstore/internal/service/cart"
	checkoutsvc "online-bookstore/internal/service/checkout"
	ordersvc "online-bookstore/internal/service/order"
	usersvc "online-bookstore/internal/service/user"
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

	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	ledger := inventory.NewLedger(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, ledger, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	bookService := booksvc.New(bookRepo)
	cartService := cartsvc.New(cartRepo, bookRepo)
	checkoutService := checkoutsvc.New(cartRepo, orderRepo)
	orderService := ordersvc.New(orderRepo)
	userService := usersvc.New(userRepo, tokenRepo, cfg.AccessTokenTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Users:    userService,
		Books:    bookService,
		Carts:    cartService,
		Checkout: checkoutService,
		Orders:   orderService,
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
