package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/GlucoRisk/internal/accounts"
	"github.com/Skufu/GlucoRisk/internal/config"
	"github.com/Skufu/GlucoRisk/internal/server"
	"github.com/Skufu/GlucoRisk/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	store, err := openAccountStore(ctx, cfg)
	if err != nil {
		log.Fatalf("account store: %v", err)
	}
	defer store.Close()

	router := server.NewRouter(server.Options{
		Accounts:     store,
		Sessions:     session.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		StaticRoot:   server.DetectStaticRoot(),
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	log.Printf("server listening on :%s (accounts: %s)", cfg.Port, cfg.AccountStore())
	waitForShutdown(srv)
}

func openAccountStore(ctx context.Context, cfg *config.Config) (accounts.Store, error) {
	switch cfg.AccountStore() {
	case "postgres":
		store, err := accounts.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		return store, nil
	case "sqlite":
		return accounts.OpenSQL(ctx, accounts.DriverSQLite, cfg.SQLitePath)
	default:
		return accounts.NewMemoryStore(), nil
	}
}

func waitForShutdown(srv *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
