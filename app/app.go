// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"go-furniture-api/config"
	"go-furniture-api/db"
	"go-furniture-api/handler"
	"go-furniture-api/logger"
	"go-furniture-api/repository"
	"go-furniture-api/router"
	"go-furniture-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	furnitureRepo := repository.NewFurnitureRepository(database)

	authService := service.NewAuthService(userRepo, tokenRepo)
	userService := service.NewUserService(userRepo)
	furnitureService := service.NewFurnitureService(furnitureRepo, redisClient)

	authMW := handler.NewAuthMiddleware(authService)
	userHandler := handler.NewUserHandler(userRepo, authService)
	accountHandler := handler.NewAccountHandler(userRepo, authService)
	adminHandler := handler.NewAdminHandler(userService)
	furnitureHandler := handler.NewFurnitureHandler(furnitureService)

	r := router.NewRouter(authMW, userHandler, accountHandler, adminHandler, furnitureHandler)

	// The revocation ledger only grows during normal operation; entries
	// older than the longest possible token lifetime can never match a
	// live token, so a background sweep prunes them outside the request
	// path.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runLedgerSweep(sweepCtx, tokenRepo)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// runLedgerSweep periodically deletes revoked-token entries that are older
// than the refresh token lifetime plus a day of slack. Disabled when the
// configured interval is zero.
func runLedgerSweep(ctx context.Context, tokenRepo repository.ITokenRepository) {
	interval := time.Duration(config.AppConfig.JWT.LedgerSweepHours) * time.Hour
	if interval <= 0 {
		return
	}

	retention := service.RefreshTokenTTL() + 24*time.Hour

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := tokenRepo.DeleteOlderThan(time.Now().Add(-retention))
			if err != nil {
				logger.Log.WithError(err).Warn("Ledger sweep failed")
				continue
			}
			if deleted > 0 {
				logger.Log.WithField("deleted", deleted).Info("Ledger sweep pruned expired revocations")
			}
		}
	}
}

// TestApp bundles the wired router with its backing connections so
// integration tests can drive the full HTTP stack in-process.
type TestApp struct {
	DB     *sql.DB
	Redis  *redis.Client
	Router http.Handler
}

// NewTestApp wires all layers over the given connections, mirroring Run.
func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	furnitureRepo := repository.NewFurnitureRepository(database)

	authService := service.NewAuthService(userRepo, tokenRepo)
	userService := service.NewUserService(userRepo)
	furnitureService := service.NewFurnitureService(furnitureRepo, redisClient)

	authMW := handler.NewAuthMiddleware(authService)
	userHandler := handler.NewUserHandler(userRepo, authService)
	accountHandler := handler.NewAccountHandler(userRepo, authService)
	adminHandler := handler.NewAdminHandler(userService)
	furnitureHandler := handler.NewFurnitureHandler(furnitureService)

	return &TestApp{
		DB:     database,
		Redis:  redisClient,
		Router: router.NewRouter(authMW, userHandler, accountHandler, adminHandler, furnitureHandler),
	}
}
