package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gainmaster/config"
	"gainmaster/internal/handler"
	"gainmaster/internal/httpserver"
	"gainmaster/internal/progress"
	"gainmaster/internal/repository"
	"gainmaster/internal/service"
	"gainmaster/internal/util"
	"gainmaster/pkg/db"
	"gainmaster/pkg/logger"
	redisclient "gainmaster/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	remote := repository.NewRemote(dbConn, log)

	// Init Services
	authService := service.NewAuthService(userRepo, remote.Profiles(), cfg.JWT.Secret, log)
	registry := progress.NewRegistry(remote, log)
	deduper := util.NewDeduper(rdb, 48*time.Hour)

	// Init Handlers
	sessionHandler := handler.NewSessionHandler(authService, log)
	progressHandler := handler.NewProgressHandler(registry, deduper, log)
	taskHandler := handler.NewTaskHandler(registry, log)
	foodHandler := handler.NewFoodHandler(registry, log)
	planHandler := handler.NewPlanHandler(registry, log)

	// Router
	router := httpserver.NewRouter(
		sessionHandler,
		progressHandler,
		taskHandler,
		foodHandler,
		planHandler,
		cfg.JWT.Secret,
		dbConn,
	)

	// Start API server
	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router.Engine,
	}
	go func() {
		log.Info("HTTP server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	// Drain in-flight remote mirrors before the pool closes.
	registry.Wait()

	log.Info("shutdown complete")
}
