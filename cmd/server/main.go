package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/santhosh-ovd/indian-dishes/server/internal/auth"
	"github.com/santhosh-ovd/indian-dishes/server/internal/config"
	"github.com/santhosh-ovd/indian-dishes/server/internal/dataset"
	"github.com/santhosh-ovd/indian-dishes/server/internal/middleware"
	"github.com/santhosh-ovd/indian-dishes/server/internal/repository"
	"github.com/santhosh-ovd/indian-dishes/server/internal/server"
	"github.com/santhosh-ovd/indian-dishes/server/internal/service"
	"github.com/santhosh-ovd/indian-dishes/server/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(log)

	log.Info("starting indian dishes api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// The dish store is read-only for the life of the process; a bad dataset is fatal.
	log.Info("loading dish dataset...", "sources", cfg.Data.Sources)
	ctx := context.Background()
	dishes, err := dataset.LoadAll(ctx, cfg.Data.Sources)
	if err != nil {
		log.Error("failed to load dish dataset", "error", err)
		os.Exit(1)
	}

	dishRepo, err := repository.NewInMemoryDishRepository(dishes)
	if err != nil {
		log.Error("failed to build dish store", "error", err)
		os.Exit(1)
	}
	log.Info("dish dataset loaded successfully", "total_dishes", dishRepo.Len())

	tokenMaker, err := auth.NewJWTMaker(cfg.Auth.JWTSecret)
	if err != nil {
		log.Error("failed to create token maker", "error", err)
		os.Exit(1)
	}

	// Initialize services
	dishService := service.NewDishService(dishRepo)
	authService := auth.NewService(auth.NewInMemoryUserRepository(), tokenMaker, cfg.Auth.TokenTTL, log)

	stopCleanup := make(chan struct{})
	rateLimiter := middleware.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst, log)
	rateLimiter.StartCleanup(5*time.Minute, stopCleanup)

	handler := server.NewRouter(server.Deps{
		Config:      cfg,
		Logger:      log,
		Dishes:      dishService,
		Auth:        authService,
		Metrics:     middleware.NewMetrics(),
		RateLimiter: rateLimiter,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
