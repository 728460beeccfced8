package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-backend/internal/config"
	"cafe-backend/internal/database"
	"cafe-backend/internal/handler"
	"cafe-backend/internal/notifier"
	"cafe-backend/internal/repository"
	"cafe-backend/internal/router"
	"cafe-backend/internal/seed"
	"cafe-backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cafe API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema
	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	loyaltyRepo := repository.NewLoyaltyRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)

	// Initialize menu loader with S3 and local fallback
	fileLoader := seed.NewFileLoader(logger)
	var menuLoader seed.Loader

	if cfg.Seed.S3Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			menuLoader = fileLoader
		} else {
			menuLoader = seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Seed.S3Prefix, true, logger)
		}
	} else {
		menuLoader = fileLoader
		logger.Info().Msg("using local file system for menu files (S3 disabled)")
	}

	// Seed an empty catalog
	seeder := seed.NewSeeder(catalogRepo, menuLoader, logger)
	if err := seeder.Run(ctx, cfg.Seed.MenuFile); err != nil {
		logger.Warn().Err(err).Msg("catalog seeding failed, continuing with existing catalog")
	}

	// Initialize services
	n := notifier.NewStoreNotifier(notificationRepo, logger)
	catalogService := service.NewCatalogService(catalogRepo, logger)
	cartService := service.NewCartService(cartRepo, catalogRepo, logger)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, catalogRepo, loyaltyService, n, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)

	// Initialize router
	mux := router.New(catalogHandler, cartHandler, orderHandler, loyaltyHandler, notificationHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
