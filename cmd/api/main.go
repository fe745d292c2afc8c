package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openfleet/carrental/internal/adapters/cache"
	"github.com/openfleet/carrental/internal/adapters/database"
	"github.com/openfleet/carrental/internal/adapters/events"
	"github.com/openfleet/carrental/internal/adapters/payments"
	"github.com/openfleet/carrental/internal/adapters/storage"
	"github.com/openfleet/carrental/internal/api/handlers"
	"github.com/openfleet/carrental/internal/api/middleware"
	"github.com/openfleet/carrental/internal/api/routes"
	"github.com/openfleet/carrental/internal/application/services"
	"github.com/openfleet/carrental/internal/domain/providers"
	"github.com/openfleet/carrental/internal/domain/repositories"
	"github.com/openfleet/carrental/internal/infrastructure/clients/postgres"
	"github.com/openfleet/carrental/internal/infrastructure/clients/redis"
	"github.com/openfleet/carrental/internal/infrastructure/notifications"
	"github.com/openfleet/carrental/internal/infrastructure/observability"
	"github.com/openfleet/carrental/pkg/auth"
	"github.com/openfleet/carrental/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The application can run without it; caching
	// and live catalog updates are disabled in that case.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	} else {
		log.Warn().Msg("event bus disabled (Redis not available)")
	}

	// Initialize adapters
	baseCarAdapter := database.NewCarAdapter(pgClient)

	var carAdapter repositories.CarRepository
	if cacheProvider != nil {
		carAdapter = database.NewCachedCarAdapter(baseCarAdapter, cacheProvider, metrics)
		log.Info().Msg("car adapter wrapped with caching layer")
	} else {
		carAdapter = baseCarAdapter
		log.Warn().Msg("car adapter running without cache (Redis unavailable)")
	}

	bookingAdapter := database.NewBookingAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)

	var imageStore providers.ImageStore
	if cfg.S3.Bucket != "" {
		imageStore, err = storage.NewS3ImageStore(&cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize image store, uploads disabled")
		} else {
			log.Info().Str("bucket", cfg.S3.Bucket).Msg("image store initialized")
		}
	} else {
		log.Warn().Msg("S3_BUCKET not set, image uploads disabled")
	}

	var mailer providers.MessageSender
	sender, err := notifications.NewEmailAPISender(&cfg.Email)
	if err != nil {
		log.Warn().Err(err).Msg("email sender not configured, booking confirmations disabled")
	} else {
		mailer = sender
	}

	gateway := payments.NewSimulatedGateway(cfg.Payment.ProcessingDelay)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	carService := services.NewCarService(carAdapter, eventBus)
	authService := services.NewAuthService(userAdapter, tokens, mailer)
	bookingService := services.NewBookingService(bookingAdapter, carAdapter, userAdapter, carService, gateway)
	adminService := services.NewAdminService(bookingAdapter, userAdapter)
	notificationService := services.NewNotificationService(mailer, userAdapter)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	carHandler := handlers.NewCarHandler(carService)
	bookingHandler := handlers.NewBookingHandler(bookingService, notificationService, metrics)
	adminHandler := handlers.NewAdminHandler(adminService)
	imageHandler := handlers.NewImageHandler(imageStore)
	sseHandler := handlers.NewSSEHandler(eventBus)

	authenticator := middleware.NewAuthenticator(tokens)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		carHandler,
		bookingHandler,
		adminHandler,
		imageHandler,
		sseHandler,
		authenticator,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server. WriteTimeout stays zero so SSE connections are
	// not cut off mid-stream.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
