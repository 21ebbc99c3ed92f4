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

	"github.com/PIGAsHIT/audiophile-proof/internal/adapters/cache"
	"github.com/PIGAsHIT/audiophile-proof/internal/adapters/database"
	"github.com/PIGAsHIT/audiophile-proof/internal/adapters/documents"
	"github.com/PIGAsHIT/audiophile-proof/internal/api/handlers"
	"github.com/PIGAsHIT/audiophile-proof/internal/api/routes"
	"github.com/PIGAsHIT/audiophile-proof/internal/application/services"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/providers"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/repositories"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/gemini"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/mongodb"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/postgres"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/redis"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/spotify"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/observability"
	"github.com/PIGAsHIT/audiophile-proof/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("audiophile-proof", cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize metrics
	metrics := observability.NewMetrics()

	// Initialize database client. The user store is a hard dependency.
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize MongoDB client for favorites and the audit log
	var mongoClient *mongodb.Client
	mongoCtx, mongoCancel := context.WithTimeout(ctx, 10*time.Second)
	mongoClient, err = mongodb.NewClient(mongoCtx, &cfg.Mongo)
	mongoCancel()
	if err != nil {
		log.Printf("Warning: Failed to initialize MongoDB client: %v", err)
		mongoClient = nil
		// Continue without MongoDB - favorites and history are unavailable
	} else {
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			_ = mongoClient.Close(closeCtx)
		}()
		log.Println("MongoDB client initialized successfully")
	}

	// Initialize adapters
	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}
	recommendationCache := cache.NewRecommendationCache(cacheProvider)

	userAdapter := database.NewUserAdapter(pgClient)

	var favoriteRepo repositories.FavoriteRepository
	var searchEventRepo repositories.SearchEventRepository
	if mongoClient != nil {
		favoriteRepo = documents.NewFavoriteAdapter(mongoClient)
		searchEventRepo = documents.NewSearchEventAdapter(mongoClient)
	}

	// Initialize external clients. Missing credentials degrade to the
	// fallback path instead of failing startup.
	geminiClient := gemini.NewClient(&cfg.Gemini)
	if cfg.Gemini.APIKey == "" {
		log.Println("Warning: GEMINI_API_KEY is not set; analysis runs in fallback mode")
	}

	spotifyClient := spotify.NewClient(&cfg.Spotify)
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		log.Println("Warning: Spotify credentials are not set; track search runs in fallback mode")
	}

	// Initialize services
	analyticsService := services.NewSearchAnalyticsService(searchEventRepo)
	recommendationService := services.NewRecommendationService(
		recommendationCache,
		geminiClient,
		spotifyClient,
		analyticsService,
		metrics,
	)
	authService := services.NewAuthService(userAdapter, &cfg.Auth)
	favoriteService := services.NewFavoriteService(favoriteRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, authService)
	userHandler := handlers.NewUserHandler(favoriteService, analyticsService)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		recommendationHandler,
		userHandler,
		authService,
		metrics,
		"static",
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
