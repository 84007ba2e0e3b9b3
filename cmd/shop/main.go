package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-shop/internal/shop/adapters"
	"go-shop/internal/shop/application"
	"go-shop/internal/shop/infrastructure"
	"go-shop/internal/shop/ports"
	"go-shop/pkg/config"
	"go-shop/pkg/db"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
	"go-shop/pkg/middleware"
	"go-shop/pkg/rabbitmq"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("starting shop service")

	// Connect to database
	dbConn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Timeout:  cfg.DBTimeout,
	})
	if err != nil {
		log.Fatal("failed to connect to database: " + err.Error())
	}
	log.Info("connected to database")

	// Initialize store, run migrations and seed reference rows
	store := adapters.NewGormStore(dbConn)
	if err := store.Migrate(); err != nil {
		log.Fatal("failed to migrate database: " + err.Error())
	}
	if err := store.Seed(context.Background()); err != nil {
		log.Fatal("failed to seed reference data: " + err.Error())
	}

	// Connect to Redis for the product cache
	var productCache ports.ProductCache
	if cfg.RedisEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("failed to connect to Redis, product cache disabled: " + err.Error())
		} else {
			defer redisClient.Close()
			productCache = adapters.NewRedisProductCache(redisClient, cfg.ProductCacheTTL)
			log.Info("connected to Redis")
		}
	}

	// Connect to RabbitMQ
	var publisher ports.EventPublisher
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
	} else {
		defer rabbitConn.Close()

		pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeOrders, log)
		if err != nil {
			log.Warn("failed to create publisher: " + err.Error())
		} else {
			publisher = adapters.NewRabbitMQPublisher(pub, log)
		}
	}

	// Initialize use cases
	authorizer := adapters.NewCardAuthorizer()
	carts := application.NewCartUseCase(store, log)
	orders := application.NewOrderUseCase(store, publisher, authorizer, productCache, log)
	catalog := application.NewCatalogUseCase(store, productCache, log)

	settings := application.NewSiteSettings(store)
	if err := settings.Load(context.Background()); err != nil {
		log.Warn("failed to load site settings, using defaults: " + err.Error())
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Recompute promotion state at startup, then once per refresh interval
	if err := catalog.RefreshPromotions(ctx, time.Now()); err != nil {
		log.Warn("failed to refresh promotions: " + err.Error())
	}
	go func() {
		ticker := time.NewTicker(cfg.PromotionRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if err := catalog.RefreshPromotions(ctx, now); err != nil {
					log.Error("failed to refresh promotions: " + err.Error())
				}
			}
		}
	}()

	// Start HTTP server
	httpHandler := infrastructure.NewHTTPHandler(carts, orders, catalog, settings)
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())
	router.Use(middleware.Identity(cfg.SessionCookie))

	api := router.Group("/api/v1")
	httpHandler.RegisterRoutes(api)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	go func() {
		log.Info("HTTP server listening on :" + cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: " + err.Error())
	}

	log.Info("server stopped")
}
