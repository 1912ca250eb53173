package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/estampaviva/estampa-api/internal/cache"
	"github.com/estampaviva/estampa-api/internal/config"
	"github.com/estampaviva/estampa-api/internal/database"
	"github.com/estampaviva/estampa-api/internal/handler"
	"github.com/estampaviva/estampa-api/internal/middleware"
	"github.com/estampaviva/estampa-api/internal/repository"
	"github.com/estampaviva/estampa-api/internal/service"
	"github.com/estampaviva/estampa-api/internal/utils"
	"github.com/estampaviva/estampa-api/internal/worker"
	"github.com/estampaviva/estampa-api/pkg/mercadopago"
)

// main is the application entrypoint for the Estampa Viva storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting estampa api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize cart store
	cartStore := cache.NewCartStore(redisClient, cfg.Worker.CartTTL)

	// 4. Initialize Mercado Pago client
	mpClient := mercadopago.NewClient(cfg.MercadoPago.AccessToken, cfg.MercadoPago.BaseURL)

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// 6. Initialize services
	catalogSvc := service.NewCatalogService(productRepo)
	pricingSvc := service.NewPricingService(pricingRepo, cfg.PriceMax)
	cartSvc := service.NewCartService(cartStore, catalogSvc, pricingSvc)
	checkoutSvc := service.NewCheckoutService(orderRepo, mpClient, cartSvc)
	notificationSvc := service.NewPaymentNotificationService(orderRepo, mpClient)
	adminAuthSvc := service.NewAdminAuthService(adminRepo)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(db),
		Product:  handler.NewProductHandler(catalogSvc),
		Pricing:  handler.NewPricingHandler(pricingSvc),
		Cart:     handler.NewCartHandler(cartSvc),
		Checkout: handler.NewCheckoutHandler(checkoutSvc),
		Webhook:  handler.NewWebhookHandler(notificationSvc),
		Auth:     handler.NewAuthHandler(adminAuthSvc),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewPaymentStatusWorker(
		orderRepo, notificationSvc,
		cfg.Worker.PaymentCheckInterval,
		cfg.Worker.PaymentCheckStale,
		cfg.Worker.PaymentCheckMaxAge,
	).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Product  *handler.ProductHandler
	Pricing  *handler.PricingHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Webhook  *handler.WebhookHandler
	Auth     *handler.AuthHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	// Payment gateway webhook
	router.POST("/webhook/mercadopago", handlers.Webhook.HandleMercadoPagoWebhook)

	router.GET("/v1/health", handlers.Health.GetHealth)

	// Storefront routes
	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.Product.ListProducts)
		v1.GET("/products/categorias", handlers.Product.GetCategorias)
		v1.GET("/products/:id", handlers.Product.GetProduct)
		v1.GET("/pricing", handlers.Pricing.GetPricing)

		v1.GET("/cart", handlers.Cart.GetCart)
		v1.POST("/cart/items", handlers.Cart.AddItem)
		v1.DELETE("/cart/items", handlers.Cart.RemoveItem)
		v1.DELETE("/cart", handlers.Cart.ClearCart)

		v1.POST("/checkout", handlers.Checkout.Checkout)
		v1.GET("/orders/:reference", handlers.Checkout.GetOrder)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.Use(jwtMiddleware.Handle())
	{
		// Catalog management
		admin.POST("/products", handlers.Product.CreateProduct)
		admin.PUT("/products/:id", handlers.Product.UpdateProduct)
		admin.DELETE("/products/:id", handlers.Product.DeleteProduct)

		// Pricing table editor
		admin.PUT("/pricing", handlers.Pricing.UpdatePrice)
		admin.POST("/pricing/setup", handlers.Pricing.SetupSystem)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
