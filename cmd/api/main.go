package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/config"
	httpHandler "github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/handler"
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/pricefeed"
	pgStorage "github.com/Gurn0or/golden-haven-navigator/internal/adapter/storage/postgres"
	redisStorage "github.com/Gurn0or/golden-haven-navigator/internal/adapter/storage/redis"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/internal/service"
	"github.com/Gurn0or/golden-haven-navigator/pkg/logger"
)

// fallbackUSDPerGram is served when no price feed URL is configured.
const fallbackUSDPerGram = 75.0

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting e-Aurum admin backend")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	adminRepo := pgStorage.NewAdminRepo(pool)
	deliveryRepo := pgStorage.NewDeliveryOrderRepo(pool)
	pickupRepo := pgStorage.NewPickupOrderRepo(pool)
	redemptionRepo := pgStorage.NewRedemptionRepo(pool)
	vaultRepo := pgStorage.NewVaultRepo(pool)
	vendorRepo := pgStorage.NewVendorRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	pricingRepo := pgStorage.NewPricingRepo(pool)
	ticketRepo := pgStorage.NewTicketRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Notifier: webhook when configured, log-only otherwise.
	var notifier ports.Notifier
	if cfg.Notify.WebhookURL != "" {
		notifier = service.NewWebhookNotifier(cfg.Notify.WebhookURL, &http.Client{Timeout: cfg.Notify.Timeout}, log)
	} else {
		notifier = service.NewLogNotifier(log)
	}

	// Price source: HTTP feed when configured, fixed fallback otherwise.
	var priceSource ports.PriceSource
	if cfg.Pricing.FeedURL != "" {
		priceSource = pricefeed.NewHTTPSource(cfg.Pricing.FeedURL, &http.Client{Timeout: 10 * time.Second})
	} else {
		log.Warn().Msg("no price feed configured, using fixed fallback price")
		priceSource = pricefeed.NewStaticSource(fallbackUSDPerGram)
	}
	priceCache := redisStorage.NewPriceCache(rdb)

	// Initialize business services
	authSvc := service.NewAuthService(adminRepo, hashSvc, tokenSvc, auditSvc)
	fulfillmentSvc := service.NewFulfillmentService(deliveryRepo, pickupRepo, transactor, notifier, auditSvc, log)
	redemptionSvc := service.NewRedemptionService(redemptionRepo, vaultRepo, txRepo, transactor, notifier, auditSvc, log)
	vaultSvc := service.NewVaultService(vaultRepo, auditSvc, log)
	vendorSvc := service.NewVendorService(vendorRepo, pickupRepo, auditSvc, log)
	walletSvc := service.NewWalletService(walletRepo, txRepo, auditSvc, log)
	pricingSvc := service.NewPricingService(pricingRepo, priceSource, priceCache, cfg.Pricing.SpotCacheTTL, auditSvc, log)
	reportingSvc := service.NewReportingService(txRepo, redemptionRepo, walletRepo, vaultRepo, log)
	supportSvc := service.NewSupportService(ticketRepo, log)

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		FulfillmentSvc: fulfillmentSvc,
		RedemptionSvc:  redemptionSvc,
		VaultSvc:       vaultSvc,
		VendorSvc:      vendorSvc,
		WalletSvc:      walletSvc,
		PricingSvc:     pricingSvc,
		ReportingSvc:   reportingSvc,
		SupportSvc:     supportSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
