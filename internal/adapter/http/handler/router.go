package handler

import (
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/middleware"
	redisStore "github.com/Gurn0or/golden-haven-navigator/internal/adapter/storage/redis"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	FulfillmentSvc ports.FulfillmentService
	RedemptionSvc  ports.RedemptionService
	VaultSvc       ports.VaultService
	VendorSvc      ports.VendorService
	WalletSvc      ports.WalletService
	PricingSvc     ports.PricingService
	ReportingSvc   ports.ReportingService
	SupportSvc     ports.SupportService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- JWT-authenticated routes (dashboard) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	operator := middleware.RequireRole(domain.AdminRoleSuperAdmin, domain.AdminRoleOperator)

	fulfillmentHandler := NewFulfillmentHandler(deps.FulfillmentSvc)
	delivery := v1.Group("/orders/delivery", jwtAuth)
	{
		delivery.GET("", rl("dashboard"), fulfillmentHandler.ListDeliveryOrders)
		delivery.GET("/:id", rl("dashboard"), fulfillmentHandler.GetDeliveryOrder)
		delivery.POST("/:id/ship", rl("actions"), operator, fulfillmentHandler.ShipDeliveryOrder)
		delivery.POST("/:id/deliver", rl("actions"), operator, fulfillmentHandler.DeliverOrder)
		delivery.POST("/:id/cancel", rl("actions"), operator, fulfillmentHandler.CancelDeliveryOrder)
		delivery.PUT("/:id/status", rl("actions"), operator, fulfillmentHandler.OverrideDeliveryStatus)
	}

	pickup := v1.Group("/orders/pickup", jwtAuth)
	{
		pickup.GET("", rl("dashboard"), fulfillmentHandler.ListPickupOrders)
		pickup.GET("/:id", rl("dashboard"), fulfillmentHandler.GetPickupOrder)
		pickup.POST("/:id/pick", rl("actions"), operator, fulfillmentHandler.MarkPicked)
		pickup.POST("/:id/miss", rl("actions"), operator, fulfillmentHandler.MarkMissed)
		pickup.POST("/:id/cancel", rl("actions"), operator, fulfillmentHandler.CancelPickupOrder)
		pickup.PUT("/:id/status", rl("actions"), operator, fulfillmentHandler.OverridePickupStatus)
	}

	redemptionHandler := NewRedemptionHandler(deps.RedemptionSvc)
	redemptions := v1.Group("/redemptions", jwtAuth)
	{
		redemptions.GET("", rl("dashboard"), redemptionHandler.List)
		redemptions.GET("/:id", rl("dashboard"), redemptionHandler.Get)
		redemptions.POST("/:id/verify", rl("actions"), operator, redemptionHandler.Verify)
		redemptions.POST("/:id/approve", rl("actions"), operator, redemptionHandler.Approve)
		redemptions.POST("/:id/reject", rl("actions"), operator, redemptionHandler.Reject)
		redemptions.POST("/:id/ship", rl("actions"), operator, redemptionHandler.MarkShipped)
		redemptions.POST("/:id/complete", rl("actions"), operator, redemptionHandler.Complete)
		redemptions.POST("/:id/burn", rl("actions"), operator, redemptionHandler.BurnTokens)
		redemptions.PUT("/:id/vault", rl("actions"), operator, redemptionHandler.AssignVault)
		redemptions.PUT("/:id/shipping", rl("actions"), operator, redemptionHandler.SetShipping)
	}

	vaultHandler := NewVaultHandler(deps.VaultSvc)
	vaults := v1.Group("/vaults", jwtAuth)
	{
		vaults.GET("", rl("dashboard"), vaultHandler.List)
		vaults.GET("/summary", rl("dashboard"), vaultHandler.Summary)
		vaults.GET("/:id", rl("dashboard"), vaultHandler.Get)
		vaults.POST("", rl("actions"), operator, vaultHandler.Add)
		vaults.PUT("/:id", rl("actions"), operator, vaultHandler.Update)
		vaults.POST("/:id/sync", rl("actions"), operator, vaultHandler.Sync)
	}

	vendorHandler := NewVendorHandler(deps.VendorSvc)
	vendors := v1.Group("/vendors", jwtAuth)
	{
		vendors.GET("", rl("dashboard"), vendorHandler.List)
		vendors.GET("/:id", rl("dashboard"), vendorHandler.Get)
		vendors.POST("", rl("actions"), operator, vendorHandler.Create)
		vendors.PUT("/:id", rl("actions"), operator, vendorHandler.Update)
		vendors.POST("/:id/suspend", rl("actions"), operator, vendorHandler.Suspend)
		vendors.POST("/:id/activate", rl("actions"), operator, vendorHandler.Activate)
		vendors.PUT("/:id/accepting", rl("actions"), operator, vendorHandler.SetAcceptingOrders)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.GET("", rl("dashboard"), walletHandler.List)
		wallets.GET("/:address", rl("dashboard"), walletHandler.Get)
		wallets.GET("/:address/transactions", rl("dashboard"), walletHandler.ListTransactions)
		wallets.POST("/:address/freeze", rl("actions"), operator, walletHandler.Freeze)
		wallets.POST("/:address/unfreeze", rl("actions"), operator, walletHandler.Unfreeze)
		wallets.POST("/:address/flag", rl("actions"), operator, walletHandler.Flag)
		wallets.POST("/:address/reset", rl("actions"), operator, walletHandler.ResetSecurity)
		wallets.POST("/:address/notes", rl("actions"), walletHandler.AddNote)
	}

	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("", rl("dashboard"), walletHandler.ListTransactions)
	}

	pricingHandler := NewPricingHandler(deps.PricingSvc)
	pricing := v1.Group("/pricing", jwtAuth)
	{
		pricing.GET("/spot", rl("dashboard"), pricingHandler.Spot)
		pricing.GET("/quote", rl("dashboard"), pricingHandler.Quote)
		pricing.GET("/rules", rl("dashboard"), pricingHandler.ListRules)
		pricing.POST("/rules", rl("actions"), operator, pricingHandler.CreateRule)
		pricing.PUT("/rules/:id", rl("actions"), operator, pricingHandler.UpdateRule)
	}

	reportingHandler := NewReportingHandler(deps.ReportingSvc)
	dashboard := v1.Group("/dashboard", jwtAuth)
	{
		dashboard.GET("/stats", rl("dashboard"), reportingHandler.DashboardStats)
	}
	reports := v1.Group("/reports", jwtAuth)
	{
		reports.GET("/token-supply", rl("dashboard"), reportingHandler.TokenSupply)
		reports.GET("/redemption-volume", rl("dashboard"), reportingHandler.RedemptionVolume)
	}

	supportHandler := NewSupportHandler(deps.SupportSvc)
	support := v1.Group("/support/tickets", jwtAuth)
	{
		support.GET("", rl("dashboard"), supportHandler.List)
		support.GET("/:id", rl("dashboard"), supportHandler.Get)
		support.PUT("/:id/status", rl("actions"), supportHandler.UpdateStatus)
	}

	return r
}
