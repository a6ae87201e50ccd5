package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/handler"
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/pricefeed"
	redisStorage "github.com/Gurn0or/golden-haven-navigator/internal/adapter/storage/redis"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/service"
	"github.com/Gurn0or/golden-haven-navigator/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminUsername = "ops.lead"
	testAdminPassword = "correct-horse-battery"
)

// testApp builds a full application stack: real HTTP layer, middleware,
// handlers and services on top of in-memory repos and miniredis. This
// exercises the same wiring as production minus PostgreSQL.
type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis

	deliveryRepo   *inMemoryDeliveryRepo
	pickupRepo     *inMemoryPickupRepo
	redemptionRepo *inMemoryRedemptionRepo
	vaultRepo      *inMemoryVaultRepo
	walletRepo     *inMemoryWalletRepo
	txRepo         *inMemoryTransactionRepo
	ticketRepo     *inMemoryTicketRepo
	pricingRepo    *inMemoryPricingRepo
	auditRepo      *inMemoryAuditRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := logger.New("error", false)

	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 12*time.Hour, "test-issuer")
	notifier := service.NewLogNotifier(log)

	adminRepo := newInMemoryAdminRepo()
	deliveryRepo := newInMemoryDeliveryRepo()
	pickupRepo := newInMemoryPickupRepo()
	redemptionRepo := newInMemoryRedemptionRepo()
	vendorRepo := newInMemoryVendorRepo()
	vaultRepo := newInMemoryVaultRepo()
	walletRepo := newInMemoryWalletRepo()
	txRepo := newInMemoryTransactionRepo()
	pricingRepo := newInMemoryPricingRepo()
	ticketRepo := newInMemoryTicketRepo()
	auditRepo := newInMemoryAuditRepo()
	transactor := newInMemoryTransactor()

	auditSvc := service.NewAuditService(auditRepo, log)
	authSvc := service.NewAuthService(adminRepo, hashSvc, tokenSvc, auditSvc)
	fulfillmentSvc := service.NewFulfillmentService(deliveryRepo, pickupRepo, transactor, notifier, auditSvc, log)
	redemptionSvc := service.NewRedemptionService(redemptionRepo, vaultRepo, txRepo, transactor, notifier, auditSvc, log)
	vaultSvc := service.NewVaultService(vaultRepo, auditSvc, log)
	vendorSvc := service.NewVendorService(vendorRepo, pickupRepo, auditSvc, log)
	walletSvc := service.NewWalletService(walletRepo, txRepo, auditSvc, log)
	pricingSvc := service.NewPricingService(
		pricingRepo,
		pricefeed.NewStaticSource(100),
		redisStorage.NewPriceCache(rdb),
		30*time.Second,
		auditSvc,
		log,
	)
	reportingSvc := service.NewReportingService(txRepo, redemptionRepo, walletRepo, vaultRepo, log)
	supportSvc := service.NewSupportService(ticketRepo, log)

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
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		Logger:         log,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Seed an operator admin
	passwordHash, err := hashSvc.Hash(testAdminPassword)
	require.NoError(t, err)
	require.NoError(t, adminRepo.Create(t.Context(), &domain.AdminUser{
		ID:           uuid.New(),
		Username:     testAdminUsername,
		PasswordHash: passwordHash,
		DisplayName:  "Ops Lead",
		Role:         domain.AdminRoleOperator,
		Status:       domain.AdminStatusActive,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}))

	app := &testApp{
		server:         server,
		redis:          mr,
		deliveryRepo:   deliveryRepo,
		pickupRepo:     pickupRepo,
		redemptionRepo: redemptionRepo,
		vaultRepo:      vaultRepo,
		walletRepo:     walletRepo,
		txRepo:         txRepo,
		ticketRepo:     ticketRepo,
		pricingRepo:    pricingRepo,
		auditRepo:      auditRepo,
	}
	app.seed(t)
	return app
}

// seed loads the fixtures every flow test works against.
func (app *testApp) seed(t *testing.T) {
	t.Helper()
	now := time.Now().UTC()

	syncedAt := now.Add(-time.Hour)
	app.vaultRepo.vaults["VLT-A1B2C3D4"] = &domain.Vault{
		ID:               "VLT-A1B2C3D4",
		Name:             "Mumbai Central",
		Type:             domain.VaultTypeBrinks,
		Location:         "Mumbai, IN",
		Partner:          "Brinks India",
		GoldHoldingGrams: 5000,
		ThresholdGrams:   100,
		LastSync:         &syncedAt,
		Status:           domain.VaultStatusHealthy,
		AutoSync:         true,
		SyncFrequency:    domain.SyncFrequencyDaily,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	app.deliveryRepo.orders["RD-10023"] = &domain.DeliveryOrder{
		ID:              "RD-10023",
		User:            "Priya Shah",
		Email:           "priya@example.com",
		KYCStatus:       domain.KYCStatusVerified,
		WalletID:        "0xabc123",
		GoldWeightGrams: 25,
		TokenBurnHash:   "0xburn1",
		Vault:           "Mumbai Central",
		Status:          domain.DeliveryStatusApproved,
		DeliveryAddress: "14 Marine Drive",
		PostalCode:      "400020",
		ContactNumber:   "+91-98000-00001",
		DeliveryMode:    domain.DeliveryModeStandard,
		RequestedOn:     now.Add(-48 * time.Hour),
		UpdatedAt:       now,
	}

	app.redemptionRepo.redemptions["RED-30017"] = &domain.Redemption{
		RequestID: "RED-30017",
		User: domain.RedemptionUser{
			Name:     "Asha Mehta",
			Email:    "asha@example.com",
			WalletID: "0xabc123",
		},
		GoldWeightGrams: 50,
		Status:          domain.RedemptionStatusSubmitted,
		Mode:            domain.RedemptionModeDelivery,
		RequestedOn:     now.Add(-24 * time.Hour),
		UpdatedAt:       now,
	}

	app.walletRepo.add(&domain.Wallet{
		Address:      "0xabc123",
		OwnerName:    "Priya Shah",
		OwnerEmail:   "priya@example.com",
		BalanceGrams: 120,
		Status:       domain.WalletStatusActive,
		Security: domain.WalletSecurity{
			RecoverySetup:   true,
			BiometricBound:  true,
			MPCSharesTotal:  3,
			MPCSharesActive: 3,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})

	app.ticketRepo.tickets["TKT-00042"] = &domain.SupportTicket{
		ID:             "TKT-00042",
		Subject:        "Redemption stuck in submitted",
		RequesterName:  "Asha Mehta",
		RequesterEmail: "asha@example.com",
		Priority:       domain.TicketPriorityHigh,
		Status:         domain.TicketStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// request performs an HTTP call and decodes the envelope.
func (app *testApp) request(t *testing.T, method, path, token string, body any) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, app.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	}
	return resp.StatusCode, envelope
}

// login authenticates the seeded operator and returns the JWT.
func (app *testApp) login(t *testing.T) string {
	t.Helper()
	status, envelope := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, status)
	data := envelope["data"].(map[string]interface{})
	return data["token"].(string)
}

func data(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "missing data envelope: %v", envelope)
	return d
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	t.Run("success", func(t *testing.T) {
		status, envelope := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": testAdminUsername,
			"password": testAdminPassword,
		})
		require.Equal(t, http.StatusOK, status)
		d := data(t, envelope)
		assert.NotEmpty(t, d["token"])
		assert.Greater(t, d["expiry"].(float64), float64(time.Now().Unix()))
	})

	t.Run("wrong password", func(t *testing.T) {
		status, envelope := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": testAdminUsername,
			"password": "not-the-password",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "AUTH_001", envelope["error_code"])
	})

	t.Run("unknown username", func(t *testing.T) {
		status, envelope := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "nobody",
			"password": "whatever123",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "AUTH_001", envelope["error_code"])
	})
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	status, _ := app.request(t, http.MethodGet, "/api/v1/vaults", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = app.request(t, http.MethodGet, "/api/v1/vaults", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDeliveryLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	// App Approved -> Out for Delivery
	status, envelope := app.request(t, http.MethodPost, "/api/v1/orders/delivery/RD-10023/ship", token, map[string]any{
		"partner":     "BlueDart",
		"awb_number":  "AWB-9981",
		"notify_user": true,
	})
	require.Equal(t, http.StatusOK, status)
	d := data(t, envelope)
	assert.Equal(t, domain.DeliveryStatusOutForDelivery, d["status"])
	assert.Equal(t, "BlueDart", d["delivery_partner"])
	assert.Equal(t, "AWB-9981", d["awb_number"])

	// Out for Delivery -> Delivered
	status, envelope = app.request(t, http.MethodPost, "/api/v1/orders/delivery/RD-10023/deliver", token, map[string]any{})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.DeliveryStatusDelivered, data(t, envelope)["status"])

	// Delivered is terminal; cancel must be blocked.
	status, envelope = app.request(t, http.MethodPost, "/api/v1/orders/delivery/RD-10023/cancel", token, map[string]any{
		"confirm": true,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ORD_001", envelope["error_code"])

	// The activity log recorded both transitions.
	events, err := app.deliveryRepo.ListEvents(t.Context(), "RD-10023")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.DeliveryStatusOutForDelivery, events[0].Status)
	assert.Equal(t, domain.DeliveryStatusDelivered, events[1].Status)
}

func TestRedemptionFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	// Vault cannot be assigned while still submitted.
	status, envelope := app.request(t, http.MethodPut, "/api/v1/redemptions/RED-30017/vault", token, map[string]any{
		"vault_location": "Mumbai Central",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "VLT_001", envelope["error_code"])

	// submitted -> verified -> approved
	status, envelope = app.request(t, http.MethodPost, "/api/v1/redemptions/RED-30017/verify", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.RedemptionStatusVerified, data(t, envelope)["status"])

	status, envelope = app.request(t, http.MethodPost, "/api/v1/redemptions/RED-30017/approve", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.RedemptionStatusApproved, data(t, envelope)["status"])

	// Now the vault assignment goes through.
	status, envelope = app.request(t, http.MethodPut, "/api/v1/redemptions/RED-30017/vault", token, map[string]any{
		"vault_location": "Mumbai Central",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mumbai Central", data(t, envelope)["vault_location"])

	// Burn the backing tokens.
	status, envelope = app.request(t, http.MethodPost, "/api/v1/redemptions/RED-30017/burn", token, nil)
	require.Equal(t, http.StatusOK, status)
	d := data(t, envelope)
	assert.Equal(t, string(domain.TransactionTypeBurn), d["type"])
	assert.Equal(t, -50.0, d["amount_grams"])

	// A second burn is rejected.
	status, envelope = app.request(t, http.MethodPost, "/api/v1/redemptions/RED-30017/burn", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "GEN_002", envelope["error_code"])
}

func TestVaultAddAndSync(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	status, envelope := app.request(t, http.MethodPost, "/api/v1/vaults", token, map[string]any{
		"name":               "Delhi South",
		"type":               "Local",
		"location":           "Delhi, IN",
		"partner":            "Aurum Local",
		"gold_holding_grams": 800,
		"threshold_grams":    50,
		"auto_sync":          false,
	})
	require.Equal(t, http.StatusCreated, status)
	d := data(t, envelope)
	vaultID := d["id"].(string)
	assert.Equal(t, string(domain.VaultStatusOutOfSync), d["status"])

	// Sync stamps last_sync and recomputes health.
	status, envelope = app.request(t, http.MethodPost, "/api/v1/vaults/"+vaultID+"/sync", token, nil)
	require.Equal(t, http.StatusOK, status)
	d = data(t, envelope)
	assert.Equal(t, string(domain.VaultStatusHealthy), d["status"])
	assert.NotEmpty(t, d["last_sync"])

	// Summary reflects both vaults.
	status, envelope = app.request(t, http.MethodGet, "/api/v1/vaults/summary", token, nil)
	require.Equal(t, http.StatusOK, status)
	d = data(t, envelope)
	assert.Equal(t, 2.0, d["total_vaults"])
	assert.Equal(t, 5800.0, d["total_gold_grams"])
}

func TestWalletFreeze(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	// Freezing without the confirm flag is rejected.
	status, envelope := app.request(t, http.MethodPost, "/api/v1/wallets/0xabc123/freeze", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ORD_003", envelope["error_code"])

	status, envelope = app.request(t, http.MethodPost, "/api/v1/wallets/0xabc123/freeze", token, map[string]any{
		"confirm": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.WalletStatusSuspended), data(t, envelope)["status"])

	// Double freeze conflicts.
	status, envelope = app.request(t, http.MethodPost, "/api/v1/wallets/0xabc123/freeze", token, map[string]any{
		"confirm": true,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "WAL_001", envelope["error_code"])

	status, envelope = app.request(t, http.MethodPost, "/api/v1/wallets/0xabc123/unfreeze", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.WalletStatusActive), data(t, envelope)["status"])
}

func TestPricingQuote(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	// Static source: 100 USD/g. Retail rule adds 200 bps for small orders.
	status, _ := app.request(t, http.MethodPost, "/api/v1/pricing/rules", token, map[string]any{
		"name":            "Retail",
		"spread_bps":      200,
		"min_order_grams": 0,
		"max_order_grams": 100,
		"active":          true,
	})
	require.Equal(t, http.StatusCreated, status)

	status, envelope := app.request(t, http.MethodGet, "/api/v1/pricing/quote?grams=50", token, nil)
	require.Equal(t, http.StatusOK, status)
	d := data(t, envelope)
	assert.InDelta(t, 5100.0, d["total_usd"], 0.01)

	// Above the band, the rule no longer applies.
	status, envelope = app.request(t, http.MethodGet, "/api/v1/pricing/quote?grams=200", token, nil)
	require.Equal(t, http.StatusOK, status)
	d = data(t, envelope)
	assert.InDelta(t, 20000.0, d["total_usd"], 0.01)
}

func TestSupportTicketStatus(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	status, envelope := app.request(t, http.MethodPut, "/api/v1/support/tickets/TKT-00042/status", token, map[string]any{
		"status": "resolved",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.TicketStatusResolved), data(t, envelope)["status"])

	ticket, err := app.ticketRepo.GetByID(t.Context(), "TKT-00042")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, ticket.Status)
}

func TestLoginRateLimit(t *testing.T) {
	app := newTestApp(t)

	// auth_login allows 10 attempts per minute per client.
	for i := 0; i < 10; i++ {
		status, _ := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": testAdminUsername,
			"password": fmt.Sprintf("guess-%d", i),
		})
		require.Equal(t, http.StatusUnauthorized, status)
	}

	status, envelope := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": testAdminUsername,
		"password": "guess-11",
	})
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_001", envelope["error_code"])
}
