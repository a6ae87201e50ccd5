package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/dto"
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/middleware"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports/mocks"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Auth Handler Tests ---

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(8 * time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "ops.lead", "password123").Return("jwt-token-123", expiry, nil)

	body, _ := json.Marshal(dto.LoginRequest{
		Username: "ops.lead",
		Password: "password123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token-123", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestLogin_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	// Empty body => binding error
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "bad", "bad").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	body, _ := json.Marshal(dto.LoginRequest{
		Username: "bad",
		Password: "bad",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Fulfillment Handler Tests ---

func TestShipDeliveryOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFulfillment := mocks.NewMockFulfillmentService(ctrl)
	h := NewFulfillmentHandler(mockFulfillment)

	mockFulfillment.EXPECT().ShipDeliveryOrder(gomock.Any(), ports.ShipOrderRequest{
		OrderID:    "RD-10023",
		Partner:    "BlueDart",
		AWBNumber:  "AWB-9981",
		NotifyUser: true,
	}).Return(&domain.DeliveryOrder{
		ID:     "RD-10023",
		Status: domain.DeliveryStatusOutForDelivery,
	}, nil)

	body, _ := json.Marshal(dto.ShipOrderRequest{
		Partner:    "BlueDart",
		AWBNumber:  "AWB-9981",
		NotifyUser: true,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "RD-10023"}}

	h.ShipDeliveryOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Out for Delivery", data["status"])
}

func TestShipDeliveryOrder_MissingAWB(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFulfillment := mocks.NewMockFulfillmentService(ctrl)
	h := NewFulfillmentHandler(mockFulfillment)

	body, _ := json.Marshal(map[string]string{"partner": "BlueDart"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "RD-10023"}}

	h.ShipDeliveryOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShipDeliveryOrder_TransitionBlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFulfillment := mocks.NewMockFulfillmentService(ctrl)
	h := NewFulfillmentHandler(mockFulfillment)

	mockFulfillment.EXPECT().ShipDeliveryOrder(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrTransitionBlocked("Delivered", "ship"))

	body, _ := json.Marshal(dto.ShipOrderRequest{Partner: "BlueDart", AWBNumber: "AWB-1"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "RD-10023"}}

	h.ShipDeliveryOrder(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORD_001", resp["error_code"])
}

func TestCancelDeliveryOrder_EmptyBodyStillBinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFulfillment := mocks.NewMockFulfillmentService(ctrl)
	h := NewFulfillmentHandler(mockFulfillment)

	// No body means no confirm flag; the service rejects the cancel.
	mockFulfillment.EXPECT().CancelDeliveryOrder(gomock.Any(), ports.TransitionRequest{
		OrderID: "RD-10023",
	}).Return(nil, apperror.ErrConfirmationRequired())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "RD-10023"}}

	h.CancelDeliveryOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORD_003", resp["error_code"])
}

func TestListDeliveryOrders_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFulfillment := mocks.NewMockFulfillmentService(ctrl)
	h := NewFulfillmentHandler(mockFulfillment)

	mockFulfillment.EXPECT().ListDeliveryOrders(gomock.Any(), ports.OrderListParams{
		Search:   "asha",
		Status:   "Delivered",
		Page:     2,
		PageSize: 10,
	}).Return([]domain.DeliveryOrder{
		{ID: "RD-10023", Status: domain.DeliveryStatusDelivered},
	}, int64(11), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?search=asha&status=Delivered&page=2&page_size=10", nil)

	h.ListDeliveryOrders(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
	meta := data["meta"].(map[string]interface{})
	assert.Equal(t, float64(11), meta["total"])
	assert.Equal(t, float64(2), meta["page"])
}

func TestOverridePickupStatus_RequiresBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFulfillment := mocks.NewMockFulfillmentService(ctrl)
	h := NewFulfillmentHandler(mockFulfillment)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "RP-20045"}}

	h.OverridePickupStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Redemption Handler Tests ---

func TestRedemptionVerify_EmptyBodyAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRedemption := mocks.NewMockRedemptionService(ctrl)
	h := NewRedemptionHandler(mockRedemption)

	mockRedemption.EXPECT().Verify(gomock.Any(), ports.RedemptionTransitionRequest{
		RequestID: "RED-30017",
	}).Return(&domain.Redemption{
		RequestID: "RED-30017",
		Status:    domain.RedemptionStatusVerified,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "RED-30017"}}

	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssignVault_MissingLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRedemption := mocks.NewMockRedemptionService(ctrl)
	h := NewRedemptionHandler(mockRedemption)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "RED-30017"}}

	h.AssignVault(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBurnTokens_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRedemption := mocks.NewMockRedemptionService(ctrl)
	h := NewRedemptionHandler(mockRedemption)

	mockRedemption.EXPECT().BurnTokens(gomock.Any(), "RED-30017").Return(&domain.Transaction{
		WalletID:    "0xabc123",
		Type:        domain.TransactionTypeBurn,
		AmountGrams: -50,
		Reference:   "RED-30017",
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "RED-30017"}}

	h.BurnTokens(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "BURN", data["type"])
	assert.Equal(t, float64(-50), data["amount_grams"])
}

// --- Vault Handler Tests ---

func TestAddVault_Created(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVault := mocks.NewMockVaultService(ctrl)
	h := NewVaultHandler(mockVault)

	mockVault.EXPECT().Add(gomock.Any(), gomock.Any()).Return(&domain.Vault{
		ID:     "VLT-A1B2C3D4",
		Name:   "Mumbai Central",
		Status: domain.VaultStatusOutOfSync,
	}, nil)

	body, _ := json.Marshal(dto.VaultRequest{
		Name:             "Mumbai Central",
		Type:             "Brinks",
		Location:         "Mumbai, IN",
		GoldHoldingGrams: 5000,
		ThresholdGrams:   100,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Add(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Out of Sync", data["status"])
}

func TestVaultSummary_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVault := mocks.NewMockVaultService(ctrl)
	h := NewVaultHandler(mockVault)

	mockVault.EXPECT().Summary(gomock.Any()).Return(&domain.VaultSummary{
		TotalVaults:    3,
		TotalGoldGrams: 5380,
		LowStockCount:  1,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total_vaults"])
}

// --- Wallet Handler Tests ---

func TestFreezeWallet_NoBodyMeansNoConfirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().Freeze(gomock.Any(), "0xabc123", false).
		Return(nil, apperror.ErrConfirmationRequired())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "address", Value: "0xabc123"}}

	h.Freeze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFreezeWallet_Confirmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().Freeze(gomock.Any(), "0xabc123", true).Return(&domain.Wallet{
		Address: "0xabc123",
		Status:  domain.WalletStatusSuspended,
	}, nil)

	body, _ := json.Marshal(dto.ConfirmRequest{Confirm: true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "address", Value: "0xabc123"}}

	h.Freeze(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddWalletNote_AuthorFromSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().AddNote(gomock.Any(), "0xabc123", "ops.lead", "verified over call").
		Return(&domain.Wallet{Address: "0xabc123"}, nil)

	body, _ := json.Marshal(dto.WalletNoteRequest{Text: "verified over call"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "address", Value: "0xabc123"}}
	c.Set(middleware.CtxAdminUsername, "ops.lead")

	h.AddNote(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListTransactions_GlobalRouteUsesWalletQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	// No :address param on the global route; ?wallet= scopes the list.
	mockWallet.EXPECT().ListTransactions(gomock.Any(), ports.TransactionListParams{
		WalletID: "0xabc123",
		Type:     "BURN",
		Page:     1,
		PageSize: 20,
	}).Return([]domain.Transaction{
		{WalletID: "0xabc123", Type: domain.TransactionTypeBurn, AmountGrams: -50},
	}, int64(1), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?wallet=0xabc123&type=BURN", nil)

	h.ListTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
}

// --- Pricing Handler Tests ---

func TestQuote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPricing := mocks.NewMockPricingService(ctrl)
	h := NewPricingHandler(mockPricing)

	mockPricing.EXPECT().Quote(gomock.Any(), 50.0).Return(5100.0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?grams=50", nil)

	h.Quote(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(5100), data["total_usd"])
}

func TestQuote_InvalidGrams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPricing := mocks.NewMockPricingService(ctrl)
	h := NewPricingHandler(mockPricing)

	for _, q := range []string{"", "abc", "-5", "0"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?grams="+q, nil)

		h.Quote(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, "grams=%q", q)
	}
}

// --- Support Handler Tests ---

func TestUpdateTicketStatus_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSupport := mocks.NewMockSupportService(ctrl)
	h := NewSupportHandler(mockSupport)

	mockSupport.EXPECT().UpdateStatus(gomock.Any(), "TKT-00042", domain.TicketStatusResolved).
		Return(&domain.SupportTicket{
			ID:     "TKT-00042",
			Status: domain.TicketStatusResolved,
		}, nil)

	body, _ := json.Marshal(dto.TicketStatusRequest{Status: "resolved"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "TKT-00042"}}

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Reporting Handler Tests ---

func TestDashboardStats_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewReportingHandler(mockReporting)

	mockReporting.EXPECT().DashboardStats(gomock.Any()).
		Return(nil, apperror.InternalError(errors.New("db down")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.DashboardStats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Health Check Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(
		stubChecker{name: "postgresql"},
		stubChecker{name: "redis", err: errors.New("connection refused")},
	)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])

	deps := resp["dependencies"].(map[string]interface{})
	redis := deps["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redis["status"])
}
