package ports

import (
	"context"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations for admin sessions.
type TokenService interface {
	Generate(adminID uuid.UUID, username string, role domain.AdminRole) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AdminID  uuid.UUID
	Username string
	Role     domain.AdminRole
}

// AuthService defines admin authentication.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// --- Fulfillment (delivery + pickup) ---

// ShipOrderRequest carries the input for marking an order out for delivery.
type ShipOrderRequest struct {
	OrderID    string
	Partner    string
	AWBNumber  string
	Note       string
	NotifyUser bool
}

// TransitionRequest carries the input for a simple status transition.
type TransitionRequest struct {
	OrderID      string
	Note         string
	Confirm      bool // required for irreversible actions (cancel)
	NotifyUser   bool
	NotifyVendor bool // pickup only
}

// StatusOverrideRequest carries the input for the generic status dropdown.
type StatusOverrideRequest struct {
	OrderID      string
	NewStatus    string
	Note         string
	NotifyUser   bool
	NotifyVendor bool
}

// FulfillmentService drives the delivery and pickup order lifecycles.
type FulfillmentService interface {
	GetDeliveryOrder(ctx context.Context, id string) (*domain.DeliveryOrder, error)
	ListDeliveryOrders(ctx context.Context, params OrderListParams) ([]domain.DeliveryOrder, int64, error)
	ShipDeliveryOrder(ctx context.Context, req ShipOrderRequest) (*domain.DeliveryOrder, error)
	DeliverOrder(ctx context.Context, req TransitionRequest) (*domain.DeliveryOrder, error)
	CancelDeliveryOrder(ctx context.Context, req TransitionRequest) (*domain.DeliveryOrder, error)
	OverrideDeliveryStatus(ctx context.Context, req StatusOverrideRequest) (*domain.DeliveryOrder, error)

	GetPickupOrder(ctx context.Context, id string) (*domain.PickupOrder, error)
	ListPickupOrders(ctx context.Context, params OrderListParams) ([]domain.PickupOrder, int64, error)
	MarkPicked(ctx context.Context, req TransitionRequest) (*domain.PickupOrder, error)
	MarkMissed(ctx context.Context, req TransitionRequest) (*domain.PickupOrder, error)
	CancelPickupOrder(ctx context.Context, req TransitionRequest) (*domain.PickupOrder, error)
	OverridePickupStatus(ctx context.Context, req StatusOverrideRequest) (*domain.PickupOrder, error)
}

// --- Redemptions ---

// RedemptionTransitionRequest carries the input for a redemption transition.
type RedemptionTransitionRequest struct {
	RequestID  string
	Note       string
	NotifyUser bool
}

// RedemptionService drives the vault redemption lifecycle.
type RedemptionService interface {
	Get(ctx context.Context, requestID string) (*domain.Redemption, error)
	List(ctx context.Context, params RedemptionListParams) ([]domain.Redemption, int64, error)
	Verify(ctx context.Context, req RedemptionTransitionRequest) (*domain.Redemption, error)
	Approve(ctx context.Context, req RedemptionTransitionRequest) (*domain.Redemption, error)
	Reject(ctx context.Context, req RedemptionTransitionRequest) (*domain.Redemption, error)
	MarkShipped(ctx context.Context, req RedemptionTransitionRequest) (*domain.Redemption, error)
	Complete(ctx context.Context, req RedemptionTransitionRequest) (*domain.Redemption, error)
	AssignVault(ctx context.Context, requestID, vaultLocation string) (*domain.Redemption, error)
	SetShipping(ctx context.Context, requestID string, shipping domain.ShippingDetails) (*domain.Redemption, error)
	BurnTokens(ctx context.Context, requestID string) (*domain.Transaction, error)
}

// --- Vaults ---

// VaultInput carries the fields an admin supplies when adding or editing
// a vault. Status and last-sync are derived, never supplied.
type VaultInput struct {
	Name             string
	Type             domain.VaultType
	Location         string
	Partner          string
	GoldHoldingGrams float64
	ThresholdGrams   float64
	AutoSync         bool
	SyncFrequency    domain.SyncFrequency
}

// VaultService manages gold vaults and their health status.
type VaultService interface {
	List(ctx context.Context, search, status string) ([]domain.Vault, error)
	Get(ctx context.Context, id string) (*domain.Vault, error)
	Add(ctx context.Context, input VaultInput) (*domain.Vault, error)
	Update(ctx context.Context, id string, input VaultInput) (*domain.Vault, error)
	Sync(ctx context.Context, id string) (*domain.Vault, error)
	Summary(ctx context.Context) (*domain.VaultSummary, error)
}

// --- Vendors ---

// VendorInput carries the fields of the add/edit vendor form.
type VendorInput struct {
	Name          string
	Location      string
	Address       string
	City          string
	Zip           string
	ContactPerson string
	Phone         string
	Email         string
	TimeSlots     []domain.DaySlots
	LinkedVaults  []string
	DeliveryType  domain.VendorDeliveryType
	Notes         *string
}

// VendorService manages pickup vendors.
type VendorService interface {
	List(ctx context.Context, params VendorListParams) ([]domain.Vendor, int64, error)
	Get(ctx context.Context, id string) (*domain.Vendor, error)
	Create(ctx context.Context, input VendorInput) (*domain.Vendor, error)
	Update(ctx context.Context, id string, input VendorInput) (*domain.Vendor, error)
	Suspend(ctx context.Context, id string) (*domain.Vendor, error)
	Activate(ctx context.Context, id string) (*domain.Vendor, error)
	SetAcceptingOrders(ctx context.Context, id string, accepting bool) (*domain.Vendor, error)
}

// --- Wallets ---

// WalletService exposes the admin operations on end-user wallets.
type WalletService interface {
	List(ctx context.Context, params WalletListParams) ([]domain.Wallet, int64, error)
	Get(ctx context.Context, address string) (*domain.Wallet, error)
	Freeze(ctx context.Context, address string, confirm bool) (*domain.Wallet, error)
	Unfreeze(ctx context.Context, address string) (*domain.Wallet, error)
	Flag(ctx context.Context, address, reason string) (*domain.Wallet, error)
	ResetSecurity(ctx context.Context, address string, confirm bool) (*domain.Wallet, error)
	AddNote(ctx context.Context, address, author, text string) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
}

// --- Pricing ---

// PricingService quotes gold prices and manages pricing rules.
type PricingService interface {
	Spot(ctx context.Context) (*domain.SpotPrice, error)
	Quote(ctx context.Context, grams float64) (float64, error) // USD total
	ListRules(ctx context.Context) ([]domain.PricingRule, error)
	CreateRule(ctx context.Context, rule *domain.PricingRule) error
	UpdateRule(ctx context.Context, rule *domain.PricingRule) error
}

// PriceSource fetches the current gold spot price from upstream.
type PriceSource interface {
	FetchSpot(ctx context.Context) (*domain.SpotPrice, error)
}

// PriceCache is a short-TTL cache in front of the price source.
type PriceCache interface {
	Get(ctx context.Context) (*domain.SpotPrice, error) // nil, nil on miss
	Set(ctx context.Context, price *domain.SpotPrice, ttl time.Duration) error
}

// --- Reporting ---

// DashboardStats aggregates the landing-page numbers.
type DashboardStats struct {
	TotalSupplyGrams   float64
	GoldLockedGrams    float64
	ActiveWallets      int64
	OpenRedemptions    int64
	RedemptionsByState map[string]int64
	LowStockVaults     int
	OutOfSyncVaults    int
}

// ReportingService aggregates stats for the dashboard and reports pages.
type ReportingService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	TokenSupply(ctx context.Context) (*SupplyStats, error)
	RedemptionVolume(ctx context.Context, period string) (map[string]int64, error)
}

// --- Support ---

// SupportService manages the support ticket queue.
type SupportService interface {
	List(ctx context.Context, search, status string) ([]domain.SupportTicket, error)
	Get(ctx context.Context, id string) (*domain.SupportTicket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.SupportTicket, error)
}

// --- Audit ---

// AuditService records audited admin actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
