package ports

import (
	"context"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AdminRepository defines persistence operations for dashboard admins.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.AdminUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}

// OrderListParams holds filter + pagination for order list pages.
// Search matches case-insensitively against id, user and email. Dropdown
// filters use exact match; empty or "all" means no constraint.
type OrderListParams struct {
	Search   string
	Status   string
	Vault    string
	Partner  string // delivery only
	Vendor   string // pickup only
	Page     int
	PageSize int
}

// DeliveryOrderRepository defines persistence for home-delivery orders.
// Methods accepting pgx.Tx run inside a transaction so a status change and
// its log entry commit together.
type DeliveryOrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.DeliveryOrder, error)
	List(ctx context.Context, params OrderListParams) ([]domain.DeliveryOrder, int64, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id, status string) error
	SetShipping(ctx context.Context, tx pgx.Tx, id, partner, awb string) error
	AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error
	ListEvents(ctx context.Context, orderID string) ([]domain.StatusEvent, error)
}

// PickupOrderRepository defines persistence for vendor-pickup orders.
type PickupOrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.PickupOrder, error)
	List(ctx context.Context, params OrderListParams) ([]domain.PickupOrder, int64, error)
	ListByVendor(ctx context.Context, vendorID string, openOnly bool) ([]domain.PickupOrder, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id, status string) error
	AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error
	ListEvents(ctx context.Context, orderID string) ([]domain.StatusEvent, error)
}

// RedemptionListParams holds filter + pagination for the redemptions page.
type RedemptionListParams struct {
	Search   string
	Status   string
	Mode     string
	Vault    string
	Page     int
	PageSize int
}

// RedemptionRepository defines persistence for vault redemption requests.
type RedemptionRepository interface {
	GetByID(ctx context.Context, requestID string) (*domain.Redemption, error)
	List(ctx context.Context, params RedemptionListParams) ([]domain.Redemption, int64, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, requestID, status string) error
	AssignVault(ctx context.Context, tx pgx.Tx, requestID, vaultLocation string) error
	SetShipping(ctx context.Context, tx pgx.Tx, requestID string, shipping domain.ShippingDetails) error
	MarkBurned(ctx context.Context, tx pgx.Tx, requestID string) error
	AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error
	ListEvents(ctx context.Context, requestID string) ([]domain.StatusEvent, error)
}

// VendorListParams holds filter + pagination for vendor management.
type VendorListParams struct {
	Search   string
	Status   string
	City     string
	Page     int
	PageSize int
}

// VendorRepository defines persistence for pickup vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	List(ctx context.Context, params VendorListParams) ([]domain.Vendor, int64, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
}

// VaultRepository defines persistence for gold vaults.
type VaultRepository interface {
	Create(ctx context.Context, vault *domain.Vault) error
	GetByID(ctx context.Context, id string) (*domain.Vault, error)
	GetByName(ctx context.Context, name string) (*domain.Vault, error)
	List(ctx context.Context, search, status string) ([]domain.Vault, error)
	Update(ctx context.Context, vault *domain.Vault) error
}

// WalletListParams holds filter + pagination for the wallets page.
type WalletListParams struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// WalletRepository defines persistence for end-user wallets.
type WalletRepository interface {
	GetByAddress(ctx context.Context, address string) (*domain.Wallet, error)
	List(ctx context.Context, params WalletListParams) ([]domain.Wallet, int64, error)
	UpdateStatus(ctx context.Context, address string, status domain.WalletStatus) error
	ResetSecurity(ctx context.Context, address string) error
	AddNote(ctx context.Context, address string, note *domain.WalletNote) error
	AddAlert(ctx context.Context, address string, alert *domain.WalletAlert) error
}

// TransactionListParams holds filter + sort + pagination for token history.
type TransactionListParams struct {
	WalletID string
	Type     string
	Sort     domain.SortOrder
	Page     int
	PageSize int
}

// SupplyStats aggregates token supply against vault backing.
type SupplyStats struct {
	TotalSupplyGrams float64
	MintedGrams      float64
	BurnedGrams      float64
	HolderCount      int64
}

// TransactionRepository defines persistence for token transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetSupplyStats(ctx context.Context) (*SupplyStats, error)
}

// PricingRepository defines persistence for pricing rules.
type PricingRepository interface {
	CreateRule(ctx context.Context, rule *domain.PricingRule) error
	GetRule(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error)
	ListRules(ctx context.Context) ([]domain.PricingRule, error)
	UpdateRule(ctx context.Context, rule *domain.PricingRule) error
}

// TicketRepository defines persistence for support tickets.
type TicketRepository interface {
	GetByID(ctx context.Context, id string) (*domain.SupportTicket, error)
	List(ctx context.Context, search, status string) ([]domain.SupportTicket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
