package integration

import (
	"context"
	"fmt"
	"sync"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// --- In-Memory Admin Repo ---

type inMemoryAdminRepo struct {
	mu     sync.RWMutex
	admins map[uuid.UUID]*domain.AdminUser
}

func newInMemoryAdminRepo() *inMemoryAdminRepo {
	return &inMemoryAdminRepo{admins: make(map[uuid.UUID]*domain.AdminUser)}
}

func (r *inMemoryAdminRepo) Create(ctx context.Context, admin *domain.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[admin.ID] = admin
	return nil
}

func (r *inMemoryAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (r *inMemoryAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

// --- In-Memory Delivery Order Repo ---

type inMemoryDeliveryRepo struct {
	mu     sync.RWMutex
	orders map[string]*domain.DeliveryOrder
	events map[string][]domain.StatusEvent
}

func newInMemoryDeliveryRepo() *inMemoryDeliveryRepo {
	return &inMemoryDeliveryRepo{
		orders: make(map[string]*domain.DeliveryOrder),
		events: make(map[string][]domain.StatusEvent),
	}
}

func (r *inMemoryDeliveryRepo) GetByID(ctx context.Context, id string) (*domain.DeliveryOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *inMemoryDeliveryRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.DeliveryOrder, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.DeliveryOrder
	for _, o := range r.orders {
		if !domain.MatchesSearch(params.Search, o.ID, o.User, o.Email) {
			continue
		}
		if !domain.MatchesFilter(params.Status, o.Status) {
			continue
		}
		if !domain.MatchesFilter(params.Vault, o.Vault) {
			continue
		}
		partner := ""
		if o.DeliveryPartner != nil {
			partner = *o.DeliveryPartner
		}
		if !domain.MatchesFilter(params.Partner, partner) {
			continue
		}
		result = append(result, *o)
	}
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryDeliveryRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("delivery order not found")
	}
	o.Status = status
	return nil
}

func (r *inMemoryDeliveryRepo) SetShipping(ctx context.Context, tx pgx.Tx, id, partner, awb string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("delivery order not found")
	}
	o.DeliveryPartner = &partner
	o.AWBNumber = &awb
	return nil
}

func (r *inMemoryDeliveryRepo) AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.OrderID] = append(r.events[event.OrderID], *event)
	return nil
}

func (r *inMemoryDeliveryRepo) ListEvents(ctx context.Context, orderID string) ([]domain.StatusEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.StatusEvent{}, r.events[orderID]...), nil
}

// --- In-Memory Pickup Order Repo ---

type inMemoryPickupRepo struct {
	mu     sync.RWMutex
	orders map[string]*domain.PickupOrder
	events map[string][]domain.StatusEvent
}

func newInMemoryPickupRepo() *inMemoryPickupRepo {
	return &inMemoryPickupRepo{
		orders: make(map[string]*domain.PickupOrder),
		events: make(map[string][]domain.StatusEvent),
	}
}

func (r *inMemoryPickupRepo) GetByID(ctx context.Context, id string) (*domain.PickupOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *inMemoryPickupRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.PickupOrder, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.PickupOrder
	for _, o := range r.orders {
		if !domain.MatchesSearch(params.Search, o.ID, o.User, o.Email) {
			continue
		}
		if !domain.MatchesFilter(params.Status, o.Status) {
			continue
		}
		if !domain.MatchesFilter(params.Vault, o.Vault) {
			continue
		}
		if !domain.MatchesFilter(params.Vendor, o.Vendor) {
			continue
		}
		result = append(result, *o)
	}
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryPickupRepo) ListByVendor(ctx context.Context, vendorID string, openOnly bool) ([]domain.PickupOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.PickupOrder
	for _, o := range r.orders {
		if o.VendorID != vendorID {
			continue
		}
		if openOnly && o.IsTerminal() {
			continue
		}
		result = append(result, *o)
	}
	return result, nil
}

func (r *inMemoryPickupRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("pickup order not found")
	}
	o.Status = status
	return nil
}

func (r *inMemoryPickupRepo) AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.OrderID] = append(r.events[event.OrderID], *event)
	return nil
}

func (r *inMemoryPickupRepo) ListEvents(ctx context.Context, orderID string) ([]domain.StatusEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.StatusEvent{}, r.events[orderID]...), nil
}

// --- In-Memory Redemption Repo ---

type inMemoryRedemptionRepo struct {
	mu          sync.RWMutex
	redemptions map[string]*domain.Redemption
	events      map[string][]domain.StatusEvent
}

func newInMemoryRedemptionRepo() *inMemoryRedemptionRepo {
	return &inMemoryRedemptionRepo{
		redemptions: make(map[string]*domain.Redemption),
		events:      make(map[string][]domain.StatusEvent),
	}
}

func (r *inMemoryRedemptionRepo) GetByID(ctx context.Context, requestID string) (*domain.Redemption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	red, ok := r.redemptions[requestID]
	if !ok {
		return nil, nil
	}
	cp := *red
	return &cp, nil
}

func (r *inMemoryRedemptionRepo) List(ctx context.Context, params ports.RedemptionListParams) ([]domain.Redemption, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Redemption
	for _, red := range r.redemptions {
		if !domain.MatchesSearch(params.Search, red.RequestID, red.User.Name, red.User.Email) {
			continue
		}
		if !domain.MatchesFilter(params.Status, red.Status) {
			continue
		}
		if !domain.MatchesFilter(params.Mode, string(red.Mode)) {
			continue
		}
		if !domain.MatchesFilter(params.Vault, red.VaultLocation) {
			continue
		}
		result = append(result, *red)
	}
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryRedemptionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, requestID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	red, ok := r.redemptions[requestID]
	if !ok {
		return fmt.Errorf("redemption not found")
	}
	red.Status = status
	return nil
}

func (r *inMemoryRedemptionRepo) AssignVault(ctx context.Context, tx pgx.Tx, requestID, vaultLocation string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	red, ok := r.redemptions[requestID]
	if !ok {
		return fmt.Errorf("redemption not found")
	}
	red.VaultLocation = vaultLocation
	return nil
}

func (r *inMemoryRedemptionRepo) SetShipping(ctx context.Context, tx pgx.Tx, requestID string, shipping domain.ShippingDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	red, ok := r.redemptions[requestID]
	if !ok {
		return fmt.Errorf("redemption not found")
	}
	red.Shipping = &shipping
	return nil
}

func (r *inMemoryRedemptionRepo) MarkBurned(ctx context.Context, tx pgx.Tx, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	red, ok := r.redemptions[requestID]
	if !ok {
		return fmt.Errorf("redemption not found")
	}
	red.TokensBurned = true
	return nil
}

func (r *inMemoryRedemptionRepo) AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.OrderID] = append(r.events[event.OrderID], *event)
	return nil
}

func (r *inMemoryRedemptionRepo) ListEvents(ctx context.Context, requestID string) ([]domain.StatusEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.StatusEvent{}, r.events[requestID]...), nil
}

// --- In-Memory Vendor Repo ---

type inMemoryVendorRepo struct {
	mu      sync.RWMutex
	vendors map[string]*domain.Vendor
}

func newInMemoryVendorRepo() *inMemoryVendorRepo {
	return &inMemoryVendorRepo{vendors: make(map[string]*domain.Vendor)}
}

func (r *inMemoryVendorRepo) Create(ctx context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vendors[vendor.ID] = vendor
	return nil
}

func (r *inMemoryVendorRepo) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vendors[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *inMemoryVendorRepo) List(ctx context.Context, params ports.VendorListParams) ([]domain.Vendor, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Vendor
	for _, v := range r.vendors {
		if !domain.MatchesSearch(params.Search, v.ID, v.Name, v.City) {
			continue
		}
		if !domain.MatchesFilter(params.Status, string(v.Status)) {
			continue
		}
		if !domain.MatchesFilter(params.City, v.City) {
			continue
		}
		result = append(result, *v)
	}
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryVendorRepo) Update(ctx context.Context, vendor *domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vendors[vendor.ID]; !ok {
		return fmt.Errorf("vendor not found")
	}
	r.vendors[vendor.ID] = vendor
	return nil
}

// --- In-Memory Vault Repo ---

type inMemoryVaultRepo struct {
	mu     sync.RWMutex
	vaults map[string]*domain.Vault
}

func newInMemoryVaultRepo() *inMemoryVaultRepo {
	return &inMemoryVaultRepo{vaults: make(map[string]*domain.Vault)}
}

func (r *inMemoryVaultRepo) Create(ctx context.Context, vault *domain.Vault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vaults[vault.ID] = vault
	return nil
}

func (r *inMemoryVaultRepo) GetByID(ctx context.Context, id string) (*domain.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vaults[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *inMemoryVaultRepo) GetByName(ctx context.Context, name string) (*domain.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.vaults {
		if v.Name == name {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryVaultRepo) List(ctx context.Context, search, status string) ([]domain.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Vault
	for _, v := range r.vaults {
		if !domain.MatchesSearch(search, v.ID, v.Name, v.Location) {
			continue
		}
		if !domain.MatchesFilter(status, string(v.Status)) {
			continue
		}
		result = append(result, *v)
	}
	return result, nil
}

func (r *inMemoryVaultRepo) Update(ctx context.Context, vault *domain.Vault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vaults[vault.ID]; !ok {
		return fmt.Errorf("vault not found")
	}
	r.vaults[vault.ID] = vault
	return nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[string]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) add(w *domain.Wallet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[w.Address] = w
}

func (r *inMemoryWalletRepo) GetByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[address]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) List(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Wallet
	for _, w := range r.wallets {
		if !domain.MatchesSearch(params.Search, w.Address, w.OwnerName, w.OwnerEmail) {
			continue
		}
		if !domain.MatchesFilter(params.Status, string(w.Status)) {
			continue
		}
		result = append(result, *w)
	}
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryWalletRepo) UpdateStatus(ctx context.Context, address string, status domain.WalletStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[address]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Status = status
	return nil
}

func (r *inMemoryWalletRepo) ResetSecurity(ctx context.Context, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[address]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Security.RecoverySetup = false
	w.Security.BiometricBound = false
	w.Security.MPCSharesActive = 0
	return nil
}

func (r *inMemoryWalletRepo) AddNote(ctx context.Context, address string, note *domain.WalletNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[address]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.AdminNotes = append(w.AdminNotes, *note)
	return nil
}

func (r *inMemoryWalletRepo) AddAlert(ctx context.Context, address string, alert *domain.WalletAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[address]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Alerts = append(w.Alerts, *alert)
	return nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[txn.ID] = txn
	return nil
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.transactions {
		if params.WalletID != "" && t.WalletID != params.WalletID {
			continue
		}
		if !domain.MatchesFilter(params.Type, string(t.Type)) {
			continue
		}
		result = append(result, *t)
	}
	domain.SortTransactions(result, params.Sort)
	total := int64(len(result))
	return paginate(result, params.Page, params.PageSize), total, nil
}

func (r *inMemoryTransactionRepo) GetSupplyStats(ctx context.Context) (*ports.SupplyStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.SupplyStats{}
	holders := make(map[string]bool)
	for _, t := range r.transactions {
		holders[t.WalletID] = true
		switch t.Type {
		case domain.TransactionTypeMint:
			stats.MintedGrams += t.AmountGrams
		case domain.TransactionTypeBurn:
			stats.BurnedGrams += -t.AmountGrams
		}
	}
	stats.TotalSupplyGrams = stats.MintedGrams - stats.BurnedGrams
	stats.HolderCount = int64(len(holders))
	return stats, nil
}

// --- In-Memory Pricing Repo ---

type inMemoryPricingRepo struct {
	mu    sync.RWMutex
	rules map[uuid.UUID]*domain.PricingRule
}

func newInMemoryPricingRepo() *inMemoryPricingRepo {
	return &inMemoryPricingRepo{rules: make(map[uuid.UUID]*domain.PricingRule)}
}

func (r *inMemoryPricingRepo) CreateRule(ctx context.Context, rule *domain.PricingRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = rule
	return nil
}

func (r *inMemoryPricingRepo) GetRule(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	if !ok {
		return nil, nil
	}
	cp := *rule
	return &cp, nil
}

func (r *inMemoryPricingRepo) ListRules(ctx context.Context) ([]domain.PricingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.PricingRule
	for _, rule := range r.rules {
		result = append(result, *rule)
	}
	return result, nil
}

func (r *inMemoryPricingRepo) UpdateRule(ctx context.Context, rule *domain.PricingRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[rule.ID]; !ok {
		return fmt.Errorf("pricing rule not found")
	}
	r.rules[rule.ID] = rule
	return nil
}

// --- In-Memory Ticket Repo ---

type inMemoryTicketRepo struct {
	mu      sync.RWMutex
	tickets map[string]*domain.SupportTicket
}

func newInMemoryTicketRepo() *inMemoryTicketRepo {
	return &inMemoryTicketRepo{tickets: make(map[string]*domain.SupportTicket)}
}

func (r *inMemoryTicketRepo) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTicketRepo) List(ctx context.Context, search, status string) ([]domain.SupportTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.SupportTicket
	for _, t := range r.tickets {
		if !domain.MatchesSearch(search, t.ID, t.Subject, t.RequesterName, t.RequesterEmail) {
			continue
		}
		if !domain.MatchesFilter(status, string(t.Status)) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (r *inMemoryTicketRepo) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return fmt.Errorf("ticket not found")
	}
	t.Status = status
	return nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu      sync.RWMutex
	entries []domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
