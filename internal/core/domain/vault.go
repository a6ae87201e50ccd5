package domain

import "time"

// VaultStatus is the stored health state of a vault.
type VaultStatus string

const (
	VaultStatusHealthy   VaultStatus = "Healthy"
	VaultStatusLowStock  VaultStatus = "Low Stock"
	VaultStatusOutOfSync VaultStatus = "Out of Sync"
)

// VaultType distinguishes Brinks-operated vaults from local partners.
type VaultType string

const (
	VaultTypeBrinks VaultType = "Brinks"
	VaultTypeLocal  VaultType = "Local"
)

// SyncFrequency is how often an auto-syncing vault reconciles holdings.
type SyncFrequency string

const (
	SyncFrequencyHourly SyncFrequency = "hourly"
	SyncFrequencyDaily  SyncFrequency = "daily"
	SyncFrequencyWeekly SyncFrequency = "weekly"
)

// Vault is a physical gold storage location backing issued tokens.
// Status is stored, not derived on read: it is recomputed only on add,
// update and sync, matching the recompute points of the admin actions.
type Vault struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Type             VaultType     `json:"type"`
	Location         string        `json:"location"`
	Partner          string        `json:"partner"`
	GoldHoldingGrams float64       `json:"gold_holding_grams"`
	ThresholdGrams   float64       `json:"threshold_grams"`
	LastSync         *time.Time    `json:"last_sync,omitempty"`
	Status           VaultStatus   `json:"status"`
	AutoSync         bool          `json:"auto_sync"`
	SyncFrequency    SyncFrequency `json:"sync_frequency"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// ComputeVaultStatus derives the health state from holdings and sync state.
// A vault that has never synced is Out of Sync regardless of holdings.
func ComputeVaultStatus(holdingGrams, thresholdGrams float64, lastSync *time.Time) VaultStatus {
	if lastSync == nil {
		return VaultStatusOutOfSync
	}
	if holdingGrams <= thresholdGrams {
		return VaultStatusLowStock
	}
	return VaultStatusHealthy
}

// Recompute refreshes the stored status from current fields.
func (v *Vault) Recompute() {
	v.Status = ComputeVaultStatus(v.GoldHoldingGrams, v.ThresholdGrams, v.LastSync)
}

// VaultSummary aggregates holdings for the vaults overview.
type VaultSummary struct {
	TotalVaults    int     `json:"total_vaults"`
	TotalGoldGrams float64 `json:"total_gold_grams"`
	HealthyGrams   float64 `json:"healthy_grams"`
	LowStockGrams  float64 `json:"low_stock_grams"`
	LowStockCount  int     `json:"low_stock_count"`
	OutOfSyncCount int     `json:"out_of_sync_count"`
}
