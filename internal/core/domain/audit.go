package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited admin action.
type AuditAction string

const (
	AuditActionLogin         AuditAction = "LOGIN"
	AuditActionStatusChange  AuditAction = "STATUS_CHANGE"
	AuditActionTokenBurn     AuditAction = "TOKEN_BURN"
	AuditActionVaultSync     AuditAction = "VAULT_SYNC"
	AuditActionVaultAssign   AuditAction = "VAULT_ASSIGN"
	AuditActionWalletFreeze  AuditAction = "WALLET_FREEZE"
	AuditActionWalletReset   AuditAction = "WALLET_RESET"
	AuditActionVendorChange  AuditAction = "VENDOR_CHANGE"
	AuditActionPricingChange AuditAction = "PRICING_CHANGE"
)

// AuditLog records a single audited admin action.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	AdminID      *uuid.UUID  `json:"admin_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
