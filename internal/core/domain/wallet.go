package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletStatus is the admin-facing state of an end-user wallet.
type WalletStatus string

const (
	WalletStatusActive    WalletStatus = "active"
	WalletStatusSuspended WalletStatus = "suspended"
	WalletStatusFlagged   WalletStatus = "flagged"
)

// WalletSecurity describes the security posture of an MPC wallet.
type WalletSecurity struct {
	RecoverySetup   bool `json:"recovery_setup"`
	BiometricBound  bool `json:"biometric_bound"`
	MPCSharesTotal  int  `json:"mpc_shares_total"`
	MPCSharesActive int  `json:"mpc_shares_active"`
}

// Wallet is an end-user token wallet as seen by the admin dashboard.
type Wallet struct {
	Address      string         `json:"address"` // 0x...
	OwnerName    string         `json:"owner_name"`
	OwnerEmail   string         `json:"owner_email"`
	BalanceGrams float64        `json:"balance_grams"` // e-Aurum, gold-gram denominated
	BalanceUSDT  float64        `json:"balance_usdt"`
	Status       WalletStatus   `json:"status"`
	Security     WalletSecurity `json:"security"`
	AdminNotes   []WalletNote   `json:"admin_notes,omitempty"`
	Alerts       []WalletAlert  `json:"alerts,omitempty"`
	LoginHistory []LoginRecord  `json:"login_history,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IsFrozen reports whether the wallet is suspended.
func (w *Wallet) IsFrozen() bool {
	return w.Status == WalletStatusSuspended
}

// WalletNote is a free-text note attached by an admin.
type WalletNote struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletAlert is a risk or security alert raised against a wallet.
type WalletAlert struct {
	ID        uuid.UUID `json:"id"`
	Severity  string    `json:"severity"` // info, warning, critical
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRecord is one entry of a wallet owner's login history.
type LoginRecord struct {
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
	Device    string    `json:"device"`
	Success   bool      `json:"success"`
}

// TransactionType is the kind of token movement.
type TransactionType string

const (
	TransactionTypeMint     TransactionType = "MINT"
	TransactionTypeBurn     TransactionType = "BURN"
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypeBuy      TransactionType = "BUY"
	TransactionTypeSell     TransactionType = "SELL"
)

// Transaction is one token movement in a wallet's history.
// Amount is signed: negative for outflows (burns, sells, sends).
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    string          `json:"wallet_id"`
	Type        TransactionType `json:"type"`
	AmountGrams float64         `json:"amount_grams"`
	AmountUSD   float64         `json:"amount_usd"`
	TxHash      string          `json:"tx_hash"`
	Reference   string          `json:"reference,omitempty"` // e.g. redemption request ID
	CreatedAt   time.Time       `json:"created_at"`
}
