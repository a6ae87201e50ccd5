package domain

import "time"

// Redemption statuses.
const (
	RedemptionStatusSubmitted = "submitted"
	RedemptionStatusVerified  = "verified"
	RedemptionStatusApproved  = "approved"
	RedemptionStatusShipped   = "shipped"
	RedemptionStatusCompleted = "completed"
	RedemptionStatusRejected  = "rejected"
)

// RedemptionMode is how the redeemed gold reaches the user.
type RedemptionMode string

const (
	RedemptionModePickup   RedemptionMode = "pickup"
	RedemptionModeDelivery RedemptionMode = "delivery"
)

// RedemptionUser is the requesting end user, denormalized onto the request.
type RedemptionUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	WalletID string `json:"wallet_id"`
}

// ShippingDetails applies to delivery-mode redemptions only.
type ShippingDetails struct {
	Partner        string `json:"partner"`
	TrackingNumber string `json:"tracking_number"`
}

// Redemption is a vault redemption request moving through
// submitted -> verified -> approved -> shipped -> completed,
// with rejected reachable from submitted or verified.
type Redemption struct {
	RequestID       string           `json:"request_id"` // RED-xxxxx
	User            RedemptionUser   `json:"user"`
	GoldWeightGrams float64          `json:"gold_weight_grams"`
	VaultLocation   string           `json:"vault_location"` // empty until assigned
	Status          string           `json:"status"`
	Mode            RedemptionMode   `json:"mode"`
	RequestedOn     time.Time        `json:"requested_on"`
	Shipping        *ShippingDetails `json:"shipping,omitempty"`
	TokensBurned    bool             `json:"tokens_burned"`
	Events          []StatusEvent    `json:"events,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CanAssignVault reports whether a vault may be assigned right now.
// Assignment is only meaningful once the request is approved.
func (r *Redemption) CanAssignVault() bool {
	return r.Status == RedemptionStatusApproved
}

// CanReview reports whether the approve/reject panel applies.
func (r *Redemption) CanReview() bool {
	switch r.Status {
	case RedemptionStatusSubmitted, RedemptionStatusVerified, RedemptionStatusApproved:
		return true
	}
	return false
}

// IsTerminal reports whether the request reached a final state.
func (r *Redemption) IsTerminal() bool {
	return RedemptionLifecycle.IsTerminal(r.Status)
}
