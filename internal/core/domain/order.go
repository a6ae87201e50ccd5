package domain

import (
	"fmt"
	"time"
)

// KYCStatus is the verification state of the requesting user.
type KYCStatus string

const (
	KYCStatusVerified KYCStatus = "Verified"
	KYCStatusPending  KYCStatus = "Pending"
)

// Delivery order statuses. Closed set; nothing else is accepted.
const (
	DeliveryStatusApproved       = "App Approved"
	DeliveryStatusOutForDelivery = "Out for Delivery"
	DeliveryStatusDelivered      = "Delivered"
	DeliveryStatusCancelled      = "Cancelled"
)

// Pickup order statuses.
const (
	PickupStatusScheduled = "Scheduled"
	PickupStatusPicked    = "Picked"
	PickupStatusMissed    = "Missed"
	PickupStatusCancelled = "Cancelled"
)

// DeliveryMode is the courier service level.
type DeliveryMode string

const (
	DeliveryModeStandard DeliveryMode = "Standard"
	DeliveryModeExpress  DeliveryMode = "Express"
)

// DeliveryOrder is a gold redemption fulfilled by home delivery.
type DeliveryOrder struct {
	ID              string        `json:"id"` // RD-xxxxx
	User            string        `json:"user"`
	Email           string        `json:"email"`
	KYCStatus       KYCStatus     `json:"kyc_status"`
	WalletID        string        `json:"wallet_id"`
	GoldWeightGrams float64       `json:"gold_weight_grams"`
	TokenBurnHash   string        `json:"token_burn_hash"`
	Vault           string        `json:"vault"`
	Status          string        `json:"status"`
	DeliveryAddress string        `json:"delivery_address"`
	Landmark        *string       `json:"landmark,omitempty"`
	PostalCode      string        `json:"postal_code"`
	ContactNumber   string        `json:"contact_number"`
	DeliveryMode    DeliveryMode  `json:"delivery_mode"`
	DeliveryPartner *string       `json:"delivery_partner,omitempty"`
	AWBNumber       *string       `json:"awb_number,omitempty"`
	RequestedOn     time.Time     `json:"requested_on"`
	Events          []StatusEvent `json:"events,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IsTerminal reports whether the order reached a final state.
func (o *DeliveryOrder) IsTerminal() bool {
	return DeliveryLifecycle.IsTerminal(o.Status)
}

// PickupOrder is a gold redemption fulfilled at a partner vendor.
type PickupOrder struct {
	ID              string        `json:"id"` // RP-xxxxx
	User            string        `json:"user"`
	Email           string        `json:"email"`
	KYCStatus       KYCStatus     `json:"kyc_status"`
	WalletID        string        `json:"wallet_id"`
	Vendor          string        `json:"vendor"`
	VendorID        string        `json:"vendor_id"`
	GoldWeightGrams float64       `json:"gold_weight_grams"`
	TokenBurnHash   string        `json:"token_burn_hash"`
	Vault           string        `json:"vault"`
	Status          string        `json:"status"`
	PickupDate      string        `json:"pickup_date"` // YYYY-MM-DD
	TimeSlot        string        `json:"time_slot"`
	PickupCode      string        `json:"pickup_code"`
	RequestedOn     time.Time     `json:"requested_on"`
	Events          []StatusEvent `json:"events,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IsTerminal reports whether the order reached a final state.
func (o *PickupOrder) IsTerminal() bool {
	return PickupLifecycle.IsTerminal(o.Status)
}

// Default activity-log notes used when the admin leaves the note field empty.

func ShipNote(partner, awb string) string {
	return fmt.Sprintf("Shipped with %s, AWB: %s", partner, awb)
}

const (
	DeliveredNote   = "Package delivered to customer"
	CancelledNote   = "Order cancelled by admin"
	PickedNote      = "Gold picked up by customer, identity verified"
	MissedNote      = "Customer did not show up for pickup"
	ScheduledNote   = "Pickup scheduled through app"
	AppApprovedNote = "Redemption request approved through app"
)
