package domain

import "time"

// VendorStatus is the operational state of a pickup vendor.
type VendorStatus string

const (
	VendorStatusActive    VendorStatus = "Active"
	VendorStatusSuspended VendorStatus = "Suspended"
)

// VendorDeliveryType is which fulfillment modes the vendor supports.
type VendorDeliveryType string

const (
	VendorDeliveryOnlyPickup      VendorDeliveryType = "Only Pickup"
	VendorDeliveryDeliverySupport VendorDeliveryType = "Delivery Support"
	VendorDeliveryBoth            VendorDeliveryType = "Both"
)

// DaySlots is the pickup time slots offered on one weekday.
type DaySlots struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

// ActiveOrderSummary is a denormalized view of a vendor's open pickup.
type ActiveOrderSummary struct {
	OrderID         string  `json:"order_id"`
	User            string  `json:"user"`
	PickupDate      string  `json:"pickup_date"`
	TimeSlot        string  `json:"time_slot"`
	GoldWeightGrams float64 `json:"gold_weight_grams"`
}

// Vendor is a partner location where users collect redeemed gold.
type Vendor struct {
	ID              string               `json:"id"` // VEN-xxxx
	Name            string               `json:"name"`
	Location        string               `json:"location"`
	Address         string               `json:"address"`
	City            string               `json:"city"`
	Zip             string               `json:"zip"`
	ContactPerson   string               `json:"contact_person"`
	Phone           string               `json:"phone"`
	Email           string               `json:"email"`
	Status          VendorStatus         `json:"status"`
	AcceptingOrders bool                 `json:"accepting_orders"`
	TimeSlots       []DaySlots           `json:"time_slots"`
	LinkedVaults    []string             `json:"linked_vaults"`
	DeliveryType    VendorDeliveryType   `json:"delivery_type"`
	Notes           *string              `json:"notes,omitempty"`
	ActiveOrders    []ActiveOrderSummary `json:"active_orders,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// IsActive reports whether the vendor can take new pickups.
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}
