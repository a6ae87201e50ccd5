package dto

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ShipOrderRequest is the request body for marking a delivery order
// out for delivery.
type ShipOrderRequest struct {
	Partner    string `json:"partner" binding:"required"`
	AWBNumber  string `json:"awb_number" binding:"required"`
	Note       string `json:"note"`
	NotifyUser bool   `json:"notify_user"`
}

// TransitionRequest is the request body for simple lifecycle actions
// (deliver, cancel, pick, miss, verify, approve, reject, complete).
type TransitionRequest struct {
	Note         string `json:"note"`
	Confirm      bool   `json:"confirm"`
	NotifyUser   bool   `json:"notify_user"`
	NotifyVendor bool   `json:"notify_vendor"`
}

// StatusOverrideRequest is the request body for the generic status dropdown.
type StatusOverrideRequest struct {
	Status       string `json:"status" binding:"required"`
	Note         string `json:"note"`
	NotifyUser   bool   `json:"notify_user"`
	NotifyVendor bool   `json:"notify_vendor"`
}

// AssignVaultRequest binds a redemption to a vault location.
type AssignVaultRequest struct {
	VaultLocation string `json:"vault_location" binding:"required"`
}

// SetShippingRequest attaches courier details to a delivery-mode redemption.
type SetShippingRequest struct {
	Partner        string `json:"partner" binding:"required"`
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// VaultRequest is the request body for adding or editing a vault.
type VaultRequest struct {
	Name             string  `json:"name" binding:"required,max=100"`
	Type             string  `json:"type" binding:"required"`
	Location         string  `json:"location" binding:"required,max=200"`
	Partner          string  `json:"partner"`
	GoldHoldingGrams float64 `json:"gold_holding_grams" binding:"gte=0"`
	ThresholdGrams   float64 `json:"threshold_grams" binding:"gte=0"`
	AutoSync         bool    `json:"auto_sync"`
	SyncFrequency    string  `json:"sync_frequency"`
}

// DaySlots mirrors one weekday's pickup slots.
type DaySlots struct {
	Day   string   `json:"day" binding:"required"`
	Slots []string `json:"slots"`
}

// VendorRequest is the request body for adding or editing a vendor.
type VendorRequest struct {
	Name          string     `json:"name" binding:"required,max=100"`
	Location      string     `json:"location" binding:"required,max=200"`
	Address       string     `json:"address" binding:"required,max=300"`
	City          string     `json:"city" binding:"required,max=100"`
	Zip           string     `json:"zip"`
	ContactPerson string     `json:"contact_person" binding:"required,max=100"`
	Phone         string     `json:"phone" binding:"required,max=30"`
	Email         string     `json:"email" binding:"required,email"`
	TimeSlots     []DaySlots `json:"time_slots"`
	LinkedVaults  []string   `json:"linked_vaults"`
	DeliveryType  string     `json:"delivery_type" binding:"required"`
	Notes         *string    `json:"notes,omitempty"`
}

// AcceptingOrdersRequest toggles a vendor's intake.
type AcceptingOrdersRequest struct {
	Accepting bool `json:"accepting"`
}

// ConfirmRequest carries the confirm flag for irreversible wallet actions.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// FlagWalletRequest flags a wallet for review.
type FlagWalletRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// WalletNoteRequest attaches an admin note to a wallet.
type WalletNoteRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// PricingRuleRequest is the request body for creating or editing a rule.
type PricingRuleRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	SpreadBps     int     `json:"spread_bps"`
	MinOrderGrams float64 `json:"min_order_grams" binding:"gte=0"`
	MaxOrderGrams float64 `json:"max_order_grams" binding:"gte=0"`
	Active        bool    `json:"active"`
}

// TicketStatusRequest updates a support ticket's status.
type TicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListMeta carries pagination info alongside list payloads.
type ListMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// ListResponse is the generic envelope for paginated lists.
type ListResponse struct {
	Items any      `json:"items"`
	Meta  ListMeta `json:"meta"`
}
