package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpotPrice is the current gold price used for buy/sell quoting.
type SpotPrice struct {
	USDPerGram float64   `json:"usd_per_gram"`
	Source     string    `json:"source"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// PricingRule adjusts the quoted price around spot for a band of order sizes.
type PricingRule struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	SpreadBps     int       `json:"spread_bps"` // basis points over spot
	MinOrderGrams float64   `json:"min_order_grams"`
	MaxOrderGrams float64   `json:"max_order_grams"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AppliesTo reports whether the rule covers an order of the given size.
func (r *PricingRule) AppliesTo(grams float64) bool {
	if !r.Active {
		return false
	}
	if grams < r.MinOrderGrams {
		return false
	}
	return r.MaxOrderGrams == 0 || grams <= r.MaxOrderGrams
}

// Quote applies the rule's spread to a spot price.
func (r *PricingRule) Quote(spotUSDPerGram float64) float64 {
	return spotUSDPerGram * (1 + float64(r.SpreadBps)/10000)
}
