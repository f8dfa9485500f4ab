package model

import "time"

// OrderState tracks a transaction through the commit protocol.
type OrderState int

const (
	StateProposed OrderState = iota
	StatePriced
	StateCommitted
	StateFailed
)

// String returns a human-readable representation of the order state.
func (s OrderState) String() string {
	switch s {
	case StateProposed:
		return "PROPOSED"
	case StatePriced:
		return "PRICED"
	case StateCommitted:
		return "COMMITTED"
	case StateFailed:
		return "FAILED"
	default:
		return "unknown"
	}
}

// Invoice is the financial snapshot of one order. It is transient until
// committed and immutable afterwards: the ledger never rewrites an entry.
type Invoice struct {
	OrderID        string    `json:"order_id"`
	Timestamp      time.Time `json:"timestamp"`
	BatchID        string    `json:"batch_id"`
	Destination    string    `json:"destination"`
	RequestedKg    float64   `json:"requested_kg"`
	Kg             float64   `json:"weight_kg"`
	Tier           string    `json:"tier_sold"`
	UnitPrice      float64   `json:"unit_price"`
	Revenue        float64   `json:"total_revenue"`
	ShippingCost   float64   `json:"shipping_cost"`
	Profit         float64   `json:"net_profit"`
	ShippingRateKg float64   `json:"shipping_rate_kg"`
	QualityAtSale  float64   `json:"quality_at_sale"`

	State OrderState `json:"-"`
}
