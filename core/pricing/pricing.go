package pricing

import (
	"fmt"
	"math"

	"github.com/bananai/brokerage/core/model"
)

// TierRates holds the multipliers applied for one tier.
type TierRates struct {
	// Margin multiplies the shipping cost to form the price floor.
	Margin float64 `json:"margin"`
	// QualityBonus scales the base-rate bonus added on top of the floor.
	QualityBonus float64 `json:"quality_bonus"`
}

// Rates is the full pricing configuration: a global base rate plus
// per-tier multipliers.
type Rates struct {
	BaseRate float64   `json:"base_rate"`
	Premium  TierRates `json:"premium"`
	Standard TierRates `json:"standard"`
	Economic TierRates `json:"economic"`
}

// SetDefaults applies the standing market rates to unset fields.
func (r *Rates) SetDefaults() {
	if r.BaseRate == 0 {
		r.BaseRate = 1.35
	}
	if r.Premium == (TierRates{}) {
		r.Premium = TierRates{Margin: 1.50, QualityBonus: 1.5}
	}
	if r.Standard == (TierRates{}) {
		r.Standard = TierRates{Margin: 1.20, QualityBonus: 1.0}
	}
	if r.Economic == (TierRates{}) {
		r.Economic = TierRates{Margin: 1.05, QualityBonus: 0.5}
	}
}

// Validate checks mandatory fields.
func (r Rates) Validate() error {
	if r.BaseRate <= 0 {
		return fmt.Errorf("base rate must be positive")
	}
	for _, tr := range []TierRates{r.Premium, r.Standard, r.Economic} {
		if tr.Margin <= 0 {
			return fmt.Errorf("tier margin must be positive")
		}
	}
	return nil
}

func (r Rates) tier(t model.Tier) TierRates {
	switch t {
	case model.TierPremium:
		return r.Premium
	case model.TierEconomic:
		return r.Economic
	default:
		return r.Standard
	}
}

// Provider supplies the current rates. Rates are read fresh on every price
// computation so configuration updates take effect immediately.
type Provider interface {
	Rates() Rates
}

// StaticRates is a Provider over a fixed configuration.
type StaticRates Rates

// Rates implements Provider.
func (r StaticRates) Rates() Rates { return Rates(r) }

// DefaultRates returns the standing market configuration.
func DefaultRates() StaticRates {
	var r Rates
	r.SetDefaults()
	return StaticRates(r)
}

// Engine prices a match from the shipping floor and a quality bonus.
type Engine struct {
	provider Provider
}

// NewEngine creates an Engine. A nil provider uses the default rates.
func NewEngine(p Provider) *Engine {
	if p == nil {
		p = DefaultRates()
	}
	return &Engine{provider: p}
}

// UnitPrice computes the per-kg price for the tier. Premium and standard
// scale the bonus by the batch quality; economic is a flat liquidation
// bonus with the quality score left out. The result is rounded to cents
// and the function is pure: identical inputs yield identical prices.
func (e *Engine) UnitPrice(tier model.Tier, quality, shippingCostKg float64) float64 {
	rates := e.provider.Rates()
	tr := rates.tier(tier)
	bonus := rates.BaseRate * tr.QualityBonus
	if tier != model.TierEconomic {
		bonus *= quality
	}
	return round2(shippingCostKg*tr.Margin + bonus)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
