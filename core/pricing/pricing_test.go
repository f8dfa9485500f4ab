package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bananai/brokerage/core/model"
)

func TestUnitPricePremium(t *testing.T) {
	e := NewEngine(nil)
	// 0.80*1.50 + 1.35*0.70*1.5 = 1.20 + 1.4175 -> 2.62
	assert.Equal(t, 2.62, e.UnitPrice(model.TierPremium, 0.70, 0.80))
}

func TestUnitPriceStandard(t *testing.T) {
	e := NewEngine(nil)
	// 0.80*1.20 + 1.35*0.70*1.0 = 0.96 + 0.945 -> 1.91
	assert.Equal(t, 1.91, e.UnitPrice(model.TierStandard, 0.70, 0.80))
}

func TestUnitPriceEconomicIgnoresQuality(t *testing.T) {
	e := NewEngine(nil)
	low := e.UnitPrice(model.TierEconomic, 0.10, 0.80)
	high := e.UnitPrice(model.TierEconomic, 0.95, 0.80)
	assert.Equal(t, low, high, "economic tier must not factor quality")
	// 0.80*1.05 + 1.35*0.5 = 0.84 + 0.675 -> 1.52
	assert.Equal(t, 1.52, low)
}

func TestUnitPriceIsPure(t *testing.T) {
	e := NewEngine(nil)
	first := e.UnitPrice(model.TierPremium, 0.66, 2.10)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, e.UnitPrice(model.TierPremium, 0.66, 2.10))
	}
}

func TestProviderReadFreshPerCall(t *testing.T) {
	rates := Rates{}
	rates.SetDefaults()
	prov := &mutableRates{r: rates}
	e := NewEngine(prov)
	before := e.UnitPrice(model.TierStandard, 0.5, 1.0)
	prov.r.BaseRate = 2.70
	after := e.UnitPrice(model.TierStandard, 0.5, 1.0)
	assert.NotEqual(t, before, after, "rates must be read fresh per call")
}

type mutableRates struct{ r Rates }

func (m *mutableRates) Rates() Rates { return m.r }

func TestRatesValidate(t *testing.T) {
	var r Rates
	assert.Error(t, r.Validate())
	r.SetDefaults()
	assert.NoError(t, r.Validate())
}
