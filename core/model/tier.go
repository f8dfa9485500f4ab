package model

import "strings"

// Tier is the quality/price class a buyer requests.
type Tier int

const (
	TierStandard Tier = iota
	TierPremium
	TierEconomic
)

// ParseTier maps a user-supplied tier string to a Tier. Matching is by
// prefix and case-insensitive; anything unrecognized falls back to the
// standard tier rather than erroring.
func ParseTier(s string) Tier {
	switch {
	case strings.HasPrefix(strings.ToLower(s), "p"):
		return TierPremium
	case strings.HasPrefix(strings.ToLower(s), "e"):
		return TierEconomic
	default:
		return TierStandard
	}
}

// String returns a human-readable representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierEconomic:
		return "economic"
	default:
		return "standard"
	}
}

// MinQuality is the minimum batch quality that counts as a perfect match
// for the tier.
func (t Tier) MinQuality() float64 {
	switch t {
	case TierPremium:
		return 0.65
	case TierEconomic:
		return 0.0
	default:
		return 0.45
	}
}
