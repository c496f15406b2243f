package domain

// PricingTier a named multiplier applied to a lot's base hourly rate
type PricingTier struct {
	Name       string
	Multiplier float64
}

// DefaultPricingTiers тарифы по умолчанию (1, 2, 3 часа и весь день)
var DefaultPricingTiers = []PricingTier{
	{Name: "1", Multiplier: 1.0},
	{Name: "2", Multiplier: 1.8},
	{Name: "3", Multiplier: 2.5},
	{Name: "all-day", Multiplier: 6.0},
}

// Pricing computes the display price of every tier for the given base rate
func Pricing(baseRate float64, tiers []PricingTier) map[string]float64 {
	prices := make(map[string]float64, len(tiers))
	for _, tier := range tiers {
		prices[tier.Name] = baseRate * tier.Multiplier
	}
	return prices
}

