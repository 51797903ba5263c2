package models

// Tier is one purchasable level of the daily tip.
type Tier struct {
	Code        string
	Label       string
	PriceUSDT   float64
	Description string
}

var Tiers = []Tier{
	{Code: "gold", Label: "🥇 Auksinis planas", PriceUSDT: 10.0, Description: "🥇 Auksinis – brangiausias, bet patikimiausias."},
	{Code: "silver", Label: "🥈 Sidabrinis planas", PriceUSDT: 6.0, Description: "🥈 Sidabrinis – vidutinės rizikos."},
	{Code: "bronze", Label: "🥉 Bronzinis planas", PriceUSDT: 3.0, Description: "🥉 Bronzinis – pigiausias, bet rizikingiausias."},
}

var tierByCode = func() map[string]Tier {
	m := make(map[string]Tier, len(Tiers))
	for _, t := range Tiers {
		m[t.Code] = t
	}
	return m
}()

func TierByCode(code string) (Tier, bool) {
	t, ok := tierByCode[code]
	return t, ok
}

// WeeklyResult is one row of the Results sheet.
type WeeklyResult struct {
	Week     string
	Wins     string
	Losses   string
	Accuracy string
}
