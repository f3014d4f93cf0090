package estimator

import "github.com/shopspring/decimal"

// Bracket is one marginal tax band. The band starts where the previous one
// ends; Unbounded marks the top band, whose UpTo is ignored.
type Bracket struct {
	UpTo      decimal.Decimal
	Rate      decimal.Decimal
	Unbounded bool
}

// LandTransferBrackets are the Ontario land transfer tax bands. The City of
// Toronto municipal tax uses the same bands.
var LandTransferBrackets = []Bracket{
	{UpTo: decimal.NewFromInt(55_000), Rate: decimal.RequireFromString("0.005")},
	{UpTo: decimal.NewFromInt(250_000), Rate: decimal.RequireFromString("0.01")},
	{UpTo: decimal.NewFromInt(400_000), Rate: decimal.RequireFromString("0.015")},
	{UpTo: decimal.NewFromInt(2_400_000), Rate: decimal.RequireFromString("0.02")},
	{Rate: decimal.RequireFromString("0.025"), Unbounded: true},
}

// MarginalTax applies brackets to amount: each band taxes only the part of
// amount that falls inside it. The result is not rounded.
func MarginalTax(amount decimal.Decimal, brackets []Bracket) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if amount.LessThanOrEqual(lower) {
			break
		}
		portion := amount.Sub(lower)
		if !b.Unbounded && amount.GreaterThan(b.UpTo) {
			portion = b.UpTo.Sub(lower)
		}
		tax = tax.Add(portion.Mul(b.Rate))
		if b.Unbounded {
			break
		}
		lower = b.UpTo
	}
	return tax
}

// LandTransferTax returns the provincial land transfer tax on price,
// rounded to the nearest dollar.
func LandTransferTax(price decimal.Decimal) int64 {
	return roundWhole(MarginalTax(price, LandTransferBrackets))
}

// MunicipalLandTransferTax returns the Toronto municipal land transfer tax.
func MunicipalLandTransferTax(price decimal.Decimal) int64 {
	return roundWhole(MarginalTax(price, LandTransferBrackets))
}

// MarginalRate returns the rate applied to the next dollar above amount.
func MarginalRate(amount decimal.Decimal, brackets []Bracket) decimal.Decimal {
	for _, b := range brackets {
		if b.Unbounded || amount.LessThan(b.UpTo) {
			return b.Rate
		}
	}
	return decimal.Zero
}
