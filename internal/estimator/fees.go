package estimator

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
)

// Fixed fees, in dollars.
const (
	// PurchaseLegalFee is the legal fee charged on a purchase.
	PurchaseLegalFee = 1500

	// SaleLegalFee is the legal fee charged on a sale.
	SaleLegalFee = 1200

	// RefinanceLegalFee is the legal fee charged on a refinance.
	RefinanceLegalFee = 900

	// BaseRegistrationFee covers registering the transfer.
	BaseRegistrationFee = 200

	// MortgageRegistrationFee is added when a mortgage is registered.
	MortgageRegistrationFee = 80

	// FirstTimeBuyerRebateCap is the most the first-time buyer rebate can credit.
	FirstTimeBuyerRebateCap = 4000
)

// Input ceilings. Larger values are rejected before any arithmetic so that
// whole-dollar results always fit in an int64.
var (
	// MaxAmount is the largest price, deposit or mortgage accepted, in dollars.
	MaxAmount = decimal.New(1, 12)

	// MaxCommissionPercent is the largest commission percentage accepted.
	MaxCommissionPercent = decimal.NewFromInt(100)
)

var (
	// adjustmentRate estimates tax and utility prorations as a share of the price.
	adjustmentRate = decimal.RequireFromString("0.0025")

	// hstRate is the Ontario HST applied to realtor commission.
	hstRate = decimal.RequireFromString("0.13")

	hundred = decimal.NewFromInt(100)
)

type titleInsuranceTier struct {
	upTo    decimal.Decimal
	premium int64
}

var titleInsuranceTiers = []titleInsuranceTier{
	{upTo: decimal.NewFromInt(300_000), premium: 250},
	{upTo: decimal.NewFromInt(600_000), premium: 350},
	{upTo: decimal.NewFromInt(1_000_000), premium: 450},
}

// titleInsuranceAbove is the premium for amounts over the last tier.
const titleInsuranceAbove = 650

// TitleInsurance returns the title insurance premium for the insured amount.
// Tier bounds are inclusive.
func TitleInsurance(amount decimal.Decimal) int64 {
	for _, tier := range titleInsuranceTiers {
		if amount.LessThanOrEqual(tier.upTo) {
			return tier.premium
		}
	}
	return titleInsuranceAbove
}

// RegistrationFees returns registration and disbursement costs.
func RegistrationFees(hasMortgage bool) int64 {
	if hasMortgage {
		return BaseRegistrationFee + MortgageRegistrationFee
	}
	return BaseRegistrationFee
}

// LegalFee returns the flat legal fee for a transaction type. Unknown types
// get the sale fee.
func LegalFee(t model.TransactionType) int64 {
	switch t {
	case model.TransactionPurchase:
		return PurchaseLegalFee
	case model.TransactionRefinance:
		return RefinanceLegalFee
	}
	return SaleLegalFee
}

// Adjustments estimates closing-date prorations for a price.
func Adjustments(price decimal.Decimal) int64 {
	return roundWhole(price.Mul(adjustmentRate))
}

// FirstTimeBuyerRebate caps the rebate at FirstTimeBuyerRebateCap and at the
// land transfer tax actually owed.
func FirstTimeBuyerRebate(landTransferTax int64) int64 {
	return max(0, min(FirstTimeBuyerRebateCap, landTransferTax))
}

// roundWhole rounds half away from zero to a whole dollar.
func roundWhole(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
