package model

import "time"

// LineItem is one labelled amount of a breakdown, in whole dollars.
// Key matches the JSON field name of the breakdown struct it came from.
type LineItem struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Breakdown is the itemized result of one estimate. It is implemented only by
// PurchaseBreakdown, SaleBreakdown and RefinanceBreakdown; callers switch on
// the concrete type when they need flow-specific fields.
type Breakdown interface {
	TransactionType() TransactionType
	// LineItems returns the signed components in display order. Their sum
	// equals the first entry of Totals.
	LineItems() []LineItem
	// Totals returns the derived totals in display order.
	Totals() []LineItem

	isBreakdown()
}

// PurchaseBreakdown is the result of the purchase flow.
type PurchaseBreakdown struct {
	OntarioLTT       int64 `json:"ontLTT"`
	TorontoLTT       int64 `json:"torontoLTT"`
	FirstTimeRebate  int64 `json:"ftbRebate"`
	RegistrationFees int64 `json:"regFees"`
	TitleInsurance   int64 `json:"titleInsurance"`
	LegalFee         int64 `json:"legalFee"`
	Adjustments      int64 `json:"adjustments"`
	TotalCosts       int64 `json:"totalCosts"`
	CashRequired     int64 `json:"cashRequired"`
}

func (PurchaseBreakdown) TransactionType() TransactionType { return TransactionPurchase }

// LineItems lists the seven purchase components. The rebate is a credit and
// is reported as a negative amount.
func (b PurchaseBreakdown) LineItems() []LineItem {
	return []LineItem{
		{Key: "ontLTT", Label: "Ontario Land Transfer Tax", Amount: b.OntarioLTT},
		{Key: "torontoLTT", Label: "Toronto Municipal LTT", Amount: b.TorontoLTT},
		{Key: "ftbRebate", Label: "First-time buyer rebate", Amount: -b.FirstTimeRebate},
		{Key: "regFees", Label: "Registration & Disbursements", Amount: b.RegistrationFees},
		{Key: "titleInsurance", Label: "Title Insurance", Amount: b.TitleInsurance},
		{Key: "legalFee", Label: "Legal Fee", Amount: b.LegalFee},
		{Key: "adjustments", Label: "Adjustments (prorations)", Amount: b.Adjustments},
	}
}

func (b PurchaseBreakdown) Totals() []LineItem {
	return []LineItem{
		{Key: "totalCosts", Label: "Total Estimated Costs", Amount: b.TotalCosts},
		{Key: "cashRequired", Label: "Estimated Cash Required on Closing", Amount: b.CashRequired},
	}
}

func (PurchaseBreakdown) isBreakdown() {}

// SaleBreakdown is the result of the sale flow.
type SaleBreakdown struct {
	Commission      int64 `json:"commission"`
	HSTOnCommission int64 `json:"hstOnCommission"`
	MortgagePayout  int64 `json:"mortgagePayout"`
	LegalFee        int64 `json:"legalFee"`
	TotalDeductions int64 `json:"totalDeductions"`
	NetProceeds     int64 `json:"netProceeds"`
}

func (SaleBreakdown) TransactionType() TransactionType { return TransactionSale }

func (b SaleBreakdown) LineItems() []LineItem {
	return []LineItem{
		{Key: "commission", Label: "Realtor commission", Amount: b.Commission},
		{Key: "hstOnCommission", Label: "HST on commission", Amount: b.HSTOnCommission},
		{Key: "mortgagePayout", Label: "Mortgage payout", Amount: b.MortgagePayout},
		{Key: "legalFee", Label: "Legal Fee", Amount: b.LegalFee},
	}
}

func (b SaleBreakdown) Totals() []LineItem {
	return []LineItem{
		{Key: "totalDeductions", Label: "Total Deductions", Amount: b.TotalDeductions},
		{Key: "netProceeds", Label: "Net proceeds to seller (approx.)", Amount: b.NetProceeds},
	}
}

func (SaleBreakdown) isBreakdown() {}

// RefinanceBreakdown is the result of the refinance flow. NetAdvance is
// negative when the costs exceed the new mortgage.
type RefinanceBreakdown struct {
	LegalFee         int64 `json:"legalFee"`
	TitleInsurance   int64 `json:"titleInsurance"`
	RegistrationFees int64 `json:"regFees"`
	Payouts          int64 `json:"payouts"`
	TotalCosts       int64 `json:"totalCosts"`
	NetAdvance       int64 `json:"netAdvance"`
}

func (RefinanceBreakdown) TransactionType() TransactionType { return TransactionRefinance }

func (b RefinanceBreakdown) LineItems() []LineItem {
	return []LineItem{
		{Key: "legalFee", Label: "Legal Fee", Amount: b.LegalFee},
		{Key: "titleInsurance", Label: "Title Insurance (lender)", Amount: b.TitleInsurance},
		{Key: "regFees", Label: "Registration Fees", Amount: b.RegistrationFees},
		{Key: "payouts", Label: "Payout of existing mortgage", Amount: b.Payouts},
	}
}

func (b RefinanceBreakdown) Totals() []LineItem {
	return []LineItem{
		{Key: "totalCosts", Label: "Total Costs", Amount: b.TotalCosts},
		{Key: "netAdvance", Label: "Net advanced to borrower (approx.)", Amount: b.NetAdvance},
	}
}

func (RefinanceBreakdown) isBreakdown() {}

// Estimate is a calculated breakdown together with the input it was computed
// from and the identifiers handed back to the caller.
type Estimate struct {
	ID           string
	CalculatedAt time.Time
	Input        TransactionInput
	Breakdown    Breakdown
	// Reference is a sealed token that lets the estimate be recomputed later.
	Reference string
}

// Entries returns line items followed by totals, the order used on reports.
func (e Estimate) Entries() []LineItem {
	if e.Breakdown == nil {
		return nil
	}
	items := e.Breakdown.LineItems()
	return append(items, e.Breakdown.Totals()...)
}
