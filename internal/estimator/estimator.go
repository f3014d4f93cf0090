// Package estimator computes closing-cost breakdowns for Ontario purchase,
// sale and refinance transactions. Everything here is a pure function of its
// input. Callers of the individual flows must check input with CheckRange.
package estimator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
)

// Estimate runs the flow matching in.Type. Currency inputs are rounded to
// whole dollars first so that every total is the exact sum of its line items.
// It fails for a transaction type outside the supported set and for amounts
// outside the range accepted by CheckRange.
func Estimate(in model.TransactionInput) (model.Breakdown, error) {
	if err := CheckRange(in); err != nil {
		return nil, err
	}
	switch in.Type {
	case model.TransactionPurchase:
		return Purchase(in), nil
	case model.TransactionSale:
		return Sale(in), nil
	case model.TransactionRefinance:
		return Refinance(in), nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTransactionType, in.Type)
}

// CheckRange reports the first amount of in that exceeds MaxAmount or
// MaxCommissionPercent. Negative amounts are left to the caller.
func CheckRange(in model.TransactionInput) error {
	amounts := []struct {
		field string
		value decimal.Decimal
		max   decimal.Decimal
	}{
		{"price", in.Price, MaxAmount},
		{"deposit", in.Deposit, MaxAmount},
		{"mortgage", in.MortgageBalance, MaxAmount},
		{"newMortgage", in.NewMortgage, MaxAmount},
		{"commissionPct", in.CommissionPercent, MaxCommissionPercent},
	}
	for _, a := range amounts {
		if a.value.GreaterThan(a.max) {
			return fmt.Errorf("%w: %s exceeds %s", apperrors.ErrAmountTooLarge, a.field, a.max.String())
		}
	}
	return nil
}

// Purchase estimates the buyer's closing costs.
func Purchase(in model.TransactionInput) model.PurchaseBreakdown {
	price := wholeDollars(in.Price)

	b := model.PurchaseBreakdown{
		OntarioLTT:       LandTransferTax(price),
		RegistrationFees: RegistrationFees(wholeDollars(in.MortgageBalance).IsPositive()),
		TitleInsurance:   TitleInsurance(price),
		LegalFee:         LegalFee(model.TransactionPurchase),
		Adjustments:      Adjustments(price),
	}
	if in.IsToronto {
		b.TorontoLTT = MunicipalLandTransferTax(price)
	}
	if in.IsFirstTimeBuyer {
		b.FirstTimeRebate = FirstTimeBuyerRebate(b.OntarioLTT + b.TorontoLTT)
	}

	b.TotalCosts = b.OntarioLTT + b.TorontoLTT - b.FirstTimeRebate +
		b.RegistrationFees + b.TitleInsurance + b.LegalFee + b.Adjustments
	b.CashRequired = max(0, b.TotalCosts-wholeDollars(in.Deposit).IntPart())
	return b
}

// Sale estimates the seller's deductions and net proceeds.
func Sale(in model.TransactionInput) model.SaleBreakdown {
	price := wholeDollars(in.Price)
	commission := roundWhole(in.CommissionPercent.Div(hundred).Mul(price))

	b := model.SaleBreakdown{
		Commission:      commission,
		HSTOnCommission: roundWhole(decimal.NewFromInt(commission).Mul(hstRate)),
		MortgagePayout:  wholeDollars(in.MortgageBalance).IntPart(),
		LegalFee:        LegalFee(model.TransactionSale),
	}
	b.TotalDeductions = b.Commission + b.HSTOnCommission + b.MortgagePayout + b.LegalFee
	b.NetProceeds = price.IntPart() - b.TotalDeductions + wholeDollars(in.Deposit).IntPart()
	return b
}

// Refinance estimates the borrower's costs and the net advance. Title
// insurance is priced on the new mortgage, or on the existing balance when no
// new amount is given.
func Refinance(in model.TransactionInput) model.RefinanceBreakdown {
	newMortgage := wholeDollars(in.NewMortgage)
	balance := wholeDollars(in.MortgageBalance)

	insured := newMortgage
	if insured.IsZero() {
		insured = balance
	}

	b := model.RefinanceBreakdown{
		LegalFee:         LegalFee(model.TransactionRefinance),
		TitleInsurance:   TitleInsurance(insured),
		RegistrationFees: RegistrationFees(true),
		Payouts:          balance.IntPart(),
	}
	b.TotalCosts = b.LegalFee + b.TitleInsurance + b.RegistrationFees + b.Payouts
	b.NetAdvance = newMortgage.IntPart() - b.TotalCosts
	return b
}

// wholeDollars rounds an entered amount half away from zero.
func wholeDollars(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
