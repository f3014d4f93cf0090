package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/request"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
)

// InputBuilder provides a fluent interface for creating estimator inputs.
//
// Example usage:
//
//	// Purchase with defaults
//	in := testutil.NewPurchase().Build()
//
//	// Customized purchase, as an API request body
//	req := testutil.NewPurchase().
//	    WithPrice(1_200_000).
//	    InToronto().
//	    FirstTimeBuyer().
//	    Request()
type InputBuilder struct {
	in model.TransactionInput
}

// NewPurchase creates a builder for a $750,000 resale purchase with a
// $50,000 deposit and a $600,000 mortgage.
func NewPurchase() *InputBuilder {
	return &InputBuilder{in: model.TransactionInput{
		Type:            model.TransactionPurchase,
		Price:           decimal.NewFromInt(750000),
		Deposit:         decimal.NewFromInt(50000),
		MortgageBalance: decimal.NewFromInt(600000),
		PropertyType:    model.PropertyResale,
	}}
}

// NewSale creates a builder for a $750,000 sale at 5% commission with a
// $400,000 mortgage and a $50,000 deposit.
func NewSale() *InputBuilder {
	return &InputBuilder{in: model.TransactionInput{
		Type:              model.TransactionSale,
		Price:             decimal.NewFromInt(750000),
		Deposit:           decimal.NewFromInt(50000),
		MortgageBalance:   decimal.NewFromInt(400000),
		CommissionPercent: decimal.NewFromInt(5),
		PropertyType:      model.PropertyResale,
	}}
}

// NewRefinance creates a builder for a $300,000 balance refinanced into a
// $500,000 mortgage.
func NewRefinance() *InputBuilder {
	return &InputBuilder{in: model.TransactionInput{
		Type:            model.TransactionRefinance,
		MortgageBalance: decimal.NewFromInt(300000),
		NewMortgage:     decimal.NewFromInt(500000),
		PropertyType:    model.PropertyResale,
	}}
}

// WithPrice sets the price in whole dollars.
func (b *InputBuilder) WithPrice(price int64) *InputBuilder {
	b.in.Price = decimal.NewFromInt(price)
	return b
}

// WithDeposit sets the deposit in whole dollars.
func (b *InputBuilder) WithDeposit(deposit int64) *InputBuilder {
	b.in.Deposit = decimal.NewFromInt(deposit)
	return b
}

// WithMortgage sets the mortgage (purchase) or balance (sale, refinance).
func (b *InputBuilder) WithMortgage(mortgage int64) *InputBuilder {
	b.in.MortgageBalance = decimal.NewFromInt(mortgage)
	return b
}

// WithNewMortgage sets the refinance mortgage amount.
func (b *InputBuilder) WithNewMortgage(mortgage int64) *InputBuilder {
	b.in.NewMortgage = decimal.NewFromInt(mortgage)
	return b
}

// WithCommission sets the commission percentage.
func (b *InputBuilder) WithCommission(pct string) *InputBuilder {
	b.in.CommissionPercent = decimal.RequireFromString(pct)
	return b
}

// WithPropertyType sets the property type.
func (b *InputBuilder) WithPropertyType(p model.PropertyType) *InputBuilder {
	b.in.PropertyType = p
	return b
}

// InToronto marks the property as inside Toronto.
func (b *InputBuilder) InToronto() *InputBuilder {
	b.in.IsToronto = true
	return b
}

// FirstTimeBuyer marks the buyer as a first-time buyer.
func (b *InputBuilder) FirstTimeBuyer() *InputBuilder {
	b.in.IsFirstTimeBuyer = true
	return b
}

// Build returns the estimator input.
func (b *InputBuilder) Build() model.TransactionInput {
	return b.in
}

// Request returns the input as an API request body.
func (b *InputBuilder) Request() request.EstimateRequest {
	return request.FromInput(b.in)
}
