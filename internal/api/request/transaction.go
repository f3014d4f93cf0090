package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
)

// EstimateRequest is the calculator form as posted by the client.
// TxType is accepted as an alias of TransactionType.
type EstimateRequest struct {
	TransactionType  string `json:"transactionType,omitempty"`
	TxType           string `json:"txType,omitempty"`
	Price            Amount `json:"price"`
	Deposit          Amount `json:"deposit"`
	Mortgage         Amount `json:"mortgage"`
	NewMortgage      Amount `json:"newMortgage"`
	CommissionPct    Amount `json:"commissionPct"`
	IsToronto        bool   `json:"isToronto"`
	IsFirstTimeBuyer bool   `json:"isFirstTimeBuyer"`
	PropertyType     string `json:"propertyType,omitempty"`
}

// Type returns the requested transaction type, normalized to lower case.
func (r EstimateRequest) Type() string {
	t := r.TransactionType
	if strings.TrimSpace(t) == "" {
		t = r.TxType
	}
	return strings.ToLower(strings.TrimSpace(t))
}

// Property returns the requested property type, defaulting to resale.
func (r EstimateRequest) Property() string {
	p := strings.ToLower(strings.TrimSpace(r.PropertyType))
	if p == "" {
		return string(model.PropertyResale)
	}
	return p
}

// ToInput converts a validated request into the estimator input.
func (r EstimateRequest) ToInput() model.TransactionInput {
	return model.TransactionInput{
		Type:              model.TransactionType(r.Type()),
		Price:             r.Price.Decimal,
		Deposit:           r.Deposit.Decimal,
		MortgageBalance:   r.Mortgage.Decimal,
		NewMortgage:       r.NewMortgage.Decimal,
		CommissionPercent: r.CommissionPct.Decimal,
		IsToronto:         r.IsToronto,
		IsFirstTimeBuyer:  r.IsFirstTimeBuyer,
		PropertyType:      model.PropertyType(r.Property()),
	}
}

// FromInput converts estimator input back into the request shape, so that
// inputs echoed in a response can be posted again unchanged.
func FromInput(in model.TransactionInput) EstimateRequest {
	return EstimateRequest{
		TransactionType:  string(in.Type),
		Price:            Amount{Decimal: in.Price},
		Deposit:          Amount{Decimal: in.Deposit},
		Mortgage:         Amount{Decimal: in.MortgageBalance},
		NewMortgage:      Amount{Decimal: in.NewMortgage},
		CommissionPct:    Amount{Decimal: in.CommissionPercent},
		IsToronto:        in.IsToronto,
		IsFirstTimeBuyer: in.IsFirstTimeBuyer,
		PropertyType:     string(in.PropertyType),
	}
}

// EmailEstimateRequest asks for the PDF summary of an estimate to be emailed.
// Results only proves a calculation happened; the emailed figures are always
// recomputed. When Reference is set it takes precedence over Inputs.
type EmailEstimateRequest struct {
	Email     string          `json:"email"`
	Inputs    EstimateRequest `json:"inputs"`
	Results   json.RawMessage `json:"results,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// HasResults reports whether the client sent a non-empty results object.
func (r EmailEstimateRequest) HasResults() bool {
	trimmed := bytes.TrimSpace(r.Results)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	return !bytes.Equal(bytes.Join(bytes.Fields(trimmed), nil), []byte("{}"))
}

// VerifyEstimateRequest carries a reference issued with an earlier estimate.
type VerifyEstimateRequest struct {
	Reference string `json:"reference"`
}
