package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/request"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/estimator"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
)

// ValidateEstimate validates the calculator form.
//
// Required fields:
//   - transactionType (or txType): one of purchase, sale, refinance
//
// Optional fields:
//   - propertyType: one of resale, new, condo (defaults to resale)
//   - price, deposit, mortgage, newMortgage: between 0 and estimator.MaxAmount
//   - commissionPct: between 0 and estimator.MaxCommissionPercent
//
// Missing or blank amounts are treated as zero and are valid.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateEstimate(req request.EstimateRequest) error {
	errors := make(map[string]string)

	switch t := req.Type(); {
	case t == "":
		errors["transactionType"] = "transactionType is required"
	case !model.TransactionType(t).Valid():
		errors["transactionType"] = fmt.Sprintf("%s: %s", apperrors.ErrInvalidTransactionType, t)
	}

	if p := req.Property(); !model.PropertyType(p).Valid() {
		errors["propertyType"] = fmt.Sprintf("%s: %s", apperrors.ErrInvalidPropertyType, p)
	}

	amounts := []struct {
		field  string
		amount request.Amount
		max    decimal.Decimal
	}{
		{"price", req.Price, estimator.MaxAmount},
		{"deposit", req.Deposit, estimator.MaxAmount},
		{"mortgage", req.Mortgage, estimator.MaxAmount},
		{"newMortgage", req.NewMortgage, estimator.MaxAmount},
		{"commissionPct", req.CommissionPct, estimator.MaxCommissionPercent},
	}
	for _, a := range amounts {
		if err := ValidateNonNegative(a.field, a.amount.Decimal); err != nil {
			errors[a.field] = err.Error()
			continue
		}
		if err := ValidateMax(a.field, a.amount.Decimal, a.max); err != nil {
			errors[a.field] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateEmailEstimate validates a request to email an estimate.
// The recipient must be a valid address and the client must either have
// calculated results or hold a reference. Inputs are only validated when no
// reference is given, since the reference carries its own input.
//
// Missing email and missing calculation are returned as the bare
// apperrors sentinels so the handler can show them verbatim.
func ValidateEmailEstimate(req request.EmailEstimateRequest) error {
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}

	if req.Reference != "" {
		return nil
	}

	if !req.HasResults() {
		return apperrors.ErrNoCalculation
	}

	return ValidateEstimate(req.Inputs)
}
