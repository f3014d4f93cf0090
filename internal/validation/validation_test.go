package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/request"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
)

func TestValidateEstimate(t *testing.T) {
	t.Run("accepts a complete purchase form", func(t *testing.T) {
		req := request.EstimateRequest{
			TransactionType: "purchase",
			Price:           request.NewAmount(750000),
			Deposit:         request.NewAmount(50000),
			Mortgage:        request.NewAmount(600000),
		}
		if err := ValidateEstimate(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts all-zero amounts", func(t *testing.T) {
		if err := ValidateEstimate(request.EstimateRequest{TxType: "refinance"}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("requires a transaction type", func(t *testing.T) {
		err := ValidateEstimate(request.EstimateRequest{})

		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation Error, got %v", err)
		}
		if verr.Fields["transactionType"] != "transactionType is required" {
			t.Errorf("Unexpected message: %q", verr.Fields["transactionType"])
		}
	})

	t.Run("rejects unknown transaction and property types", func(t *testing.T) {
		err := ValidateEstimate(request.EstimateRequest{TransactionType: "lease", PropertyType: "castle"})

		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation Error, got %v", err)
		}
		if _, ok := verr.Fields["transactionType"]; !ok {
			t.Error("Expected transactionType error")
		}
		if _, ok := verr.Fields["propertyType"]; !ok {
			t.Error("Expected propertyType error")
		}
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		req := request.EstimateRequest{
			TransactionType: "sale",
			Price:           request.NewAmount(-1),
			CommissionPct:   request.NewAmount(-5),
		}
		err := ValidateEstimate(req)

		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation Error, got %v", err)
		}
		if len(verr.Fields) != 2 {
			t.Errorf("Expected 2 field errors, got %v", verr.Fields)
		}
		if verr.Error() != "commissionPct: amount cannot be negative: commissionPct is -5; price: amount cannot be negative: price is -1" {
			t.Errorf("Unexpected message: %s", verr.Error())
		}
	})
}

func TestValidateEstimate_Ceilings(t *testing.T) {
	t.Run("accepts amounts at the ceiling", func(t *testing.T) {
		req := request.EstimateRequest{
			TransactionType: "sale",
			Price:           request.NewAmount(1_000_000_000_000),
			Mortgage:        request.NewAmount(1_000_000_000_000),
			CommissionPct:   request.NewAmount(100),
		}
		if err := ValidateEstimate(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects amounts above the ceiling", func(t *testing.T) {
		req := request.EstimateRequest{
			TransactionType: "sale",
			Price:           request.NewAmount(10_000_000_000_000_000),
			Deposit:         request.NewAmount(1_000_000_000_001),
			CommissionPct:   request.NewAmount(101),
		}
		err := ValidateEstimate(req)

		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation Error, got %v", err)
		}
		for _, field := range []string{"price", "deposit", "commissionPct"} {
			if !strings.Contains(verr.Fields[field], apperrors.ErrAmountTooLarge.Error()) {
				t.Errorf("Expected %s to be too large, got %q", field, verr.Fields[field])
			}
		}
		if _, ok := verr.Fields["mortgage"]; ok {
			t.Error("Did not expect a mortgage error")
		}
	})
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		address string
		want    error
	}{
		{"", apperrors.ErrMissingEmail},
		{"   ", apperrors.ErrMissingEmail},
		{"not-an-email", apperrors.ErrInvalidEmail},
		{"Jane <jane@example.com>", apperrors.ErrInvalidEmail},
		{"jane@example.com", nil},
	}

	for _, tc := range tests {
		if err := ValidateEmail(tc.address); !errors.Is(err, tc.want) {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.address, err, tc.want)
		}
	}
}

func TestValidateEmailEstimate(t *testing.T) {
	results := json.RawMessage(`{"totalCosts": 15580}`)

	t.Run("missing email comes first", func(t *testing.T) {
		err := ValidateEmailEstimate(request.EmailEstimateRequest{})
		if !errors.Is(err, apperrors.ErrMissingEmail) {
			t.Errorf("Expected ErrMissingEmail, got %v", err)
		}
	})

	t.Run("requires a prior calculation", func(t *testing.T) {
		err := ValidateEmailEstimate(request.EmailEstimateRequest{
			Email:  "jane@example.com",
			Inputs: request.EstimateRequest{TransactionType: "purchase"},
		})
		if !errors.Is(err, apperrors.ErrNoCalculation) {
			t.Errorf("Expected ErrNoCalculation, got %v", err)
		}
	})

	t.Run("reference stands in for results and inputs", func(t *testing.T) {
		err := ValidateEmailEstimate(request.EmailEstimateRequest{
			Email:     "jane@example.com",
			Reference: "gAAAA...",
		})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("validates inputs when results are given", func(t *testing.T) {
		err := ValidateEmailEstimate(request.EmailEstimateRequest{
			Email:   "jane@example.com",
			Inputs:  request.EstimateRequest{TransactionType: "purchase", Price: request.NewAmount(-10)},
			Results: results,
		})

		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("Expected validation Error, got %v", err)
		}
	})

	t.Run("accepts a calculated estimate", func(t *testing.T) {
		err := ValidateEmailEstimate(request.EmailEstimateRequest{
			Email:   "jane@example.com",
			Inputs:  request.EstimateRequest{TransactionType: "purchase", Price: request.NewAmount(750000)},
			Results: results,
		})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}
