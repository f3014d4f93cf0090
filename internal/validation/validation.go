package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
)

// ValidateNonNegative checks that an amount is zero or positive.
func ValidateNonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is %s", apperrors.ErrNegativeAmount, field, amount.String())
	}
	return nil
}

// ValidateMax checks that an amount does not exceed max.
func ValidateMax(field string, amount, max decimal.Decimal) error {
	if amount.GreaterThan(max) {
		return fmt.Errorf("%w: %s must not exceed %s", apperrors.ErrAmountTooLarge, field, max.String())
	}
	return nil
}

// ValidateEmail checks that address is present and parses as a single
// mailbox. Display names are rejected.
func ValidateEmail(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return apperrors.ErrMissingEmail
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return apperrors.ErrInvalidEmail
	}
	return nil
}
