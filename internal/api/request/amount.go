package request

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
)

// Amount is a lenient numeric form field. It accepts JSON numbers, numeric
// strings ("750000", "$750,000") and treats null, "" and absent values as zero,
// matching what an HTML number input posts.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps an int64 for building requests in code and tests.
func NewAmount(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// Limits on the textual form. An amount like 1e7000000 is cheap to parse but
// expensive to round or print, so it is refused here.
const (
	maxAmountLength   = 40
	maxAmountExponent = 15
)

// ParseAmount parses the textual forms accepted by UnmarshalJSON.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Amount{}, nil
	}
	if len(s) > maxAmountLength {
		return Amount{}, fmt.Errorf("%w: %d characters", apperrors.ErrAmountTooLarge, len(s))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, s)
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return Amount{}, fmt.Errorf("%w: %q", apperrors.ErrAmountTooLarge, s)
	}
	return Amount{d}, nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	s := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
