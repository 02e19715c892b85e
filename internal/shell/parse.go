package shell

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/coop/internal/model"
)

// ParseAmount parses a decimal typed by a user. Either ',' or '.' is
// accepted as the decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: amount is empty", model.ErrInvalidArgument)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", model.ErrInvalidArgument, s)
	}
	return d, nil
}
