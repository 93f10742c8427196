package currency

import (
	"strings"

	"github.com/pkg/errors"
)

// Code is an ISO 4217 alphabetic currency code. Monetary amounts throughout
// the system are expressed in the currency's minor units (eg. cents for USD).
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	CAD Code = "CAD"
	AUD Code = "AUD"
	JPY Code = "JPY"
)

var ErrInvalidCode = errors.New("invalid currency code")

// Parse normalizes and validates a currency code from an external source.
func Parse(value string) (Code, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if len(normalized) != 3 {
		return "", ErrInvalidCode
	}

	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCode
		}
	}

	return Code(normalized), nil
}

func (c Code) String() string {
	return string(c)
}
