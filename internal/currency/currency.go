// Package currency normalizes amounts in any supported currency into MGA,
// the base accounting unit. It is a pure computation layer: callers pass
// amounts in, MGA amounts come out, nothing is stored.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Code identifies a supported currency.
type Code string

const (
	MGA Code = "MGA"
	RMB Code = "RMB"
	AED Code = "AED"
	EUR Code = "EUR"
	USD Code = "USD"
)

// Codes lists all supported currencies.
var Codes = []Code{MGA, RMB, AED, EUR, USD}

// ParseCode validates a currency string from client input.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Codes {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported currency %q", s)
}

// defaultRates are the built-in MGA exchange rates, used when the operator
// config does not override a currency.
var defaultRates = map[Code]decimal.Decimal{
	MGA: decimal.NewFromInt(1),
	RMB: decimal.NewFromInt(613),
	EUR: decimal.NewFromInt(5180),
	USD: decimal.NewFromInt(4400),
	AED: decimal.NewFromInt(1195),
}

// Converter turns foreign amounts into MGA using a rate table.
type Converter struct {
	rates map[Code]decimal.Decimal
}

// NewConverter builds a Converter from operator-supplied rates (currency
// code -> MGA per unit). Codes absent from the map, unknown, or with a
// non-positive rate keep their built-in default.
func NewConverter(rates map[string]float64) *Converter {
	merged := make(map[Code]decimal.Decimal, len(defaultRates))
	for code, rate := range defaultRates {
		merged[code] = rate
	}
	for s, r := range rates {
		code, err := ParseCode(s)
		if err != nil || r <= 0 {
			continue
		}
		merged[code] = decimal.NewFromFloat(r)
	}
	return &Converter{rates: merged}
}

// DefaultConverter returns a Converter over the built-in rate table.
func DefaultConverter() *Converter {
	return NewConverter(nil)
}

// Rate resolves the effective MGA rate for a currency. MGA is always 1 and
// ignores overrides. Otherwise a positive override wins, then the table,
// then 1.
func (cv *Converter) Rate(code Code, override *decimal.Decimal) decimal.Decimal {
	if code == MGA {
		return decimal.NewFromInt(1)
	}
	if override != nil && override.IsPositive() {
		return *override
	}
	if rate, ok := cv.rates[code]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// ToMGA converts amount in the given currency to MGA, rounded to 2 decimal
// places. Total over its domain: no error cases beyond the rate fallback.
func (cv *Converter) ToMGA(amount decimal.Decimal, code Code, override *decimal.Decimal) decimal.Decimal {
	if code == MGA {
		return amount.Round(2)
	}
	return amount.Mul(cv.Rate(code, override)).Round(2)
}
