package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Supported currency codes.
const (
	EUR = "EUR"
	USD = "USD"
	GBP = "GBP"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// RateTable maps quoted currency -> requested currency -> exchange rate.
// It is built once at startup and read-only afterwards, so unsynchronized
// concurrent reads are safe. Identity pairs are listed explicitly: the
// table is the single source of truth for every conversion, including a
// currency to itself.
type RateTable map[string]map[string]decimal.Decimal

// DefaultTable returns the built-in EUR/USD/GBP rate matrix.
func DefaultTable() RateTable {
	return RateTable{
		EUR: {USD: dec("1.1"), GBP: dec("0.85"), EUR: dec("1.0")},
		USD: {EUR: dec("0.91"), GBP: dec("0.78"), USD: dec("1.0")},
		GBP: {EUR: dec("1.18"), USD: dec("1.28"), GBP: dec("1.0")},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Validate enforces the identity-entry invariant: every quoted currency
// must convert to itself at rate 1.
func (t RateTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("rate table is empty")
	}
	for quoted, row := range t {
		rate, ok := row[quoted]
		if !ok {
			return fmt.Errorf("rate table: missing identity entry for %s", quoted)
		}
		if !rate.Equal(one) {
			return fmt.Errorf("rate table: identity rate for %s is %s, want 1", quoted, rate)
		}
	}
	return nil
}

// Rate returns the quoted->requested exchange rate.
func (t RateTable) Rate(quoted, requested string) (decimal.Decimal, bool) {
	row, ok := t[quoted]
	if !ok {
		return decimal.Decimal{}, false
	}
	rate, ok := row[requested]
	return rate, ok
}
