package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnsupportedCurrencyPairError reports a conversion the rate table cannot
// serve. Quoted is the supplier-side currency, Requested the caller's.
type UnsupportedCurrencyPairError struct {
	Quoted    string
	Requested string
}

func (e *UnsupportedCurrencyPairError) Error() string {
	return fmt.Sprintf("unsupported currency conversion: %s to %s", e.Quoted, e.Requested)
}

// Quote is the result of converting and marking up one net price.
// Computed per offer, serialized immediately, never mutated.
type Quote struct {
	SellingPrice    decimal.Decimal
	MarkupPercent   decimal.Decimal
	ExchangeRate    decimal.Decimal
	SellingCurrency string
}

// Calculator prices offers against a fixed rate table. Deterministic and
// side-effect free.
type Calculator struct {
	rates RateTable
}

// NewCalculator returns a Calculator bound to the given rate table.
func NewCalculator(rates RateTable) *Calculator {
	return &Calculator{rates: rates}
}

// Price converts net from the quoted currency into the requested one and
// applies the markup:
//
//	sellingPrice = round(net * (1 + markup/100) * rate, 2)
//
// Rounding is half away from zero and happens exactly once, on the final
// product; intermediate terms stay exact.
func (c *Calculator) Price(net decimal.Decimal, requested, quoted string, markupPercent decimal.Decimal) (*Quote, error) {
	rate, ok := c.rates.Rate(quoted, requested)
	if !ok {
		return nil, &UnsupportedCurrencyPairError{Quoted: quoted, Requested: requested}
	}

	factor := one.Add(markupPercent.Div(hundred))
	selling := net.Mul(factor).Mul(rate).Round(2)

	return &Quote{
		SellingPrice:    selling,
		MarkupPercent:   markupPercent,
		ExchangeRate:    rate,
		SellingCurrency: requested,
	}, nil
}

// MinimumSellingPrice applies the floor markup to a net price in its
// quoted currency, rounded the same way as selling prices.
func MinimumSellingPrice(net, minMarkupPercent decimal.Decimal) decimal.Decimal {
	return net.Mul(one.Add(minMarkupPercent.Div(hundred))).Round(2)
}
