// Package currency converts amounts between the native (reference) currency
// and the secondary currency using a single caller-supplied exchange rate.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/OntriDS/thegame-sub002/internal/models"
)

// ErrInvalidRate is returned by ValidateRate for zero or negative rates.
var ErrInvalidRate = errors.New("exchange rate must be greater than zero")

// ValidateRate checks the normalizer precondition. Callers run it before
// building a Normalizer; the normalizer itself never checks.
func ValidateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidRate, rate)
	}
	return nil
}

// Normalizer converts with a fixed rate, expressed as secondary units per one native unit
// (e.g., 500 means 1 USD = 500 local).
// No rounding is applied; format at display time.
type Normalizer struct {
	Rate decimal.Decimal
}

// NewNormalizer returns a Normalizer for rate.
func NewNormalizer(rate decimal.Decimal) Normalizer {
	return Normalizer{Rate: rate}
}

// ToNative converts a secondary-currency amount to the native currency.
func (n Normalizer) ToNative(secondary decimal.Decimal) decimal.Decimal {
	return secondary.Div(n.Rate)
}

// ToSecondary converts a native-currency amount to the secondary currency.
func (n Normalizer) ToSecondary(native decimal.Decimal) decimal.Decimal {
	return native.Mul(n.Rate)
}

// ToReference sums a native and a secondary amount in the native currency.
func (n Normalizer) ToReference(native, secondary decimal.Decimal) decimal.Decimal {
	return native.Add(n.ToNative(secondary))
}

// Reference converts amount, held in currency c, to the native currency.
func (n Normalizer) Reference(amount decimal.Decimal, c models.Currency) decimal.Decimal {
	if c == models.CurrencySecondary {
		return n.ToNative(amount)
	}
	return amount
}

// ToReference is the one-shot form of Normalizer.ToReference.
func ToReference(native, secondary, rate decimal.Decimal) decimal.Decimal {
	return NewNormalizer(rate).ToReference(native, secondary)
}
