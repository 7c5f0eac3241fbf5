// =============================================================================
// EDIFACT PRICAT Generator - Price Normalization
// =============================================================================
//
// Prices enter the pipeline as raw strings ("100", "89.50", "1.005") and are
// converted to exact decimals here. Both the validator and the encoder call
// through NormalizePrice so that the price printed in a PRI segment and the
// price summed into the MOA total are always the same rounded value.
//
// ROUNDING:
//   Two fraction digits, round-half-up: 1.005 -> 1.01, 1.004 -> 1.00.
//
// =============================================================================

package edifact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrPriceViolation is the sentinel for unparseable or negative prices.
// Use errors.Is to classify; errors.As yields the *PriceError with the raw value.
var ErrPriceViolation = errors.New("price violation")

// PriceError reports a price that could not be normalized. It carries the
// offending raw value so callers can surface it in diagnostics.
type PriceError struct {
	// Raw is the input value as received.
	Raw string
}

func (e *PriceError) Error() string {
	return fmt.Sprintf("invalid price value: %s", e.Raw)
}

func (e *PriceError) Unwrap() error {
	return ErrPriceViolation
}

// NormalizePrice converts a raw price value to an exact decimal rounded to
// two fraction digits using round-half-up. Non-numeric and negative values
// are rejected with a *PriceError.
//
// The conversion goes through decimal.NewFromString, never through a binary
// float, so values like "1.005" round predictably. Normalization is
// idempotent: feeding the result's string form back in returns an equal
// decimal.
func NormalizePrice(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, &PriceError{Raw: raw}
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &PriceError{Raw: raw}
	}

	// decimal.Round rounds half away from zero, which is round-half-up for
	// the non-negative values that survive the sign check below.
	d = d.Round(2)

	if d.IsNegative() {
		return decimal.Zero, &PriceError{Raw: raw}
	}

	return d, nil
}
