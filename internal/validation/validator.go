// =============================================================================
// EDIFACT PRICAT Generator - Validation Engine
// =============================================================================
//
// This module checks structural and domain correctness of a catalog message
// before anything is encoded:
//   - Required field checks (message reference, document code and number)
//   - Non-empty party and item collections
//   - EDIFACT version pattern (e.g. "D:96A:UN", case-insensitive)
//   - Currency and party-qualifier allow-sets
//   - Per-item product code, description, price, and optional quantity
//
// VALIDATION STRATEGY:
//   Checks run in a fixed order and fail fast: the first violated rule aborts
//   validation with a single descriptive error naming the field and the rule.
//   Prices go through the same normalizer the encoder uses, so a price that
//   validates here is guaranteed to encode there.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AScotM/edifact-pricat/internal/catalog"
	"github.com/AScotM/edifact-pricat/internal/edifact"
)

// ErrSchemaViolation is the sentinel for any structural or domain rule
// violation. Classify with errors.Is; errors.As yields the *ValidationError
// with field-level context.
var ErrSchemaViolation = errors.New("schema violation")

// versionPattern is the accepted EDIFACT version shape after upper-casing:
// one letter, two digits plus one letter, literal UN, colon-separated.
var versionPattern = regexp.MustCompile(`^[A-Z]:\d{2}[A-Z]:UN$`)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError represents the first rule violation found in a message.
type ValidationError struct {
	// Field is the name of the field that failed validation, in the
	// wire-facing snake_case form (e.g. "message_ref", "items").
	Field string

	// Value is the offending value, when one exists.
	Value string

	// Rule is the violated rule ("required", "empty_collection", "format",
	// "allowed_set", "quantity").
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("field '%s': %s (value: '%s')", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrSchemaViolation
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options carries the configured allow-sets and defaults consumed during
// validation.
type Options struct {
	// AllowedQualifiers are the accepted party role codes (e.g. BY, SU, SE).
	AllowedQualifiers []string

	// AllowedCurrencies are the accepted ISO 4217 codes.
	AllowedCurrencies []string

	// DefaultCurrency stands in when the message names no currency.
	DefaultCurrency string

	// DefaultVersion stands in when the message names no EDIFACT version.
	DefaultVersion string
}

// DefaultOptions returns the allow-sets and defaults used when no
// configuration overrides them.
func DefaultOptions() Options {
	return Options{
		AllowedQualifiers: []string{"BY", "SU", "SE"},
		AllowedCurrencies: []string{"EUR", "USD", "GBP", "JPY"},
		DefaultCurrency:   edifact.DefaultCurrency,
		DefaultVersion:    edifact.DefaultVersion,
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks a catalog message against the schema and the configured
// allow-sets. It returns nil for a valid message, or the first violation
// found as a *ValidationError (price failures additionally unwrap to
// edifact.ErrPriceViolation). The message is not modified.
func Validate(msg *catalog.Message, opts Options) error {
	if msg == nil {
		return &ValidationError{Field: "message", Rule: "required", Message: "catalog message is nil"}
	}

	// Required scalar fields, in fixed order.
	required := []struct {
		field string
		value string
	}{
		{"message_ref", msg.MessageRef},
		{"doc_code", msg.DocCode},
		{"doc_number", msg.DocNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{
				Field:   r.field,
				Rule:    "required",
				Message: fmt.Sprintf("missing required field: %s", r.field),
			}
		}
	}

	// Required collections must be present and non-empty.
	if len(msg.Parties) == 0 {
		return &ValidationError{Field: "parties", Rule: "empty_collection", Message: "field parties cannot be empty"}
	}
	if len(msg.Items) == 0 {
		return &ValidationError{Field: "items", Rule: "empty_collection", Message: "field items cannot be empty"}
	}

	if err := validateVersion(msg.EdifactVersion, opts.DefaultVersion); err != nil {
		return err
	}
	if err := validateCurrency(msg.Currency, opts); err != nil {
		return err
	}

	qualifiers := toSet(opts.AllowedQualifiers)
	for i, party := range msg.Parties {
		if err := validateParty(i, party, qualifiers); err != nil {
			return err
		}
	}

	for i, item := range msg.Items {
		if err := validateItem(i, item); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================
// FIELD VALIDATORS
// =============================================================================

// validateVersion checks the EDIFACT version triple. An empty version is
// replaced by the default before matching, so a sane default always passes.
func validateVersion(version, fallback string) error {
	v := version
	if v == "" {
		v = fallback
	}
	if !versionPattern.MatchString(strings.ToUpper(v)) {
		return &ValidationError{
			Field:   "edifact_version",
			Value:   version,
			Rule:    "format",
			Message: "invalid EDIFACT version format, expected e.g. D:96A:UN",
		}
	}
	return nil
}

// validateCurrency checks membership in the configured allow-set, after
// applying the default for an absent currency.
func validateCurrency(currency string, opts Options) error {
	c := currency
	if c == "" {
		c = opts.DefaultCurrency
	}
	if _, ok := toSet(opts.AllowedCurrencies)[c]; !ok {
		return &ValidationError{
			Field:   "currency",
			Value:   c,
			Rule:    "allowed_set",
			Message: fmt.Sprintf("invalid currency code, must be one of %s", strings.Join(opts.AllowedCurrencies, ", ")),
		}
	}
	return nil
}

func validateParty(index int, party catalog.Party, qualifiers map[string]struct{}) error {
	if strings.TrimSpace(party.Qualifier) == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("parties[%d].qualifier", index),
			Rule:    "required",
			Message: "each party must have 'qualifier' and 'id'",
		}
	}
	if _, ok := qualifiers[party.Qualifier]; !ok {
		return &ValidationError{
			Field:   fmt.Sprintf("parties[%d].qualifier", index),
			Value:   party.Qualifier,
			Rule:    "allowed_set",
			Message: "invalid party qualifier",
		}
	}
	if strings.TrimSpace(party.ID) == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("parties[%d].id", index),
			Rule:    "required",
			Message: "party ID must be a non-empty string",
		}
	}
	return nil
}

func validateItem(index int, item catalog.LineItem) error {
	if strings.TrimSpace(item.ProductCode) == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("items[%d].product_code", index),
			Rule:    "required",
			Message: "product code must be a non-empty string",
		}
	}
	if strings.TrimSpace(item.Description) == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("items[%d].description", index),
			Rule:    "required",
			Message: "description must be a non-empty string",
		}
	}

	// The shared normalizer decides what a valid price is. Wrapping keeps
	// the cause reachable, so callers can match edifact.ErrPriceViolation
	// on validation-phase failures too.
	if _, err := edifact.NormalizePrice(item.Price); err != nil {
		return fmt.Errorf("items[%d] (%s): %w", index, item.ProductCode, err)
	}

	if item.Quantity != "" {
		qty, err := decimal.NewFromString(strings.TrimSpace(item.Quantity))
		if err != nil || !qty.IsPositive() {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", index),
				Value:   item.Quantity,
				Rule:    "quantity",
				Message: "quantity must be a positive number",
			}
		}
	}

	return nil
}
