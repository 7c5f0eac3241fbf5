package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AScotM/edifact-pricat/internal/catalog"
	"github.com/AScotM/edifact-pricat/internal/edifact"
	"github.com/AScotM/edifact-pricat/internal/validation"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func validMessage() *catalog.Message {
	return &catalog.Message{
		MessageRef:     "MSG123",
		DocCode:        "9",
		DocNumber:      "PRICAT2023",
		Currency:       "EUR",
		EdifactVersion: "D:96A:UN",
		Parties: []catalog.Party{
			{Qualifier: "BY", ID: "BUYER001"},
			{Qualifier: "SU", ID: "SUPPLIER001"},
		},
		Items: []catalog.LineItem{
			{ProductCode: "P1001", Description: "Product 1", Price: "125.99", Quantity: "10"},
			{ProductCode: "P1002", Description: "Product 2", Price: "89.50"},
		},
	}
}

func expectViolation(t *testing.T, msg *catalog.Message, field, rule string) {
	t.Helper()

	err := validation.Validate(msg, validation.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrSchemaViolation)

	var valErr *validation.ValidationError
	require.True(t, errors.As(err, &valErr), "want *ValidationError, got %T", err)
	assert.Equal(t, field, valErr.Field)
	assert.Equal(t, rule, valErr.Rule)
}

// =============================================================================
// TOP-LEVEL FIELD CHECKS
// =============================================================================

func TestValidate_AcceptsValidMessage(t *testing.T) {
	assert.NoError(t, validation.Validate(validMessage(), validation.DefaultOptions()))
}

func TestValidate_AcceptsSampleCatalog(t *testing.T) {
	assert.NoError(t, validation.Validate(catalog.Sample(), validation.DefaultOptions()))
}

func TestValidate_NilMessage(t *testing.T) {
	expectViolation(t, nil, "message", "required")
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	msg := validMessage()
	msg.MessageRef = ""
	expectViolation(t, msg, "message_ref", "required")

	msg = validMessage()
	msg.DocCode = " "
	expectViolation(t, msg, "doc_code", "required")

	msg = validMessage()
	msg.DocNumber = ""
	expectViolation(t, msg, "doc_number", "required")
}

func TestValidate_EmptyCollections(t *testing.T) {
	msg := validMessage()
	msg.Parties = nil
	expectViolation(t, msg, "parties", "empty_collection")

	msg = validMessage()
	msg.Items = []catalog.LineItem{}
	expectViolation(t, msg, "items", "empty_collection")
}

func TestValidate_FailsFastOnFirstViolation(t *testing.T) {
	// Both the reference and the items are broken; the fixed check order
	// reports the reference first.
	msg := validMessage()
	msg.MessageRef = ""
	msg.Items = nil
	expectViolation(t, msg, "message_ref", "required")
}

// =============================================================================
// VERSION AND CURRENCY
// =============================================================================

func TestValidate_VersionPattern(t *testing.T) {
	msg := validMessage()
	msg.EdifactVersion = "D96A:UN"
	expectViolation(t, msg, "edifact_version", "format")

	msg = validMessage()
	msg.EdifactVersion = "D:9A:UN"
	expectViolation(t, msg, "edifact_version", "format")

	// Case-insensitive: lowercase versions normalize to upper before matching.
	msg = validMessage()
	msg.EdifactVersion = "d:96a:un"
	assert.NoError(t, validation.Validate(msg, validation.DefaultOptions()))

	// Absent version falls back to the default and passes.
	msg = validMessage()
	msg.EdifactVersion = ""
	assert.NoError(t, validation.Validate(msg, validation.DefaultOptions()))
}

func TestValidate_CurrencyAllowSet(t *testing.T) {
	msg := validMessage()
	msg.Currency = "CHF"
	expectViolation(t, msg, "currency", "allowed_set")

	err := validation.Validate(msg, validation.DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHF")
	assert.Contains(t, err.Error(), "EUR, USD, GBP, JPY")

	// Absent currency falls back to the default and passes.
	msg = validMessage()
	msg.Currency = ""
	assert.NoError(t, validation.Validate(msg, validation.DefaultOptions()))

	// A narrower configured allow-set is honored.
	opts := validation.DefaultOptions()
	opts.AllowedCurrencies = []string{"USD"}
	msg = validMessage() // EUR
	assert.ErrorIs(t, validation.Validate(msg, opts), validation.ErrSchemaViolation)
}

// =============================================================================
// PARTY CHECKS
// =============================================================================

func TestValidate_PartyRules(t *testing.T) {
	msg := validMessage()
	msg.Parties[1].Qualifier = ""
	expectViolation(t, msg, "parties[1].qualifier", "required")

	msg = validMessage()
	msg.Parties[0].Qualifier = "XX"
	expectViolation(t, msg, "parties[0].qualifier", "allowed_set")

	msg = validMessage()
	msg.Parties[0].ID = ""
	expectViolation(t, msg, "parties[0].id", "required")
}

// =============================================================================
// ITEM CHECKS
// =============================================================================

func TestValidate_ItemFieldRules(t *testing.T) {
	msg := validMessage()
	msg.Items[0].ProductCode = ""
	expectViolation(t, msg, "items[0].product_code", "required")

	msg = validMessage()
	msg.Items[1].Description = ""
	expectViolation(t, msg, "items[1].description", "required")
}

func TestValidate_ItemPriceViolation(t *testing.T) {
	msg := validMessage()
	msg.Items[0].Price = "-1"

	err := validation.Validate(msg, validation.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, edifact.ErrPriceViolation)

	var priceErr *edifact.PriceError
	require.True(t, errors.As(err, &priceErr))
	assert.Equal(t, "-1", priceErr.Raw)
}

func TestValidate_ItemMissingPrice(t *testing.T) {
	msg := validMessage()
	msg.Items[1].Price = ""

	err := validation.Validate(msg, validation.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, edifact.ErrPriceViolation)
	assert.Contains(t, err.Error(), "items[1]")
	assert.Contains(t, err.Error(), "P1002")
}

func TestValidate_QuantityMustBePositive(t *testing.T) {
	msg := validMessage()
	msg.Items[0].Quantity = "0"
	expectViolation(t, msg, "items[0].quantity", "quantity")

	msg = validMessage()
	msg.Items[0].Quantity = "-2"
	expectViolation(t, msg, "items[0].quantity", "quantity")

	msg = validMessage()
	msg.Items[0].Quantity = "many"
	expectViolation(t, msg, "items[0].quantity", "quantity")

	msg = validMessage()
	msg.Items[0].Quantity = "2.5"
	assert.NoError(t, validation.Validate(msg, validation.DefaultOptions()))
}
