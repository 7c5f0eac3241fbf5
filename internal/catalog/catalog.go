// =============================================================================
// EDIFACT PRICAT Generator - Catalog Types
// =============================================================================
//
// This package contains the shared catalog record types used across the
// pipeline to avoid import cycles. Types defined here are consumed by:
//   - validation
//   - edifact
//   - generator
//   - xlsxloader
//
// A Message is built by the caller (sample data, Excel price list, or any
// other source), handed to the validator, then to the encoder, and discarded.
// The pipeline never mutates it.
//
// =============================================================================

package catalog

// =============================================================================
// CATALOG MESSAGE
// =============================================================================

// Message is the top-level product-catalog record that becomes one PRICAT
// message. MessageRef is echoed in both the UNH header and the UNT trailer.
type Message struct {
	// MessageRef is the unique message reference number.
	MessageRef string

	// DocCode is the document/message function code (e.g., "9" for original).
	DocCode string

	// DocNumber is the document identifier, echoed in BGM and RFF.
	DocNumber string

	// Currency is the ISO 4217 currency code for all prices in the message.
	// Empty means "use the configured default" (EUR).
	Currency string

	// EdifactVersion is the message version triple, e.g. "D:96A:UN".
	// Matching is case-insensitive; the encoder renders it upper-cased.
	// Empty means "use the configured default".
	EdifactVersion string

	// Parties are the trading parties, in output order.
	Parties []Party

	// Items are the catalog line items, in output order.
	Items []LineItem
}

// Party identifies one trading party (buyer, supplier, sender).
type Party struct {
	// Qualifier is the EDIFACT party role code (BY, SU, SE).
	Qualifier string

	// ID is the party identifier string.
	ID string
}

// LineItem is a single priced product in the catalog.
//
// Price and Quantity are carried as raw strings so that values arriving from
// spreadsheets, JSON numbers, or literals ("100", "89.50", "1.005") all take
// the same exact-decimal path through edifact.NormalizePrice. Parsing them
// into binary floats before normalization would reintroduce the
// representation drift the decimal pipeline exists to avoid.
type LineItem struct {
	// ProductCode is the item number rendered in the LIN segment.
	ProductCode string

	// Description is free text for the IMD segment. May contain characters
	// that need EDIFACT escaping.
	Description string

	// Price is the raw per-unit price. Normalized to an exact two-digit
	// decimal (round-half-up) before any use.
	Price string

	// Quantity is the raw ordered/contained quantity. Empty means absent;
	// when present it must be a positive number and produces a QTY segment.
	Quantity string

	// Unit is the unit-of-measure code for the quantity. Empty defaults to
	// "PCE" at encode time.
	Unit string
}

// =============================================================================
// SAMPLE DATA
// =============================================================================

// Sample returns the demo catalog used by the CLI when no input file is
// given. It intentionally includes quantities with and without explicit
// units so the generated message exercises the QTY defaulting path.
func Sample() *Message {
	return &Message{
		MessageRef:     "MSG123",
		DocCode:        "9",
		DocNumber:      "PRICAT2023",
		Currency:       "EUR",
		EdifactVersion: "D:96A:UN",
		Parties: []Party{
			{Qualifier: "BY", ID: "BUYER001"},
			{Qualifier: "SU", ID: "SUPPLIER001"},
		},
		Items: []LineItem{
			{ProductCode: "P1001", Description: "Product 1", Price: "125.99", Quantity: "10", Unit: "PCE"},
			{ProductCode: "P1002", Description: "Product 2", Price: "89.50", Quantity: "5"},
			{ProductCode: "P1003", Description: "Product 3", Price: "45.25"},
		},
	}
}
