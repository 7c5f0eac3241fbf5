// =============================================================================
// EDIFACT PRICAT Generator - Segment Encoder
// =============================================================================
//
// This module assembles a validated catalog message into an ordered sequence
// of EDIFACT PRICAT segments. Assembly is deterministic:
//
//   UNA                      service string advice (not counted in UNT)
//   UNH                      message header (reference + PRICAT version)
//   BGM                      beginning of message (doc code + number)
//   DTM+137                  document date, format 102 (YYYYMMDD)
//   CUX+2                    message currency
//   RFF+ON                   order number reference
//   NAD (per party)          party role + identifier, agency 91
//   per item:
//     LIN                    line number + product code (EN code list)
//     IMD+F                  escaped description
//     PRI+AAA / PRI+AAB      net and gross unit price (same normalized value)
//     QTY+47 (optional)      quantity + unit code
//   MOA+86                   total message amount
//   UNT                      segment count + message reference
//
// ITEM FAULT TOLERANCE:
//   Each item is encoded independently. An item whose price fails
//   normalization is logged and skipped whole (no partial segments) in
//   lenient mode, or aborts the encode with an *ItemError in strict mode.
//   The validator has already rejected structurally broken parties and
//   top-level fields, so the encoder does not re-check those.
//
// =============================================================================

package edifact

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AScotM/edifact-pricat/internal/catalog"
)

// UNASegment is the fixed service-string advice declaring the separators,
// decimal mark, release character and terminator used by this encoder.
const UNASegment = "UNA:+.? '"

// Fixed qualifiers used in the assembled segments.
const (
	docDateQualifier   = "137" // DTM: document/message date
	dateFormatCCYYMMDD = "102" // DTM: CCYYMMDD
	currencyUsage      = "2"   // CUX: reference currency
	orderNumberRef     = "ON"  // RFF: order number
	partyAgency        = "91"  // NAD: assigned by supplier
	itemCodeList       = "EN"  // LIN: EAN code list
	netPrice           = "AAA" // PRI: calculation net
	grossPrice         = "AAB" // PRI: calculation gross
	perUnitPrice       = "UP"  // PRI: unit price basis
	orderedQuantity    = "47"  // QTY: invoiced quantity
	totalAmount        = "86"  // MOA: total message amount
)

// DefaultUnit is the unit-of-measure code applied when an item with a
// quantity does not name one.
const DefaultUnit = "PCE"

// Default values applied when the message leaves them empty. The CLI
// overrides these from configuration.
const (
	DefaultCurrency = "EUR"
	DefaultVersion  = "D:96A:UN"
)

// =============================================================================
// ITEM ERRORS
// =============================================================================

// ItemError identifies which line item broke a strict-mode encode and why.
type ItemError struct {
	// Index is the 1-based position of the item in the input.
	Index int

	// ProductCode identifies the item, when it had one.
	ProductCode string

	// Err is the underlying failure, typically a *PriceError.
	Err error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("invalid item %d (%s): %v", e.Index, e.ProductCode, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ENCODER
// =============================================================================

// Encoder assembles PRICAT segments from validated catalog messages.
// The zero value is not usable; construct with New.
type Encoder struct {
	// strict aborts the whole encode on the first bad item instead of
	// skipping it.
	strict bool

	// defaultCurrency and defaultVersion fill in fields the message left
	// empty. The validator applies the same defaults, so by the time a
	// validated message reaches Encode the two stay in agreement.
	defaultCurrency string
	defaultVersion  string

	// now supplies the DTM document date. Injected so tests can pin it.
	now func() time.Time

	logger *slog.Logger
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithStrict makes any item failure abort the whole encode.
func WithStrict(strict bool) Option {
	return func(e *Encoder) { e.strict = strict }
}

// WithDefaults overrides the fallback currency and EDIFACT version.
func WithDefaults(currency, version string) Option {
	return func(e *Encoder) {
		if currency != "" {
			e.defaultCurrency = currency
		}
		if version != "" {
			e.defaultVersion = version
		}
	}
}

// WithClock overrides the time source used for the DTM segment.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) { e.now = now }
}

// WithLogger sets the logger used for skipped-item warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Encoder. By default it is lenient, uses the wall clock,
// EUR, version D:96A:UN, and discards log output.
func New(opts ...Option) *Encoder {
	e := &Encoder{
		defaultCurrency: DefaultCurrency,
		defaultVersion:  DefaultVersion,
		now:             time.Now,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a successful encode.
type Result struct {
	// Segments are the assembled segments in emission order, UNA first.
	// Each segment carries its own terminator; no trailing separator.
	Segments []string

	// Total is the exact decimal sum of all accepted item prices.
	Total decimal.Decimal

	// ItemCount is the number of items that produced segments.
	ItemCount int
}

// Message joins the segments into the final PRICAT text, one segment per
// line with no trailing newline.
func (r *Result) Message() string {
	return strings.Join(r.Segments, "\n")
}

// SegmentCount is the number of emitted segments excluding the UNA service
// string advice. It always equals the count rendered in the UNT trailer.
func (r *Result) SegmentCount() int {
	return len(r.Segments) - 1
}

// =============================================================================
// ENCODING
// =============================================================================

// Encode assembles the PRICAT segments for a validated message. The input is
// never mutated. In lenient mode the returned error is always nil; in strict
// mode a bad item aborts with an *ItemError.
func (e *Encoder) Encode(msg *catalog.Message) (*Result, error) {
	currency := msg.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}
	version := strings.ToUpper(msg.EdifactVersion)
	if version == "" {
		version = strings.ToUpper(e.defaultVersion)
	}

	segments := []string{
		UNASegment,
		fmt.Sprintf("UNH+%s+PRICAT:%s'", msg.MessageRef, version),
		fmt.Sprintf("BGM+%s+%s+9'", msg.DocCode, msg.DocNumber),
		fmt.Sprintf("DTM+%s:%s:%s'", docDateQualifier, e.now().Format("20060102"), dateFormatCCYYMMDD),
		fmt.Sprintf("CUX+%s:%s:9'", currencyUsage, currency),
		fmt.Sprintf("RFF+%s:%s'", orderNumberRef, msg.DocNumber),
	}

	for _, party := range msg.Parties {
		segments = append(segments, fmt.Sprintf("NAD+%s+%s::%s'", party.Qualifier, party.ID, partyAgency))
		e.logger.Debug("added party segment", "qualifier", party.Qualifier, "id", party.ID)
	}

	total := decimal.Zero
	itemCount := 0

	for i, item := range msg.Items {
		index := i + 1

		itemSegments, price, err := e.encodeItem(index, &item)
		if err != nil {
			e.logger.Warn("skipping invalid item",
				"index", index, "product_code", item.ProductCode, "error", err)
			if e.strict {
				return nil, &ItemError{Index: index, ProductCode: item.ProductCode, Err: err}
			}
			continue
		}

		segments = append(segments, itemSegments...)
		total = total.Add(price)
		itemCount++
		e.logger.Debug("added item", "index", index, "product_code", item.ProductCode, "price", price.StringFixed(2))
	}

	segments = append(segments, fmt.Sprintf("MOA+%s:%s:%s'", totalAmount, total.StringFixed(2), currency))

	// The UNT count covers every segment except UNA, including UNT itself.
	// At this point len(segments) is UNA plus everything up to MOA, which is
	// exactly that count once UNT joins.
	segments = append(segments, fmt.Sprintf("UNT+%d+%s'", len(segments), msg.MessageRef))

	return &Result{Segments: segments, Total: total, ItemCount: itemCount}, nil
}

// encodeItem builds the full segment group for one line item, or fails
// without emitting anything. A failed item never contributes partial
// segments.
func (e *Encoder) encodeItem(index int, item *catalog.LineItem) ([]string, decimal.Decimal, error) {
	price, err := NormalizePrice(item.Price)
	if err != nil {
		return nil, decimal.Zero, err
	}

	segments := []string{
		fmt.Sprintf("LIN+%d++%s:%s'", index, item.ProductCode, itemCodeList),
		fmt.Sprintf("IMD+F++:::%s'", Escape(item.Description)),
		fmt.Sprintf("PRI+%s:%s:%s'", netPrice, price.StringFixed(2), perUnitPrice),
		fmt.Sprintf("PRI+%s:%s:%s'", grossPrice, price.StringFixed(2), perUnitPrice),
	}

	if item.Quantity != "" {
		qty, err := decimal.NewFromString(strings.TrimSpace(item.Quantity))
		if err != nil || !qty.IsPositive() {
			return nil, decimal.Zero, fmt.Errorf("invalid quantity value: %s", item.Quantity)
		}
		unit := item.Unit
		if unit == "" {
			unit = DefaultUnit
		}
		segments = append(segments, fmt.Sprintf("QTY+%s:%s:%s'", orderedQuantity, qty.String(), unit))
	}

	return segments, price, nil
}
