// =============================================================================
// EDIFACT PRICAT Generator - Pipeline Orchestrator
// =============================================================================
//
// This module runs the full validate-then-encode pipeline for one catalog
// message and hands the result to the persistence collaborator:
//
//   1. Validate the catalog message (schema + domain rules)
//   2. Encode the PRICAT segments (lenient or strict item handling)
//   3. Join the segments into the final message text
//   4. Optionally persist the text to the configured output path
//
// FAILURE POLICY:
//   - Validation failures and strict-mode item failures return an empty
//     message with the reason in Result.Error. Nothing is written.
//   - Persistence failures are a distinct hard failure: the message text was
//     generated successfully and is kept in the Result, but Error carries a
//     *PersistenceError so the caller never mistakes "file not written" for
//     "message empty".
//   - Any other defect is caught, logged with context, and surfaced as an
//     empty result rather than a panic in the caller.
//
// =============================================================================

package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AScotM/edifact-pricat/internal/catalog"
	"github.com/AScotM/edifact-pricat/internal/edifact"
	"github.com/AScotM/edifact-pricat/internal/validation"
	"github.com/AScotM/edifact-pricat/pkg/utils"
)

// =============================================================================
// FAILURE TAXONOMY
// =============================================================================

// Sentinels for the two failure kinds this package raises itself. Schema and
// price violations come from the validation and edifact packages and are
// matched with validation.ErrSchemaViolation / edifact.ErrPriceViolation.
var (
	// ErrPersistenceFailure marks output files that could not be written.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrUnexpectedFailure marks defects recovered inside the pipeline.
	ErrUnexpectedFailure = errors.New("unexpected failure")
)

// PersistenceError reports a failed write of a successfully generated
// message. It unwraps to both ErrPersistenceFailure and the underlying
// cause.
type PersistenceError struct {
	// Path is the output path that could not be written.
	Path string

	// Err is the underlying I/O error.
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist message to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceFailure, e.Err}
}

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options configures one Generator. The zero value plus DefaultOptions()
// semantics are applied by New.
type Options struct {
	// AllowedQualifiers and AllowedCurrencies are the validation allow-sets.
	// Empty slices fall back to the validation defaults.
	AllowedQualifiers []string
	AllowedCurrencies []string

	// DefaultCurrency and DefaultVersion fill absent message fields.
	DefaultCurrency string
	DefaultVersion  string

	// Strict aborts the whole encode on the first invalid item instead of
	// skipping it.
	Strict bool

	// OutputPath is where the message text is persisted. Empty disables
	// persistence.
	OutputPath string

	// Overwrite replaces an existing output file instead of deriving a
	// timestamped sibling path.
	Overwrite bool

	// Logger receives pipeline diagnostics. Nil discards them.
	Logger *slog.Logger

	// Now overrides the encoder clock. Nil means time.Now.
	Now func() time.Time
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Message is the joined PRICAT text. Empty on validation or unexpected
	// failure; still populated when only persistence failed.
	Message string

	// OutputFile is the path actually written, after any collision
	// avoidance. Empty when nothing was written.
	OutputFile string

	// Total is the exact decimal sum of accepted item prices.
	Total decimal.Decimal

	// ItemCount is the number of items encoded.
	ItemCount int

	// SegmentCount is the number of emitted segments excluding UNA.
	SegmentCount int

	// Success is true when the message was generated and, if requested,
	// persisted.
	Success bool

	// Error is the failure reason when Success is false.
	Error error
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator runs the pipeline. Construct with New; safe for repeated use,
// one independent run per call.
type Generator struct {
	opts    Options
	valOpts validation.Options
	encoder *edifact.Encoder
	logger  *slog.Logger
}

// New creates a Generator from the given options.
func New(opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	valOpts := validation.DefaultOptions()
	if len(opts.AllowedQualifiers) > 0 {
		valOpts.AllowedQualifiers = opts.AllowedQualifiers
	}
	if len(opts.AllowedCurrencies) > 0 {
		valOpts.AllowedCurrencies = opts.AllowedCurrencies
	}
	if opts.DefaultCurrency != "" {
		valOpts.DefaultCurrency = opts.DefaultCurrency
	}
	if opts.DefaultVersion != "" {
		valOpts.DefaultVersion = opts.DefaultVersion
	}

	encOpts := []edifact.Option{
		edifact.WithStrict(opts.Strict),
		edifact.WithDefaults(valOpts.DefaultCurrency, valOpts.DefaultVersion),
		edifact.WithLogger(logger),
	}
	if opts.Now != nil {
		encOpts = append(encOpts, edifact.WithClock(opts.Now))
	}

	return &Generator{
		opts:    opts,
		valOpts: valOpts,
		encoder: edifact.New(encOpts...),
		logger:  logger,
	}
}

// Run executes the pipeline for one catalog message. It never panics; any
// defect inside the pipeline is recovered and reported as an unexpected
// failure with an empty message.
func (g *Generator) Run(msg *catalog.Message) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("unexpected failure generating PRICAT", "panic", r)
			result = Result{Error: fmt.Errorf("%w: %v", ErrUnexpectedFailure, r)}
		}
	}()

	if err := validation.Validate(msg, g.valOpts); err != nil {
		g.logger.Error("validation failed", "error", err)
		return Result{Error: err}
	}
	g.logger.Info("data validation passed")

	encoded, err := g.encoder.Encode(msg)
	if err != nil {
		g.logger.Error("encoding aborted", "error", err)
		return Result{Error: err}
	}

	result = Result{
		Message:      encoded.Message(),
		Total:        encoded.Total,
		ItemCount:    encoded.ItemCount,
		SegmentCount: encoded.SegmentCount(),
		Success:      true,
	}

	if g.opts.OutputPath != "" {
		finalPath, err := utils.WriteMessage(g.opts.OutputPath, result.Message, g.opts.Overwrite)
		if err != nil {
			g.logger.Error("file write error", "path", g.opts.OutputPath, "error", err)
			result.Success = false
			result.Error = &PersistenceError{Path: g.opts.OutputPath, Err: err}
			return result
		}
		if finalPath != g.opts.OutputPath {
			g.logger.Info("output file exists, using new filename", "path", finalPath)
		}
		result.OutputFile = finalPath
		g.logger.Info("PRICAT saved", "path", finalPath)
	}

	g.logger.Info("generated PRICAT",
		"items", result.ItemCount,
		"segments", result.SegmentCount,
		"total", result.Total.StringFixed(2))

	return result
}
