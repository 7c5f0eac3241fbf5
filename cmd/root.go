// =============================================================================
// EDIFACT PRICAT Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the 'generate' and 'version' commands attach to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pricat)
//   ├── generateCmd (pricat generate)
//   └── versionCmd (pricat version)
//
// The root command owns the global flags (--config, --verbose) and the
// logger construction. The core packages receive the logger explicitly; no
// package-level logging state exists below this layer.
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AScotM/edifact-pricat/internal/config"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pricat",
	Short: "EDIFACT PRICAT Generator - Export product catalogs as PRICAT messages",
	Long: `EDIFACT PRICAT Generator converts structured product-catalog records
(parties, items, prices, currency) into EDIFACT PRICAT messages for exchange
with trading partners.

Key Features:
  - Schema and allow-set validation with precise diagnostics
  - Exact decimal price normalization (two digits, round-half-up)
  - Deterministic segment assembly with correct trailer counts
  - Lenient or strict handling of invalid line items
  - Collision-safe output file writing

Example Usage:
  pricat generate                        # Encode the built-in sample catalog
  pricat generate --input catalog.xlsx   # Encode a catalog workbook
  pricat generate --strict --output out/pricat.edi`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
}

// newLogger builds the slog logger handed into the pipeline. The --verbose
// flag wins over the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
