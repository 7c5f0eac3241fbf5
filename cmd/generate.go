// =============================================================================
// EDIFACT PRICAT Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the full pipeline for
// one catalog: load (workbook or built-in sample), validate, encode, and
// persist the PRICAT message.
//
// COMMAND USAGE:
//   pricat generate [flags]
//
// FLAGS:
//   --input      : Path to a catalog workbook (.xlsx); omit for the sample
//   --output     : Output file path; default derives from config + message ref
//   --strict     : Abort the whole message on the first invalid item
//   --overwrite  : Replace an existing output file instead of renaming
//   --dry-run    : Encode and print without writing any file
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AScotM/edifact-pricat/internal/catalog"
	"github.com/AScotM/edifact-pricat/internal/config"
	"github.com/AScotM/edifact-pricat/internal/generator"
	"github.com/AScotM/edifact-pricat/internal/xlsxloader"
	"github.com/AScotM/edifact-pricat/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile is the path to a catalog workbook. Empty selects the sample.
var inputFile string

// outputFile overrides the derived output path.
var outputFile string

// strict aborts the message on the first invalid item.
var strict bool

// overwrite replaces an existing output file.
var overwrite bool

// dryRun encodes and prints without writing output files.
var dryRun bool

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an EDIFACT PRICAT message from a product catalog",
	Long: `The generate command validates a product catalog, encodes it as an
EDIFACT PRICAT message, and writes the message to the output directory.

Without --input the built-in sample catalog is encoded, which is useful for
checking the configuration and the output location. With --input a catalog
workbook (.xlsx with Message, Parties and Items sheets) is loaded instead.

Invalid line items are skipped with a warning by default; with --strict any
invalid item aborts the whole message. If the output file already exists and
--overwrite is not given, a timestamped file name is chosen and reported.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(
		&inputFile,
		"input",
		"",
		"Path to a catalog workbook (.xlsx); omit to encode the sample catalog",
	)

	generateCmd.Flags().StringVar(
		&outputFile,
		"output",
		"",
		"Output file path (default derives from the configured output directory)",
	)

	generateCmd.Flags().BoolVar(
		&strict,
		"strict",
		false,
		"Abort the whole message on the first invalid item",
	)

	generateCmd.Flags().BoolVar(
		&overwrite,
		"overwrite",
		false,
		"Replace an existing output file instead of choosing a new name",
	)

	generateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Encode and print the message without writing any file",
	)
}

// =============================================================================
// MAIN GENERATION FUNCTION
// =============================================================================

// runGenerate orchestrates the pipeline for one catalog.
func runGenerate() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)

	// Load the catalog record.
	var msg *catalog.Message
	if inputFile != "" {
		msg, err = xlsxloader.Load(inputFile)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		logger.Info("loaded catalog workbook", "path", inputFile,
			"parties", len(msg.Parties), "items", len(msg.Items))
	} else {
		msg = catalog.Sample()
		logger.Info("no input file given, using sample catalog")
	}

	// Decide where the message goes.
	outputPath := ""
	if !dryRun {
		outputPath = outputFile
		if outputPath == "" {
			name := utils.GenerateOutputFileName(cfg.OutputNameFormat, map[string]string{
				"ref": msg.MessageRef,
			})
			outputPath = filepath.Join(cfg.OutputDir, name)
		}
	}

	gen := generator.New(generator.Options{
		AllowedQualifiers: cfg.AllowedQualifiers,
		AllowedCurrencies: cfg.AllowedCurrencies,
		DefaultCurrency:   cfg.DefaultCurrency,
		DefaultVersion:    cfg.DefaultEdifactVersion,
		Strict:            strict || cfg.Strict,
		OutputPath:        outputPath,
		Overwrite:         overwrite || cfg.Overwrite,
		Logger:            logger,
	})

	result := gen.Run(msg)
	if !result.Success {
		return fmt.Errorf("failed to generate PRICAT: %w", result.Error)
	}

	fmt.Println("=== EDIFACT PRICAT Generator ===")
	fmt.Printf("Items encoded:   %d\n", result.ItemCount)
	fmt.Printf("Segments:        %d\n", result.SegmentCount)
	fmt.Printf("Total amount:    %s\n", result.Total.StringFixed(2))
	if result.OutputFile != "" {
		fmt.Printf("Output file:     %s\n", result.OutputFile)
	}

	if dryRun {
		fmt.Println("\nGenerated PRICAT message:")
		fmt.Println(result.Message)
	}

	return nil
}
