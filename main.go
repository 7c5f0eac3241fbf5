// =============================================================================
// EDIFACT PRICAT Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the EDIFACT PRICAT Generator CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   pricat generate    - Validate and encode a product catalog as PRICAT
//   pricat version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core business logic (validation, encoding, orchestration)
//   - pkg/       : Shared utilities (output file management)
//
// =============================================================================

package main

import (
	"github.com/AScotM/edifact-pricat/cmd"
)

// main simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
