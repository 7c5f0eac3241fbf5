// =============================================================================
// EDIFACT PRICAT Generator - File Manager Utility
// =============================================================================
//
// This module is the persistence collaborator for generated PRICAT messages.
// It is a pure side consumer of the encoded message text:
//   - Output path resolution and collision avoidance
//   - Parent directory creation
//   - Verbatim UTF-8 file writing
//   - Output file naming utilities
//
// COLLISION STRATEGY:
//   When the target path exists and overwrite was not requested, the chosen
//   path gets a timestamp appended before the extension
//   (catalog.edi -> catalog_20240115_143022.edi). The final path is returned
//   to the caller rather than silently substituted.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timestampLayout is the suffix format used for collision-avoidance names.
const timestampLayout = "20060102_150405"

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteMessage persists the message text to the given path and returns the
// path actually written. When the path already exists and overwrite is
// false, a timestamped sibling path is chosen instead. Parent directories
// are created as needed.
func WriteMessage(path, message string, overwrite bool) (string, error) {
	final := ResolveOutputPath(path, overwrite)

	dir := filepath.Dir(final)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(final, []byte(message), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file %s: %w", final, err)
	}

	return final, nil
}

// ResolveOutputPath returns the path a write should target. The input path
// is returned unchanged unless it exists and overwrite is false, in which
// case a timestamp is appended before the extension.
func ResolveOutputPath(path string, overwrite bool) string {
	if overwrite || !FileExists(path) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%s%s", base, time.Now().Format(timestampLayout), ext)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format string.
//
// Placeholders:
//
//	{uuid}      - A random UUID
//	{timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - Current date (YYYYMMDD)
//	{time}      - Current time (HHMMSS)
//	{ref}       - Message reference (from params)
//
// Additional params are substituted as {key}. The ".edi" extension is
// appended when the format names no extension.
//
// EXAMPLE:
//
//	format: "{ref}_{timestamp}.edi"
//	params: {"ref": "MSG123"}
//	output: "MSG123_20240115_143022.edi"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format(timestampLayout),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if filepath.Ext(result) == "" {
		result += ".edi"
	}

	return result
}
