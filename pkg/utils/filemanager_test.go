package utils_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AScotM/edifact-pricat/pkg/utils"
)

// =============================================================================
// WRITING AND PATH RESOLUTION
// =============================================================================

func TestWriteMessage_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "catalog.edi")

	final, err := utils.WriteMessage(path, "UNA:+.? '", false)
	require.NoError(t, err)
	assert.Equal(t, path, final)

	content, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "UNA:+.? '", string(content))
}

func TestWriteMessage_CollisionAppendsTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.edi")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0644))

	final, err := utils.WriteMessage(path, "second", false)
	require.NoError(t, err)
	assert.NotEqual(t, path, final)

	// catalog_YYYYMMDD_HHMMSS.edi
	assert.Regexp(t, regexp.MustCompile(`catalog_\d{8}_\d{6}\.edi$`), final)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(first))

	second, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "second", string(second))
}

func TestWriteMessage_OverwriteKeepsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.edi")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0644))

	final, err := utils.WriteMessage(path, "second", true)
	require.NoError(t, err)
	assert.Equal(t, path, final)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestWriteMessage_FailsOnDirectoryTarget(t *testing.T) {
	dir := t.TempDir()

	_, err := utils.WriteMessage(dir, "text", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
}

func TestResolveOutputPath_NoCollision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.edi")
	assert.Equal(t, path, utils.ResolveOutputPath(path, false))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present.edi")
	assert.False(t, utils.FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, utils.FileExists(path))
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

func TestGenerateOutputFileName_SubstitutesParams(t *testing.T) {
	name := utils.GenerateOutputFileName("{ref}_{date}.edi", map[string]string{"ref": "MSG123"})

	assert.True(t, strings.HasPrefix(name, "MSG123_"))
	assert.Regexp(t, regexp.MustCompile(`^MSG123_\d{8}\.edi$`), name)
}

func TestGenerateOutputFileName_UUIDPlaceholder(t *testing.T) {
	first := utils.GenerateOutputFileName("{uuid}.edi", nil)
	second := utils.GenerateOutputFileName("{uuid}.edi", nil)

	assert.NotEqual(t, first, second)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}\.edi$`), first)
}

func TestGenerateOutputFileName_AppendsExtensionWhenMissing(t *testing.T) {
	name := utils.GenerateOutputFileName("{ref}", map[string]string{"ref": "MSG123"})
	assert.Equal(t, "MSG123.edi", name)
}

func TestGenerateOutputFileName_TimestampShape(t *testing.T) {
	name := utils.GenerateOutputFileName("{timestamp}.edi", nil)
	assert.Regexp(t, regexp.MustCompile(`^\d{8}_\d{6}\.edi$`), name)
}
