package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractTextPlainText(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "hello from a plain file")

	got := ExtractText(path, "text/plain")
	assert.Equal(t, "hello from a plain file", got)
}

func TestExtractTextTruncatesToCap(t *testing.T) {
	path := writeTempFile(t, "big.txt", strings.Repeat("x", MaxExtractedChars*3))

	got := ExtractText(path, "text/plain")
	assert.Len(t, got, MaxExtractedChars)
}

func TestExtractTextTruncatesOnRuneBoundary(t *testing.T) {
	// Three-byte runes, so the cap lands mid-rune and must back up.
	path := writeTempFile(t, "cjk.txt", strings.Repeat("世", MaxExtractedChars))

	got := ExtractText(path, "text/plain")
	assert.True(t, utf8.ValidString(got), "truncated text must stay valid UTF-8")
	assert.LessOrEqual(t, len(got), MaxExtractedChars)
	assert.Equal(t, MaxExtractedChars/3*3, len(got))
}

func TestExtractTextImagePlaceholder(t *testing.T) {
	path := writeTempFile(t, "photo.png", "\x89PNG fake bytes")

	got := ExtractText(path, "image/png")
	assert.Equal(t, "[Image File: photo.png]", got)
}

func TestExtractTextGenericPlaceholder(t *testing.T) {
	path := writeTempFile(t, "data.bin", "binary stuff")

	got := ExtractText(path, "application/octet-stream")
	assert.Equal(t, "[Generic File Content: data.bin]", got)
}

func TestExtractTextEmptyMIMEFallsBackToGeneric(t *testing.T) {
	path := writeTempFile(t, "data.csv", "a,b,c")

	got := ExtractText(path, "")
	assert.Equal(t, "[Generic File Content: data.csv]", got)
}

func TestExtractTextUnreadableFileNeverFails(t *testing.T) {
	got := ExtractText(filepath.Join(t.TempDir(), "missing.txt"), "text/plain")
	assert.True(t, strings.HasPrefix(got, "Error extracting text:"), "got %q", got)
}

func TestExtractTextCorruptPDFReportsError(t *testing.T) {
	path := writeTempFile(t, "broken.pdf", "not a real pdf")

	got := ExtractText(path, "application/pdf")
	assert.True(t, strings.HasPrefix(got, "Error extracting text:"), "got %q", got)
}
