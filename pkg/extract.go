package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxExtractedChars bounds the excerpt injected as model context.
const MaxExtractedChars = 5000

// ExtractText turns an uploaded file into a bounded plain-text excerpt
// suitable as model context. It never fails: unreadable content comes back
// as a descriptive text value so an upload is never rejected for it.
// Image files get a placeholder only; their bytes are forwarded to the model
// directly as binary parts instead of being duplicated as text.
func ExtractText(filePath, mimeType string) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	var text string
	var err error
	switch {
	case strings.EqualFold(filepath.Ext(filePath), ".txt"):
		var data []byte
		data, err = os.ReadFile(filePath)
		text = string(data)
	case strings.EqualFold(filepath.Ext(filePath), ".pdf"):
		text, err = extractPDFText(filePath)
	case strings.HasPrefix(mimeType, "image/"):
		text = fmt.Sprintf("[Image File: %s]", filepath.Base(filePath))
	default:
		text = fmt.Sprintf("[Generic File Content: %s]", filepath.Base(filePath))
	}
	if err != nil {
		text = fmt.Sprintf("Error extracting text: %v", err)
	}

	if len(text) > MaxExtractedChars {
		cut := MaxExtractedChars
		// Back up so the cap never splits a multi-byte rune.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

// extractPDFText concatenates the plain text of every page, one page per line
func extractPDFText(filePath string) (string, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
