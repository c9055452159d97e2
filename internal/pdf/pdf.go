// Package pdf extracts plain text from PDF documents for chat context.
package pdf

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// ExtractFile reads the PDF at path and returns its concatenated page text.
// Extraction is best effort: pages that cannot be decoded contribute
// nothing, so the result may be empty for image-only documents.
func ExtractFile(path string) (string, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return extractText(r), nil
}

func extractText(r *pdflib.Reader) string {
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// Preview returns at most n runes of text, appending an ellipsis when the
// text was truncated.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
