// Package extract provides text extraction from document formats.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts text from PDF bytes. Pages are visited in order from page 1;
// the text items of each page are joined with single spaces, and pages are
// joined with newlines. No page is skipped or duplicated (null pages
// contribute an empty line).
func PDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		var items []string
		for _, row := range rows {
			for _, word := range row.Content {
				items = append(items, word.S)
			}
		}
		pages = append(pages, strings.Join(items, " "))
	}
	return strings.Join(pages, "\n"), nil
}
