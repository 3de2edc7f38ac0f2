package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/lu4p/cat"
	"github.com/xuri/excelize/v2"
)

// docxMainContentType identifies the main document part of a DOCX package in
// [Content_Types].xml.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

var (
	// wtTag matches <w:t>text</w:t> including variants with attributes
	// (e.g. xml:space="preserve").
	wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	// atTag matches <a:t>text</a:t> used in PPTX slide runs.
	atTag = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)
	// odTextTags match OpenDocument paragraph, span, and heading elements.
	odTextTags = []*regexp.Regexp{
		regexp.MustCompile(`<text:p[^>]*>([^<]*)</text:p>`),
		regexp.MustCompile(`<text:span[^>]*>([^<]*)</text:span>`),
		regexp.MustCompile(`<text:h[^>]*>([^<]*)</text:h>`),
	}
	// docxOverride extracts the main document PartName from [Content_Types].xml,
	// in either attribute order.
	docxOverride = []*regexp.Regexp{
		regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`),
		regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`),
	}
)

// Office extracts text from an office document based on its extension
// (leading dot included, lowercase). Supported: .docx, .xlsx, .pptx, .odt,
// .ods, .odp, .rtf. Unsupported extensions return an error.
func Office(content []byte, ext string) (string, error) {
	switch ext {
	case ".docx":
		return officeDocx(content)
	case ".xlsx":
		return officeXlsx(content)
	case ".pptx":
		return officePptx(content)
	case ".ods", ".odp":
		return officeOpenDocument(content, ext)
	case ".odt", ".rtf":
		// lu4p/cat handles these formats directly from bytes.
		text, err := cat.FromBytes(content)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", strings.TrimPrefix(ext, "."), err)
		}
		return strings.TrimSpace(text), nil
	default:
		return "", fmt.Errorf("unsupported office format %q", ext)
	}
}

// zipEntry reads the named file from zip bytes, or returns nil when absent.
func zipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, nil
}

// joinMatches appends the first submatch of every match, space-separated and
// trimmed, to b.
func joinMatches(b *strings.Builder, matches [][]string) {
	for _, m := range matches {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(m[1]))
	}
}

// officeDocx extracts text from DOCX bytes: a ZIP whose main part (usually
// word/document.xml, resolvable via [Content_Types].xml) holds OOXML with
// text in <w:t> nodes.
func officeDocx(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	docPath := "word/document.xml"
	if ct, err := zipEntry(zr, "[Content_Types].xml"); err == nil && ct != nil {
		for _, re := range docxOverride {
			if m := re.FindStringSubmatch(string(ct)); len(m) > 1 {
				docPath = strings.TrimPrefix(m[1], "/")
				break
			}
		}
	}
	docXML, err := zipEntry(zr, docPath)
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	if docXML == nil {
		return "", fmt.Errorf("extract DOCX: %s not found", docPath)
	}
	var b strings.Builder
	joinMatches(&b, wtTag.FindAllStringSubmatch(string(docXML), -1))
	return strings.TrimSpace(b.String()), nil
}

// officePptx extracts text from PPTX bytes by collecting <a:t> nodes from
// every ppt/slides/slideN.xml entry.
func officePptx(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract PPTX: not a zip: %w", err)
	}
	var b strings.Builder
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "ppt/slides/slide") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		slide, err := zipEntry(zr, f.Name)
		if err != nil {
			return "", fmt.Errorf("extract PPTX: %w", err)
		}
		joinMatches(&b, atTag.FindAllStringSubmatch(string(slide), -1))
	}
	return strings.TrimSpace(b.String()), nil
}

// officeOpenDocument extracts text from ODS/ODP bytes: a ZIP whose content.xml
// holds text in text:p, text:span, and text:h elements.
func officeOpenDocument(content []byte, ext string) (string, error) {
	format := strings.ToUpper(strings.TrimPrefix(ext, "."))
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract %s: not a zip: %w", format, err)
	}
	contentXML, err := zipEntry(zr, "content.xml")
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", format, err)
	}
	if contentXML == nil {
		return "", fmt.Errorf("extract %s: content.xml not found", format)
	}
	var b strings.Builder
	for _, re := range odTextTags {
		joinMatches(&b, re.FindAllStringSubmatch(string(contentXML), -1))
	}
	return strings.TrimSpace(b.String()), nil
}

// officeXlsx extracts text from XLSX bytes: cells joined with tabs within a
// row, rows with newlines, sheets in order.
func officeXlsx(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String()), nil
}
