package ingest

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"docquery/internal/models"
)

func TestIngest_plainText(t *testing.T) {
	ing := NewIngestor()
	data := []byte("hello world")
	f, err := ing.Ingest("notes.txt", "text/plain", data)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if f.ID == "" {
		t.Error("ID should be set")
	}
	if f.Name != "notes.txt" {
		t.Errorf("Name: got %q", f.Name)
	}
	if f.MediaType != "text/plain" {
		t.Errorf("MediaType: got %q", f.MediaType)
	}
	if f.Size != 11 {
		t.Errorf("Size: got %d, want 11", f.Size)
	}
	if f.Category != models.CategoryText {
		t.Errorf("Category: got %q", f.Category)
	}
	if !bytes.Equal(f.Content, data) {
		t.Errorf("Content: got %q, want raw bytes", f.Content)
	}
	if f.IngestedAt.IsZero() {
		t.Error("IngestedAt should be set")
	}
}

func TestIngest_rawContentForRecognizedFormats(t *testing.T) {
	// Non-PDF formats keep raw bytes even when the category matcher
	// recognizes them, unless office extraction is enabled.
	ing := NewIngestor()
	data := []byte{0x50, 0x4b, 0x03, 0x04, 0x00}
	f, err := ing.Ingest("contract.docx", "application/octet-stream", data)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if f.Category != models.CategoryText {
		t.Errorf("Category: got %q", f.Category)
	}
	if !bytes.Equal(f.Content, data) {
		t.Error("docx content should stay raw without office extraction")
	}
}

func TestIngest_uniqueIDs(t *testing.T) {
	ing := NewIngestor()
	a, err := ing.Ingest("a.txt", "text/plain", []byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ing.Ingest("a.txt", "text/plain", []byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("successive ingestions must get distinct IDs")
	}
}

func TestIngest_pdfParseFailure(t *testing.T) {
	ing := NewIngestor()
	_, err := ing.Ingest("broken.pdf", "application/pdf", []byte("not a pdf"))
	if err == nil {
		t.Fatal("expected error for unparseable PDF")
	}
}

func TestIngest_pdfOnlyByDeclaredType(t *testing.T) {
	// A .pdf suffix with a non-PDF declared type is not parsed: the declared
	// media type alone selects PDF extraction.
	ing := NewIngestor()
	data := []byte("not a pdf")
	f, err := ing.Ingest("broken.pdf", "application/octet-stream", data)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if !bytes.Equal(f.Content, data) {
		t.Error("content should stay raw when declared type is not application/pdf")
	}
}

func TestIngest_officeExtraction(t *testing.T) {
	xf := excelize.NewFile()
	defer xf.Close()
	xf.SetCellValue("Sheet1", "A1", "Budget")
	var buf bytes.Buffer
	if _, err := xf.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	ing := NewIngestor(WithOfficeExtraction())
	f, err := ing.Ingest("budget.xlsx", "application/octet-stream", buf.Bytes())
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if string(f.Content) != "Budget" {
		t.Errorf("Content: got %q, want extracted text", f.Content)
	}
	if f.Size != int64(buf.Len()) {
		t.Errorf("Size should reflect raw bytes: got %d, want %d", f.Size, buf.Len())
	}
}

func TestIngest_officeExtractionFailureSurfaces(t *testing.T) {
	ing := NewIngestor(WithOfficeExtraction())
	if _, err := ing.Ingest("bad.docx", "application/octet-stream", []byte("not a zip")); err == nil {
		t.Fatal("expected error for unparseable docx with office extraction on")
	}
}
