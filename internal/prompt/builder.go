// Package prompt composes the text block sent to the AI backend.
package prompt

import (
	"strings"

	"docquery/internal/config"
	"docquery/internal/models"
)

// truncationMarker is always appended after the content snippet, whether or
// not the content was actually truncated.
const truncationMarker = "..."

// Builder composes prompts from the current file and a question. Composition
// is deterministic: the same inputs always produce the same string.
type Builder struct {
	snippetLen int
}

// NewBuilder returns a Builder that includes up to snippetLen leading
// characters of file content. Non-positive values fall back to the default.
func NewBuilder(snippetLen int) *Builder {
	if snippetLen <= 0 {
		snippetLen = config.DefaultSnippetLength
	}
	return &Builder{snippetLen: snippetLen}
}

// Build returns the full prompt for the given file and question:
//
//	Context:
//	File: <name>
//	Content: <snippet>...
//
//	Query:
//	<question>
//
// No escaping is applied; binary content coerced to text is passed through
// as-is.
func (b *Builder) Build(file *models.IngestedFile, question string) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	sb.WriteString(b.fileBlock(file))
	sb.WriteString("\n\nQuery:\n")
	sb.WriteString(question)
	return sb.String()
}

// fileBlock renders the fixed-format context block for one file: a name line,
// then a content line holding the first snippetLen characters followed by the
// truncation marker.
func (b *Builder) fileBlock(file *models.IngestedFile) string {
	return "File: " + file.Name + "\nContent: " + b.snippet(file.Text())
}

// snippet returns the first snippetLen characters of s plus the marker.
// Truncation counts characters, not bytes.
func (b *Builder) snippet(s string) string {
	runes := []rune(s)
	if len(runes) > b.snippetLen {
		s = string(runes[:b.snippetLen])
	}
	return s + truncationMarker
}
