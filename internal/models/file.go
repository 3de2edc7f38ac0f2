// Package models defines core data structures for ingested files and queries.
package models

import "time"

// Category is a coarse classification of an ingested file, inferred from the
// declared media type or the filename suffix. It is a heuristic: content is
// never sniffed or re-validated.
type Category string

const (
	CategoryText  Category = "text"
	CategoryImage Category = "image"
	CategoryAudio Category = "audio"
	CategoryVideo Category = "video"
	CategoryOther Category = "other"
)

// IngestedFile is the single transient entity of the system: one user-supplied
// file read fully into memory. At most one is held at a time; uploading a
// replacement discards the previous one. Content is the extracted text for PDF
// (and, when office extraction is enabled, office formats), otherwise the raw
// bytes as read. Never persisted.
type IngestedFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MediaType  string    `json:"media_type"`
	Size       int64     `json:"size"`
	Category   Category  `json:"category"`
	Content    []byte    `json:"-"`
	IngestedAt time.Time `json:"ingested_at"`
}

// Text returns the file content coerced to a string. For non-extracted binary
// formats this is not guaranteed to be meaningful text.
func (f *IngestedFile) Text() string {
	return string(f.Content)
}
