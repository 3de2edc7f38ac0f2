package ingest

import (
	"path/filepath"
	"strings"

	"docquery/internal/models"
)

// Fixed extension lists per category, used when the declared media type does
// not carry a recognizable prefix.
var categoryExtensions = map[models.Category][]string{
	models.CategoryText:  {".pdf", ".txt", ".md", ".docx", ".pptx"},
	models.CategoryImage: {".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"},
	models.CategoryAudio: {".mp3", ".wav", ".ogg", ".m4a", ".flac"},
	models.CategoryVideo: {".mp4", ".mov", ".avi", ".mkv", ".webm"},
}

// categoryOrder keeps suffix matching deterministic.
var categoryOrder = []models.Category{
	models.CategoryText,
	models.CategoryImage,
	models.CategoryAudio,
	models.CategoryVideo,
}

// CategoryFor infers a file's category from its declared media type and
// filename. It is a pure function: the media type prefix wins; otherwise the
// filename suffix is matched against fixed per-category extension lists, and
// anything unmatched is CategoryOther. Content is never inspected.
func CategoryFor(mediaType, filename string) models.Category {
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return models.CategoryText
	case strings.HasPrefix(mediaType, "image/"):
		return models.CategoryImage
	case strings.HasPrefix(mediaType, "audio/"):
		return models.CategoryAudio
	case strings.HasPrefix(mediaType, "video/"):
		return models.CategoryVideo
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, cat := range categoryOrder {
		for _, e := range categoryExtensions[cat] {
			if ext == e {
				return cat
			}
		}
	}
	return models.CategoryOther
}
