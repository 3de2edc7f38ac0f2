package extract

import (
	"strings"
	"unicode/utf8"
)

// Plain returns content as a string with invalid UTF-8 sequences replaced by
// the replacement character.
func Plain(content []byte) string {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "�")
	}
	return string(content)
}
