package posts

import (
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ValidateContent checks post content: 1..MaxContentLength characters, emoji only.
// Length is counted in grapheme clusters, so a family emoji built from several
// code points counts as one character.
func ValidateContent(content string) error {
	if !utf8.ValidString(content) {
		return NewValidationError("content", "content must be valid UTF-8")
	}

	length := uniseg.GraphemeClusterCount(content)
	if length < 1 {
		return NewValidationError("content", "content is required")
	}
	if length > MaxContentLength {
		return NewValidationError("content",
			fmt.Sprintf("content must be at most %d characters (got %d)", MaxContentLength, length))
	}

	graphemes := uniseg.NewGraphemes(content)
	for graphemes.Next() {
		if !isEmojiGrapheme(graphemes.Runes()) {
			return NewValidationError("content", "Only emojis are allowed")
		}
	}

	return nil
}
