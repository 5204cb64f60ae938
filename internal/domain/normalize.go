package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares lookup text for segmentation and comparison:
//   - composes the text to Unicode NFC
//   - trims leading/trailing whitespace
//
// Inner whitespace is preserved; the segmenter emits it as separate tokens.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return norm.NFC.String(text)
}
