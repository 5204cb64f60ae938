// Package hanzi classifies runes of Chinese text.
package hanzi

// Bounds of the common CJK Unified Ideographs range used by the dictionary data.
const (
	firstIdeograph = '一'
	lastIdeograph  = '龥'
)

// IsHan reports whether r is a common CJK unified ideograph (U+4E00-U+9FA5).
func IsHan(r rune) bool {
	return r >= firstIdeograph && r <= lastIdeograph
}

// ContainsHan reports whether text holds at least one ideograph.
func ContainsHan(text string) bool {
	for _, r := range text {
		if IsHan(r) {
			return true
		}
	}
	return false
}

// ExtractHanCharacters returns every ideograph of text as a one-character
// string, in order and including repeats. Other runes are dropped.
func ExtractHanCharacters(text string) []string {
	var out []string
	for _, r := range text {
		if IsHan(r) {
			out = append(out, string(r))
		}
	}
	return out
}
