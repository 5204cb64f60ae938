// Package pinyin converts numbered pinyin syllables (e.g. "hao3", "lu:4")
// into tone-marked ("hǎo", "lǜ") or clean ("hao", "lu:") forms.
// All functions are pure and safe for concurrent use.
package pinyin

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// Mode selects the target representation of a conversion.
type Mode string

const (
	ModeAccent Mode = "accent"
	ModeClean  Mode = "clean"
)

// vowels lists the markable units in table column order. The digraph "u:"
// stands for ü.
var vowels = []string{"a", "e", "i", "o", "u", "u:", "A", "E", "I", "O", "U", "U:"}

// toneMarks[t-1][i] is vowels[i] carrying tone t.
var toneMarks = [4][12]string{
	{"ā", "ē", "ī", "ō", "ū", "ǖ", "Ā", "Ē", "Ī", "Ō", "Ū", "Ǖ"},
	{"á", "é", "í", "ó", "ú", "ǘ", "Á", "É", "Í", "Ó", "Ú", "Ǘ"},
	{"ǎ", "ě", "ǐ", "ǒ", "ǔ", "ǚ", "Ǎ", "Ě", "Ǐ", "Ǒ", "Ǔ", "Ǚ"},
	{"à", "è", "ì", "ò", "ù", "ǜ", "À", "È", "Ì", "Ò", "Ù", "Ǜ"},
}

var bracketed = regexp.MustCompile(`\[[\w: ]+\]`)

// ParseMode maps "accent" or "clean" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAccent, ModeClean:
		return Mode(s), nil
	}
	return "", fmt.Errorf("mode %q: must be %q or %q: %w", s, ModeAccent, ModeClean, domain.ErrInvalidArgument)
}

// Convert converts a single syllable (string) or a sequence of syllables
// ([]string) to the requested mode. Sequences are converted element-wise and
// keep their order. Any other item type, or an unknown mode, yields
// domain.ErrInvalidArgument.
func Convert(item any, mode Mode) (any, error) {
	convert, err := converterFor(mode)
	if err != nil {
		return nil, err
	}

	switch v := item.(type) {
	case string:
		return convert(v), nil
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = convert(s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("item of type %T: must be a syllable or a list of syllables: %w", item, domain.ErrInvalidArgument)
	}
}

// ConvertText converts a space-separated numbered pinyin string
// ("bu4 hao3 yi4 si5") syllable by syllable. The syllable count is preserved.
func ConvertText(numbered string, mode Mode) (string, error) {
	convert, err := converterFor(mode)
	if err != nil {
		return "", err
	}

	syllables := strings.Fields(numbered)
	for i, s := range syllables {
		syllables[i] = convert(s)
	}
	return strings.Join(syllables, " "), nil
}

// ConvertBracketed rewrites inline numbered pinyin such as "[hao3]" or
// "[Zhong1 guo2]" into its accented, parenthesized form "(hǎo)".
func ConvertBracketed(text string) string {
	return bracketed.ReplaceAllStringFunc(text, func(m string) string {
		syllables := strings.Fields(m[1 : len(m)-1])
		for i, s := range syllables {
			syllables[i] = ConvertAccent(s)
		}
		return "(" + strings.Join(syllables, " ") + ")"
	})
}

func converterFor(mode Mode) (func(string) string, error) {
	switch mode {
	case ModeAccent:
		return ConvertAccent, nil
	case ModeClean:
		return ConvertClean, nil
	}
	return nil, fmt.Errorf("mode %q: must be %q or %q: %w", mode, ModeAccent, ModeClean, domain.ErrInvalidArgument)
}

// ConvertAccent converts one numbered syllable to its tone-marked form.
// Syllables without a trailing tone digit 1-5 are returned unchanged.
//
// The marked vowel is, in order of precedence: "a", "e", the "o" of "ou",
// otherwise the last vowel of the syllable. Tone 5 (neutral) carries no mark
// but "u:" is still rendered as "ü".
func ConvertAccent(syllable string) string {
	tone, ok := toneOf(syllable)
	if !ok {
		return syllable
	}
	base := syllable[:len(syllable)-1]

	if tone == 5 {
		base = strings.ReplaceAll(base, "u:", "ü")
		return strings.ReplaceAll(base, "U:", "Ü")
	}

	pos, found := markPosition(base)
	if !found {
		return base
	}

	unit := base[pos : pos+1]
	if pos+1 < len(base) && base[pos+1] == ':' {
		unit = base[pos : pos+2]
	}

	col := vowelColumn(unit)
	if col < 0 {
		return base
	}
	return base[:pos] + toneMarks[tone-1][col] + base[pos+len(unit):]
}

// ConvertClean strips the trailing tone digit of a numbered syllable.
// The "u:" digraph is kept as is. Syllables without a trailing tone digit
// 1-5 are returned unchanged.
func ConvertClean(syllable string) string {
	if _, ok := toneOf(syllable); !ok {
		return syllable
	}
	return syllable[:len(syllable)-1]
}

// LastVowel returns the byte offset of the last vowel in text, scanning from
// the end. For the digraphs "u:" and "U:" the offset of the letter is
// returned. The second result is false when text holds no vowel.
func LastVowel(text string) (int, bool) {
	for i := len(text) - 1; i >= 0; i-- {
		if isVowel(text[i]) {
			return i, true
		}
	}
	return 0, false
}

func markPosition(base string) (int, bool) {
	if i := strings.Index(base, "a"); i >= 0 {
		return i, true
	}
	if i := strings.Index(base, "e"); i >= 0 {
		return i, true
	}
	if i := strings.Index(base, "ou"); i >= 0 {
		return i, true
	}
	return LastVowel(base)
}

func toneOf(syllable string) (int, bool) {
	if syllable == "" {
		return 0, false
	}
	d := syllable[len(syllable)-1]
	if d < '1' || d > '5' {
		return 0, false
	}
	return int(d - '0'), true
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func vowelColumn(unit string) int {
	for i, v := range vowels {
		if v == unit {
			return i
		}
	}
	return -1
}
