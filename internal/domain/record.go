package domain

import (
	"encoding/json"
	"fmt"
)

// Kind distinguishes the two lexical record variants.
type Kind uint8

const (
	KindCharacter Kind = iota + 1
	KindWord
)

func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindWord:
		return "word"
	default:
		return "unknown"
	}
}

// PinyinStyle selects one of the stored pinyin representations.
type PinyinStyle string

const (
	PinyinNumbered PinyinStyle = "num"
	PinyinAccent   PinyinStyle = "accent"
	PinyinClean    PinyinStyle = "clean"
)

// ParsePinyinStyle maps a flag value to a PinyinStyle. Empty means accent.
func ParsePinyinStyle(s string) (PinyinStyle, error) {
	switch st := PinyinStyle(s); st {
	case "":
		return PinyinAccent, nil
	case PinyinNumbered, PinyinAccent, PinyinClean:
		return st, nil
	}
	return "", fmt.Errorf("pinyin style %q: must be %q, %q or %q: %w",
		s, PinyinAccent, PinyinNumbered, PinyinClean, ErrInvalidArgument)
}

// Etymology is a free-form structured note about a character's origin,
// e.g. {"type": "ideographic", "hint": "A woman 女 with a son 子"}.
type Etymology map[string]string

// Record is a resolved lexical entry. Fields shared by characters and words
// are always set; Radical, Decomposition and Etymology are only meaningful
// for KindCharacter, PinyinNoSpaces and Components only for KindWord.
type Record struct {
	ID             int64
	Kind           Kind
	Simplified     string
	Traditional    string
	PinyinNum      string
	PinyinAccent   string
	PinyinClean    string
	Definitions    string
	AlsoPronounced string
	AlsoWritten    string
	Classifiers    string
	Frequency      int

	// Character variant.
	Radical       string
	Decomposition *string // nil when the decomposition is unknown
	Etymology     Etymology

	// Word variant.
	PinyinNoSpaces string
	Components     []*Record
}

// IsCharacter reports whether r is a character record.
func (r *Record) IsCharacter() bool { return r.Kind == KindCharacter }

// IsWord reports whether r is a word record.
func (r *Record) IsWord() bool { return r.Kind == KindWord }

// Pinyin returns the pronunciation in the requested style. Unknown styles
// fall back to the accented form.
func (r *Record) Pinyin(style PinyinStyle) string {
	switch style {
	case PinyinNumbered:
		return r.PinyinNum
	case PinyinClean:
		return r.PinyinClean
	default:
		return r.PinyinAccent
	}
}

// CharacterEntry is a row of the character table: structural data about a
// single ideograph.
type CharacterEntry struct {
	ID            int64
	Character     string
	Definition    *string
	Pinyin        string // "; "-separated list of readings
	Decomposition *string
	Etymology     Etymology
	Radical       string
	Matches       string
	Frequency     int
}

// WordCharacterMatch pairs a word row with the character row that shares its
// simplified text.
type WordCharacterMatch struct {
	Word      Record
	Character CharacterEntry
}

// Lexeme is a (text, frequency rank) pair used to build segmentation lexicons.
type Lexeme struct {
	Text      string
	Frequency int
}

// ParseEtymology decodes a stored etymology document. Empty input yields nil.
func ParseEtymology(raw []byte) (Etymology, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var ety Etymology
	if err := json.Unmarshal(raw, &ety); err != nil {
		return nil, fmt.Errorf("parse etymology: %w", err)
	}
	return ety, nil
}

// MarshalEtymology encodes an etymology for storage. A nil etymology yields nil.
func MarshalEtymology(ety Etymology) ([]byte, error) {
	if ety == nil {
		return nil, nil
	}
	b, err := json.Marshal(ety)
	if err != nil {
		return nil, fmt.Errorf("marshal etymology: %w", err)
	}
	return b, nil
}
