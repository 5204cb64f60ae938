package dictionary

import "github.com/heartmarshall/cnlearn/internal/domain"

// Combine builds a character record from a word row and the character row
// sharing its text. Text, pinyin, definitions and frequency come from the
// word; radical, decomposition and etymology from the character.
func Combine(word domain.Record, char domain.CharacterEntry) *domain.Record {
	r := word
	r.Kind = domain.KindCharacter
	r.PinyinNoSpaces = ""
	r.Components = nil
	r.Radical = char.Radical
	r.Decomposition = char.Decomposition
	r.Etymology = char.Etymology
	return &r
}
