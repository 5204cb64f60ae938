// Package sqlstore holds the SQL shared by the relational lexical store
// adapters: scan targets for the words and characters tables and squirrel
// builders for every store query.
package sqlstore

import (
	"github.com/heartmarshall/cnlearn/internal/domain"
)

// WordRow is a row of the words table.
type WordRow struct {
	ID             int64  `db:"id"`
	Simplified     string `db:"simplified"`
	Traditional    string `db:"traditional"`
	PinyinNum      string `db:"pinyin_num"`
	PinyinAccent   string `db:"pinyin_accent"`
	PinyinClean    string `db:"pinyin_clean"`
	PinyinNoSpaces string `db:"pinyin_no_spaces"`
	Definitions    string `db:"definitions"`
	AlsoWritten    string `db:"also_written"`
	AlsoPronounced string `db:"also_pronounced"`
	Classifiers    string `db:"classifiers"`
	Frequency      int    `db:"frequency"`
}

// Record converts the row to a word record.
func (r WordRow) Record() domain.Record {
	return domain.Record{
		ID:             r.ID,
		Kind:           domain.KindWord,
		Simplified:     r.Simplified,
		Traditional:    r.Traditional,
		PinyinNum:      r.PinyinNum,
		PinyinAccent:   r.PinyinAccent,
		PinyinClean:    r.PinyinClean,
		PinyinNoSpaces: r.PinyinNoSpaces,
		Definitions:    r.Definitions,
		AlsoWritten:    r.AlsoWritten,
		AlsoPronounced: r.AlsoPronounced,
		Classifiers:    r.Classifiers,
		Frequency:      r.Frequency,
	}
}

// CharacterRow is a row of the characters table.
type CharacterRow struct {
	ID            int64   `db:"id"`
	Character     string  `db:"character"`
	Definition    *string `db:"definition"`
	Pinyin        string  `db:"pinyin"`
	Decomposition *string `db:"decomposition"`
	Etymology     []byte  `db:"etymology"`
	Radical       string  `db:"radical"`
	Matches       string  `db:"matches"`
	Frequency     int     `db:"frequency"`
}

// Entry converts the row to a character entry.
func (r CharacterRow) Entry() (domain.CharacterEntry, error) {
	ety, err := domain.ParseEtymology(r.Etymology)
	if err != nil {
		return domain.CharacterEntry{}, err
	}
	return domain.CharacterEntry{
		ID:            r.ID,
		Character:     r.Character,
		Definition:    r.Definition,
		Pinyin:        r.Pinyin,
		Decomposition: r.Decomposition,
		Etymology:     ety,
		Radical:       r.Radical,
		Matches:       r.Matches,
		Frequency:     r.Frequency,
	}, nil
}

// WordCharacterRow is a row of the words ⋈ characters join. Character
// columns carry the c_ prefix.
type WordCharacterRow struct {
	WordRow
	CharID            int64   `db:"c_id"`
	CharCharacter     string  `db:"c_character"`
	CharDefinition    *string `db:"c_definition"`
	CharPinyin        string  `db:"c_pinyin"`
	CharDecomposition *string `db:"c_decomposition"`
	CharEtymology     []byte  `db:"c_etymology"`
	CharRadical       string  `db:"c_radical"`
	CharMatches       string  `db:"c_matches"`
	CharFrequency     int     `db:"c_frequency"`
}

// Match converts the row to a word/character pair.
func (r WordCharacterRow) Match() (domain.WordCharacterMatch, error) {
	ch, err := CharacterRow{
		ID:            r.CharID,
		Character:     r.CharCharacter,
		Definition:    r.CharDefinition,
		Pinyin:        r.CharPinyin,
		Decomposition: r.CharDecomposition,
		Etymology:     r.CharEtymology,
		Radical:       r.CharRadical,
		Matches:       r.CharMatches,
		Frequency:     r.CharFrequency,
	}.Entry()
	if err != nil {
		return domain.WordCharacterMatch{}, err
	}
	return domain.WordCharacterMatch{Word: r.WordRow.Record(), Character: ch}, nil
}

// LexemeRow is a (text, best rank) aggregate over the words table.
type LexemeRow struct {
	Text      string `db:"text"`
	Frequency int    `db:"frequency"`
}

// Records converts word rows preserving order.
func Records(rows []WordRow) []domain.Record {
	out := make([]domain.Record, len(rows))
	for i, r := range rows {
		out[i] = r.Record()
	}
	return out
}

// Matches converts join rows preserving order.
func Matches(rows []WordCharacterRow) ([]domain.WordCharacterMatch, error) {
	out := make([]domain.WordCharacterMatch, 0, len(rows))
	for _, r := range rows {
		m, err := r.Match()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Lexemes converts lexeme rows preserving order.
func Lexemes(rows []LexemeRow) []domain.Lexeme {
	out := make([]domain.Lexeme, len(rows))
	for i, r := range rows {
		out[i] = domain.Lexeme{Text: r.Text, Frequency: r.Frequency}
	}
	return out
}
