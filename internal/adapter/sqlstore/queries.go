package sqlstore

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

const (
	tableWords      = "words"
	tableCharacters = "characters"
)

var wordColumns = []string{
	"id", "simplified", "traditional",
	"pinyin_num", "pinyin_accent", "pinyin_clean", "pinyin_no_spaces",
	"definitions", "also_written", "also_pronounced", "classifiers",
	"frequency",
}

var characterColumns = []string{
	"id", "character", "definition", "pinyin", "decomposition",
	"etymology", "radical", "matches", "frequency",
}

// Dialect captures what differs between SQL engines.
type Dialect struct {
	Placeholder sq.PlaceholderFormat
	// Position is the "index of substring" function: strpos or instr.
	Position string
}

var (
	PostgresDialect = Dialect{Placeholder: sq.Dollar, Position: "strpos"}
	SQLiteDialect   = Dialect{Placeholder: sq.Question, Position: "instr"}
)

// Queries builds the store statements for one dialect.
type Queries struct {
	b       sq.StatementBuilderType
	dialect Dialect
}

// NewQueries returns builders for dialect.
func NewQueries(dialect Dialect) Queries {
	return Queries{
		b:       sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
		dialect: dialect,
	}
}

// FindWord selects words whose simplified text equals text, most common first.
func (q Queries) FindWord(text, pinyinClean string) sq.SelectBuilder {
	where := sq.Eq{"simplified": text}
	if pinyinClean != "" {
		where["pinyin_clean"] = pinyinClean
	}
	return q.b.Select(wordColumns...).
		From(tableWords).
		Where(where).
		OrderBy("frequency ASC", "id ASC")
}

// FindWordContaining selects words whose simplified text contains text,
// most common first.
func (q Queries) FindWordContaining(text, pinyinClean string) sq.SelectBuilder {
	sel := q.b.Select(wordColumns...).
		From(tableWords).
		Where(sq.Expr(q.dialect.Position+"(simplified, ?) > 0", text))
	if pinyinClean != "" {
		sel = sel.Where(sq.Eq{"pinyin_clean": pinyinClean})
	}
	return sel.OrderBy("frequency ASC", "id ASC")
}

// FindWordAndCharacter joins words with the character sharing their
// simplified text.
func (q Queries) FindWordAndCharacter(text, pinyinClean, pinyinAccent string) sq.SelectBuilder {
	cols := make([]string, 0, len(wordColumns)+len(characterColumns))
	for _, c := range wordColumns {
		cols = append(cols, "w."+c+" AS "+c)
	}
	for _, c := range characterColumns {
		cols = append(cols, "c."+c+" AS c_"+c)
	}

	where := sq.Eq{"w.simplified": text}
	if pinyinClean != "" {
		where["w.pinyin_clean"] = pinyinClean
	}
	if pinyinAccent != "" {
		where["w.pinyin_accent"] = pinyinAccent
	}

	return q.b.Select(cols...).
		From(tableWords + " w").
		Join(tableCharacters + " c ON c.character = w.simplified").
		Where(where).
		OrderBy("w.frequency ASC", "w.id ASC")
}

// FindCharacter selects the character row for text.
func (q Queries) FindCharacter(text string) sq.SelectBuilder {
	return q.b.Select(characterColumns...).
		From(tableCharacters).
		Where(sq.Eq{"character": text}).
		Limit(1)
}

// Lexemes selects every distinct simplified word with its best rank.
func (q Queries) Lexemes() sq.SelectBuilder {
	return q.b.Select("simplified AS text", "MIN(frequency) AS frequency").
		From(tableWords).
		GroupBy("simplified").
		OrderBy("simplified")
}

// InsertWords builds one multi-row insert. Rows that collide with an
// existing (simplified, traditional, pinyin_num) are skipped.
func (q Queries) InsertWords(words []domain.Record) sq.InsertBuilder {
	ins := q.b.Insert(tableWords).Columns(wordColumns[1:]...)
	for _, w := range words {
		ins = ins.Values(
			w.Simplified, w.Traditional,
			w.PinyinNum, w.PinyinAccent, w.PinyinClean, pinyinNoSpaces(w),
			w.Definitions, w.AlsoWritten, w.AlsoPronounced, w.Classifiers,
			w.Frequency,
		)
	}
	return ins.Suffix("ON CONFLICT DO NOTHING")
}

// InsertCharacters builds one multi-row insert. Existing characters are
// skipped.
func (q Queries) InsertCharacters(chars []domain.CharacterEntry) (sq.InsertBuilder, error) {
	ins := q.b.Insert(tableCharacters).Columns(characterColumns[1:]...)
	for _, c := range chars {
		ety, err := domain.MarshalEtymology(c.Etymology)
		if err != nil {
			return sq.InsertBuilder{}, err
		}
		ins = ins.Values(
			c.Character, c.Definition, c.Pinyin, c.Decomposition,
			ety, c.Radical, c.Matches, c.Frequency,
		)
	}
	return ins.Suffix("ON CONFLICT DO NOTHING"), nil
}

func pinyinNoSpaces(w domain.Record) string {
	if w.PinyinNoSpaces != "" {
		return w.PinyinNoSpaces
	}
	return strings.ReplaceAll(w.PinyinClean, " ", "")
}

// Chunks splits items into consecutive slices of at most size elements.
func Chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
