package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

func TestWordCharacterRow_Match(t *testing.T) {
	t.Parallel()

	decomp := "⿰女子"
	row := WordCharacterRow{
		WordRow: WordRow{
			ID: 7, Simplified: "好", Traditional: "好",
			PinyinNum: "hao3", PinyinAccent: "hǎo", PinyinClean: "hao",
			Definitions: "good", Frequency: 9,
		},
		CharID:            3,
		CharCharacter:     "好",
		CharDecomposition: &decomp,
		CharEtymology:     []byte(`{"type":"ideographic","hint":"woman and child"}`),
		CharRadical:       "女",
	}

	m, err := row.Match()
	require.NoError(t, err)

	assert.Equal(t, domain.KindWord, m.Word.Kind)
	assert.Equal(t, "hǎo", m.Word.PinyinAccent)
	assert.Equal(t, int64(3), m.Character.ID)
	assert.Equal(t, "女", m.Character.Radical)
	assert.Equal(t, &decomp, m.Character.Decomposition)
	assert.Equal(t, "ideographic", m.Character.Etymology["type"])
}

func TestMatches_BadEtymology(t *testing.T) {
	t.Parallel()

	_, err := Matches([]WordCharacterRow{{CharEtymology: []byte("{not json")}})
	require.Error(t, err)
}

func TestRecords_PreservesOrder(t *testing.T) {
	t.Parallel()

	got := Records([]WordRow{{Simplified: "好", Frequency: 1}, {Simplified: "好", Frequency: 5}})
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Frequency)
	assert.Equal(t, 5, got[1].Frequency)
}

func TestLexemes(t *testing.T) {
	t.Parallel()

	got := Lexemes([]LexemeRow{{Text: "我们", Frequency: 15}})
	assert.Equal(t, []domain.Lexeme{{Text: "我们", Frequency: 15}}, got)
}
