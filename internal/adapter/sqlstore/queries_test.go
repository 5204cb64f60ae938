package sqlstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

func TestQueries_FindWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		dialect     Dialect
		pinyinClean string
		wantWhere   string
		wantArgs    []any
	}{
		{
			name:      "postgres exact",
			dialect:   PostgresDialect,
			wantWhere: "WHERE simplified = $1 ORDER BY frequency ASC, id ASC",
			wantArgs:  []any{"你好"},
		},
		{
			name:        "postgres with pinyin",
			dialect:     PostgresDialect,
			pinyinClean: "ni hao",
			wantWhere:   "WHERE pinyin_clean = $1 AND simplified = $2",
			wantArgs:    []any{"ni hao", "你好"},
		},
		{
			name:      "sqlite exact",
			dialect:   SQLiteDialect,
			wantWhere: "WHERE simplified = ?",
			wantArgs:  []any{"你好"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sql, args, err := NewQueries(tt.dialect).FindWord("你好", tt.pinyinClean).ToSql()
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(sql, "SELECT id, simplified, traditional"), sql)
			assert.Contains(t, sql, "FROM words")
			assert.Contains(t, sql, tt.wantWhere)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestQueries_FindWordContaining(t *testing.T) {
	t.Parallel()

	sql, args, err := NewQueries(PostgresDialect).FindWordContaining("好", "").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE strpos(simplified, $1) > 0")
	assert.Equal(t, []any{"好"}, args)

	sql, args, err = NewQueries(SQLiteDialect).FindWordContaining("好", "hao").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE instr(simplified, ?) > 0 AND pinyin_clean = ?")
	assert.Equal(t, []any{"好", "hao"}, args)
}

func TestQueries_FindWordAndCharacter(t *testing.T) {
	t.Parallel()

	sql, args, err := NewQueries(PostgresDialect).FindWordAndCharacter("好", "", "hǎo").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "w.simplified AS simplified")
	assert.Contains(t, sql, "c.radical AS c_radical")
	assert.Contains(t, sql, "FROM words w JOIN characters c ON c.character = w.simplified")
	assert.Contains(t, sql, "WHERE w.pinyin_accent = $1 AND w.simplified = $2")
	assert.Contains(t, sql, "ORDER BY w.frequency ASC, w.id ASC")
	assert.Equal(t, []any{"hǎo", "好"}, args)

	_, args, err = NewQueries(PostgresDialect).FindWordAndCharacter("好", "", "").ToSql()
	require.NoError(t, err)
	assert.Equal(t, []any{"好"}, args)
}

func TestQueries_FindCharacter(t *testing.T) {
	t.Parallel()

	sql, args, err := NewQueries(SQLiteDialect).FindCharacter("好").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM characters WHERE character = ? LIMIT 1")
	assert.Equal(t, []any{"好"}, args)
}

func TestQueries_Lexemes(t *testing.T) {
	t.Parallel()

	sql, _, err := NewQueries(PostgresDialect).Lexemes().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT simplified AS text, MIN(frequency) AS frequency FROM words GROUP BY simplified ORDER BY simplified", sql)
}

func TestQueries_InsertWords(t *testing.T) {
	t.Parallel()

	words := []domain.Record{
		{Simplified: "你好", Traditional: "你好", PinyinNum: "ni3 hao3", PinyinAccent: "nǐ hǎo", PinyinClean: "ni hao", Frequency: 120},
		{Simplified: "好", Traditional: "好", PinyinNum: "hao3", PinyinAccent: "hǎo", PinyinClean: "hao", PinyinNoSpaces: "hao", Frequency: 9},
	}

	sql, args, err := NewQueries(PostgresDialect).InsertWords(words).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sql, "INSERT INTO words (simplified,traditional,"), sql)
	assert.True(t, strings.HasSuffix(sql, "ON CONFLICT DO NOTHING"), sql)
	require.Len(t, args, 22)
	assert.Equal(t, "nihao", args[5], "no-spaces pinyin derived from clean form")
	assert.Equal(t, 9, args[21])
}

func TestQueries_InsertCharacters(t *testing.T) {
	t.Parallel()

	def := "good"
	chars := []domain.CharacterEntry{
		{Character: "好", Definition: &def, Pinyin: "hǎo; hào", Etymology: domain.Etymology{"type": "ideographic"}, Radical: "女", Frequency: 9},
		{Character: "龟", Pinyin: "guī", Frequency: 2000},
	}

	ins, err := NewQueries(SQLiteDialect).InsertCharacters(chars)
	require.NoError(t, err)

	query, vals, err := ins.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO characters (character,definition,pinyin,decomposition,etymology,radical,matches,frequency)")
	require.Len(t, vals, 16)
	assert.JSONEq(t, `{"type":"ideographic"}`, string(vals[4].([]byte)))
	assert.Nil(t, vals[12])
}

func TestChunks(t *testing.T) {
	t.Parallel()

	got := Chunks([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, got)

	assert.Nil(t, Chunks([]int{}, 3))
	assert.Equal(t, [][]int{{1, 2}}, Chunks([]int{1, 2}, 0))
}
