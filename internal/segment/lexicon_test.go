package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicon_AddLexeme(t *testing.T) {
	t.Parallel()

	lex := NewLexicon()
	lex.AddLexeme("不", 10)
	lex.AddLexeme("不好", 20)
	lex.AddLexeme("不好意思", 30)

	tests := []struct {
		word       string
		wantRank   int
		wantExists bool
	}{
		{word: "不", wantRank: 10, wantExists: true},
		{word: "不好", wantRank: 20, wantExists: true},
		{word: "不好意", wantExists: false},
		{word: "不好意思", wantRank: 30, wantExists: true},
		{word: "好", wantExists: false},
		{word: "", wantExists: false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()
			rank, exists := lex.ranks[tt.word]
			assert.Equal(t, tt.wantExists, exists)
			assert.Equal(t, tt.wantRank, rank)
		})
	}
}

func TestLexicon_AddLexeme_KeepsSmallestRank(t *testing.T) {
	t.Parallel()

	lex := NewLexicon()
	lex.AddLexeme("好", 50)
	lex.AddLexeme("好", 7)
	lex.AddLexeme("好", 90)
	lex.AddLexeme("", 1)

	rank, exists := lex.ranks["好"]
	assert.True(t, exists)
	assert.Equal(t, 7, rank)
	assert.Equal(t, 1, lex.Len())
}

func TestLexicon_Weight(t *testing.T) {
	t.Parallel()

	lex := NewLexicon()
	lex.AddLexeme("的", 1)
	lex.AddLexeme("好", 5)
	lex.AddLexeme("罕", 100)

	assert.Equal(t, 101.0, lex.weight(1))
	assert.InDelta(t, 33.67, lex.weight(5), 0.01)
	assert.Equal(t, 2.0, lex.weight(100), "the rarest word still outweighs an unknown rune")
	assert.Equal(t, 202.0, lex.weight(-3))
}
