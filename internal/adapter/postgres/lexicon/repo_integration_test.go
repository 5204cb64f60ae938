//go:build integration

package lexicon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/cnlearn/internal/adapter/postgres"
	"github.com/heartmarshall/cnlearn/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/cnlearn/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/cnlearn/internal/domain"
)

func TestRepo_Integration_Lookup(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	ctx := context.Background()

	ch := testhelper.UniqueHan(1)
	decomp := "⿰女子"
	testhelper.SeedCharacter(t, pool, domain.CharacterEntry{
		Character: ch, Pinyin: "hǎo; hào", Decomposition: &decomp,
		Etymology: domain.Etymology{"type": "ideographic"}, Radical: "女", Frequency: 9,
	})
	testhelper.SeedWord(t, pool, domain.Record{Simplified: ch, Traditional: ch, PinyinNum: "hao4", PinyinAccent: "hào", PinyinClean: "hao", Frequency: 4521})
	testhelper.SeedWord(t, pool, domain.Record{Simplified: ch, Traditional: ch, PinyinNum: "hao3", PinyinAccent: "hǎo", PinyinClean: "hao", Frequency: 9})

	words, err := repo.FindWord(ctx, ch, "")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "hǎo", words[0].PinyinAccent)

	pairs, err := repo.FindWordAndCharacter(ctx, ch, "", "hào")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "女", pairs[0].Character.Radical)
	assert.Equal(t, "ideographic", pairs[0].Character.Etymology["type"])

	entry, err := repo.FindCharacter(ctx, ch)
	require.NoError(t, err)
	assert.Equal(t, "hǎo; hào", entry.Pinyin)

	containing, err := repo.FindWordContaining(ctx, ch, "hao")
	require.NoError(t, err)
	assert.Len(t, containing, 2)

	_, err = repo.FindCharacter(ctx, testhelper.UniqueHan(3))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Integration_BulkInsertInTx(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	txm := postgres.NewTxManager(pool)
	ctx := context.Background()

	text := testhelper.UniqueHan(2)
	words := []domain.Record{{Simplified: text, Traditional: text, PinyinNum: "yi4 si5", PinyinAccent: "yì si", PinyinClean: "yi si", Frequency: 150}}

	err := txm.RunInTx(ctx, func(ctx context.Context) error {
		n, err := repo.BulkInsertWords(ctx, words)
		if err != nil {
			return err
		}
		assert.Equal(t, 1, n)
		return nil
	})
	require.NoError(t, err)

	n, err := repo.BulkInsertWords(ctx, words)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "re-insert is skipped")

	got, err := repo.FindWord(ctx, text, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "yisi", got[0].PinyinNoSpaces)

	lexemes, err := repo.Lexemes(ctx)
	require.NoError(t, err)
	assert.Contains(t, lexemes, domain.Lexeme{Text: text, Frequency: 150})
}

func TestRepo_Integration_RollbackDiscardsInsert(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	txm := postgres.NewTxManager(pool)
	ctx := context.Background()
	sentinel := errors.New("abort")

	ch := testhelper.UniqueHan(1)
	err := txm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := repo.BulkInsertCharacters(ctx, []domain.CharacterEntry{{Character: ch, Frequency: 1}}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = repo.FindCharacter(ctx, ch)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
