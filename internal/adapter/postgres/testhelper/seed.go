package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// UniqueHan returns a string of n ideographs that is unlikely to collide with
// rows inserted by other tests sharing the container. Ideographs are drawn
// from the CJK Extension A block, outside the range used by fixtures.
func UniqueHan(n int) string {
	id := uuid.New()
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = 0x3400 + rune(id[i%len(id)])*16 + rune(id[(i+7)%len(id)]%16)
	}
	return string(runes)
}

// SeedWord inserts a word row and returns it with its ID.
func SeedWord(t *testing.T, pool *pgxpool.Pool, w domain.Record) domain.Record {
	t.Helper()

	err := pool.QueryRow(context.Background(),
		`INSERT INTO words (simplified, traditional, pinyin_num, pinyin_accent, pinyin_clean,
		                    pinyin_no_spaces, definitions, frequency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		w.Simplified, w.Traditional, w.PinyinNum, w.PinyinAccent, w.PinyinClean,
		w.PinyinNoSpaces, w.Definitions, w.Frequency,
	).Scan(&w.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert: %v", err)
	}
	w.Kind = domain.KindWord
	return w
}

// SeedCharacter inserts a character row and returns it with its ID.
func SeedCharacter(t *testing.T, pool *pgxpool.Pool, c domain.CharacterEntry) domain.CharacterEntry {
	t.Helper()

	ety, err := domain.MarshalEtymology(c.Etymology)
	if err != nil {
		t.Fatalf("testhelper: SeedCharacter etymology: %v", err)
	}

	err = pool.QueryRow(context.Background(),
		`INSERT INTO characters (character, definition, pinyin, decomposition, etymology, radical, matches, frequency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		c.Character, c.Definition, c.Pinyin, c.Decomposition, ety, c.Radical, c.Matches, c.Frequency,
	).Scan(&c.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedCharacter insert: %v", err)
	}
	return c
}
