// Package seeder loads the lexicon (CEDICT words, character data and word
// frequencies) into the lexical store.
package seeder

import (
	"context"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// LexiconWriter defines the batch repository contract consumed by the seeder pipeline.
// All methods use only domain types, no adapter imports.
// Implemented by lexicon.Repo (PostgreSQL) and sqlite.Store.
type LexiconWriter interface {
	// Batch inserts: ON CONFLICT DO NOTHING, returning inserted rows.
	BulkInsertWords(ctx context.Context, words []domain.Record) (int, error)
	BulkInsertCharacters(ctx context.Context, chars []domain.CharacterEntry) (int, error)
}

// TxManager runs fn in a transaction carried by ctx.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
