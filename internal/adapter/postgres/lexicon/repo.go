// Package lexicon implements the lexical store on PostgreSQL: word and
// character lookups for the dictionary engine, lexicon export for the
// segmenter and bulk loading for the seeder.
package lexicon

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/cnlearn/internal/adapter/postgres"
	"github.com/heartmarshall/cnlearn/internal/adapter/sqlstore"
	"github.com/heartmarshall/cnlearn/internal/domain"
)

// insertChunkSize bounds the rows of one multi-row INSERT.
const insertChunkSize = 500

// Repo provides lexical store persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
	q  sqlstore.Queries
}

// New creates a new lexicon repository. db is usually a *pgxpool.Pool;
// a transaction in ctx (see postgres.TxManager) takes precedence.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db, q: sqlstore.NewQueries(sqlstore.PostgresDialect)}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindWord returns words whose simplified text equals text, most common
// first. pinyinClean, when non-empty, must match as well.
func (r *Repo) FindWord(ctx context.Context, text, pinyinClean string) ([]domain.Record, error) {
	var rows []sqlstore.WordRow
	if err := r.selectAll(ctx, &rows, r.q.FindWord(text, pinyinClean)); err != nil {
		return nil, postgres.MapError(err, "word", text)
	}
	return sqlstore.Records(rows), nil
}

// FindWordContaining returns words whose simplified text contains text,
// most common first.
func (r *Repo) FindWordContaining(ctx context.Context, text, pinyinClean string) ([]domain.Record, error) {
	var rows []sqlstore.WordRow
	if err := r.selectAll(ctx, &rows, r.q.FindWordContaining(text, pinyinClean)); err != nil {
		return nil, postgres.MapError(err, "word", text)
	}
	return sqlstore.Records(rows), nil
}

// FindWordAndCharacter returns (word, character) pairs for text. Empty
// pinyin filters are not applied.
func (r *Repo) FindWordAndCharacter(ctx context.Context, text, pinyinClean, pinyinAccent string) ([]domain.WordCharacterMatch, error) {
	var rows []sqlstore.WordCharacterRow
	if err := r.selectAll(ctx, &rows, r.q.FindWordAndCharacter(text, pinyinClean, pinyinAccent)); err != nil {
		return nil, postgres.MapError(err, "character", text)
	}

	matches, err := sqlstore.Matches(rows)
	if err != nil {
		return nil, fmt.Errorf("character %q: %w", text, err)
	}
	return matches, nil
}

// FindCharacter returns the character entry for text.
// Returns domain.ErrNotFound if the character is not stored.
func (r *Repo) FindCharacter(ctx context.Context, text string) (*domain.CharacterEntry, error) {
	query, args, err := r.q.FindCharacter(text).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row sqlstore.CharacterRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "character", text)
	}

	entry, err := row.Entry()
	if err != nil {
		return nil, fmt.Errorf("character %q: %w", text, err)
	}
	return &entry, nil
}

// Lexemes returns every distinct simplified word with its best rank.
func (r *Repo) Lexemes(ctx context.Context) ([]domain.Lexeme, error) {
	var rows []sqlstore.LexemeRow
	if err := r.selectAll(ctx, &rows, r.q.Lexemes()); err != nil {
		return nil, fmt.Errorf("select lexemes: %w", err)
	}
	return sqlstore.Lexemes(rows), nil
}

func (r *Repo) selectAll(ctx context.Context, dst any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), dst, query, args...)
}

// ---------------------------------------------------------------------------
// Batch insert methods (pgx.Batch API)
// ---------------------------------------------------------------------------

// BulkInsertWords inserts words using pgx.Batch, one multi-row INSERT per
// chunk. Existing entries are skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsertWords(ctx context.Context, words []domain.Record) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, chunk := range sqlstore.Chunks(words, insertChunkSize) {
		query, args, err := r.q.InsertWords(chunk).ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert: %w", err)
		}
		batch.Queue(query, args...)
	}

	return r.sendBatchExec(ctx, batch)
}

// BulkInsertCharacters inserts characters using pgx.Batch. Existing
// characters are skipped via ON CONFLICT DO NOTHING.
func (r *Repo) BulkInsertCharacters(ctx context.Context, chars []domain.CharacterEntry) (int, error) {
	if len(chars) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, chunk := range sqlstore.Chunks(chars, insertChunkSize) {
		ins, err := r.q.InsertCharacters(chunk)
		if err != nil {
			return 0, err
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert: %w", err)
		}
		batch.Queue(query, args...)
	}

	return r.sendBatchExec(ctx, batch)
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
