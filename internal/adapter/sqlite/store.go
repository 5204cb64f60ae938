// Package sqlite implements the lexical store on an embedded SQLite file
// (modernc.org/sqlite, no cgo). It serves the same queries as the PostgreSQL
// adapter and is the default backend for local use.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/heartmarshall/cnlearn/internal/adapter/sqlstore"
	"github.com/heartmarshall/cnlearn/internal/domain"
	"github.com/heartmarshall/cnlearn/migrations"
)

// insertChunkSize bounds the rows of one multi-row INSERT.
const insertChunkSize = 500

// Store provides lexical store persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	q    sqlstore.Queries
}

// Open opens or creates the database file at path. The parent directory is
// created when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	return &Store{db: db, path: path, q: sqlstore.NewQueries(sqlstore.SQLiteDialect)}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate applies the embedded schema migrations.
func (s *Store) Migrate(ctx context.Context, logger *slog.Logger) (int64, error) {
	return migrations.Up(ctx, s.db, migrations.SQLite, logger)
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type txCtxKey struct{}

func (s *Store) conn(ctx context.Context) conn {
	if tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

// RunInTx executes fn within a transaction carried by the context. A call
// made inside fn joins the outer transaction. On error from fn the
// transaction is rolled back, on panic it is rolled back and the panic is
// re-raised.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin lexicon transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("roll back lexicon transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lexicon transaction: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindWord returns words whose simplified text equals text, most common
// first. pinyinClean, when non-empty, must match as well.
func (s *Store) FindWord(ctx context.Context, text, pinyinClean string) ([]domain.Record, error) {
	var rows []sqlstore.WordRow
	if err := s.selectAll(ctx, &rows, s.q.FindWord(text, pinyinClean)); err != nil {
		return nil, mapError(err, "word", text)
	}
	return sqlstore.Records(rows), nil
}

// FindWordContaining returns words whose simplified text contains text,
// most common first.
func (s *Store) FindWordContaining(ctx context.Context, text, pinyinClean string) ([]domain.Record, error) {
	var rows []sqlstore.WordRow
	if err := s.selectAll(ctx, &rows, s.q.FindWordContaining(text, pinyinClean)); err != nil {
		return nil, mapError(err, "word", text)
	}
	return sqlstore.Records(rows), nil
}

// FindWordAndCharacter returns (word, character) pairs for text. Empty
// pinyin filters are not applied.
func (s *Store) FindWordAndCharacter(ctx context.Context, text, pinyinClean, pinyinAccent string) ([]domain.WordCharacterMatch, error) {
	var rows []sqlstore.WordCharacterRow
	if err := s.selectAll(ctx, &rows, s.q.FindWordAndCharacter(text, pinyinClean, pinyinAccent)); err != nil {
		return nil, mapError(err, "character", text)
	}

	matches, err := sqlstore.Matches(rows)
	if err != nil {
		return nil, fmt.Errorf("character %q: %w", text, err)
	}
	return matches, nil
}

// FindCharacter returns the character entry for text.
// Returns domain.ErrNotFound if the character is not stored.
func (s *Store) FindCharacter(ctx context.Context, text string) (*domain.CharacterEntry, error) {
	query, args, err := s.q.FindCharacter(text).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row sqlstore.CharacterRow
	if err := sqlscan.Get(ctx, s.conn(ctx), &row, query, args...); err != nil {
		return nil, mapError(err, "character", text)
	}

	entry, err := row.Entry()
	if err != nil {
		return nil, fmt.Errorf("character %q: %w", text, err)
	}
	return &entry, nil
}

// Lexemes returns every distinct simplified word with its best rank.
func (s *Store) Lexemes(ctx context.Context) ([]domain.Lexeme, error) {
	var rows []sqlstore.LexemeRow
	if err := s.selectAll(ctx, &rows, s.q.Lexemes()); err != nil {
		return nil, fmt.Errorf("select lexemes: %w", err)
	}
	return sqlstore.Lexemes(rows), nil
}

func (s *Store) selectAll(ctx context.Context, dst any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return sqlscan.Select(ctx, s.conn(ctx), dst, query, args...)
}

// ---------------------------------------------------------------------------
// Bulk inserts
// ---------------------------------------------------------------------------

// BulkInsertWords inserts words in multi-row chunks. Existing entries are
// skipped via ON CONFLICT DO NOTHING. Returns the number of inserted rows.
func (s *Store) BulkInsertWords(ctx context.Context, words []domain.Record) (int, error) {
	var inserted int
	for _, chunk := range sqlstore.Chunks(words, insertChunkSize) {
		n, err := s.exec(ctx, s.q.InsertWords(chunk))
		if err != nil {
			return inserted, fmt.Errorf("insert words: %w", err)
		}
		inserted += n
	}
	return inserted, nil
}

// BulkInsertCharacters inserts characters in multi-row chunks. Existing
// characters are skipped.
func (s *Store) BulkInsertCharacters(ctx context.Context, chars []domain.CharacterEntry) (int, error) {
	var inserted int
	for _, chunk := range sqlstore.Chunks(chars, insertChunkSize) {
		ins, err := s.q.InsertCharacters(chunk)
		if err != nil {
			return inserted, err
		}
		n, err := s.exec(ctx, ins)
		if err != nil {
			return inserted, fmt.Errorf("insert characters: %w", err)
		}
		inserted += n
	}
	return inserted, nil
}

func (s *Store) exec(ctx context.Context, b sq.InsertBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	res, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// mapError converts driver errors to domain errors.
func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %q: %w", entity, key, err)
	}
	if errors.Is(err, sql.ErrNoRows) || sqlscan.NotFound(err) {
		return fmt.Errorf("%s %q: %w", entity, key, domain.ErrNotFound)
	}
	return fmt.Errorf("%s %q: %w", entity, key, err)
}
