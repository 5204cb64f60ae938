package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	postgres "github.com/heartmarshall/cnlearn/internal/adapter/postgres"
	"github.com/heartmarshall/cnlearn/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/cnlearn/internal/adapter/sqlite"
	"github.com/heartmarshall/cnlearn/internal/config"
	"github.com/heartmarshall/cnlearn/internal/domain"
	"github.com/heartmarshall/cnlearn/migrations"
)

// Store is the lexical store as the application uses it: lookups for the
// dictionary engine and the catalog, the lexicon for the segmenter, bulk
// writes for the seeder and schema migrations.
type Store interface {
	FindWord(ctx context.Context, text, pinyinClean string) ([]domain.Record, error)
	FindWordContaining(ctx context.Context, text, pinyinClean string) ([]domain.Record, error)
	FindWordAndCharacter(ctx context.Context, text, pinyinClean, pinyinAccent string) ([]domain.WordCharacterMatch, error)
	FindCharacter(ctx context.Context, text string) (*domain.CharacterEntry, error)
	Lexemes(ctx context.Context) ([]domain.Lexeme, error)

	BulkInsertWords(ctx context.Context, words []domain.Record) (int, error)
	BulkInsertCharacters(ctx context.Context, chars []domain.CharacterEntry) (int, error)
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error

	Migrate(ctx context.Context, logger *slog.Logger) (int64, error)
	Close() error
}

// OpenStore opens the store selected by cfg.Store.Backend.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	backend, err := config.ParseBackend(string(cfg.Store.Backend))
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return newPostgresStore(pool), nil
	default:
		s, err := sqlite.Open(cfg.SQLite.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	}
}

// postgresStore bundles the lexicon repository with its pool and
// transaction manager.
type postgresStore struct {
	*lexicon.Repo
	*postgres.TxManager
	pool *pgxpool.Pool
}

func newPostgresStore(pool *pgxpool.Pool) *postgresStore {
	return &postgresStore{
		Repo:      lexicon.New(pool),
		TxManager: postgres.NewTxManager(pool),
		pool:      pool,
	}
}

func (s *postgresStore) Migrate(ctx context.Context, logger *slog.Logger) (int64, error) {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	return migrations.Up(ctx, db, migrations.Postgres, logger)
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
