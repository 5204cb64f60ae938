// Package app wires configuration, the lexical store and the services
// together for the command-line entry points.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/cnlearn/internal/app/seeder"
	"github.com/heartmarshall/cnlearn/internal/config"
	"github.com/heartmarshall/cnlearn/internal/segment"
	"github.com/heartmarshall/cnlearn/internal/service/catalog"
	"github.com/heartmarshall/cnlearn/internal/service/dictionary"
)

// App holds the opened store and the settings the services are built from.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	store Store
}

// Open opens the configured store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("store opened",
		slog.String("backend", string(cfg.Store.Backend)),
		slog.String("version", Build().String()),
	)
	return &App{cfg: cfg, log: logger, store: store}, nil
}

// NewWithStore builds an App around an already opened store.
func NewWithStore(cfg *config.Config, logger *slog.Logger, store Store) *App {
	return &App{cfg: cfg, log: logger, store: store}
}

// Store returns the lexical store.
func (a *App) Store() Store { return a.store }

// Close closes the store.
func (a *App) Close() error { return a.store.Close() }

// Migrate applies the schema migrations of the configured backend and
// returns the resulting schema version.
func (a *App) Migrate(ctx context.Context) (int64, error) {
	version, err := a.store.Migrate(ctx, a.log)
	if err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}
	return version, nil
}

// Segmenter returns the process-wide segmenter, building its lexicon from
// the store on first use.
func (a *App) Segmenter(ctx context.Context) (*segment.Segmenter, error) {
	opts := segment.Options{
		MaxWordLength: a.cfg.Segmenter.MaxWordLength,
	}
	seg, err := segment.InitializeFrom(ctx, a.store, opts)
	if err != nil {
		return nil, fmt.Errorf("initialize segmenter: %w", err)
	}
	a.log.Debug("segmenter ready", slog.Int("lexemes", seg.Lexicon().Len()), slog.Int("words", seg.Words()))
	return seg, nil
}

// NewEngine starts a new lookup session.
func (a *App) NewEngine(ctx context.Context) (*dictionary.Engine, error) {
	seg, err := a.Segmenter(ctx)
	if err != nil {
		return nil, err
	}
	return dictionary.NewEngine(a.log, a.store, seg), nil
}

// Catalog returns the catalog service.
func (a *App) Catalog() *catalog.Service {
	return catalog.NewService(a.log, a.store)
}

// NewSeeder returns an ingestion pipeline writing to the store.
func (a *App) NewSeeder(cfg seeder.Config) *seeder.Pipeline {
	return seeder.NewPipeline(a.log.With("component", "seeder"), a.store, a.store, cfg)
}
