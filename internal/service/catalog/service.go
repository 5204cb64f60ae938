package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/heartmarshall/cnlearn/internal/domain"
	"github.com/heartmarshall/cnlearn/internal/hanzi"
)

type lexiconRepo interface {
	FindWordContaining(ctx context.Context, text, pinyinClean string) ([]domain.Record, error)
	FindCharacter(ctx context.Context, text string) (*domain.CharacterEntry, error)
}

// Service implements read-only browsing of the lexicon: substring search
// over words and character entries.
type Service struct {
	log     *slog.Logger
	lexicon lexiconRepo
}

// NewService creates a new Catalog service.
func NewService(logger *slog.Logger, lexicon lexiconRepo) *Service {
	return &Service{
		log:     logger.With("service", "catalog"),
		lexicon: lexicon,
	}
}

// Search returns the words whose simplified form contains text, most common
// first. A non-empty pinyinClean restricts the pronunciation. An empty query
// returns an empty result. Limit is clamped to [1, 50], defaulting to 20.
func (s *Service) Search(ctx context.Context, text, pinyinClean string, limit int) ([]domain.Record, error) {
	text = domain.NormalizeText(text)
	if text == "" {
		return []domain.Record{}, nil
	}

	limit = clampLimit(limit)

	words, err := s.lexicon.FindWordContaining(ctx, text, pinyinClean)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}
	if len(words) > limit {
		words = words[:limit]
	}
	for i := range words {
		words[i].Kind = domain.KindWord
	}

	s.log.DebugContext(ctx, "catalog search",
		slog.String("text", text),
		slog.String("pinyin", pinyinClean),
		slog.Int("results", len(words)),
	)
	return words, nil
}

// Character returns the character entry for a single ideograph.
func (s *Service) Character(ctx context.Context, text string) (*domain.CharacterEntry, error) {
	text = domain.NormalizeText(text)
	if text == "" {
		return nil, domain.NewValidationError("character", "required")
	}
	if utf8.RuneCountInString(text) != 1 || !hanzi.ContainsHan(text) {
		return nil, domain.NewValidationError("character", "must be a single Chinese character")
	}

	entry, err := s.lexicon.FindCharacter(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("character %q: %w", text, err)
	}
	return entry, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 50 {
		return 50
	}
	return limit
}
