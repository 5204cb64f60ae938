package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/cnlearn/internal/domain"
	"github.com/heartmarshall/cnlearn/internal/hanzi"
	"github.com/heartmarshall/cnlearn/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type lexicalStore interface {
	FindWord(ctx context.Context, text, pinyinClean string) ([]domain.Record, error)
	FindWordAndCharacter(ctx context.Context, text, pinyinClean, pinyinAccent string) ([]domain.WordCharacterMatch, error)
}

type segmenter interface {
	Segment(text string, exhaustive bool) []string
}

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

// Stats counts cache and store activity of one engine.
type Stats struct {
	Queries int // store calls
	Hits    int // tokens served from the cache
	Misses  int // tokens that went to the store
}

// Engine resolves text into dictionary records for one lookup session.
// Every distinct token is looked up in the store at most once per session;
// later occurrences, including those in later Resolve calls, are served
// from the cache. An Engine is not safe for concurrent use: give each
// session its own.
type Engine struct {
	log       *slog.Logger
	store     lexicalStore
	seg       segmenter
	sessionID uuid.UUID

	searchTerm string
	cache      map[string][]*domain.Record
	found      []*domain.Record
	unknown    []string
	unresolved map[string]struct{}
	history    map[string]int
	stats      Stats
}

// NewEngine creates an engine with an empty session.
func NewEngine(logger *slog.Logger, store lexicalStore, seg segmenter) *Engine {
	id := uuid.New()
	return &Engine{
		log:        logger.With("service", "dictionary"),
		store:      store,
		seg:        seg,
		sessionID:  id,
		cache:      make(map[string][]*domain.Record),
		unresolved: make(map[string]struct{}),
		history:    make(map[string]int),
	}
}

// Resolve segments text and resolves every token. Found records are
// replaced; the cache, unresolved tokens and history accumulate across calls.
// A store failure aborts the call; records found up to that point are kept.
func (e *Engine) Resolve(ctx context.Context, text string) error {
	ctx = ctxutil.WithSessionID(ctx, e.sessionID)
	e.searchTerm = text
	e.found = nil

	tokens := e.seg.Segment(domain.NormalizeText(text), false)

	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			continue
		}
		e.history[token]++

		if records := e.cache[token]; len(records) > 0 {
			e.stats.Hits++
			e.found = append(e.found, records...)
			continue
		}
		if _, ok := e.unresolved[token]; ok {
			e.stats.Hits++
			continue
		}

		e.stats.Misses++
		records, err := e.lookup(ctx, token)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", token, err)
		}
		if len(records) == 0 {
			e.markUnresolved(token)
			continue
		}

		e.cache[token] = records
		e.found = append(e.found, records...)
	}

	e.log.DebugContext(ctx, "text resolved",
		slog.Int("tokens", len(tokens)),
		slog.Int("found", len(e.found)),
		slog.Int("unresolved", len(e.unknown)),
		slog.Int("queries", e.stats.Queries),
		slog.Int("hits", e.stats.Hits),
		slog.Int("misses", e.stats.Misses),
	)

	return nil
}

func (e *Engine) lookup(ctx context.Context, token string) ([]*domain.Record, error) {
	if utf8.RuneCountInString(token) == 1 {
		return e.characters(ctx, token, "")
	}
	return e.words(ctx, token)
}

// characters returns composite records for a single character. A non-empty
// accent restricts the readings to that pronunciation.
func (e *Engine) characters(ctx context.Context, char, accent string) ([]*domain.Record, error) {
	e.stats.Queries++
	matches, err := e.store.FindWordAndCharacter(ctx, char, "", accent)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Record, 0, len(matches))
	for _, m := range matches {
		out = append(out, Combine(m.Word, m.Character))
	}
	return out, nil
}

// words returns the word records for token, most common first, each with
// its components aligned to the syllables of its accented pinyin.
func (e *Engine) words(ctx context.Context, token string) ([]*domain.Record, error) {
	e.stats.Queries++
	words, err := e.store.FindWord(ctx, token, "")
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Record, 0, len(words))
	for _, w := range words {
		word := w
		word.Kind = domain.KindWord
		word.Components = nil

		chars := hanzi.ExtractHanCharacters(word.Simplified)
		syllables := strings.Fields(word.PinyinAccent)
		for i := range min(len(chars), len(syllables)) {
			components, err := e.component(ctx, chars[i], syllables[i])
			if err != nil {
				return nil, err
			}
			word.Components = append(word.Components, components...)
		}

		out = append(out, &word)
	}
	return out, nil
}

// component resolves one character of a word with the reading it has in
// the word, falling back to all of its readings.
func (e *Engine) component(ctx context.Context, char, syllable string) ([]*domain.Record, error) {
	records, err := e.characters(ctx, char, syllable)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records, nil
	}
	return e.characters(ctx, char, "")
}

func (e *Engine) markUnresolved(token string) {
	if _, ok := e.unresolved[token]; ok {
		return
	}
	e.unresolved[token] = struct{}{}
	e.unknown = append(e.unknown, token)
}

// ---------------------------------------------------------------------------
// Session state
// ---------------------------------------------------------------------------

// SessionID identifies the engine in logs.
func (e *Engine) SessionID() uuid.UUID { return e.sessionID }

// SearchTerm returns the text of the last Resolve call.
func (e *Engine) SearchTerm() string { return e.searchTerm }

// Found returns the records of the last Resolve call in token order.
// A token that occurs twice contributes its records twice.
func (e *Engine) Found() []*domain.Record { return slices.Clone(e.found) }

// Unknown returns the distinct tokens without a match, in order of first
// occurrence across the session.
func (e *Engine) Unknown() []string { return slices.Clone(e.unknown) }

// History returns how often each token has been looked up in the session.
func (e *Engine) History() map[string]int { return maps.Clone(e.history) }

// Cached returns the cached records for token.
func (e *Engine) Cached(token string) ([]*domain.Record, bool) {
	records, ok := e.cache[token]
	return records, ok
}

// Stats returns the session counters.
func (e *Engine) Stats() Stats { return e.stats }
