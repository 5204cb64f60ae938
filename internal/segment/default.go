package segment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// ErrNotInitialized is returned by Default before Initialize has been called.
var ErrNotInitialized = errors.New("segmenter not initialized")

// LexemeSource supplies the words a lexicon is built from.
type LexemeSource interface {
	Lexemes(ctx context.Context) ([]domain.Lexeme, error)
}

var (
	defaultMu  sync.Mutex
	defaultSeg *Segmenter
)

// Initialize installs the process-wide segmenter built from lex. Only the
// first call has an effect; later calls return the installed segmenter.
func Initialize(lex *Lexicon, opts Options) *Segmenter {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultSeg == nil {
		defaultSeg = New(lex, opts)
	}
	return defaultSeg
}

// InitializeFrom builds the lexicon from src and installs the process-wide
// segmenter. When a segmenter is already installed src is not read.
func InitializeFrom(ctx context.Context, src LexemeSource, opts Options) (*Segmenter, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultSeg != nil {
		return defaultSeg, nil
	}

	lex, err := LoadLexicon(ctx, src)
	if err != nil {
		return nil, err
	}
	defaultSeg = New(lex, opts)
	return defaultSeg, nil
}

// Default returns the process-wide segmenter.
func Default() (*Segmenter, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultSeg == nil {
		return nil, ErrNotInitialized
	}
	return defaultSeg, nil
}

// Teardown removes the process-wide segmenter so that the next Initialize
// installs a fresh one.
func Teardown() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultSeg = nil
}

// LoadLexicon reads all lexemes from src into a new Lexicon.
func LoadLexicon(ctx context.Context, src LexemeSource) (*Lexicon, error) {
	lexemes, err := src.Lexemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	lex := NewLexicon()
	for _, l := range lexemes {
		lex.AddLexeme(l.Text, l.Frequency)
	}
	return lex, nil
}
