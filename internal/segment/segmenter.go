// Package segment splits Chinese text into dictionary words.
//
// Segmentation runs on a gse dictionary built from a Lexicon, without the
// HMM model. The input is turned into a graph of every lexicon word at every
// position and the most probable route through it is kept, with common
// words weighing more than rare ones. A rune outside the lexicon becomes a
// token of its own, except that runs of ASCII letters and digits stay
// together, so the tokens always concatenate back to the input.
package segment

import (
	"unicode/utf8"

	"github.com/go-ego/gse"
)

func init() {
	// gse lowercases both the dictionary and the input by default, which
	// would break the concatenation of tokens back to the input.
	gse.ToLower = false
}

// Options tunes the segmentation.
type Options struct {
	// MaxWordLength drops lexicon entries longer than this many runes. Zero
	// keeps every entry.
	MaxWordLength int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{}
}

// Segmenter splits text using a Lexicon. It is safe for concurrent use.
type Segmenter struct {
	lex  *Lexicon
	seg  *gse.Segmenter
	opts Options
}

// New creates a Segmenter over lex. Later changes to lex are not seen by the
// segmenter.
func New(lex *Lexicon, opts Options) *Segmenter {
	seg := &gse.Segmenter{
		Dict:       gse.NewDict(),
		NotLoadHMM: true,
		SkipLog:    true,
	}
	seg.Init()

	for word, rank := range lex.ranks {
		if opts.MaxWordLength > 0 && utf8.RuneCountInString(word) > opts.MaxWordLength {
			continue
		}
		// Fails only without a dictionary; duplicates are ignored.
		_ = seg.AddToken(word, lex.weight(rank))
	}

	return &Segmenter{lex: lex, seg: seg, opts: opts}
}

// Lexicon returns the underlying lexicon.
func (s *Segmenter) Lexicon() *Lexicon { return s.lex }

// Words returns the number of words in the segmentation dictionary.
func (s *Segmenter) Words() int { return s.seg.Dict.NumTokens() }

// Segment splits text into tokens. With exhaustive false the tokens do not
// overlap and their concatenation is text. With exhaustive true every
// lexicon word found at every position is returned, in order of position,
// and a rune that starts no word is returned on its own.
func (s *Segmenter) Segment(text string, exhaustive bool) []string {
	if text == "" {
		return []string{}
	}
	if exhaustive {
		return s.allWords(text)
	}
	return s.seg.Cut(text, false)
}

func (s *Segmenter) allWords(text string) []string {
	runes := []rune(text)
	tokens := make([]string, 0, len(runes))

	for pos := range runes {
		found := false
		for end := pos + 1; end <= len(runes); end++ {
			freq, _, ok := s.seg.Find(string(runes[pos:end]))
			if !ok {
				break
			}
			if freq > 0 {
				tokens = append(tokens, string(runes[pos:end]))
				found = true
			}
		}
		if !found {
			tokens = append(tokens, string(runes[pos]))
		}
	}

	return tokens
}
