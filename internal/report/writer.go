// Package report renders lookup results for the terminal: Markdown tables
// for people, JSON for tools.
package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// Format selects the output representation.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Lookup is the outcome of one lookup session.
type Lookup struct {
	SearchTerm string
	Records    []*domain.Record
	Unknown    []string
	History    map[string]int
}

// Session is the read side of a dictionary engine.
type Session interface {
	SearchTerm() string
	Found() []*domain.Record
	Unknown() []string
	History() map[string]int
}

// NewLookup captures the current state of a session.
func NewLookup(s Session) *Lookup {
	return &Lookup{
		SearchTerm: s.SearchTerm(),
		Records:    s.Found(),
		Unknown:    s.Unknown(),
		History:    s.History(),
	}
}

// Writer outputs lookup results in one format.
type Writer interface {
	WriteLookup(l *Lookup) (int, error)
	WriteWords(query string, words []domain.Record) (int, error)
	WriteCharacter(c *domain.CharacterEntry) (int, error)
}

// NewWriter returns the writer for format. style picks the pinyin shown by
// the Markdown writer; JSON always carries every form.
func NewWriter(format Format, output io.Writer, style domain.PinyinStyle) (Writer, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatMarkdown, "md", "":
		return NewMarkdownWriter(output, WithPinyinStyle(style)), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	}
	return nil, fmt.Errorf("output format %q: must be %q or %q: %w", format, FormatMarkdown, FormatJSON, domain.ErrInvalidArgument)
}

// historyEntry is one row of the session history.
type historyEntry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// sortedHistory orders the history by descending count, then by token.
func sortedHistory(h map[string]int) []historyEntry {
	tokens := slices.Sorted(maps.Keys(h))
	out := make([]historyEntry, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, historyEntry{Token: t, Count: h[t]})
	}
	slices.SortStableFunc(out, func(a, b historyEntry) int { return b.Count - a.Count })
	return out
}

func formatEtymology(e domain.Etymology) string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e))
	for _, k := range slices.Sorted(maps.Keys(e)) {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
