package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// JSONWriter outputs results as JSON documents.
type JSONWriter struct {
	output       io.Writer
	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type recordView struct {
	Kind           string            `json:"kind"`
	Simplified     string            `json:"simplified"`
	Traditional    string            `json:"traditional"`
	PinyinNum      string            `json:"pinyin_num"`
	PinyinAccent   string            `json:"pinyin_accent"`
	PinyinClean    string            `json:"pinyin_clean"`
	PinyinNoSpaces string            `json:"pinyin_no_spaces,omitempty"`
	Definitions    string            `json:"definitions"`
	Classifiers    string            `json:"classifiers,omitempty"`
	AlsoWritten    string            `json:"also_written,omitempty"`
	AlsoPronounced string            `json:"also_pronounced,omitempty"`
	Frequency      int               `json:"frequency"`
	Radical        string            `json:"radical,omitempty"`
	Decomposition  *string           `json:"decomposition,omitempty"`
	Etymology      map[string]string `json:"etymology,omitempty"`
	Components     []recordView      `json:"components,omitempty"`
}

func newRecordView(r *domain.Record) recordView {
	v := recordView{
		Kind:           r.Kind.String(),
		Simplified:     r.Simplified,
		Traditional:    r.Traditional,
		PinyinNum:      r.PinyinNum,
		PinyinAccent:   r.PinyinAccent,
		PinyinClean:    r.PinyinClean,
		PinyinNoSpaces: r.PinyinNoSpaces,
		Definitions:    r.Definitions,
		Classifiers:    r.Classifiers,
		AlsoWritten:    r.AlsoWritten,
		AlsoPronounced: r.AlsoPronounced,
		Frequency:      r.Frequency,
		Radical:        r.Radical,
		Decomposition:  r.Decomposition,
		Etymology:      r.Etymology,
	}
	for _, c := range r.Components {
		v.Components = append(v.Components, newRecordView(c))
	}
	return v
}

type lookupView struct {
	SearchTerm string         `json:"search_term"`
	Records    []recordView   `json:"records"`
	Unknown    []string       `json:"unknown"`
	History    []historyEntry `json:"history"`
}

type characterView struct {
	Character     string            `json:"character"`
	Definition    *string           `json:"definition,omitempty"`
	Pinyin        string            `json:"pinyin"`
	Decomposition *string           `json:"decomposition,omitempty"`
	Etymology     map[string]string `json:"etymology,omitempty"`
	Radical       string            `json:"radical"`
	Frequency     int               `json:"frequency"`
}

// WriteLookup outputs the session as one JSON object.
func (w *JSONWriter) WriteLookup(l *Lookup) (int, error) {
	v := lookupView{
		SearchTerm: l.SearchTerm,
		Records:    make([]recordView, 0, len(l.Records)),
		Unknown:    l.Unknown,
		History:    sortedHistory(l.History),
	}
	if v.Unknown == nil {
		v.Unknown = []string{}
	}
	for _, r := range l.Records {
		v.Records = append(v.Records, newRecordView(r))
	}
	return w.writeJSON(v)
}

// WriteWords outputs the words as a JSON array.
func (w *JSONWriter) WriteWords(_ string, words []domain.Record) (int, error) {
	views := make([]recordView, 0, len(words))
	for i := range words {
		views = append(views, newRecordView(&words[i]))
	}
	return w.writeJSON(views)
}

// WriteCharacter outputs a character entry as a JSON object.
func (w *JSONWriter) WriteCharacter(c *domain.CharacterEntry) (int, error) {
	return w.writeJSON(characterView{
		Character:     c.Character,
		Definition:    c.Definition,
		Pinyin:        c.Pinyin,
		Decomposition: c.Decomposition,
		Etymology:     c.Etymology,
		Radical:       c.Radical,
		Frequency:     c.Frequency,
	})
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
