package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

// MarkdownWriter outputs results as Markdown.
type MarkdownWriter struct {
	output io.Writer
	style  domain.PinyinStyle
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithPinyinStyle selects the pinyin shown in headings and tables. The
// numbered form is always listed in the record table.
func WithPinyinStyle(style domain.PinyinStyle) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.style = style
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer, showing accented pinyin unless configured otherwise.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{output: output, style: domain.PinyinAccent}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteLookup outputs every found record, then the unresolved tokens and
// the session history.
func (w *MarkdownWriter) WriteLookup(l *Lookup) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Lookup: " + l.SearchTerm)
	md.PlainText("")

	if len(l.Records) == 0 {
		md.Note("No dictionary entries found.")
		md.PlainText("")
	}
	for _, r := range l.Records {
		w.writeRecord(md, r)
	}

	if len(l.Unknown) > 0 {
		md.H2("Unresolved")
		md.PlainText("")
		md.BulletList(l.Unknown...)
		md.PlainText("")
	}

	if len(l.History) > 0 {
		rows := make([][]string, 0, len(l.History))
		for _, h := range sortedHistory(l.History) {
			rows = append(rows, []string{h.Token, strconv.Itoa(h.Count)})
		}
		md.H2("History")
		md.PlainText("")
		md.Table(markdown.TableSet{Header: []string{"Token", "Lookups"}, Rows: rows})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeRecord(md *markdown.Markdown, r *domain.Record) {
	md.H2(r.Simplified + " " + r.Pinyin(w.style))
	md.PlainText("")

	rows := [][]string{
		{"Kind", r.Kind.String()},
		{"Traditional", r.Traditional},
		{"Pinyin", r.PinyinNum},
		{"Definitions", r.Definitions},
	}
	rows = appendIf(rows, "Classifiers", r.Classifiers)
	rows = appendIf(rows, "Also written", r.AlsoWritten)
	rows = appendIf(rows, "Also pronounced", r.AlsoPronounced)
	if r.IsCharacter() {
		rows = appendIf(rows, "Radical", r.Radical)
		rows = appendIf(rows, "Decomposition", deref(r.Decomposition))
		rows = appendIf(rows, "Etymology", formatEtymology(r.Etymology))
	}
	rows = append(rows, []string{"Frequency rank", strconv.Itoa(r.Frequency)})

	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	if len(r.Components) > 0 {
		comps := make([][]string, 0, len(r.Components))
		for _, c := range r.Components {
			comps = append(comps, []string{c.Simplified, c.Pinyin(w.style), c.Radical, c.Definitions})
		}
		md.H3("Characters")
		md.PlainText("")
		md.Table(markdown.TableSet{Header: []string{"Character", "Pinyin", "Radical", "Definitions"}, Rows: comps})
		md.PlainText("")
	}
}

// WriteWords outputs a word list as one table.
func (w *MarkdownWriter) WriteWords(query string, words []domain.Record) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Words containing " + query)
	md.PlainText("")

	if len(words) == 0 {
		md.Note("No words found.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(words))
	for _, r := range words {
		rows = append(rows, []string{r.Simplified, r.Traditional, r.Pinyin(w.style), r.Definitions, strconv.Itoa(r.Frequency)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Simplified", "Traditional", "Pinyin", "Definitions", "Rank"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// WriteCharacter outputs a character entry.
func (w *MarkdownWriter) WriteCharacter(c *domain.CharacterEntry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Character " + c.Character)
	md.PlainText("")

	rows := [][]string{
		{"Readings", c.Pinyin},
		{"Radical", c.Radical},
	}
	rows = appendIf(rows, "Definition", deref(c.Definition))
	rows = appendIf(rows, "Decomposition", deref(c.Decomposition))
	rows = appendIf(rows, "Etymology", formatEtymology(c.Etymology))
	rows = append(rows, []string{"Frequency rank", strconv.Itoa(c.Frequency)})

	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	return len(md.String()), md.Build()
}

func appendIf(rows [][]string, name, value string) [][]string {
	if value == "" {
		return rows
	}
	return append(rows, []string{name, value})
}
