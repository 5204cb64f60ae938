// Package cedict parses CC-CEDICT dictionary files into word records.
// Pure function: file path in, domain structs out. No database dependencies.
//
// A CEDICT line has the shape
//
//	TRADITIONAL SIMPLIFIED [pin1 yin1] /definition/definition/
//
// Definitions may carry classifiers ("CL:個|个[ge4]"), alternative
// spellings ("also written ...") and pronunciations ("also pr. [...]").
package cedict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/heartmarshall/cnlearn/internal/domain"
	"github.com/heartmarshall/cnlearn/internal/pinyin"
)

// maxLineSize is the buffer size for bufio.Scanner (1 MB).
const maxLineSize = 1 << 20

// ErrMalformedLine is returned by ParseLine for lines that are not entries.
var ErrMalformedLine = errors.New("malformed cedict line")

const (
	classifierMarker     = "CL:"
	alsoWrittenPrefix    = "also written "
	alsoPronouncedPrefix = "also pr. "
)

// hanPair matches "繁|简" pairs and single runs of ideographs.
var hanPair = regexp.MustCompile(`\p{Han}+\|\p{Han}+|\p{Han}+`)

// Stats holds parse statistics.
type Stats struct {
	TotalLines     int
	CommentLines   int
	MalformedLines int
	EntriesParsed  int
}

// Parse reads a CEDICT file. Frequency ranks are left at zero.
func Parse(path string) ([]domain.Record, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open cedict file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]domain.Record, Stats, error) {
	var (
		words []domain.Record
		stats Stats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		stats.TotalLines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			stats.CommentLines++
			continue
		}

		word, err := ParseLine(line)
		if err != nil {
			stats.MalformedLines++
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scanner error: %w", err)
	}

	stats.EntriesParsed = len(words)
	return words, stats, nil
}

// ParseLine parses one CEDICT entry line into a word record.
func ParseLine(line string) (domain.Record, error) {
	line = strings.TrimSpace(line)

	trad, rest, ok := strings.Cut(line, " ")
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	simp, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	open := strings.Index(rest, "[")
	closing := strings.Index(rest, "]")
	if open < 0 || closing < open {
		return domain.Record{}, fmt.Errorf("%w: no pronunciation: %q", ErrMalformedLine, line)
	}
	numbered := strings.Join(strings.Fields(rest[open+1:closing]), " ")

	defsPart := rest[closing+1:]
	first := strings.Index(defsPart, "/")
	last := strings.LastIndex(defsPart, "/")
	if first < 0 || last <= first {
		return domain.Record{}, fmt.Errorf("%w: no definitions: %q", ErrMalformedLine, line)
	}

	// Conversion errors are impossible with a fixed mode.
	accent, _ := pinyin.ConvertText(numbered, pinyin.ModeAccent)
	clean, _ := pinyin.ConvertText(numbered, pinyin.ModeClean)

	word := domain.Record{
		Kind:           domain.KindWord,
		Simplified:     simp,
		Traditional:    trad,
		PinyinNum:      numbered,
		PinyinAccent:   accent,
		PinyinClean:    clean,
		PinyinNoSpaces: strings.ReplaceAll(clean, " ", ""),
	}
	parseDefinitions(&word, defsPart[first+1:last])
	return word, nil
}

func parseDefinitions(word *domain.Record, raw string) {
	raw = pinyin.ConvertBracketed(raw)

	var defs, classifiers []string
	for _, part := range strings.Split(raw, "/") {
		switch {
		case strings.Contains(part, classifierMarker):
			for _, m := range hanPair.FindAllString(part, -1) {
				classifiers = append(classifiers, simplifiedHalf(m))
			}
		case strings.HasPrefix(part, alsoWrittenPrefix):
			word.AlsoWritten = simplifiedHalf(strings.TrimPrefix(part, alsoWrittenPrefix))
		case strings.HasPrefix(part, alsoPronouncedPrefix):
			word.AlsoPronounced = strings.Trim(strings.TrimPrefix(part, alsoPronouncedPrefix), "[]() ")
		case part != "":
			defs = append(defs, part)
		}
	}

	definitions := strings.Join(defs, "; ")
	word.Definitions = hanPair.ReplaceAllStringFunc(definitions, simplifiedHalf)
	word.Classifiers = strings.Join(classifiers, "; ")
}

// simplifiedHalf returns the part after the last "|" of a "繁|简" pair.
func simplifiedHalf(s string) string {
	if i := strings.LastIndex(s, "|"); i >= 0 {
		return s[i+1:]
	}
	return s
}
