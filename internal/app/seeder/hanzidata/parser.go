// Package hanzidata parses character data files (one JSON object per line,
// as published by the Make Me a Hanzi project) into character entries.
// Pure function: file path in, domain structs out. No database dependencies.
package hanzidata

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/cnlearn/internal/domain"
)

const (
	// maxLineSize is the buffer size for bufio.Scanner (4 MB). Stroke
	// matches make single lines long.
	maxLineSize = 4 << 20

	// unknownComponent marks a decomposition with unknown parts.
	unknownComponent = "？"
)

// ErrMalformedLine is returned by ParseLine for lines that are not entries.
var ErrMalformedLine = errors.New("malformed character line")

type characterLine struct {
	Character     string           `json:"character"`
	Definition    *string          `json:"definition"`
	Pinyin        []string         `json:"pinyin"`
	Decomposition string           `json:"decomposition"`
	Etymology     domain.Etymology `json:"etymology"`
	Radical       string           `json:"radical"`
	Matches       json.RawMessage  `json:"matches"`
}

// Stats holds parse statistics.
type Stats struct {
	TotalLines     int
	MalformedLines int
	EntriesParsed  int
}

// Parse reads a character data file. Frequency ranks are left at zero.
func Parse(path string) ([]domain.CharacterEntry, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open character file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]domain.CharacterEntry, Stats, error) {
	var (
		entries []domain.CharacterEntry
		stats   Stats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.TotalLines++

		entry, err := ParseLine(line)
		if err != nil {
			stats.MalformedLines++
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scanner error: %w", err)
	}

	stats.EntriesParsed = len(entries)
	return entries, stats, nil
}

// ParseLine decodes one JSON line into a character entry. Readings are
// joined with "; ". A decomposition starting with "？" is treated as unknown.
func ParseLine(line []byte) (domain.CharacterEntry, error) {
	var raw characterLine
	if err := json.Unmarshal(line, &raw); err != nil {
		return domain.CharacterEntry{}, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}
	if raw.Character == "" {
		return domain.CharacterEntry{}, fmt.Errorf("%w: missing character", ErrMalformedLine)
	}
	if raw.Radical == "" {
		return domain.CharacterEntry{}, fmt.Errorf("%w: %s: missing radical", ErrMalformedLine, raw.Character)
	}

	entry := domain.CharacterEntry{
		Character:  raw.Character,
		Definition: raw.Definition,
		Pinyin:     strings.Join(raw.Pinyin, "; "),
		Etymology:  raw.Etymology,
		Radical:    raw.Radical,
	}
	if d := raw.Decomposition; d != "" && !strings.HasPrefix(d, unknownComponent) {
		entry.Decomposition = &d
	}
	if m := bytes.TrimSpace(raw.Matches); len(m) > 0 && !bytes.Equal(m, []byte("null")) {
		entry.Matches = string(m)
	}
	return entry, nil
}
