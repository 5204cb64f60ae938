// Package frequency parses word frequency lists in the internet-zh.num
// format: four header lines, then one "rank weight word" triple per line.
// Pure function: file path in, rank table out. No database dependencies.
package frequency

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// headerLines precede the first entry.
	headerLines = 4

	// UnknownOffset is added to the largest known rank to rank words that
	// are missing from the list.
	UnknownOffset = 9999
)

// Stats holds parse statistics.
type Stats struct {
	TotalLines     int
	MalformedLines int
	DuplicateWords int
}

// Table maps words to their frequency rank. Rank 1 is the most common word.
// The zero value is an empty table.
type Table struct {
	ranks   map[string]int
	maxRank int
}

// Parse reads a frequency list file.
func Parse(path string) (*Table, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open frequency file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (*Table, Stats, error) {
	t := &Table{ranks: make(map[string]int)}
	var stats Stats

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if line <= headerLines {
			continue
		}
		stats.TotalLines++

		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			stats.MalformedLines++
			continue
		}
		rank, err := strconv.Atoi(fields[0])
		if err != nil || rank < 1 {
			stats.MalformedLines++
			continue
		}
		if _, err := strconv.ParseFloat(fields[1], 64); err != nil {
			stats.MalformedLines++
			continue
		}

		word := fields[2]
		if prev, ok := t.ranks[word]; ok {
			stats.DuplicateWords++
			if prev <= rank {
				continue
			}
		}
		t.ranks[word] = rank
		t.maxRank = max(t.maxRank, rank)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scanner error: %w", err)
	}

	return t, stats, nil
}

// Rank returns the rank of word. Words missing from the list rank after
// every listed word.
func (t *Table) Rank(word string) int {
	if r, ok := t.ranks[word]; ok {
		return r
	}
	return t.maxRank + UnknownOffset
}

// Contains reports whether word is listed.
func (t *Table) Contains(word string) bool {
	_, ok := t.ranks[word]
	return ok
}

// Len returns the number of listed words.
func (t *Table) Len() int { return len(t.ranks) }

// MaxRank returns the largest listed rank.
func (t *Table) MaxRank() int { return t.maxRank }
