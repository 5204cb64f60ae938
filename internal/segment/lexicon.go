package segment

// Lexicon is the set of dictionary words a Segmenter is built from, keyed to
// their frequency rank (smaller is more common). It is not safe for
// concurrent mutation.
type Lexicon struct {
	ranks   map[string]int
	maxRank int
}

// NewLexicon returns an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{ranks: map[string]int{}}
}

// AddLexeme inserts word with the given rank. Adding an existing word keeps
// the smaller (more common) rank. Empty words are ignored.
func (l *Lexicon) AddLexeme(word string, rank int) {
	if word == "" {
		return
	}

	if cur, ok := l.ranks[word]; ok && cur <= rank {
		return
	}
	l.ranks[word] = rank

	if rank > l.maxRank {
		l.maxRank = rank
	}
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int { return len(l.ranks) }

// weight maps the rank of a word to a segmentation weight that falls off
// as 1/rank, the way word frequencies do. The rarest word weighs 2, above
// the weight of 1 that an unknown rune scores.
func (l *Lexicon) weight(rank int) float64 {
	rank = max(rank, 0)
	return 2 * float64(l.maxRank+1) / float64(min(rank, l.maxRank)+1)
}
