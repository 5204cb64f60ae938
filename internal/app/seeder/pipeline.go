package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/cnlearn/internal/app/seeder/cedict"
	"github.com/heartmarshall/cnlearn/internal/app/seeder/frequency"
	"github.com/heartmarshall/cnlearn/internal/app/seeder/hanzidata"
	"github.com/heartmarshall/cnlearn/internal/domain"
)

const (
	PhaseCharacters = "characters"
	PhaseWords      = "words"
)

// allPhases defines the canonical execution order.
var allPhases = []string{PhaseCharacters, PhaseWords}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Parsed   int
	Inserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// sources holds the parsed input files.
type sources struct {
	ranks *frequency.Table
	words []domain.Record
	chars []domain.CharacterEntry
}

// Pipeline parses the source files and loads them phase by phase.
type Pipeline struct {
	log     *slog.Logger
	writer  LexiconWriter
	tx      TxManager
	cfg     Config
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, writer LexiconWriter, tx TxManager, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		writer:  writer,
		tx:      tx,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run. A source that cannot be parsed aborts the run; a failing phase is
// recorded and the next phase still runs.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	// Step 1: Determine which phases to run.
	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	// Step 2: Parse the sources concurrently.
	src, err := p.parse(toRun)
	if err != nil {
		return err
	}

	// Step 3: Execute phases in order.
	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseCharacters:
			result = p.runCharacters(ctx, src)
		case PhaseWords:
			result = p.runWords(ctx, src)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("parsed", result.Parsed),
				slog.Int("inserted", result.Inserted),
				slog.Int("skipped", result.Skipped),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	// Step 4: Summary log.
	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

// parse reads the frequency list and the sources the phases need, each in
// its own goroutine.
func (p *Pipeline) parse(phases []string) (*sources, error) {
	src := &sources{ranks: &frequency.Table{}}
	var g errgroup.Group

	if p.cfg.FrequencyPath != "" {
		g.Go(func() error {
			table, stats, err := frequency.Parse(p.cfg.FrequencyPath)
			if err != nil {
				return fmt.Errorf("parse frequency list: %w", err)
			}
			p.log.Info("frequency list parsed",
				slog.Int("words", table.Len()),
				slog.Int("malformed_lines", stats.MalformedLines),
			)
			src.ranks = table
			return nil
		})
	} else {
		p.log.Warn("frequency path not configured, all entries share one rank")
	}

	for _, phase := range phases {
		switch phase {
		case PhaseCharacters:
			if p.cfg.CharacterDataPath == "" {
				continue
			}
			g.Go(func() error {
				chars, stats, err := hanzidata.Parse(p.cfg.CharacterDataPath)
				if err != nil {
					return fmt.Errorf("parse character data: %w", err)
				}
				p.log.Info("character data parsed",
					slog.Int("entries", stats.EntriesParsed),
					slog.Int("malformed_lines", stats.MalformedLines),
				)
				src.chars = chars
				return nil
			})
		case PhaseWords:
			if p.cfg.CEDICTPath == "" {
				continue
			}
			g.Go(func() error {
				words, stats, err := cedict.Parse(p.cfg.CEDICTPath)
				if err != nil {
					return fmt.Errorf("parse cedict: %w", err)
				}
				p.log.Info("cedict parsed",
					slog.Int("entries", stats.EntriesParsed),
					slog.Int("malformed_lines", stats.MalformedLines),
				)
				src.words = words
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range src.words {
		src.words[i].Frequency = src.ranks.Rank(src.words[i].Simplified)
	}
	for i := range src.chars {
		src.chars[i].Frequency = src.ranks.Rank(src.chars[i].Character)
	}
	return src, nil
}

// runCharacters inserts the character entries.
func (p *Pipeline) runCharacters(ctx context.Context, src *sources) PhaseResult {
	if p.cfg.CharacterDataPath == "" {
		return PhaseResult{Skipped: 1, Err: fmt.Errorf("character data path not configured")}
	}
	return p.load(ctx, len(src.chars), func(ctx context.Context) (int, error) {
		return batchProcess(src.chars, p.cfg.BatchSize, func(batch []domain.CharacterEntry) (int, error) {
			return p.writer.BulkInsertCharacters(ctx, batch)
		})
	})
}

// runWords inserts the CEDICT words.
func (p *Pipeline) runWords(ctx context.Context, src *sources) PhaseResult {
	if p.cfg.CEDICTPath == "" {
		return PhaseResult{Skipped: 1, Err: fmt.Errorf("cedict path not configured")}
	}
	return p.load(ctx, len(src.words), func(ctx context.Context) (int, error) {
		return batchProcess(src.words, p.cfg.BatchSize, func(batch []domain.Record) (int, error) {
			return p.writer.BulkInsertWords(ctx, batch)
		})
	})
}

// load runs insert in one transaction. Rows the store already holds count
// as skipped.
func (p *Pipeline) load(ctx context.Context, parsed int, insert func(ctx context.Context) (int, error)) PhaseResult {
	if p.cfg.DryRun {
		return PhaseResult{Parsed: parsed, Skipped: parsed}
	}

	var inserted int
	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := insert(ctx)
		inserted = n
		return err
	})
	if err != nil {
		return PhaseResult{Parsed: parsed, Errors: 1, Err: fmt.Errorf("insert: %w", err)}
	}

	return PhaseResult{Parsed: parsed, Inserted: inserted, Skipped: parsed - inserted}
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
