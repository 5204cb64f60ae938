package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/heartmarshall/cnlearn/internal/app/seeder/frequency"
	"github.com/heartmarshall/cnlearn/internal/domain"
)

// mockWriter records calls to verify pipeline behavior.
type mockWriter struct {
	mu sync.Mutex

	words []domain.Record
	chars []domain.CharacterEntry

	bulkInsertWordsErr      error
	bulkInsertCharactersErr error

	// existing texts are reported as already stored.
	existing map[string]bool

	callLog []string
}

func newMockWriter() *mockWriter {
	return &mockWriter{existing: make(map[string]bool)}
}

func (m *mockWriter) logCall(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, name)
}

func (m *mockWriter) BulkInsertWords(_ context.Context, words []domain.Record) (int, error) {
	m.logCall("BulkInsertWords")
	if m.bulkInsertWordsErr != nil {
		return 0, m.bulkInsertWordsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, w := range words {
		if m.existing[w.Simplified] {
			continue
		}
		m.words = append(m.words, w)
		n++
	}
	return n, nil
}

func (m *mockWriter) BulkInsertCharacters(_ context.Context, chars []domain.CharacterEntry) (int, error) {
	m.logCall("BulkInsertCharacters")
	if m.bulkInsertCharactersErr != nil {
		return 0, m.bulkInsertCharactersErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chars = append(m.chars, chars...)
	return len(chars), nil
}

type mockTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const (
	cedictData = `# sample
好 好 [hao3] /good/
好 好 [hao4] /to be fond of/
我們 我们 [wo3 men5] /we; us/
龜 龟 [gui1] /tortoise/
`
	charData = `{"character":"好","pinyin":["hǎo","hào"],"decomposition":"⿰女子","radical":"女","matches":null}
{"character":"我","pinyin":["wǒ"],"decomposition":"⿻手戈","radical":"戈","matches":null}
`
	freqData = "h\ne\na\nd\n1 100.0 我\n2 90.0 好\n3 50.0 我们\n"
)

func fullConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		CEDICTPath:        createTempFile(t, "cedict", cedictData),
		CharacterDataPath: createTempFile(t, "chars", charData),
		FrequencyPath:     createTempFile(t, "freq", freqData),
		BatchSize:         2,
	}
}

func TestPipeline_Run(t *testing.T) {
	writer := newMockWriter()
	tx := &mockTxManager{}

	p := NewPipeline(testLogger(), writer, tx, fullConfig(t))
	if err := p.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(writer.chars) != 2 {
		t.Errorf("expected 2 characters inserted, got %d", len(writer.chars))
	}
	if len(writer.words) != 4 {
		t.Errorf("expected 4 words inserted, got %d", len(writer.words))
	}
	if tx.calls != 2 {
		t.Errorf("expected one transaction per phase, got %d", tx.calls)
	}

	// Characters are loaded before words, words in batches of 2.
	want := []string{"BulkInsertCharacters", "BulkInsertWords", "BulkInsertWords"}
	if fmt.Sprint(writer.callLog) != fmt.Sprint(want) {
		t.Errorf("call order = %v, want %v", writer.callLog, want)
	}

	results := p.Results()
	if r := results[PhaseWords]; r.Parsed != 4 || r.Inserted != 4 || r.Skipped != 0 {
		t.Errorf("words result = %+v", r)
	}
	if p.HasErrors() {
		t.Error("expected no phase errors")
	}
}

func TestPipeline_AssignsFrequencyRanks(t *testing.T) {
	writer := newMockWriter()
	p := NewPipeline(testLogger(), writer, &mockTxManager{}, fullConfig(t))
	if err := p.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unknown := 3 + frequency.UnknownOffset
	wantWords := map[string]int{"好": 2, "我们": 3, "龟": unknown}
	for _, w := range writer.words {
		if w.Frequency != wantWords[w.Simplified] {
			t.Errorf("word %s frequency = %d, want %d", w.Simplified, w.Frequency, wantWords[w.Simplified])
		}
	}

	wantChars := map[string]int{"好": 2, "我": 1}
	for _, c := range writer.chars {
		if c.Frequency != wantChars[c.Character] {
			t.Errorf("character %s frequency = %d, want %d", c.Character, c.Frequency, wantChars[c.Character])
		}
	}
}

func TestPipeline_NoFrequencyList(t *testing.T) {
	writer := newMockWriter()
	cfg := fullConfig(t)
	cfg.FrequencyPath = ""

	p := NewPipeline(testLogger(), writer, &mockTxManager{}, cfg)
	if err := p.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, w := range writer.words {
		if w.Frequency != frequency.UnknownOffset {
			t.Errorf("word %s frequency = %d, want %d", w.Simplified, w.Frequency, frequency.UnknownOffset)
		}
	}
}

func TestPipeline_DryRunNoRepoWrites(t *testing.T) {
	writer := newMockWriter()
	tx := &mockTxManager{}
	cfg := fullConfig(t)
	cfg.DryRun = true

	p := NewPipeline(testLogger(), writer, tx, cfg)
	if err := p.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(writer.callLog) != 0 {
		t.Errorf("expected no writes in dry run, got %v", writer.callLog)
	}
	if tx.calls != 0 {
		t.Errorf("expected no transactions in dry run, got %d", tx.calls)
	}
	if r := p.Results()[PhaseWords]; r.Parsed != 4 || r.Skipped != 4 {
		t.Errorf("words result = %+v, want 4 parsed and skipped", r)
	}
}

func TestPipeline_ErrorIsolation(t *testing.T) {
	writer := newMockWriter()
	writer.bulkInsertCharactersErr = errors.New("characters db error")

	p := NewPipeline(testLogger(), writer, &mockTxManager{}, fullConfig(t))
	if err := p.Run(context.Background(), nil); err != nil {
		t.Fatalf("pipeline should not return fatal error, got: %v", err)
	}

	results := p.Results()
	if results[PhaseCharacters].Err == nil {
		t.Error("expected characters phase to have an error")
	}
	if results[PhaseWords].Err != nil {
		t.Errorf("words phase should succeed, got %v", results[PhaseWords].Err)
	}
	if len(writer.words) != 4 {
		t.Errorf("expected words to be inserted despite the characters failure, got %d", len(writer.words))
	}
	if !p.HasErrors() {
		t.Error("expected HasErrors to report the failed phase")
	}
}

func TestPipeline_ExistingRowsSkipped(t *testing.T) {
	writer := newMockWriter()
	writer.existing["好"] = true

	p := NewPipeline(testLogger(), writer, &mockTxManager{}, fullConfig(t))
	if err := p.Run(context.Background(), []string{PhaseWords}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := p.Results()[PhaseWords]
	if r.Inserted != 2 || r.Skipped != 2 {
		t.Errorf("words result = %+v, want 2 inserted and 2 skipped", r)
	}
}

func TestPipeline_PhaseFilter(t *testing.T) {
	writer := newMockWriter()

	p := NewPipeline(testLogger(), writer, &mockTxManager{}, fullConfig(t))
	if err := p.Run(context.Background(), []string{PhaseWords}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results := p.Results()
	if _, ok := results[PhaseWords]; !ok {
		t.Error("expected words phase to run")
	}
	if _, ok := results[PhaseCharacters]; ok {
		t.Error("characters should NOT run when filter is words only")
	}
	if len(writer.chars) != 0 {
		t.Errorf("expected no characters inserted, got %d", len(writer.chars))
	}
}

func TestPipeline_PathNotConfigured(t *testing.T) {
	writer := newMockWriter()
	cfg := fullConfig(t)
	cfg.CharacterDataPath = ""

	p := NewPipeline(testLogger(), writer, &mockTxManager{}, cfg)
	if err := p.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := p.Results()[PhaseCharacters]
	if r.Err == nil || r.Skipped != 1 {
		t.Errorf("characters result = %+v, want skipped with error", r)
	}
	if len(writer.words) != 4 {
		t.Errorf("expected words to be inserted, got %d", len(writer.words))
	}
}

func TestPipeline_ParseErrorIsFatal(t *testing.T) {
	writer := newMockWriter()
	cfg := fullConfig(t)
	cfg.CEDICTPath = filepath.Join(t.TempDir(), "missing.u8")

	p := NewPipeline(testLogger(), writer, &mockTxManager{}, cfg)
	if err := p.Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for unreadable source")
	}
	if len(writer.callLog) != 0 {
		t.Errorf("expected no writes after a parse failure, got %v", writer.callLog)
	}
}

func TestBatchProcess(t *testing.T) {
	items := make([]int, 7)
	for i := range items {
		items[i] = i
	}

	var batches [][]int
	total, err := batchProcess(items, 3, func(batch []int) (int, error) {
		batches = append(batches, batch)
		return len(batch), nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 {
		t.Errorf("expected total 7, got %d", total)
	}
	if len(batches) != 3 {
		t.Errorf("expected 3 batches, got %d", len(batches))
	}
	// First two batches should be size 3, last should be 1.
	if len(batches[0]) != 3 {
		t.Errorf("expected first batch size 3, got %d", len(batches[0]))
	}
	if len(batches[2]) != 1 {
		t.Errorf("expected last batch size 1, got %d", len(batches[2]))
	}
}

func TestBatchProcess_EmptySlice(t *testing.T) {
	total, err := batchProcess([]int{}, 10, func(batch []int) (int, error) {
		t.Fatal("should not be called for empty input")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0, got %d", total)
	}
}

func TestBatchProcess_ErrorStops(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	callCount := 0
	_, err := batchProcess(items, 2, func(batch []int) (int, error) {
		callCount++
		if callCount == 2 {
			return 0, fmt.Errorf("batch error")
		}
		return len(batch), nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if callCount != 2 {
		t.Errorf("expected 2 calls before error, got %d", callCount)
	}
}

// createTempFile creates a temporary file with the given content for testing.
func createTempFile(t *testing.T, prefix, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), prefix+"_*")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if content != "" {
		if _, err := f.WriteString(content); err != nil {
			t.Fatalf("write temp file: %v", err)
		}
	}
	f.Close()
	return f.Name()
}
