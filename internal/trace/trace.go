// Package trace records per-pass minimization progress as JSON lines
// and renders convergence plots from it.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one line of the trace: the state of the search after a pass.
type Entry struct {
	// Pass is the outer-driver pass number, starting at 1.
	Pass int `json:"pass"`

	// Evaluations is the total objective-call count so far.
	Evaluations int `json:"evaluations"`

	// Best is the lowest objective value found so far.
	Best float64 `json:"best"`

	// Params is the best point found so far.
	Params []float64 `json:"params,omitempty"`

	// Timestamp records when this entry was written.
	Timestamp time.Time `json:"timestamp"`
}

// Writer appends entries to <baseDir>/runs/<runID>/trace.jsonl using
// buffered I/O. It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	dir    string
	runID  string
}

// NewWriter creates a trace writer under a fresh run directory and
// returns it. The run ID is generated.
func NewWriter(baseDir string) (*Writer, error) {
	runID := uuid.New().String()
	dir := filepath.Join(baseDir, "runs", runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, "trace.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}

	return &Writer{
		file:   file,
		writer: bufio.NewWriter(file),
		dir:    dir,
		runID:  runID,
	}, nil
}

// RunID returns the generated run identifier.
func (w *Writer) RunID() string {
	return w.runID
}

// Dir returns the run directory holding the trace file.
func (w *Writer) Dir() string {
	return w.dir
}

// Append writes one entry as a JSON line.
func (w *Writer) Append(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal trace entry: %w", err)
	}
	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write trace entry: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write trace newline: %w", err)
	}
	return nil
}

// Close flushes buffered entries and closes the trace file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush trace: %w", err)
	}
	return w.file.Close()
}
