package testhelpers

import (
	"bytes"
	"io"
	"sync"
	"testing"
)

// Writer forwards writes to t.Log so that logs only show up for failing tests.
type Writer struct {
	t    *testing.T
	mu   sync.Mutex
	done bool
}

// NewWriter returns a Writer for t.
//
// Writes after the test has finished panic. A server that still logs at that point was not shut down.
func NewWriter(t *testing.T) io.Writer {
	w := &Writer{t: t, mu: sync.Mutex{}, done: false}
	t.Cleanup(func() {
		w.mu.Lock()
		w.done = true
		w.mu.Unlock()
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		panic("testhelpers: write after the test finished, did you forget t.Cleanup(server.Shutdown)?")
	}
	if line := bytes.TrimSuffix(p, []byte("\n")); len(line) > 0 {
		w.t.Log(string(line))
	}
	return len(p), nil
}
