// Package utils provides small shared helpers.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter buffers writes while another component (the TUI) owns
// the terminal, so log output can be replayed after it exits.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write buffers p. It never fails.
func (w *DeferredWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// Flush replays the buffered output to out and resets the buffer.
func (w *DeferredWriter) Flush(out io.Writer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return nil
	}

	_, err := io.Copy(out, &w.buf)
	w.buf.Reset()
	return err
}
