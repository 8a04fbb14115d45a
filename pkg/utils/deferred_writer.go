// Package utils holds small helpers shared by commands.
package utils

import (
	"io"
	"sync"
)

// DeferredWriter holds output written while the terminal belongs to the TUI
// and replays it once the screen is released. Safe for concurrent use.
type DeferredWriter struct {
	mu     sync.Mutex
	chunks [][]byte
}

// Write records a copy of p.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.chunks = append(d.chunks, append([]byte(nil), p...))
	return len(p), nil
}

// Pending reports the number of held bytes.
func (d *DeferredWriter) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, c := range d.chunks {
		n += len(c)
	}
	return n
}

// Flush replays held output to w in write order. Chunks that were written
// stay released even when w fails part way.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	chunks := d.chunks
	d.chunks = nil
	d.mu.Unlock()

	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			return err
		}
	}
	return nil
}
