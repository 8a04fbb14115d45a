// Package iojson reads and writes JSON for command line tools.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Error is the JSON shape of a command failure.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// MarshalError renders msg and data as an Error. If data cannot be encoded
// the result still is valid JSON and carries the encoding error instead.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.Marshal(Error{Message: msg, Data: data})
	if err != nil {
		bits, _ = json.Marshal(Error{
			Message: msg,
			Data:    map[string]any{"json_error": err.Error()},
		})
	}
	return string(bits)
}

// WriteIndented writes obj as indented JSON followed by a newline.
func WriteIndented(w io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// LineWriter writes one compact JSON document per line. It is safe for
// concurrent use, so timer callbacks can emit events directly.
type LineWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewLineWriter creates a LineWriter on w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{enc: json.NewEncoder(w)}
}

// Write encodes obj on its own line.
func (lw *LineWriter) Write(obj any) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if err := lw.enc.Encode(obj); err != nil {
		return fmt.Errorf("encode json line: %w", err)
	}
	return nil
}
