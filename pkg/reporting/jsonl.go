package reporting

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	jsonlBufferSize  = 64 * 1024
	jsonlMaxLineSize = 1024 * 1024
)

func init() {
	Register(&JSONLFormat{})
}

// JSONLFormat handles JSON Lines telemetry files.
type JSONLFormat struct{}

func (f *JSONLFormat) Name() string         { return "jsonl" }
func (f *JSONLFormat) Extensions() []string { return []string{".jsonl"} }
func (f *JSONLFormat) Reader() Reader       { return &JSONLReader{} }
func (f *JSONLFormat) Writer() Writer       { return &JSONLWriter{} }

// JSONLReader reads one point per line.
type JSONLReader struct {
	file    *os.File
	scanner *bufio.Scanner
}

func (r *JSONLReader) Open(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	r.file = file
	r.scanner = bufio.NewScanner(file)
	r.scanner.Buffer(make([]byte, jsonlBufferSize), jsonlMaxLineSize)
	return nil
}

func (r *JSONLReader) Read() ([]Point, error) {
	var points []Point
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var p Point
		if err := json.Unmarshal(line, &p); err != nil {
			return nil, fmt.Errorf("failed to parse line %d: %w", len(points)+1, err)
		}
		points = append(points, p)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *JSONLReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// JSONLWriter appends one point per line.
type JSONLWriter struct {
	file *os.File
	buf  *bufio.Writer
	mu   sync.Mutex
}

func (w *JSONLWriter) Init(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	w.file = file
	w.buf = bufio.NewWriterSize(file, jsonlBufferSize)
	return nil
}

func (w *JSONLWriter) Write(p Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf == nil {
		return fmt.Errorf("writer not initialized")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if _, err := w.buf.Write(data); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

func (w *JSONLWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf == nil {
		return nil
	}
	return w.buf.Flush()
}

func (w *JSONLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	err := w.file.Close()
	w.file = nil
	w.buf = nil
	return err
}
