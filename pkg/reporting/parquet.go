package reporting

import (
	"fmt"
	"os"
	"sync"

	"github.com/parquet-go/parquet-go"
)

func init() {
	Register(&ParquetFormat{})
}

// ParquetFormat handles Parquet telemetry files.
type ParquetFormat struct{}

func (f *ParquetFormat) Name() string         { return "parquet" }
func (f *ParquetFormat) Extensions() []string { return []string{".parquet"} }
func (f *ParquetFormat) Reader() Reader       { return &ParquetReader{} }
func (f *ParquetFormat) Writer() Writer       { return &ParquetWriter{} }

// ParquetReader reads a whole Parquet telemetry file at once.
type ParquetReader struct {
	path string
}

func (r *ParquetReader) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	r.path = path
	return nil
}

func (r *ParquetReader) Read() ([]Point, error) {
	if r.path == "" {
		return nil, fmt.Errorf("reader not initialized")
	}
	return parquet.ReadFile[Point](r.path)
}

func (r *ParquetReader) Close() error { return nil }

// ParquetWriter appends points through the generic row writer.
type ParquetWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[Point]
	mu     sync.Mutex
}

func (w *ParquetWriter) Init(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	w.file = file
	w.writer = parquet.NewGenericWriter[Point](file, parquet.Compression(&parquet.Snappy))
	return nil
}

func (w *ParquetWriter) Write(p Point) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer == nil {
		return fmt.Errorf("writer not initialized")
	}
	_, err := w.writer.Write([]Point{p})
	return err
}

// Flush closes the current row group so written points survive a crash.
func (w *ParquetWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer == nil {
		return nil
	}
	return w.writer.Flush()
}

func (w *ParquetWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return err
	}
	err := w.file.Close()
	w.file = nil
	w.writer = nil
	return err
}
