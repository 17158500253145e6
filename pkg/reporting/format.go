package reporting

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format defines the interface for a telemetry file format.
type Format interface {
	Name() string
	Extensions() []string
	Reader() Reader
	Writer() Writer
}

// Reader reads points from a telemetry file.
type Reader interface {
	Open(path string) error
	Read() ([]Point, error)
	Close() error
}

// Writer appends points to a telemetry file.
type Writer interface {
	Init(path string) error
	Write(p Point) error
	Flush() error
	Close() error
}

var (
	registry    = make(map[string]Format)
	extRegistry = make(map[string]Format)
)

// Register adds a format to the registry.
func Register(f Format) {
	registry[strings.ToLower(f.Name())] = f
	for _, ext := range f.Extensions() {
		extRegistry[strings.ToLower(ext)] = f
	}
}

// Get returns a format by name.
func Get(name string) (Format, bool) {
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// GetByPath returns a format based on the file's extension.
func GetByPath(path string) (Format, bool) {
	f, ok := extRegistry[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// List returns all registered format names.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// GetExtension returns the file extension for a format name.
func GetExtension(format string) string {
	if f, ok := Get(format); ok {
		if exts := f.Extensions(); len(exts) > 0 {
			return exts[0]
		}
	}
	return ".jsonl"
}

// LoadPoints reads every point from a telemetry file, picking the format
// by extension.
func LoadPoints(path string) ([]Point, error) {
	f, ok := GetByPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported format for file: %s", path)
	}

	reader := f.Reader()
	if err := reader.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	points, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	return points, nil
}
