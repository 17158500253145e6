package reporting

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Points buffered between periodic flushes of the underlying writer.
const fileSinkFlushEvery = 50

// FileSink persists each reported value as a Point record in a telemetry
// file. The format is picked explicitly or from the path's extension.
type FileSink struct {
	run    uuid.UUID
	path   string
	writer Writer

	mu    sync.Mutex
	count int
}

// NewFileSink opens (or creates) a telemetry file at path. An empty
// format selects by extension.
func NewFileSink(path, format string) (*FileSink, error) {
	var f Format
	var ok bool
	if format != "" {
		f, ok = Get(format)
	} else {
		f, ok = GetByPath(path)
	}
	if !ok {
		return nil, fmt.Errorf("unsupported telemetry format for %s (have: %v)", path, List())
	}

	writer := f.Writer()
	if err := writer.Init(path); err != nil {
		return nil, err
	}

	return &FileSink{
		run:    uuid.New(),
		path:   path,
		writer: writer,
	}, nil
}

// Run returns the identifier stamped on every point this sink writes.
func (s *FileSink) Run() string { return s.run.String() }

// Path returns the telemetry file path.
func (s *FileSink) Path() string { return s.path }

func (s *FileSink) Report(group, series string, iteration int64, value float64) error {
	p := Point{
		Run:       s.run.String(),
		Timestamp: time.Now().UnixNano(),
		Group:     group,
		Series:    series,
		Iteration: iteration,
		Value:     value,
	}
	if err := s.writer.Write(p); err != nil {
		return err
	}

	s.mu.Lock()
	s.count++
	flush := s.count%fileSinkFlushEvery == 0
	s.mu.Unlock()

	if flush {
		return s.writer.Flush()
	}
	return nil
}

// Close flushes buffered points and closes the file.
func (s *FileSink) Close() error {
	if err := s.writer.Flush(); err != nil {
		s.writer.Close()
		return err
	}
	return s.writer.Close()
}
