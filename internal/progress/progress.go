// =============================================================================
// Invoice Report Generator - Progress Sink
// =============================================================================
//
// The pipeline reports line-by-line progress through the Sink interface so
// that it has zero dependency on any particular display mechanism and can be
// tested headlessly. Every implementation here is fire-and-forget: a sink
// must never raise back into the financial pipeline, so all failures are
// swallowed.
//
// =============================================================================

package progress

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Sink receives human-readable progress messages from the pipeline.
// Implementations are best-effort and must never panic or return control to
// the caller via an error.
type Sink interface {
	Report(message string)
}

// =============================================================================
// IMPLEMENTATIONS
// =============================================================================

// Noop discards all messages.
type Noop struct{}

// Report implements Sink.
func (Noop) Report(string) {}

// loggerSink forwards messages to a zap sugared logger at info level.
type loggerSink struct {
	log *zap.SugaredLogger
}

// NewLogger returns a sink that forwards messages to the given logger.
func NewLogger(log *zap.SugaredLogger) Sink {
	return &loggerSink{log: log}
}

func (s *loggerSink) Report(message string) {
	defer func() { _ = recover() }()
	s.log.Info(message)
}

// FileSink appends timestamped messages to a log file the user can watch
// live (tail -f). Write failures are dropped silently.
type FileSink struct {
	file *os.File
}

// NewFileSink opens (or creates) the progress log in append mode. An open
// failure yields a sink that drops everything rather than an error.
func NewFileSink(path string) *FileSink {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &FileSink{}
	}
	return &FileSink{file: f}
}

// Report implements Sink.
func (s *FileSink) Report(message string) {
	if s.file == nil {
		return
	}
	defer func() { _ = recover() }()
	fmt.Fprintf(s.file, "%s  %s\n", time.Now().Format("2006-01-02 15:04:05"), message)
}

// Close closes the underlying file, if any.
func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// multiSink fans one message out to several sinks.
type multiSink struct {
	sinks []Sink
}

// Multi returns a sink that forwards every message to all given sinks.
func Multi(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) Report(message string) {
	for _, s := range m.sinks {
		s.Report(message)
	}
}
