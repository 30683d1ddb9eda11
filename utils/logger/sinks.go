package logger

import (
	"io"
	"log"
	"os"
)

// StdoutLogger writes to stdout through the standard log package, which
// timestamps each line and serializes concurrent writers.
type StdoutLogger struct {
	logger *log.Logger
}

var _ Logger = (*StdoutLogger)(nil)

// NewStdoutLogger creates a new logger that writes to stdout
func NewStdoutLogger() *StdoutLogger {
	return &StdoutLogger{
		logger: log.New(os.Stdout, "", log.LstdFlags),
	}
}

func (s *StdoutLogger) Type() LoggerType {
	return LoggerTypeStdout
}

func (s *StdoutLogger) Printf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

func (s *StdoutLogger) Println(message string) {
	s.logger.Println(message)
}

func (s *StdoutLogger) Close() error {
	return nil
}

// WriterLogger adapts any io.Writer to the Logger interface. Thread safety
// depends on the underlying writer.
type WriterLogger struct {
	logger *log.Logger
}

var _ Logger = (*WriterLogger)(nil)

// NewWriterLogger creates a logger from any io.Writer
func NewWriterLogger(w io.Writer) *WriterLogger {
	return &WriterLogger{
		logger: log.New(w, "", log.LstdFlags),
	}
}

func (w *WriterLogger) Type() LoggerType {
	return LoggerTypeWriter
}

func (w *WriterLogger) Printf(format string, args ...any) {
	w.logger.Printf(format, args...)
}

func (w *WriterLogger) Println(message string) {
	w.logger.Println(message)
}

func (w *WriterLogger) Close() error {
	return nil
}

// NoopLogger discards everything. The fetcher defaults to it so callers who
// don't care about attempt logging pay nothing.
type NoopLogger struct{}

var _ Logger = (*NoopLogger)(nil)

// NewNoopLogger creates a new logger that discards all output
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (n *NoopLogger) Type() LoggerType {
	return LoggerTypeNoop
}

func (n *NoopLogger) Printf(format string, args ...any) {
	// Discard
}

func (n *NoopLogger) Println(message string) {
	// Discard
}

func (n *NoopLogger) Close() error {
	return nil
}
