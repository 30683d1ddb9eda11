package logger

// Logger is the logging interface shared by the fetcher and its
// collaborators. All implementations must be safe for concurrent use.
type Logger interface {
	// Type returns the type of the logger
	Type() LoggerType
	// Printf logs a formatted message
	Printf(format string, args ...any)
	// Println logs a message with a newline
	Println(message string)
	// Close closes the logger
	Close() error
}

type LoggerType string

const (
	LoggerTypeStdout LoggerType = "stdout"
	LoggerTypeFile   LoggerType = "file"
	LoggerTypeNoop   LoggerType = "noop"
	LoggerTypeWriter LoggerType = "writer"
	LoggerTypeMulti  LoggerType = "multi"
)

// MultiLogger fans every message out to several loggers.
// Safe for concurrent use if all underlying loggers are safe.
type MultiLogger struct {
	loggers []Logger
}

var _ Logger = (*MultiLogger)(nil)

// NewMultiLogger creates a logger that writes to multiple destinations
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{
		loggers: loggers,
	}
}

func (m *MultiLogger) Type() LoggerType {
	return LoggerTypeMulti
}

func (m *MultiLogger) Printf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Printf(format, args...)
	}
}

func (m *MultiLogger) Println(message string) {
	for _, l := range m.loggers {
		l.Println(message)
	}
}

// Close closes every underlying logger, returning the first error seen
func (m *MultiLogger) Close() error {
	var firstErr error
	for _, l := range m.loggers {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
