package logger

import (
	"log"
	"os"
)

// FileLogger appends to a log file. O_APPEND keeps writes atomic across
// processes, and log.Logger's internal mutex covers goroutines.
type FileLogger struct {
	logger *log.Logger
	file   *os.File
}

var _ Logger = (*FileLogger)(nil)

// NewFileLogger creates a logger that appends to the file at path,
// creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	return &FileLogger{
		logger: log.New(file, "", log.LstdFlags),
		file:   file,
	}, nil
}

func (f *FileLogger) Type() LoggerType {
	return LoggerTypeFile
}

func (f *FileLogger) Printf(format string, args ...any) {
	f.logger.Printf(format, args...)
}

func (f *FileLogger) Println(message string) {
	f.logger.Println(message)
}

// Close closes the underlying file. Should be called when done with the logger.
func (f *FileLogger) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}
