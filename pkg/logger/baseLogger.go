package logger

import (
	"fmt"
	"io"
	"log"
	"sync"
)

const (
	levelInfo  = ""
	levelWarn  = "WARN "
	levelError = "ERROR "
)

type BaseLogger struct {
	mu      sync.Mutex
	prefix  string
	writer  io.Writer
	console bool
}

// NewLogger writes every line to writer (when set) and duplicates it to the standard logger.
func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	return &BaseLogger{
		writer:  writer,
		prefix:  prefix,
		console: true,
	}
}

// NewDiscardLogger drops everything. Used by tests and by components built without a logger.
func NewDiscardLogger() *BaseLogger {
	return &BaseLogger{writer: io.Discard}
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.write(levelInfo, format, v...)
}

func (l *BaseLogger) Warn(format string, v ...interface{}) {
	l.write(levelWarn, format, v...)
}

func (l *BaseLogger) Error(format string, v ...interface{}) {
	l.write(levelError, format, v...)
}

func (l *BaseLogger) write(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := level + l.prefix + " " + fmt.Sprintf(format, v...)
	if l.writer != nil {
		fmt.Fprintln(l.writer, message)
	}
	if l.console {
		log.Print(message)
	}
}

func (l *BaseLogger) WithPrefix(extraPrefix string) *BaseLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &BaseLogger{
		writer:  l.writer,
		prefix:  l.prefix + " " + extraPrefix,
		console: l.console,
	}
}

func (l *BaseLogger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}

func (l *BaseLogger) SetWriter(writer io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = writer
}
