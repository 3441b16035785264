package logger

type Logger interface {
	Log(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	SetPrefix(prefix string)
}

// OrDiscard returns log, or a discarding logger when log is nil.
func OrDiscard(log Logger) Logger {
	if log == nil {
		return NewDiscardLogger()
	}
	return log
}
