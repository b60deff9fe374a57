package logger

import (
	"os"
	"sync"
)

// Accepted values for log.level and log.format.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"

	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// Options selects the level and encoding of the process logger. Zero values
// mean info level, console encoding.
type Options struct {
	Level  string
	Format string
}

var (
	processLogger *Logger
	initOnce      sync.Once
)

// Init builds the process logger on stdout the first time it is called.
// Later calls ignore opts and hand back the same instance.
func Init(opts Options) *Logger {
	initOnce.Do(func() {
		processLogger = New(opts, os.Stdout)
	})
	return processLogger
}
