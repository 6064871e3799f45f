package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls which messages are emitted
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu       sync.Mutex
	minLevel = LevelInfo

	debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime)
	infoLogger  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	warnLogger  = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
)

// ParseLevel converts a level name (case-insensitive) to a Level.
// Unknown names fall back to info.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// SetLevel sets the minimum emitted level for the process.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

func enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return l >= minLevel
}

// Debugf logs a debug-level message.
func Debugf(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		debugLogger.Printf(format, v...)
	}
}

// Infof logs an info-level message.
func Infof(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		infoLogger.Printf(format, v...)
	}
}

// Warnf logs a warning-level message.
func Warnf(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		warnLogger.Printf(format, v...)
	}
}

// Errorf logs an error-level message to stderr.
func Errorf(format string, v ...interface{}) {
	if enabled(LevelError) {
		errorLogger.Printf(format, v...)
	}
}
