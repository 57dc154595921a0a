package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	verbose  bool
	output   io.Writer = os.Stderr
	logger   *slog.Logger
	levelVar = new(slog.LevelVar)
)

func init() {
	logger = newLogger(output)
	refreshLevel()
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// DebugEnabled returns true if debug mode is enabled via TEMPO_DEBUG or SetVerbose
func DebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose || os.Getenv("TEMPO_DEBUG") != ""
}

// SetVerbose forces debug output on or off regardless of TEMPO_DEBUG
func SetVerbose(enabled bool) {
	mu.Lock()
	verbose = enabled
	mu.Unlock()
	refreshLevel()
}

// SetOutput redirects log output, mostly for tests
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	logger = newLogger(w)
	mu.Unlock()
}

// Logger returns the shared structured logger
func Logger() *slog.Logger {
	refreshLevel()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func refreshLevel() {
	if DebugEnabled() {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		Logger().Debug(fmt.Sprintf(format, args...))
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		Logger().Debug(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	}
}

// Warnf logs a recoverable problem, such as a stored document that had to be discarded
func Warnf(format string, args ...interface{}) {
	Logger().Warn(fmt.Sprintf(format, args...))
}

// Errorf logs an error that is not returned to the caller
func Errorf(format string, args ...interface{}) {
	Logger().Error(fmt.Sprintf(format, args...))
}
