// Package log holds the stageguard debug log. Nothing logged here reaches the
// console; messages are buffered until a log file is chosen, then flushed to
// it, or dropped when no file is configured.
package log

import (
	"io"
	"log"
	"os"
	"sync"
)

// EnvFile names the environment variable that selects a debug log file.
const EnvFile = "STAGEGUARD_DEBUG_LOG"

// DebugLogger is an io.Writer that buffers until SetFile decides where the
// output goes.
type DebugLogger struct {
	mu      sync.Mutex
	out     io.WriteCloser
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "stageguard: ", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (l *DebugLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.discard:
		return len(p), nil
	case l.out != nil:
		return l.out.Write(p)
	}

	// p may be reused by the caller
	l.buffer = append(l.buffer, p...)
	return len(p), nil
}

// SetFile sends buffered and future messages to path, appending.
// An empty path drops everything.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	globalDebugLogger.closeLocked()

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.out = f
	globalDebugLogger.discard = false
	if len(globalDebugLogger.buffer) > 0 {
		_, _ = f.Write(globalDebugLogger.buffer)
		globalDebugLogger.buffer = nil
	}
	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Close closes the debug log file if one is open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	return globalDebugLogger.closeLocked()
}

func (l *DebugLogger) closeLocked() error {
	if l.out == nil {
		return nil
	}
	err := l.out.Close()
	l.out = nil
	return err
}
