package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDebugLogger(t *testing.T) {
	t.Helper()

	globalDebugLogger.mu.Lock()
	_ = globalDebugLogger.closeLocked()
	globalDebugLogger.buffer = nil
	globalDebugLogger.discard = false
	globalDebugLogger.mu.Unlock()

	t.Cleanup(func() {
		_ = Close()
	})
}

func TestBufferedMessagesFlushToFile(t *testing.T) {
	resetDebugLogger(t)

	Printf("status: %d entries", 3)

	logPath := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(logPath))
	Printf("after open")
	require.NoError(t, Close())

	data, err := os.ReadFile(logPath) //nolint:gosec
	require.NoError(t, err)
	assert.Contains(t, string(data), "stageguard: ")
	assert.Contains(t, string(data), "status: 3 entries")
	assert.Contains(t, string(data), "after open")
}

func TestSetFileEmptyDiscards(t *testing.T) {
	resetDebugLogger(t)

	Printf("dropped")
	require.NoError(t, SetFile(""))
	Printf("also dropped")

	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	assert.True(t, globalDebugLogger.discard)
	assert.Empty(t, globalDebugLogger.buffer)
}

func TestSetFileFailureDiscardsLogs(t *testing.T) {
	resetDebugLogger(t)

	Printf("pending")
	missing := filepath.Join(t.TempDir(), "no-such-dir", "debug.log")
	require.Error(t, SetFile(missing))

	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	assert.True(t, globalDebugLogger.discard)
	assert.Empty(t, globalDebugLogger.buffer)
}

func TestCloseWithoutFile(t *testing.T) {
	resetDebugLogger(t)
	assert.NoError(t, Close())
}
