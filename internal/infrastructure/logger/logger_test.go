package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learningjournal/core/internal/infrastructure/config"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	l, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: "file", Filename: path})
	require.NoError(t, err)

	l.WithComponent("test").LogRecordChange("reflections", "create", "abc")
	l.WithRequestID("req-1").LogHTTPRequest("GET", "/api/reflections", "127.0.0.1", 500, 1.5, errors.New("boom"))
	l.Debugw("hidden")
	_ = l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"record_id":"abc"`)
	assert.Contains(t, lines[0], `"component":"test"`)
	assert.Contains(t, lines[1], `"request_id":"req-1"`)
	assert.Contains(t, lines[1], `"error":"boom"`)

	for _, line := range lines {
		assert.Contains(t, line, `"caller":"logger/logger_test.go:`, "caller must be the call site, not the helper")
	}
}

func TestWithError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	l, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: "file", Filename: path})
	require.NoError(t, err)

	l.WithError(errors.New("disk full")).Errorw("Failed to save")
	_ = l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":"disk full"`)
}
