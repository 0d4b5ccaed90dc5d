package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: LevelWarn})

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "ERROR", entries[1].Level)
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: LevelDebug, AddCaller: true}).
		WithSessionID("abc").
		With(Component("cli"))

	l.Info("student added", RollNumber(7), Subject("Math"), Err(errors.New("boom")))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "student added", e.Message)
	assert.Equal(t, "abc", e.Fields[SessionIDKey])
	assert.Equal(t, "cli", e.Fields["component"])
	assert.Equal(t, float64(7), e.Fields["roll_number"])
	assert.Equal(t, "boom", e.Fields["error"])
	assert.True(t, strings.HasPrefix(e.Caller, "logger_test.go:"))
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Options{Output: &buf, Level: LevelInfo})
	_ = parent.With(Component("child"))

	parent.Info("plain")
	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Fields)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestContextPropagation(t *testing.T) {
	l := Nop()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Equal(t, LevelError+1, fallback.level)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradebook.log")
	l, closeFn, err := Open(path, LevelInfo)
	require.NoError(t, err)

	l.Info("hello", Path("x.json"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"path":"x.json"`)
}

func TestOpen_Stderr(t *testing.T) {
	l, closeFn, err := Open("-", LevelInfo)
	require.NoError(t, err)
	assert.NotNil(t, l)
	assert.NoError(t, closeFn())
}
