package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogBuffer collects the JSON lines written by a test logger. It is safe
// for concurrent writers.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// GetLogEntries decodes every entry written so far, oldest first.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(b.String()))

	var entries []map[string]any
	for {
		var entry map[string]any
		err := dec.Decode(&entry)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse log entry %d: %w", len(entries)+1, err)
		}
		entries = append(entries, entry)
	}
}

// EntriesWithMessage returns the entries whose msg is msg.
func (b *TestLogBuffer) EntriesWithMessage(msg string) ([]map[string]any, error) {
	all, err := b.GetLogEntries()
	if err != nil {
		return nil, err
	}

	var matched []map[string]any
	for _, e := range all {
		if e[slog.MessageKey] == msg {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// NewTestLogger returns a debug-level JSON logger writing into a fresh
// buffer. The slog default is left alone. If the test fails, the captured
// logs are printed with it.
func NewTestLogger(t *testing.T) (*slog.Logger, *TestLogBuffer) {
	t.Helper()

	buf := &TestLogBuffer{}
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("captured logs:\n%s", buf.String())
		}
	})

	l := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, buf
}

// RequireEntry fails the test now unless an entry with message msg was
// logged, and returns the first one.
func RequireEntry(t *testing.T, buf *TestLogBuffer, msg string) map[string]any {
	t.Helper()

	entries, err := buf.EntriesWithMessage(msg)
	if err != nil {
		t.Fatalf("failed to parse log entries: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("no log entry with message %q; logs:\n%s", msg, buf.String())
	}
	return entries[0]
}
