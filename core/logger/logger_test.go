package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_DefaultLevel_Info(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Output: buf})

	l.Info("test info")
	if !strings.Contains(buf.String(), "test info") {
		t.Error("Info message should be logged at default level")
	}

	buf.Reset()

	l.Debug("test debug")
	if strings.Contains(buf.String(), "test debug") {
		t.Error("Debug message should not be logged at default level")
	}
}

func TestNew_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Debug: true, Output: buf})

	l.Debug("test debug message")
	if !strings.Contains(buf.String(), "test debug message") {
		t.Error("Debug message should be logged when Debug=true")
	}
}

func TestNew_QuietLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Quiet: true, Debug: true, Output: buf})

	l.Warn("test warn")
	if strings.Contains(buf.String(), "test warn") {
		t.Error("Warn message should not be logged when Quiet=true")
	}

	l.Error("test error")
	if !strings.Contains(buf.String(), "test error") {
		t.Error("Error message should be logged when Quiet=true")
	}
}

func TestNew_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{JSON: true, Output: buf})

	l.Info("test message", "url", "https://example.org")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("JSON output should decode: %v", err)
	}
	if entry["msg"] != "test message" {
		t.Errorf("msg = %v, want %q", entry["msg"], "test message")
	}
	if entry["url"] != "https://example.org" {
		t.Errorf("url = %v, want attribute to be kept", entry["url"])
	}
}

func TestNew_Color(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Color: true, Output: buf})

	l.Info("colored message", "table", 1)
	out := buf.String()
	if !strings.Contains(out, "colored message") || !strings.Contains(out, "INF") {
		t.Errorf("unexpected colored output: %q", out)
	}

	buf.Reset()
	l = New(Options{Color: true, JSON: true, Output: buf})
	l.Info("json wins")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("JSON should take precedence over Color, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	// Must not panic and must not be enabled for errors.
	l.Error("dropped")
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("Discard logger should not be enabled at any standard level")
	}
}
