package diag

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
	NewLogger(&buf, true).Debug("shown", "k", "v")
	if !strings.Contains(buf.String(), "msg=shown") || !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestOpenLogFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "app.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile failed: %v", err)
	}
	logger := NewLogger(f, false)
	logger.Error("weather fetch failed", "location", "Paris")
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "location=Paris") {
		t.Fatalf("unexpected log contents: %q", data)
	}
}
