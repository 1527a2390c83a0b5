package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	Trace("session.next", map[string]interface{}{"index": 2})
	Close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatalf("expected one trace line")
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Event != "session.next" {
		t.Fatalf("expected event session.next, got %q", entry.Event)
	}
	if entry.Payload["index"] != float64(2) {
		t.Fatalf("expected index 2, got %v", entry.Payload["index"])
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	Configure(path)
	SetTraceEnabled(false)
	t.Cleanup(func() { Configure("") })

	Trace("ignored", nil)
	Close()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, stat err = %v", err)
	}
}

func TestErrorAppendsMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(errors.New("rename failed"))
	Error(nil)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 1 {
		t.Fatalf("expected a single line, got %d:\n%s", got, data)
	}
	if !strings.Contains(string(data), "rename failed") {
		t.Fatalf("expected error text in log, got %q", data)
	}
}

func TestTraceEnabledFollowsToggle(t *testing.T) {
	t.Cleanup(func() { SetTraceEnabled(false) })
	SetTraceEnabled(true)
	if !TraceEnabled() {
		t.Fatalf("expected tracing enabled")
	}
	SetTraceEnabled(false)
	if TraceEnabled() {
		t.Fatalf("expected tracing disabled")
	}
}

func TestConfigureSetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sorter.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })
	if Path() != path {
		t.Fatalf("expected path %s, got %s", path, Path())
	}
	Configure("  ")
	if Path() != defaultLogPath() {
		t.Fatalf("expected default path, got %s", Path())
	}
}
