package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "formwiz.log")

	logger, err := New(path, "info", false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("form saved", zap.String("form_id", "form1_1"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "form saved" || entry["form_id"] != "form1_1" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["logger"] != "formwiz" {
		t.Errorf("logger name = %v, want formwiz", entry["logger"])
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := New(path, "error", true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Error("verbose logger should enable debug")
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New("", "chatty", false); err == nil {
		t.Error("expected error for unknown level")
	}
}
