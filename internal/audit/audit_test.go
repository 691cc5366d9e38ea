package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enveil/enveil/internal/configs"
)

func withStateDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	saved := configs.UserEnveilSettings
	configs.UserEnveilSettings = &configs.UserSettings{
		UserKeysPath:    filepath.Join(tmpDir, "keys"),
		UserConfigsPath: tmpDir,
		UserStatePath:   filepath.Join(tmpDir, "state"),
	}
	t.Cleanup(func() { configs.UserEnveilSettings = saved })
	return filepath.Join(tmpDir, "state")
}

func TestLog_CreatesFile(t *testing.T) {
	stateDir := withStateDir(t)

	Log(Entry{Operation: "edit", Document: "secrets.yaml", Outcome: "written"})

	logPath := filepath.Join(stateDir, "audit.jsonl")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Expected audit log to exist: %v", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("Failed to parse audit entry: %v", err)
	}
	if entry.Operation != "edit" {
		t.Errorf("Expected op edit, got: %s", entry.Operation)
	}
	if entry.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
	if entry.Session == "" {
		t.Error("Expected session id to be set")
	}
}

func TestLog_Appends(t *testing.T) {
	stateDir := withStateDir(t)

	Log(Entry{Operation: "encrypt", Document: "a.yaml"})
	Log(Entry{Operation: "decrypt", Document: "b.yaml"})

	data, err := os.ReadFile(filepath.Join(stateDir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("Expected audit log to exist: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(lines))
	}
}

func TestNewSessionID_Unique(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	if a == b {
		t.Error("Expected distinct session ids")
	}
}
