package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/enveil/enveil/internal/configs"
	"github.com/google/uuid"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	Session   string `json:"session"` // UUID of the invocation.
	Operation string `json:"op"`      // Operation name: encrypt, decrypt, edit, createkeys.

	// Optional fields depending on operation.
	Document string `json:"document,omitempty"` // Path of the document acted on.
	Outcome  string `json:"outcome,omitempty"`  // written, unchanged, aborted.
	Markers  int    `json:"markers,omitempty"`  // Number of markers transformed.
}

// NewSessionID returns a fresh session identifier for one invocation.
func NewSessionID() string {
	return uuid.New().String()
}

// Log appends an entry to the audit log.
// If logging fails, the entry is dropped; operations must not fail just
// because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.Session == "" {
		entry.Session = NewSessionID()
	}

	statePath := configs.UserEnveilSettings.UserStatePath
	if err := os.MkdirAll(statePath, 0700); err != nil {
		return
	}

	logPath := filepath.Join(statePath, "audit.jsonl")

	// Open file for appending (create if doesn't exist). The log records
	// operations only, never payloads, so 0600 is about hygiene not secrecy.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}
