package editsession

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestScrubFileOverwritesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	secret := []byte("this plaintext must not survive on disk")
	if err := os.WriteFile(path, secret, 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	if err := scrubFile(f, int64(len(secret))); err != nil {
		t.Fatalf("scrubFile failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file back: %v", err)
	}
	if bytes.Contains(data, []byte("plaintext")) {
		t.Error("Plaintext survived scrubbing")
	}
	// The final pass writes zeros.
	for i, b := range data {
		if b != 0x00 {
			t.Fatalf("Expected zero at offset %d after final pass, got: 0x%02X", i, b)
		}
	}
}

func TestScrubFileCoversRequestedSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grown.txt")
	// File is shorter than the requested scrub size; the editor may have
	// truncated it after growing. Scrub must still cover the larger size.
	if err := os.WriteFile(path, []byte("short"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	if err := scrubFile(f, 100*1024); err != nil {
		t.Fatalf("scrubFile failed: %v", err)
	}
	f.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Size() != 100*1024 {
		t.Errorf("Expected scrub to extend file to 102400 bytes, got: %d", info.Size())
	}
}

func TestScrubRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	if err := os.WriteFile(path, []byte("secret"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := Scrub(path, 6); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected file to be removed, stat err: %v", err)
	}
}

func TestScrubMissingFileIsNoop(t *testing.T) {
	if err := Scrub(filepath.Join(t.TempDir(), "never-existed"), 42); err != nil {
		t.Errorf("Expected nil for missing file, got: %v", err)
	}
}

func TestScrubZeroSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := Scrub(path, 0); err != nil {
		t.Errorf("Expected nil for zero size, got: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected file to be removed, stat err: %v", err)
	}
}
