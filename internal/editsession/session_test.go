package editsession

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enveil/enveil/internal/envelope"
	apperrors "github.com/enveil/enveil/internal/errors"
	logger "github.com/enveil/enveil/internal/logging"
	"github.com/enveil/enveil/internal/transcode"
)

func testKeys(t *testing.T) envelope.KeyPair {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate test key: %v", err)
	}
	return envelope.KeyPair{Public: &key.PublicKey, Private: key}
}

// writeScript creates an executable shell script standing in for an editor.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	// #nosec G306 -- the fake editor must be executable.
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write editor script: %v", err)
	}
	return path
}

// sealedDocument encrypts a plaintext document for the given keys and
// writes it to disk, returning the path.
func sealedDocument(t *testing.T, dir string, keys envelope.KeyPair, plain string) string {
	t.Helper()
	tc := transcode.New(keys)
	sealed, err := tc.EncryptDocument(plain)
	if err != nil {
		t.Fatalf("Failed to encrypt fixture document: %v", err)
	}
	path := filepath.Join(dir, "secrets.yaml")
	if err := os.WriteFile(path, []byte(sealed), 0600); err != nil {
		t.Fatalf("Failed to write fixture document: %v", err)
	}
	return path
}

func TestRun_EditorChangesContent(t *testing.T) {
	dir := t.TempDir()
	keys := testKeys(t)
	docPath := sealedDocument(t, dir, keys, "password: ENC![oldpass]!ENC\n")

	before, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	editor := writeScript(t, dir, "editor.sh",
		`printf 'password: ENC![newpass]!ENC\n' > "$1"`)

	session := New(docPath, keys, editor, logger.Logger{})
	if err := session.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	after, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if string(after) == string(before) {
		t.Error("Expected document ciphertext to change")
	}

	tc := transcode.New(keys)
	opened, err := tc.DecryptDocument(string(after))
	if err != nil {
		t.Fatalf("Failed to decrypt updated document: %v", err)
	}
	if opened != "password: ENC![newpass]!ENC\n" {
		t.Errorf("Unexpected decrypted content: %q", opened)
	}

	if _, err := os.Stat(session.TempPath()); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be removed, stat err: %v", err)
	}
}

func TestRun_EditorMakesNoChange(t *testing.T) {
	dir := t.TempDir()
	keys := testKeys(t)
	docPath := sealedDocument(t, dir, keys, "token: ENC![abc]!ENC\n")

	before, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	editor := writeScript(t, dir, "editor.sh", "exit 0")

	session := New(docPath, keys, editor, logger.Logger{})
	err = session.Run()
	if !errors.Is(err, apperrors.ErrNoChange) {
		t.Fatalf("Expected ErrNoChange, got: %v", err)
	}

	after, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if string(after) != string(before) {
		t.Error("Expected original document to be untouched")
	}

	if _, err := os.Stat(session.TempPath()); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be removed, stat err: %v", err)
	}
}

func TestRun_EditorEmptiesFile(t *testing.T) {
	dir := t.TempDir()
	keys := testKeys(t)
	docPath := sealedDocument(t, dir, keys, "token: ENC![abc]!ENC\n")

	before, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	editor := writeScript(t, dir, "editor.sh", `: > "$1"`)

	session := New(docPath, keys, editor, logger.Logger{})
	err = session.Run()
	if !errors.Is(err, apperrors.ErrEmptyContent) {
		t.Fatalf("Expected ErrEmptyContent, got: %v", err)
	}

	after, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if string(after) != string(before) {
		t.Error("Expected original document to be untouched")
	}
}

func TestRun_EditorReplacesInode(t *testing.T) {
	dir := t.TempDir()
	keys := testKeys(t)
	docPath := sealedDocument(t, dir, keys, "k: ENC![v1]!ENC\n")

	// Write-to-sibling-then-rename, the way vim and friends save.
	editor := writeScript(t, dir, "editor.sh",
		`printf 'k: ENC![v2]!ENC\n' > "$1.new" && mv "$1.new" "$1"`)

	session := New(docPath, keys, editor, logger.Logger{})
	if err := session.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	tc := transcode.New(keys)
	after, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	opened, err := tc.DecryptDocument(string(after))
	if err != nil {
		t.Fatalf("Failed to decrypt updated document: %v", err)
	}
	if opened != "k: ENC![v2]!ENC\n" {
		t.Errorf("Unexpected decrypted content: %q", opened)
	}
}

func TestRun_EditorExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	keys := testKeys(t)
	docPath := sealedDocument(t, dir, keys, "k: ENC![v]!ENC\n")

	before, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	editor := writeScript(t, dir, "editor.sh",
		`printf 'k: ENC![changed]!ENC\n' > "$1"; exit 3`)

	session := New(docPath, keys, editor, logger.Logger{})
	err = session.Run()
	if !errors.Is(err, apperrors.ErrEditorFailed) {
		t.Fatalf("Expected ErrEditorFailed, got: %v", err)
	}

	// No re-encryption on editor failure, even though content changed.
	after, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if string(after) != string(before) {
		t.Error("Expected original document to be untouched after editor failure")
	}

	if _, err := os.Stat(session.TempPath()); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be removed after abort, stat err: %v", err)
	}
}

func TestRun_MissingDocument(t *testing.T) {
	keys := testKeys(t)
	session := New(filepath.Join(t.TempDir(), "absent.yaml"), keys, "true", logger.Logger{})
	err := session.Run()
	if !errors.Is(err, apperrors.ErrDocumentNotFound) {
		t.Fatalf("Expected ErrDocumentNotFound, got: %v", err)
	}
}

func TestRun_UndecryptableDocumentWritesNothing(t *testing.T) {
	dir := t.TempDir()
	keys := testKeys(t)
	other := testKeys(t)

	// Document encrypted to a different key.
	docPath := sealedDocument(t, dir, other, "k: ENC![v]!ENC\n")

	editor := writeScript(t, dir, "editor.sh", "exit 0")
	session := New(docPath, keys, editor, logger.Logger{})
	err := session.Run()
	if !errors.Is(err, apperrors.ErrDecryptFailed) {
		t.Fatalf("Expected ErrDecryptFailed, got: %v", err)
	}
	// Decryption failed before any temp file was created.
	if session.TempPath() != "" {
		t.Errorf("Expected no temp file before decryption succeeded, got: %s", session.TempPath())
	}
}

func TestRun_PreservesDocumentMode(t *testing.T) {
	dir := t.TempDir()
	keys := testKeys(t)
	docPath := sealedDocument(t, dir, keys, "k: ENC![v]!ENC\n")
	if err := os.Chmod(docPath, 0640); err != nil {
		t.Fatalf("Failed to chmod fixture: %v", err)
	}

	editor := writeScript(t, dir, "editor.sh", `printf 'k: ENC![w]!ENC\n' > "$1"`)
	session := New(docPath, keys, editor, logger.Logger{})
	if err := session.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	info, err := os.Stat(docPath)
	if err != nil {
		t.Fatalf("Failed to stat document: %v", err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("Expected mode 0640 preserved, got: %o", info.Mode().Perm())
	}
}

func TestResolveEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	// Explicit override wins.
	got, err := ResolveEditor("myeditor --wait")
	if err != nil || got != "myeditor --wait" {
		t.Errorf("Expected override to win, got: %q, %v", got, err)
	}

	// VISUAL beats EDITOR.
	t.Setenv("VISUAL", "visual-editor")
	t.Setenv("EDITOR", "plain-editor")
	got, err = ResolveEditor("")
	if err != nil || got != "visual-editor" {
		t.Errorf("Expected VISUAL to win, got: %q, %v", got, err)
	}

	t.Setenv("VISUAL", "")
	got, err = ResolveEditor("")
	if err != nil || got != "plain-editor" {
		t.Errorf("Expected EDITOR, got: %q, %v", got, err)
	}
}

func TestResolveEditor_ProbesPath(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	dir := t.TempDir()
	writeScript(t, dir, "vi", "exit 0")
	t.Setenv("PATH", dir)

	got, err := ResolveEditor("")
	if err != nil {
		t.Fatalf("Expected probe to find vi, got: %v", err)
	}
	if !strings.HasSuffix(got, "/vi") {
		t.Errorf("Expected probed vi path, got: %q", got)
	}
}

func TestResolveEditor_NoneFound(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	t.Setenv("PATH", t.TempDir())

	_, err := ResolveEditor("")
	if !errors.Is(err, apperrors.ErrNoEditor) {
		t.Errorf("Expected ErrNoEditor, got: %v", err)
	}
}
