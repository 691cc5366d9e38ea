package editsession

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/enveil/enveil/internal/envelope"
	apperrors "github.com/enveil/enveil/internal/errors"
	logger "github.com/enveil/enveil/internal/logging"
	"github.com/enveil/enveil/internal/transcode"
)

// Session owns one edit-in-place invocation: decrypt the document to an
// exclusive temp file, run the editor, reload, and either re-encrypt and
// replace the document or abort. The temp file's storage is scrubbed on
// every exit path once plaintext has touched disk.
type Session struct {
	DocPath    string
	Keys       envelope.KeyPair
	Editor     string
	BlockWidth int
	Log        logger.Logger

	tempPath string
}

// New prepares a session. The editor must already be resolved (see
// ResolveEditor); sessions never consult ambient state themselves.
func New(docPath string, keys envelope.KeyPair, editor string, log logger.Logger) *Session {
	return &Session{
		DocPath: docPath,
		Keys:    keys,
		Editor:  editor,
		Log:     log,
	}
}

// TempPath returns the path of the session's temporary plaintext file. It
// no longer exists once Run returns.
func (s *Session) TempPath() string {
	return s.tempPath
}

// Run drives the session to completion. It returns nil only when the
// document was re-encrypted and written; ErrNoChange and ErrEmptyContent
// report soft aborts, anything else is a hard failure. In every case the
// temp file has been scrubbed and removed by the time Run returns.
func (s *Session) Run() (err error) {
	original, readErr := os.ReadFile(s.DocPath)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return fmt.Errorf("%w: %s", apperrors.ErrDocumentNotFound, s.DocPath)
		}
		return fmt.Errorf("failed to read document: %w", readErr)
	}
	info, statErr := os.Stat(s.DocPath)
	if statErr != nil {
		return fmt.Errorf("failed to stat document: %w", statErr)
	}

	tc := transcode.New(s.Keys)
	if s.BlockWidth > 0 {
		tc.BlockWidth = s.BlockWidth
	}

	plain, err := tc.DecryptDocument(string(original))
	if err != nil {
		// Nothing has been written anywhere yet.
		return err
	}

	tmp, err := os.CreateTemp("", "enveil-edit-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	s.tempPath = tmp.Name()

	// From here on plaintext is on disk: scrub on every exit path. The
	// scrub covers the larger of the pre- and post-edit sizes, since the
	// editor may have grown the file.
	scrubSize := int64(len(plain))
	defer func() {
		if scrubErr := Scrub(s.tempPath, scrubSize); scrubErr != nil {
			s.Log.WarnfAlways("failed to scrub temp file %s: %v", s.tempPath, scrubErr)
			if err == nil {
				err = scrubErr
			}
		}
	}()

	if _, err := tmp.Write([]byte(plain)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	s.Log.Debugf("Launching editor %s on %s", s.Editor, s.tempPath)
	if err := runEditor(s.Editor, s.tempPath); err != nil {
		return err
	}

	// Reload by path, not from the original handle: many editors replace
	// the file rather than writing through it.
	edited, err := os.ReadFile(s.tempPath)
	if err != nil {
		return fmt.Errorf("failed to reload edited file: %w", err)
	}
	if int64(len(edited)) > scrubSize {
		scrubSize = int64(len(edited))
	}

	if len(edited) == 0 {
		return apperrors.ErrEmptyContent
	}
	if bytes.Equal(edited, []byte(plain)) {
		return apperrors.ErrNoChange
	}

	sealed, err := tc.EncryptDocument(string(edited))
	if err != nil {
		return err
	}

	if err := replaceFile(s.DocPath, []byte(sealed), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

// replaceFile atomically replaces path's contents via a rename from a temp
// file in the same directory, preserving the original mode.
func replaceFile(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".enveil-write-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
