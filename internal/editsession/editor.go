package editsession

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	apperrors "github.com/enveil/enveil/internal/errors"
)

// fallbackEditors are probed in order when no override or environment
// variable names an editor.
var fallbackEditors = []string{"vi", "vim", "nano", "emacs"}

// ResolveEditor decides which editor command a session will run, once, at
// session start. Resolution order: explicit override, $VISUAL, $EDITOR,
// then the first fallback editor found on PATH.
func ResolveEditor(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	for _, name := range fallbackEditors {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", apperrors.ErrNoEditor
}

// editorCommand builds the child process for an editor invocation. The
// editor value may carry arguments ("code --wait"); the file path is
// appended last.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return nil, apperrors.ErrNoEditor
	}
	// #nosec G204 -- invoking the user's own editor is the point of this command.
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// runEditor blocks until the editor exits. A non-zero exit status is the
// editor telling us to abort.
func runEditor(editor, path string) error {
	cmd, err := editorCommand(editor, path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrEditorFailed, err)
	}
	return nil
}
