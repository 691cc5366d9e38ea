package editsession

import (
	"fmt"
	"os"
)

// scrubPatterns are written over the temp file's storage in order. The
// final pass leaves zeros behind.
var scrubPatterns = [4]byte{0xFF, 0x55, 0xAA, 0x00}

const scrubChunkSize = 32 * 1024

// Scrub overwrites size bytes of the file's on-disk storage with each
// pattern in turn, forcing a flush to stable storage between passes, then
// removes the file. The editor may have replaced the inode, so the file is
// opened fresh by path.
func Scrub(path string, size int64) error {
	// #nosec G304 -- path is the session's own temp file.
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open temp file for scrubbing: %w", err)
	}

	scrubErr := scrubFile(f, size)
	closeErr := f.Close()

	if err := os.Remove(path); err != nil && scrubErr == nil {
		scrubErr = fmt.Errorf("failed to remove temp file: %w", err)
	}
	if scrubErr != nil {
		return scrubErr
	}
	return closeErr
}

// scrubFile performs the overwrite passes on an open file without removing
// it. Split out so tests can inspect the on-disk bytes after scrubbing.
func scrubFile(f *os.File, size int64) error {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, scrubChunkSize)
	for _, pattern := range scrubPatterns {
		for i := range buf {
			buf[i] = pattern
		}
		for off := int64(0); off < size; off += scrubChunkSize {
			n := scrubChunkSize
			if remaining := size - off; remaining < int64(n) {
				n = int(remaining)
			}
			if _, err := f.WriteAt(buf[:n], off); err != nil {
				return fmt.Errorf("scrub pass 0x%02X failed: %w", pattern, err)
			}
		}
		if err := f.Sync(); err != nil {
			return fmt.Errorf("scrub pass 0x%02X failed to sync: %w", pattern, err)
		}
	}
	return nil
}
