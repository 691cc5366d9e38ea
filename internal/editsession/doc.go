// Package editsession implements enveil's edit-in-place workflow.
//
// A session decrypts a whole document to an exclusive, mode-restricted
// temporary file, hands control to the user's editor, and reloads the file
// by path afterwards (editors may replace the inode rather than write
// through it). Changed content is re-encrypted and atomically swapped into
// the original document. Whatever happens after plaintext reaches disk,
// the temp file's storage is overwritten with four fixed byte patterns and
// synced between passes before the file is removed.
package editsession
