package errors

import "errors"

// Key errors indicate missing or unusable key material.
var (
	// ErrKeyLoad indicates key material could not be loaded or parsed.
	ErrKeyLoad = errors.New("failed to load key material")

	// ErrPrivateKeyNotFound indicates the private key file could not be located.
	ErrPrivateKeyNotFound = errors.New("private key not found")

	// ErrCertificateNotFound indicates the public certificate could not be located.
	ErrCertificateNotFound = errors.New("public certificate not found")
)

// Cryptographic errors indicate failures during envelope operations.
var (
	// ErrDecryptFailed indicates an envelope could not be decrypted.
	ErrDecryptFailed = errors.New("failed to decrypt envelope")

	// ErrEncryptFailed indicates a value could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt value")

	// ErrMarkerFormat indicates input claimed to be an encrypted value but
	// does not carry the expected marker delimiters.
	ErrMarkerFormat = errors.New("value is not a valid encryption marker")
)

// Document errors indicate issues with the document being transformed.
var (
	// ErrDocumentNotFound indicates the target document could not be located.
	ErrDocumentNotFound = errors.New("document not found")
)

// Edit-session errors cover the interactive edit workflow.
var (
	// ErrNoEditor indicates no usable editor could be resolved.
	ErrNoEditor = errors.New("no usable editor found")

	// ErrEditorFailed indicates the editor process exited with a failure status.
	ErrEditorFailed = errors.New("editor exited with non-zero status")

	// ErrNoChange indicates the edited content is identical to the original.
	ErrNoChange = errors.New("no changes were made")

	// ErrEmptyContent indicates the editor left the file empty.
	ErrEmptyContent = errors.New("edited content is empty")
)
