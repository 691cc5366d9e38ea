package transcode

import (
	"fmt"
	"strings"

	"github.com/enveil/enveil/internal/configs"
	"github.com/enveil/enveil/internal/envelope"
	apperrors "github.com/enveil/enveil/internal/errors"
	"github.com/enveil/enveil/internal/marker"
)

// Transcoder rewrites every marker of one direction in a document into the
// opposite direction, leaving all other text untouched.
type Transcoder struct {
	Keys envelope.KeyPair

	// BlockWidth is the maximum content width of re-flowed block
	// ciphertext lines, excluding the indent.
	BlockWidth int
}

// New returns a Transcoder with the default block width.
func New(keys envelope.KeyPair) *Transcoder {
	return &Transcoder{Keys: keys, BlockWidth: configs.DefaultBlockWidth}
}

// DecryptDocument replaces every encrypted marker with its decrypted form.
// Blocks are resolved before strings; a block's payload would itself
// satisfy the string pattern, so the order is a correctness requirement.
// The transform is computed fully in memory: a failing marker aborts the
// whole operation and no partial document is ever emitted.
func (t *Transcoder) DecryptDocument(cipherText string) (string, error) {
	pass1, err := t.rewrite(cipherText, marker.Encrypted, marker.ShapeBlock)
	if err != nil {
		return "", err
	}
	return t.rewrite(pass1, marker.Encrypted, marker.ShapeString)
}

// EncryptDocument replaces every decrypted marker with its encrypted form,
// blocks before strings. Block ciphertext is re-flowed onto continuation
// lines carrying the marker's captured indent; string ciphertext collapses
// to a single line.
func (t *Transcoder) EncryptDocument(plainText string) (string, error) {
	pass1, err := t.rewrite(plainText, marker.Decrypted, marker.ShapeBlock)
	if err != nil {
		return "", err
	}
	return t.rewrite(pass1, marker.Decrypted, marker.ShapeString)
}

// EncryptValue encrypts a single raw value and renders it as an inline
// encrypted marker.
func (t *Transcoder) EncryptValue(plain string) (string, error) {
	sealed, err := envelope.Encrypt(t.Keys.Public, []byte(plain))
	if err != nil {
		return "", err
	}
	return marker.RenderEncryptedString(sealed), nil
}

// DecryptValue decrypts a single inline encrypted marker and returns the
// raw plaintext. Input that does not carry the ENC[...] delimiters fails
// with ErrMarkerFormat before any decryption is attempted.
func (t *Transcoder) DecryptValue(marked string) (string, error) {
	trimmed := strings.TrimSpace(marked)
	if !strings.HasPrefix(trimmed, "ENC[") || !strings.HasSuffix(trimmed, "]") {
		return "", fmt.Errorf("%w: %q", apperrors.ErrMarkerFormat, marked)
	}
	b64 := marker.StripWhitespace(trimmed[len("ENC[") : len(trimmed)-1])
	plain, err := envelope.Decrypt(t.Keys.Private, b64)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// rewrite runs one substitution pass over doc for a single direction and
// shape, transforming marker segments and passing literals through.
func (t *Transcoder) rewrite(doc string, dir marker.Direction, shape marker.Shape) (string, error) {
	var b strings.Builder
	b.Grow(len(doc))

	for _, seg := range marker.Scan(doc, dir, shape) {
		if seg.Marker == nil {
			b.WriteString(seg.Literal)
			continue
		}
		rendered, err := t.transform(seg.Marker)
		if err != nil {
			return "", err
		}
		b.WriteString(rendered)
	}
	return b.String(), nil
}

func (t *Transcoder) transform(m *marker.Marker) (string, error) {
	switch {
	case m.Direction == marker.Encrypted && m.Shape == marker.ShapeBlock:
		plain, err := envelope.Decrypt(t.Keys.Private, marker.StripWhitespace(m.Payload))
		if err != nil {
			return "", fmt.Errorf("block marker at offset %d: %w", m.Start, err)
		}
		return marker.RenderDecryptedBlock(string(plain), m.Indent), nil

	case m.Direction == marker.Encrypted && m.Shape == marker.ShapeString:
		plain, err := envelope.Decrypt(t.Keys.Private, m.Payload)
		if err != nil {
			return "", fmt.Errorf("string marker at offset %d: %w", m.Start, err)
		}
		return marker.RenderDecryptedString(string(plain)), nil

	case m.Direction == marker.Decrypted && m.Shape == marker.ShapeBlock:
		plain := marker.UnindentPayload(m.Payload, m.Indent)
		sealed, err := envelope.Encrypt(t.Keys.Public, []byte(plain))
		if err != nil {
			return "", fmt.Errorf("block marker at offset %d: %w", m.Start, err)
		}
		return marker.RenderEncryptedBlock(sealed, m.Indent, t.BlockWidth), nil

	default: // decrypted string
		sealed, err := envelope.Encrypt(t.Keys.Public, []byte(m.Payload))
		if err != nil {
			return "", fmt.Errorf("string marker at offset %d: %w", m.Start, err)
		}
		return marker.RenderEncryptedString(sealed), nil
	}
}
