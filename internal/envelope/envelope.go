package envelope

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"

	apperrors "github.com/enveil/enveil/internal/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

// Envelope wire format, before base64:
//
//	magic "EVL1" | alg byte | uint16 wrapped-key length | wrapped key | nonce | box
//
// The alg byte names the symmetric scheme so old ciphertexts keep decrypting
// if another scheme is added later.
const (
	envelopeMagic = "EVL1"

	// algSecretbox is NaCl secretbox (XSalsa20-Poly1305) with the
	// symmetric key wrapped by RSA PKCS#1 v1.5.
	algSecretbox = 0x01

	nonceSize = 24
	keySize   = 32
)

// Encrypt seals plaintext for the certificate holder and returns the
// base64-encoded envelope. A fresh symmetric key and nonce are drawn for
// every call, so encrypting identical plaintext twice yields different
// ciphertext.
func Encrypt(pub *rsa.PublicKey, plaintext []byte) (string, error) {
	var key [keySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return "", fmt.Errorf("%w: failed to generate symmetric key: %v", apperrors.ErrEncryptFailed, err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %v", apperrors.ErrEncryptFailed, err)
	}

	wrapped, err := rsa.EncryptPKCS1v15(rand.Reader, pub, key[:])
	if err != nil {
		return "", fmt.Errorf("%w: failed to wrap symmetric key: %v", apperrors.ErrEncryptFailed, err)
	}

	box := secretbox.Seal(nil, plaintext, &nonce, &key)

	buf := make([]byte, 0, len(envelopeMagic)+3+len(wrapped)+nonceSize+len(box))
	buf = append(buf, envelopeMagic...)
	buf = append(buf, algSecretbox)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(wrapped)))
	buf = append(buf, wrapped...)
	buf = append(buf, nonce[:]...)
	buf = append(buf, box...)

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decrypt opens a base64-encoded envelope with the private key. Malformed
// or truncated envelopes, unknown algorithm identifiers, and key mismatches
// all surface as errors wrapping ErrDecryptFailed.
func Decrypt(priv *rsa.PrivateKey, envelope string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", apperrors.ErrDecryptFailed, err)
	}

	if len(raw) < len(envelopeMagic)+3 || string(raw[:len(envelopeMagic)]) != envelopeMagic {
		return nil, fmt.Errorf("%w: not an enveil envelope", apperrors.ErrDecryptFailed)
	}
	raw = raw[len(envelopeMagic):]

	if raw[0] != algSecretbox {
		return nil, fmt.Errorf("%w: unknown algorithm identifier 0x%02x", apperrors.ErrDecryptFailed, raw[0])
	}
	wrappedLen := int(binary.BigEndian.Uint16(raw[1:3]))
	raw = raw[3:]

	if len(raw) < wrappedLen+nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: envelope truncated", apperrors.ErrDecryptFailed)
	}

	symKey, err := rsa.DecryptPKCS1v15(rand.Reader, priv, raw[:wrappedLen])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unwrap symmetric key: %v", apperrors.ErrDecryptFailed, err)
	}
	if len(symKey) != keySize {
		return nil, fmt.Errorf("%w: unexpected symmetric key length %d", apperrors.ErrDecryptFailed, len(symKey))
	}

	var key [keySize]byte
	copy(key[:], symKey)
	var nonce [nonceSize]byte
	copy(nonce[:], raw[wrappedLen:wrappedLen+nonceSize])

	plaintext, ok := secretbox.Open(nil, raw[wrappedLen+nonceSize:], &nonce, &key)
	if !ok {
		return nil, fmt.Errorf("%w: authentication failed", apperrors.ErrDecryptFailed)
	}

	return plaintext, nil
}
