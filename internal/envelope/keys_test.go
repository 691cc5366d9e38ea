package envelope

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/enveil/enveil/internal/errors"
)

func TestGenerateAndLoadKeyPair(t *testing.T) {
	tmpDir := t.TempDir()
	privPath := filepath.Join(tmpDir, "keys", "private_key.pem")
	certPath := filepath.Join(tmpDir, "keys", "public_cert.pem")

	if err := GenerateKeyPair(privPath, certPath); err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	// Private key must not be world-readable.
	info, err := os.Stat(privPath)
	if err != nil {
		t.Fatalf("Failed to stat private key: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected private key mode 0600, got: %o", info.Mode().Perm())
	}

	kp, err := LoadKeyPair(privPath, certPath)
	if err != nil {
		t.Fatalf("LoadKeyPair failed: %v", err)
	}

	// The cert's public key must correspond to the private key.
	sealed, err := Encrypt(kp.Public, []byte("api-token"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	opened, err := Decrypt(kp.Private, sealed)
	if err != nil {
		t.Fatalf("Decrypt with generated pair failed: %v", err)
	}
	if string(opened) != "api-token" {
		t.Errorf("Expected api-token, got: %s", opened)
	}
}

func TestLoadPublicKey_Missing(t *testing.T) {
	_, err := LoadPublicKey(filepath.Join(t.TempDir(), "nope.pem"))
	if !errors.Is(err, apperrors.ErrCertificateNotFound) {
		t.Errorf("Expected ErrCertificateNotFound, got: %v", err)
	}
}

func TestLoadPrivateKey_Missing(t *testing.T) {
	_, err := LoadPrivateKey(filepath.Join(t.TempDir(), "nope.pem"))
	if !errors.Is(err, apperrors.ErrPrivateKeyNotFound) {
		t.Errorf("Expected ErrPrivateKeyNotFound, got: %v", err)
	}
}

func TestLoadPrivateKey_NotPEM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pem")
	if err := os.WriteFile(path, []byte("this is not a key"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := LoadPrivateKey(path)
	if !errors.Is(err, apperrors.ErrKeyLoad) {
		t.Errorf("Expected ErrKeyLoad, got: %v", err)
	}
}

func TestLoadPublicKey_WrongBlockType(t *testing.T) {
	tmpDir := t.TempDir()
	privPath := filepath.Join(tmpDir, "private_key.pem")
	certPath := filepath.Join(tmpDir, "public_cert.pem")
	if err := GenerateKeyPair(privPath, certPath); err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	// A private-key PEM is not a certificate.
	_, err := LoadPublicKey(privPath)
	if !errors.Is(err, apperrors.ErrKeyLoad) {
		t.Errorf("Expected ErrKeyLoad, got: %v", err)
	}
}
