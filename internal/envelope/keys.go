package envelope

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/enveil/enveil/internal/errors"
	"github.com/enveil/enveil/internal/utils"
)

// KeyPair carries the key material for one recipient. Private is nil when
// only encryption is needed.
type KeyPair struct {
	Public  *rsa.PublicKey
	Private *rsa.PrivateKey
}

// LoadKeyPair loads the certificate and private key from disk.
func LoadKeyPair(privPath, certPath string) (KeyPair, error) {
	pub, err := LoadPublicKey(certPath)
	if err != nil {
		return KeyPair{}, err
	}
	priv, err := LoadPrivateKey(privPath)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Public: pub, Private: priv}, nil
}

// LoadPublicKey extracts the RSA public key from a self-signed certificate PEM.
func LoadPublicKey(certPath string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(certPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCertificateNotFound, certPath)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrKeyLoad, err)
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("%w: failed to decode PEM block containing certificate", apperrors.ErrKeyLoad)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrKeyLoad, err)
	}
	rsaPub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: certificate does not carry an RSA public key", apperrors.ErrKeyLoad)
	}
	return rsaPub, nil
}

// LoadPrivateKey loads an RSA private key from a PEM file. Encrypted PEM
// blocks prompt for a passphrase on the controlling terminal.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPrivateKeyNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrKeyLoad, err)
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		return nil, fmt.Errorf("%w: failed to decode PEM block containing private key", apperrors.ErrKeyLoad)
	}

	der := block.Bytes
	//nolint:staticcheck // legacy encrypted PEM keys are still in circulation
	if x509.IsEncryptedPEMBlock(block) {
		passphrase, err := utils.ReadPassphraseFromTTY(fmt.Sprintf("Passphrase for %s: ", path))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrKeyLoad, err)
		}
		//nolint:staticcheck
		der, err = x509.DecryptPEMBlock(block, passphrase)
		if err != nil {
			return nil, fmt.Errorf("%w: wrong passphrase or corrupt key: %v", apperrors.ErrKeyLoad, err)
		}
	}

	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrKeyLoad, err)
	}
	return priv, nil
}

// GenerateKeyPair creates a new 2048-bit RSA key and a self-signed
// certificate carrying its public key, and writes both as PEM files.
func GenerateKeyPair(privPath, certPath string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	for _, dir := range []string{filepath.Dir(privPath), filepath.Dir(certPath)} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create key directory at %s: %w", dir, err)
		}
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return fmt.Errorf("failed to generate certificate serial: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: "enveil"},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.AddDate(10, 0, 0),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}
	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return fmt.Errorf("failed to create self-signed certificate: %w", err)
	}

	privPem := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}
	if err := writePEM(privPath, privPem, 0600); err != nil {
		return fmt.Errorf("failed to save private key: %w", err)
	}

	certPem := &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certDER,
	}
	if err := writePEM(certPath, certPem, 0644); err != nil {
		return fmt.Errorf("failed to save certificate: %w", err)
	}

	return nil
}

func writePEM(path string, block *pem.Block, mode os.FileMode) error {
	// #nosec G304 -- paths come from user flags/config by design of the CLI.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if err := pem.Encode(f, block); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
