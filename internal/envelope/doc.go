// Package envelope implements enveil's hybrid envelope cipher and key
// material handling.
//
// Each value is sealed with a fresh NaCl secretbox key, and that key is
// wrapped with the recipient's RSA public key. The public key travels
// inside a self-signed X.509 certificate; the private key is a PEM-encoded
// PKCS#1 RSA key. The binary envelope is self-describing and carried as
// base64 text so it can be embedded inline in configuration documents.
package envelope
