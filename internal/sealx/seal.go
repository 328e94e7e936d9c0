// Package sealx implements the encrypted envelope that wraps every payload
// crossing the service boundary. A value is JSON-serialized, encrypted with
// AES-GCM under a process-wide secret, and carried as a single opaque string.
package sealx

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/dgitonga/qrollcall/internal/common"
)

// Box seals and opens envelopes with a key derived from the configured
// secret. It is safe for concurrent use and is created once at startup.
type Box struct {
	aead cipher.AEAD
}

// NewBox derives an AES-256 key from secret (SHA-256) and returns a ready
// codec. An empty secret returns common.ErrConfiguration; the caller is
// expected to treat that as fatal and refuse to serve traffic.
func NewBox(secret string) (*Box, error) {
	if secret == "" {
		return nil, common.ErrConfiguration
	}

	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Box{aead: aead}, nil
}

// Seal serializes v to JSON and encrypts it. A fresh random nonce is used on
// every call, so two seals of the same value produce different strings.
func (b *Box) Seal(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("seal: %w", err)
	}

	nonce := make([]byte, b.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("seal: %w", err)
	}

	// nonce is prepended so the envelope stays a single string
	sealed := b.aead.Seal(nonce, nonce, plaintext, nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts an envelope produced by Seal and unmarshals the plaintext
// into v. Malformed encoding, a forged or truncated ciphertext, and invalid
// JSON all report common.ErrDecryption.
func (b *Box) Open(s string, v any) error {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: bad encoding", common.ErrDecryption)
	}

	ns := b.aead.NonceSize()
	if len(data) < ns {
		return fmt.Errorf("%w: short ciphertext", common.ErrDecryption)
	}

	plaintext, err := b.aead.Open(nil, data[:ns], data[ns:], nil)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: invalid payload", common.ErrDecryption)
	}
	return nil
}
