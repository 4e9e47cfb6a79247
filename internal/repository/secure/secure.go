// Package secure decorates a key-value store with encryption at rest. It is
// the "secure store" variant consumed by the session service: same contract
// as the inner store, stronger at-rest protection, disjoint key namespace.
package secure

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/vistago/vistago-api/internal/repository/ports"
)

// keyPrefix keeps secure entries out of the general store's namespace. Callers
// must never read one store's keys through the other.
const keyPrefix = "secure:"

type Store struct {
	inner ports.KVStore
	aead  cipher.AEAD
}

// New derives a 256-bit AES key from secret via HKDF-SHA256 and wraps inner
// with AES-GCM. The same secret must be used across restarts or previously
// persisted entries read as absent.
func New(inner ports.KVStore, secret string) (*Store, error) {
	if secret == "" {
		return nil, errors.New("secure: empty secret")
	}

	h := hkdf.New(sha256.New, []byte(secret), nil, []byte("vistago-secure-store"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, fmt.Errorf("secure: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("secure: cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("secure: gcm: %w", err)
	}
	return &Store{inner: inner, aead: aead}, nil
}

// Get decrypts the stored value. Values that fail authentication (tampered,
// wrong secret, not base64) read as absent rather than erroring: callers
// treat malformed content exactly like a missing key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, keyPrefix+key)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(data) < s.aead.NonceSize() {
		return "", ports.ErrKeyNotFound
	}

	nonce, sealed := data[:s.aead.NonceSize()], data[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, sealed, []byte(key))
	if err != nil {
		return "", ports.ErrKeyNotFound
	}
	return string(plain), nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("secure: nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(ctx, keyPrefix+key, base64.StdEncoding.EncodeToString(sealed))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, keyPrefix+key)
}

var _ ports.KVStore = (*Store)(nil)
