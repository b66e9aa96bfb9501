package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// Encryptor seals and opens values bound to caller-supplied associated data.
type Encryptor interface {
	Encrypt(plaintext, aad []byte) (string, error)
	Decrypt(ciphertext string, aad []byte) ([]byte, error)
}

// AESGCMEncryptor implements Encryptor using AES-256-GCM.
// The AEAD is built once and is safe for concurrent use.
type AESGCMEncryptor struct {
	aead cipher.AEAD
}

// Versioned prefix to allow future key/algorithm rotations. The output is URL and cookie safe.
const cipherPrefixV1 = "v1."

var (
	ErrUnknownVersion     = errors.New("unknown ciphertext version")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// NewAESGCMEncryptor constructs a new AESGCMEncryptor. Key must be 32 bytes (AES-256).
func NewAESGCMEncryptor(key []byte) (*AESGCMEncryptor, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aes-gcm key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESGCMEncryptor{aead: gcm}, nil
}

// Encrypt encrypts plaintext with a random nonce and returns a versioned base64url string.
func (e *AESGCMEncryptor) Encrypt(plaintext, aad []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	// nonce||ciphertext
	buf := e.aead.Seal(nonce, nonce, plaintext, aad)
	return cipherPrefixV1 + base64.RawURLEncoding.EncodeToString(buf), nil
}

// Decrypt opens a string created by Encrypt with the same aad.
func (e *AESGCMEncryptor) Decrypt(ciphertext string, aad []byte) ([]byte, error) {
	b64, ok := strings.CutPrefix(ciphertext, cipherPrefixV1)
	if !ok {
		return nil, ErrUnknownVersion
	}
	data, err := base64.RawURLEncoding.Strict().DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}
	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize+e.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	nonce, ct := data[:nonceSize], data[nonceSize:]
	return e.aead.Open(nil, nonce, ct, aad)
}

// DeriveKey expands secret into a KeySize key with HKDF-SHA256.
// info separates keys derived from the same secret for different purposes.
func DeriveKey(secret []byte, info string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errors.New("secret is empty")
	}
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}
