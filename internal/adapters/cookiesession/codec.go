package cookiesession

// Package cookiesession stores the session identity inside an encrypted, authenticated cookie value.
// No session state is kept on the server.

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/target/timetracker/internal/data/cryptoutil"
	domainauth "github.com/target/timetracker/internal/domain/auth"
)

// keyInfo scopes the HKDF-derived key to session cookies.
const keyInfo = "timetracker session cookie v1"

// MinSecretLength is the minimum accepted secret length in bytes.
const MinSecretLength = 32

// ErrSecretTooShort is returned when the configured secret is shorter than MinSecretLength.
var ErrSecretTooShort = errors.New("session secret too short")

// wireIdentity is the JSON payload. ID is a pointer so a missing id is detectable.
type wireIdentity struct {
	ID       *int64 `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"authority,omitempty"`
}

// Codec encodes and decodes session identities for a single cookie name.
// The cookie name is bound into the ciphertext so a value cannot be replayed under another name.
type Codec struct {
	enc  cryptoutil.Encryptor
	name string
}

// NewCodec derives the cookie key from secret and returns a Codec for cookieName.
func NewCodec(secret []byte, cookieName string) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrSecretTooShort, MinSecretLength, len(secret))
	}
	key, err := cryptoutil.DeriveKey(secret, keyInfo)
	if err != nil {
		return nil, err
	}
	enc, err := cryptoutil.NewAESGCMEncryptor(key)
	if err != nil {
		return nil, err
	}
	return NewCodecWithEncryptor(enc, cookieName), nil
}

// NewCodecWithEncryptor builds a Codec on top of an existing Encryptor.
func NewCodecWithEncryptor(enc cryptoutil.Encryptor, cookieName string) *Codec {
	return &Codec{enc: enc, name: cookieName}
}

// CookieName returns the cookie name this codec is bound to.
func (c *Codec) CookieName() string { return c.name }

// Encode serializes and seals id into a cookie-safe value.
func (c *Codec) Encode(id domainauth.Identity) (string, error) {
	uid := id.ID
	payload, err := json.Marshal(wireIdentity{
		ID:       &uid,
		Username: id.Username,
		Email:    id.Email,
		Role:     string(id.Role),
	})
	if err != nil {
		return "", fmt.Errorf("marshal identity: %w", err)
	}
	value, err := c.enc.Encrypt(payload, []byte(c.name))
	if err != nil {
		return "", fmt.Errorf("seal identity: %w", err)
	}
	return value, nil
}

// Decode opens value and returns the identity it carries.
// Any failure, including an empty value, a foreign key or tampering, yields ok=false.
func (c *Codec) Decode(value string) (domainauth.Identity, bool) {
	if value == "" {
		return domainauth.Identity{}, false
	}
	payload, err := c.enc.Decrypt(value, []byte(c.name))
	if err != nil {
		return domainauth.Identity{}, false
	}
	var w wireIdentity
	if err := json.Unmarshal(payload, &w); err != nil || w.ID == nil {
		return domainauth.Identity{}, false
	}
	return domainauth.Identity{
		ID:       *w.ID,
		Username: w.Username,
		Email:    w.Email,
		Role:     domainauth.Role(w.Role),
	}, true
}
