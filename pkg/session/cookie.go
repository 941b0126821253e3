package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"
)

const minSecretLength = 32

// CookieTransport stores the session token in an AES-GCM encrypted cookie.
// The first secret encrypts; every secret is tried when decrypting, so
// secrets can be rotated without signing everyone out.
type CookieTransport struct {
	name    string
	secure  bool
	ciphers []cipher.AEAD
}

// NewCookieTransport builds a transport for the named cookie.
func NewCookieTransport(name string, secrets []string, secure bool) (*CookieTransport, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	t := &CookieTransport{name: name, secure: secure}
	for i, secret := range secrets {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d bytes, need %d", ErrSecretTooShort, i, len(secret), minSecretLength)
		}
		block, err := aes.NewCipher([]byte(secret[:minSecretLength]))
		if err != nil {
			return nil, err
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		t.ciphers = append(t.ciphers, gcm)
	}
	return t, nil
}

// Token returns the decrypted token carried by r.
func (t *CookieTransport) Token(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrSessionNotFound
	}
	return t.open(c.Value)
}

// SetToken writes token with the given lifetime.
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	value, err := t.seal(token)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   t.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearToken expires the cookie.
func (t *CookieTransport) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   t.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (t *CookieTransport) seal(plain string) (string, error) {
	gcm := t.ciphers[0]
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(gcm.Seal(nonce, nonce, []byte(plain), nil)), nil
}

func (t *CookieTransport) open(value string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	for _, gcm := range t.ciphers {
		if len(raw) < gcm.NonceSize() {
			break
		}
		nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
		if plain, err := gcm.Open(nil, nonce, sealed, nil); err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}
