package session

import "errors"

var (
	// ErrSessionNotFound indicates the request carries no usable session.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the session has passed its expiry.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidSession indicates a session that cannot be stored.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrTokenGeneration indicates the random token source failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrNoSecret is returned when no cookie secret is configured.
	ErrNoSecret = errors.New("session.no_secret")

	// ErrSecretTooShort is returned for cookie secrets under 32 bytes.
	ErrSecretTooShort = errors.New("session.secret_too_short")

	// ErrDecryptionFailed indicates a cookie that none of the secrets can open.
	ErrDecryptionFailed = errors.New("session.decryption_failed")

	// ErrUnknownRole is returned by ParseRole.
	ErrUnknownRole = errors.New("session.unknown_role")
)
