package session

import (
	"time"

	"github.com/google/uuid"
)

// FlashKind selects how a flash message is styled.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Session is the server-side state behind a session cookie.
type Session struct {
	ID             uuid.UUID  `json:"id"`
	Token          string     `json:"-"`
	User           *Principal `json:"user,omitempty"`
	Flashes        []Flash    `json:"flashes,omitempty"`
	ExpiresAt      time.Time  `json:"expires_at"`
	LastActivityAt time.Time  `json:"last_activity_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func newSession(token string, user *Principal, now time.Time, expiresAt time.Time) *Session {
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		User:           user,
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil
}

// IsExpired reports whether the session expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && !now.Before(s.ExpiresAt)
}

// Principal returns the signed-in user.
func (s *Session) Principal() (Principal, bool) {
	if !s.IsAuthenticated() {
		return Principal{}, false
	}
	return *s.User, true
}

func (s *Session) clone() *Session {
	c := *s
	if s.User != nil {
		u := *s.User
		c.User = &u
	}
	c.Flashes = append([]Flash(nil), s.Flashes...)
	return &c
}
