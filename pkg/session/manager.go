package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/microfin-hq/microfin/pkg/logger"
)

// Manager ties the cookie transport to the session store.
type Manager struct {
	cfg       Config
	store     Store
	transport *CookieTransport
	now       func() time.Time
	log       *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore replaces the default MemoryStore.
func WithStore(s Store) Option {
	return func(m *Manager) {
		if s != nil {
			m.store = s
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New returns a Manager for cfg. It fails when the cookie secrets are unusable.
func New(cfg Config, opts ...Option) (*Manager, error) {
	cfg = cfg.withDefaults()
	transport, err := NewCookieTransport(cfg.CookieName, cfg.SecretList(), cfg.SecureCookies)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:       cfg,
		transport: transport,
		now:       time.Now,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(cfg.CleanupInterval)
	}
	return m, nil
}

// Config returns the effective configuration.
func (m *Manager) Config() Config { return m.cfg }

// Load returns the session referenced by the request cookie.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.Token(r)
	if err != nil {
		return nil, err
	}
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return s, nil
}

// SignIn starts an authenticated session for p. Any session the request
// already carries is discarded and a fresh token is issued, so a token seen
// before sign-in never grants access after it. Pending flashes carry over
// and extra ones are queued after them.
func (m *Manager) SignIn(ctx context.Context, w http.ResponseWriter, r *http.Request, p Principal, extra ...Flash) (*Session, error) {
	var flashes []Flash
	if old, err := m.Load(ctx, r); err == nil {
		flashes = old.Flashes
		_ = m.store.Delete(ctx, old.Token)
	}
	flashes = append(flashes, extra...)

	s, err := m.create(ctx, w, &p)
	if err != nil {
		return nil, err
	}
	if len(flashes) > 0 {
		s.Flashes = flashes
		if err := m.store.Update(ctx, s); err != nil {
			return nil, err
		}
	}
	m.log.InfoContext(ctx, "user signed in", logger.UserID(p.UserID), logger.Role(p.Role.String()))
	return s, nil
}

// SignOut deletes the session and clears the cookie.
func (m *Manager) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.Token(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	m.transport.ClearToken(w)
	return nil
}

// AddFlash queues a message for the next page, creating an anonymous session
// when the request has none.
func (m *Manager) AddFlash(ctx context.Context, w http.ResponseWriter, r *http.Request, f Flash) error {
	s, err := m.Load(ctx, r)
	if err != nil {
		if s, err = m.create(ctx, w, nil); err != nil {
			return err
		}
	}
	s.Flashes = append(s.Flashes, f)
	return m.store.Update(ctx, s)
}

// TakeFlashes returns and clears the queued messages of s.
func (m *Manager) TakeFlashes(ctx context.Context, s *Session) ([]Flash, error) {
	if s == nil || len(s.Flashes) == 0 {
		return nil, nil
	}
	flashes := s.Flashes
	s.Flashes = nil
	if err := m.store.Update(ctx, s); err != nil {
		return nil, err
	}
	return flashes, nil
}

// Close releases the store when it owns background work.
func (m *Manager) Close() error {
	if c, ok := m.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (m *Manager) create(ctx context.Context, w http.ResponseWriter, p *Principal) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	now := m.now()
	s := newSession(token, p, now, m.expiry(now, now))
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, token, m.cfg.IdleTimeout); err != nil {
		_ = m.store.Delete(ctx, token)
		return nil, err
	}
	return s, nil
}

// touch slides the idle expiry forward once the threshold has passed.
func (m *Manager) touch(ctx context.Context, w http.ResponseWriter, s *Session) {
	now := m.now()
	if now.Sub(s.LastActivityAt) < m.cfg.TouchThreshold {
		return
	}
	s.LastActivityAt = now
	s.ExpiresAt = m.expiry(s.CreatedAt, now)
	if err := m.store.Update(ctx, s); err != nil {
		m.log.WarnContext(ctx, "session touch failed", logger.Error(err))
		return
	}
	_ = m.transport.SetToken(w, s.Token, m.cfg.IdleTimeout)
}

// expiry is the earlier of the idle deadline and the absolute lifetime.
func (m *Manager) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(m.cfg.IdleTimeout)
	limit := createdAt.Add(m.cfg.MaxLifetime)
	if limit.Before(idle) {
		return limit
	}
	return idle
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
