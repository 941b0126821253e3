package session

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session loaded by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// PrincipalFromContext returns the signed-in user, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return Principal{}, false
	}
	return s.Principal()
}

// LoggerExtractor adds user_id and role of the signed-in user to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		p, ok := PrincipalFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("user",
			slog.String("id", p.UserID),
			slog.String("role", p.Role.String()),
		), true
	}
}
