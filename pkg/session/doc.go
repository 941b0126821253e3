// Package session keeps the signed-in marketplace user on the server and
// carries only an opaque token to the browser.
//
// The token travels in an AES-GCM encrypted cookie (CookieTransport) and
// addresses a Session in a Store; MemoryStore is the built-in store. A Session
// holds the Principal returned by the backend at login (user id, name, email,
// Role and the backend API token) plus one-shot Flash messages.
//
//	sessions, err := session.New(cfg.Session, session.WithLogger(log))
//	r.Use(sessions.Middleware)
//	r.With(sessions.RequireRole(session.RoleLender)).Get("/market", ...)
//
// Handlers read the user with PrincipalFromContext. SignIn always issues a new
// token. Idle expiry slides forward on activity but never past MaxLifetime.
package session
