// Package backend is the HTTP client of the marketplace REST API.
//
// The backend owns users, loan applications, business profiles and contract
// analysis. This package only moves JSON: requests are authenticated with the
// token issued at login, carry the caller's request ID, and GET requests are
// retried with exponential backoff on transport errors, 429 and 502-504.
// Non-2xx answers become *APIError, whose HTTPStatus method tells the web
// layer which status to report.
//
//	client, err := backend.New(cfg, backend.WithObserver(collector))
//	apps, err := client.WithToken(principal.APIToken).ListApplications(ctx, backend.ApplicationFilter{Status: backend.StatusPending})
package backend
