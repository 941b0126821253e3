// Package handler provides type-safe HTTP handlers for the marketplace pages
// and API endpoints.
//
// A handler is a generic function from a bound request value to a Response:
//
//	type LoginRequest struct {
//		Record validator.Record
//		Next   string `query:"next"`
//	}
//
//	func (r *LoginRequest) SetRecord(rec validator.Record) { r.Record = rec }
//
//	func login(ctx handler.Context, req LoginRequest) handler.Response {
//		if err := svc.Login(ctx, req.Record); err != nil {
//			return handler.Error(err)
//		}
//		return handler.Redirect("/")
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, LoginRequest](binder.Query(), binder.Record()),
//		handler.WithErrorHandler[handler.Context, LoginRequest](errorHandler),
//	))
//
// # Responses
//
// Templ, TemplPartial and TemplMulti render templ components as HTML or, for
// datastar requests, as element patches over server-sent events. Redirect and
// RedirectBack work for both request kinds. JSON and JSONError write the
// {data, meta, error} envelope. SSE keeps a datastar stream open for handlers
// that push several updates.
//
// # Errors
//
// StatusCode maps errors to HTTP statuses: HTTPError carries its own code,
// validator.ValidationErrors become 422 with one message per field, binder
// errors become 400 or 415, and errors with an HTTPStatus method (backend
// API errors) keep theirs. Everything else is a 500 whose details are logged
// but never shown.
package handler
