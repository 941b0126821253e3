package handler

import (
	"errors"
	"net/http"

	"github.com/microfin-hq/microfin/binder"
	"github.com/microfin-hq/microfin/pkg/session"
	"github.com/microfin-hq/microfin/pkg/validator"
)

// statusCoder is implemented by errors that know their HTTP status,
// such as backend API errors.
type statusCoder interface {
	HTTPStatus() int
}

// StatusCode maps an error to the HTTP status it should be reported with.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	if validator.IsValidationError(err) {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return http.StatusUnsupportedMediaType
	case binder.IsBindError(err):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionExpired):
		return http.StatusUnauthorized
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.HTTPStatus(); code >= http.StatusBadRequest {
			return code
		}
	}
	return http.StatusInternalServerError
}

// errorKey returns the machine-readable code reported with err.
func errorKey(err error, status int) string {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Key
	}
	if validator.IsValidationError(err) {
		return "validation_error"
	}
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	case http.StatusBadGateway:
		return "bad_gateway"
	}
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	return "request_error"
}

// PublicMessage returns the text of err that is safe to show to the user.
func PublicMessage(err error) string {
	return publicMessage(err, StatusCode(err))
}

// publicMessage returns the text that is safe to show to the user.
// Server errors never leak their details.
func publicMessage(err error, status int) string {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Message != "" {
			return httpErr.Message
		}
		return http.StatusText(httpErr.Code)
	}
	if validator.IsValidationError(err) {
		return "Please correct the highlighted fields"
	}
	if status >= http.StatusInternalServerError {
		return "An error occurred processing your request"
	}
	return err.Error()
}
