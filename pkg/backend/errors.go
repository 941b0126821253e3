package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidConfig = errors.New("invalid backend configuration")
	ErrDecode        = errors.New("invalid backend response")

	// ErrUnavailable is returned when the backend cannot be reached.
	ErrUnavailable = &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    "backend_unavailable",
		Message: "The marketplace service is temporarily unavailable",
	}
)

// APIError is a non-2xx answer from the marketplace backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.Status)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// HTTPStatus is the status to answer our own client with. Client errors pass
// through; backend failures become 502.
func (e *APIError) HTTPStatus() int {
	switch {
	case e.Status == http.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	case e.Status >= http.StatusInternalServerError:
		return http.StatusBadGateway
	case e.Status >= http.StatusBadRequest:
		return e.Status
	default:
		return http.StatusBadGateway
	}
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the backend rejected the credentials or token.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
