package binder

import "errors"

var (
	ErrNotApplicable        = errors.New("binder not applicable")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrInvalidPath          = errors.New("invalid path parameter")
	ErrInvalidTarget        = errors.New("invalid bind target")
)

// IsBindError reports whether err came from a malformed request rather than
// from the server.
func IsBindError(err error) bool {
	return errors.Is(err, ErrUnsupportedMediaType) ||
		errors.Is(err, ErrMissingContentType) ||
		errors.Is(err, ErrInvalidJSON) ||
		errors.Is(err, ErrInvalidForm) ||
		errors.Is(err, ErrInvalidQuery) ||
		errors.Is(err, ErrInvalidPath)
}
