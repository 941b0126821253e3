package loans

import "errors"

var (
	ErrUnknownForm = errors.New("unknown form")
	ErrNotPending  = errors.New("application is no longer open")
	ErrForbidden   = errors.New("not allowed for this role")
	ErrUnknownRole = errors.New("backend returned an unknown role")
)
