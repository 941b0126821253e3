package marketplace

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/backend"
	"github.com/microfin-hq/microfin/pkg/validator"
	"github.com/microfin-hq/microfin/svc/contracts"
	"github.com/microfin-hq/microfin/svc/loans"
)

// mapError translates service errors into HTTP errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, loans.ErrForbidden), errors.Is(err, contracts.ErrForbidden):
		return handler.ErrForbidden
	case errors.Is(err, loans.ErrNotPending):
		return handler.ErrConflict.WithMessage("This application is no longer open")
	case errors.Is(err, loans.ErrUnknownForm), contracts.IsNotFound(err), backend.IsNotFound(err):
		return handler.ErrNotFound
	case errors.Is(err, contracts.ErrNoProvider):
		return handler.ErrServiceUnavailable
	default:
		return err
	}
}

func fail(err error) handler.Response {
	return handler.Error(mapError(err))
}

// fieldErrors returns the per-field messages of a validation error.
func fieldErrors(err error) (validator.ErrorMap, bool) {
	if !validator.IsValidationError(err) {
		return nil, false
	}
	return validator.ExtractValidationErrors(err).ErrorMap(), true
}

func invalid(form, page templ.Component, target string) handler.Response {
	return handler.TemplPartialStatus(http.StatusUnprocessableEntity, form, page, handler.WithTarget(target))
}

// withoutSecrets drops fields that must never be echoed back into a form.
func withoutSecrets(rec validator.Record) validator.Record {
	out := make(validator.Record, len(rec))
	for k, v := range rec {
		switch k {
		case "password", "password_confirm":
		default:
			out[k] = v
		}
	}
	return out
}
