package marketplace

import (
	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/validator"
)

type validateRequest struct {
	Form   string `path:"form"`
	Record validator.Record
}

func (v *validateRequest) SetRecord(rec validator.Record) { v.Record = rec }

// ValidationResult is the body of POST /api/validate/{form}.
type ValidationResult struct {
	Valid  bool               `json:"valid"`
	Errors validator.ErrorMap `json:"errors"`
}

// validate checks a record against a named form without submitting it, for
// inline validation while the user types.
func (m *Module) validate(ctx handler.Context, req validateRequest) handler.Response {
	rec := req.Record
	if rec == nil {
		rec = validator.Record{}
	}
	errs, err := m.loans.Validate(req.Form, rec)
	if err != nil {
		return handler.JSONError(mapError(err))
	}
	if errs == nil {
		errs = validator.ErrorMap{}
	}
	return handler.JSON(ValidationResult{Valid: len(errs) == 0, Errors: errs})
}
