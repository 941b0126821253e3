package binder

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/microfin-hq/microfin/pkg/validator"
)

// RecordSetter is implemented by request types that embed a form record
// next to typed fields.
type RecordSetter interface {
	SetRecord(validator.Record)
}

// Record collects the submitted field values for validation. Form posts
// yield one string per field; JSON bodies (including datastar signal
// payloads) keep their decoded values with numbers as json.Number.
// The target must be a *validator.Record or implement RecordSetter.
func Record() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		var set func(validator.Record)
		switch t := v.(type) {
		case *validator.Record:
			set = func(rec validator.Record) { *t = rec }
		case RecordSetter:
			set = t.SetRecord
		default:
			return ErrNotApplicable
		}

		if r.Body == nil || r.Body == http.NoBody {
			return ErrNotApplicable
		}
		rec, err := readRecord(r)
		if err != nil {
			return err
		}
		set(rec)
		return nil
	}
}

func readRecord(r *http.Request) (validator.Record, error) {
	mt, err := mediaType(r)
	if err != nil {
		return nil, err
	}

	if mt == "application/json" {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
		dec.UseNumber()
		rec := validator.Record{}
		if err := decodeJSON(dec, &rec); err != nil {
			return nil, err
		}
		return rec, nil
	}

	if err := parseForm(r); err != nil {
		return nil, err
	}
	rec := make(validator.Record, len(r.PostForm))
	for key, values := range r.PostForm {
		switch len(values) {
		case 0:
		case 1:
			rec[key] = values[0]
		default:
			rec[key] = values
		}
	}
	return rec, nil
}
