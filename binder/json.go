package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxJSONBody = 1 << 20

// JSON decodes an application/json body into v. Unknown fields are rejected.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mt, err := mediaType(r)
		if err != nil {
			return err
		}
		if mt != "application/json" {
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
		}
		dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
		dec.DisallowUnknownFields()
		return decodeJSON(dec, v)
	}
}

func decodeJSON(dec *json.Decoder, v any) error {
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
	}
	return nil
}
