package binder

import (
	"fmt"
	"net/http"
)

const maxMultipartMemory = 8 << 20

// Form binds url-encoded or multipart form fields to struct fields tagged
// `form:"name"`. Requests without a body are skipped.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Body == nil || r.Body == http.NoBody {
			return ErrNotApplicable
		}
		if err := parseForm(r); err != nil {
			return err
		}
		return bindStruct(v, "form", func(name string) []string { return r.PostForm[name] }, ErrInvalidForm)
	}
}

func parseForm(r *http.Request) error {
	mt, err := mediaType(r)
	if err != nil {
		return err
	}
	switch mt {
	case "application/x-www-form-urlencoded":
		err = r.ParseForm()
	case "multipart/form-data":
		err = r.ParseMultipartForm(maxMultipartMemory)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}
