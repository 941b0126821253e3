package binder

import "net/http"

// Query binds URL query parameters to struct fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindStruct(v, "query", func(name string) []string { return q[name] }, ErrInvalidQuery)
	}
}

// Path binds router parameters to struct fields tagged `path:"name"`.
// Pass chi.URLParam as the extractor.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindStruct(v, "path", func(name string) []string {
			if value := extractor(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrInvalidPath)
	}
}
