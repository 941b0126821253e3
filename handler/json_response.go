package handler

import (
	"encoding/json"
	"net/http"

	"github.com/microfin-hq/microfin/pkg/validator"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information. Details holds one message per
// invalid field.
type ErrorDetail struct {
	Code    string             `json:"code,omitempty"`
	Message string             `json:"message,omitempty"`
	Details validator.ErrorMap `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONMeta adds metadata to response
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON wraps v in the data envelope. Errors are rendered as JSONError.
func JSON(v any, opts ...JSONOption) Response {
	if err, ok := v.(error); ok {
		return JSONError(err, opts...)
	}
	r := &jsonResponse{status: http.StatusOK}
	if body, ok := v.(JSONResponse); ok {
		r.body = body
	} else {
		r.body.Data = v
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err in the error envelope with the status from StatusCode.
func JSONError(err error, opts ...JSONOption) Response {
	status := StatusCode(err)
	r := &jsonResponse{
		status: status,
		body:   JSONResponse{Error: errorDetail(err, status)},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func errorDetail(err error, status int) *ErrorDetail {
	detail := &ErrorDetail{
		Code:    errorKey(err, status),
		Message: publicMessage(err, status),
	}
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		detail.Details = verrs.ErrorMap()
	}
	return detail
}
