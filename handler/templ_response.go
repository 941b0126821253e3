package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption is an alias for datastar's PatchElementOption
type TemplOption = datastar.PatchElementOption

// WithTarget sets the selector of the element to patch.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is a component with its own patch options, for TemplMulti.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	status  int
	partial templ.Component
	full    templ.Component
	options []TemplOption
}

// Render patches the partial over SSE for datastar requests and writes the
// full page otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders one component, as HTML or as a datastar element patch.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, options: opts}
}

// TemplStatus is Templ with an explicit HTTP status for plain requests,
// e.g. 422 when a submitted form is re-rendered with errors.
func TemplStatus(status int, component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: status, partial: component, full: component, options: opts}
}

// TemplPartial renders partial for datastar requests and full otherwise.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}

// TemplPartialStatus is TemplPartial with an explicit HTTP status for the
// full page.
func TemplPartialStatus(status int, partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{status: status, partial: partial, full: full, options: opts}
}

type templMultiResponse struct {
	patches []TemplPatch
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := NewSSE(w, r)
		for _, patch := range t.patches {
			if err := sse.PatchElementTempl(patch.Component, patch.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, patch := range t.patches {
		if err := patch.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// TemplMulti sends each patch separately to datastar clients and
// concatenates the components for plain requests.
func TemplMulti(patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches}
}
