package handler

import (
	"net/http"
	"net/url"
	"strings"
)

type redirectResponse struct {
	url  string
	code int
	back bool
}

// Render redirects via SSE for datastar requests and via Location otherwise.
func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	target := r.url
	if r.back {
		if ref := req.Header.Get("Referer"); ref != "" && IsSafeRedirect(ref, req) {
			target = ref
		}
	}

	if IsDataStar(req) {
		return NewSSE(w, req).Redirect(target)
	}
	http.Redirect(w, req, target, r.code)
	return nil
}

// Redirect creates a redirect response with status 303 (See Other).
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectWithCode creates a redirect response with a specific status code.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

// RedirectBack redirects to the same-host referrer, or to fallback.
func RedirectBack(fallback string) Response {
	return redirectResponse{url: fallback, code: http.StatusSeeOther, back: true}
}

// IsSafeRedirect reports whether target stays on the current host.
// Protocol-relative URLs are rejected.
func IsSafeRedirect(target string, r *http.Request) bool {
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return false
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return parsed.Scheme == ""
	}
	return parsed.Host == r.Host
}
