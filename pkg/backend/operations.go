package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

func (c *Client) Login(ctx context.Context, in Credentials) (AuthResult, error) {
	var out AuthResult
	err := c.call(ctx, "login", http.MethodPost, "/auth/login", in, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, in Registration) (AuthResult, error) {
	var out AuthResult
	err := c.call(ctx, "register", http.MethodPost, "/auth/register", in, &out)
	return out, err
}

// ListApplications returns the applications visible to the token holder.
func (c *Client) ListApplications(ctx context.Context, f ApplicationFilter) ([]Application, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Mine {
		q.Set("mine", "true")
	}
	path := "/loan-applications"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []Application
	err := c.call(ctx, "list_applications", http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GetApplication(ctx context.Context, id string) (Application, error) {
	var out Application
	err := c.call(ctx, "get_application", http.MethodGet, "/loan-applications/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateApplication(ctx context.Context, in ApplicationInput) (Application, error) {
	var out Application
	err := c.call(ctx, "create_application", http.MethodPost, "/loan-applications", in, &out)
	return out, err
}

// AcceptApplication accepts application id on the lender's terms.
func (c *Client) AcceptApplication(ctx context.Context, id string, terms Terms) (Application, error) {
	var out Application
	err := c.call(ctx, "accept_application", http.MethodPost, "/loan-applications/"+url.PathEscape(id)+"/accept", terms, &out)
	return out, err
}

// GetProfile returns the borrower's business profile. A borrower without a
// profile gets an empty one.
func (c *Client) GetProfile(ctx context.Context) (BusinessProfile, error) {
	var out BusinessProfile
	err := c.call(ctx, "get_profile", http.MethodGet, "/business-profile", nil, &out)
	if IsNotFound(err) {
		return BusinessProfile{}, nil
	}
	return out, err
}

func (c *Client) SaveProfile(ctx context.Context, in BusinessProfile) (BusinessProfile, error) {
	var out BusinessProfile
	err := c.call(ctx, "save_profile", http.MethodPut, "/business-profile", in, &out)
	return out, err
}

// AnalyzeContract sends contract text for analysis and returns the resulting
// JSON document. An {"analysis": ...} or {"data": ...} wrapper is removed.
func (c *Client) AnalyzeContract(ctx context.Context, text string) (Analysis, error) {
	var raw json.RawMessage
	if err := c.call(ctx, "analyze_contract", http.MethodPost, "/contracts/analyze", map[string]string{"text": text}, &raw); err != nil {
		return nil, err
	}
	for _, key := range []string{"analysis", "data"} {
		if v := gjson.GetBytes(raw, key); v.IsObject() || v.IsArray() {
			return Analysis(v.Raw), nil
		}
	}
	return Analysis(raw), nil
}

// Explain returns a plain-language explanation of one analysed value.
func (c *Client) Explain(ctx context.Context, in ExplainRequest) (string, error) {
	var raw json.RawMessage
	if err := c.call(ctx, "explain", http.MethodPost, "/contracts/explain", in, &raw); err != nil {
		return "", err
	}
	for _, path := range []string{"explanation", "data.explanation", "data"} {
		if v := gjson.GetBytes(raw, path); v.Type == gjson.String && v.Str != "" {
			return v.Str, nil
		}
	}
	return "", fmt.Errorf("%w: no explanation in response", ErrDecode)
}

// Ping checks that the backend answers its health endpoint. Used by the
// readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, "ping", http.MethodGet, "/health", nil, nil)
}
