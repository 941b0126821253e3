package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"

	"github.com/microfin-hq/microfin/pkg/logger"
	"github.com/microfin-hq/microfin/pkg/requestid"
)

const (
	userAgent      = "microfin-web/1.0"
	maxErrorBody   = 64 << 10
	maxSuccessBody = 8 << 20
)

// Observer receives the latency and outcome of every backend call.
type Observer interface {
	ObserveBackend(operation string, err error, d time.Duration)
}

// Client talks JSON to the marketplace REST backend.
// It is safe for concurrent use; WithToken returns a copy bound to a user.
type Client struct {
	base     *url.URL
	http     *http.Client
	cfg      Config
	token    string
	log      *slog.Logger
	observer Observer
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates a client for cfg.BaseURL. Outgoing requests carry the request
// ID found in their context.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("%w: base URL %q", ErrInvalidConfig, cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 100 * time.Millisecond
	}

	c := &Client{
		base: base,
		cfg:  cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: requestid.NewTransport(&http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			}),
		},
		log:      logger.Nop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithToken returns a copy of c that authenticates as the holder of token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// call performs one backend operation and reports it to the observer.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()
	err := c.send(ctx, method, path, in, out)
	elapsed := time.Since(start)
	c.observer.ObserveBackend(op, err, elapsed)

	if err != nil {
		c.log.WarnContext(ctx, "backend call failed",
			logger.Component("backend"),
			slog.String("operation", op),
			logger.Duration(elapsed),
			logger.Error(err),
		)
	}
	return err
}

// send encodes in, retries idempotent requests on transient failures and
// decodes the answer into out.
func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = b
	}

	if method != http.MethodGet {
		return c.roundTrip(ctx, method, path, body, out)
	}

	attempt := 0
	b := retry.WithMaxRetries(c.cfg.MaxRetries, retry.WithJitterPercent(10, retry.NewExponential(c.cfg.RetryBase)))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := c.roundTrip(ctx, method, path, body, out)
		if err != nil && transient(err) {
			c.log.DebugContext(ctx, "retrying backend request",
				logger.Component("backend"),
				logger.RetryCount(attempt),
				logger.Error(err),
			)
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxSuccessBody))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return decodeBody(raw, out)
}

// decodeBody accepts both bare payloads and {"data": ...} envelopes.
// Raw targets receive the body untouched.
func decodeBody(raw []byte, out any) error {
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%w: malformed JSON", ErrDecode)
	}
	if dst, ok := out.(*json.RawMessage); ok {
		*dst = append((*dst)[:0], raw...)
		return nil
	}
	if data := gjson.GetBytes(raw, "data"); data.Exists() && gjson.ParseBytes(raw).IsObject() {
		raw = []byte(data.Raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// decodeError pulls the message out of the common error body shapes:
// {"error":{"code","message"}}, {"error":"..."}, {"message":"..."} and {"detail":"..."}.
func decodeError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}
	if gjson.ValidBytes(raw) {
		res := gjson.ParseBytes(raw)
		apiErr.Code = res.Get("error.code").String()
		for _, path := range []string{"error.message", "error", "message", "detail"} {
			if v := res.Get(path); v.Type == gjson.String && v.Str != "" {
				apiErr.Message = v.Str
				break
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// transient reports whether a GET is worth repeating.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests ||
			apiErr.Status == http.StatusBadGateway ||
			apiErr.Status == http.StatusServiceUnavailable ||
			apiErr.Status == http.StatusGatewayTimeout
	}
	return false
}

type nopObserver struct{}

func (nopObserver) ObserveBackend(string, error, time.Duration) {}
