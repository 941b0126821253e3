package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/microfin-hq/microfin/pkg/logger"
	"github.com/microfin-hq/microfin/pkg/requestid"
	"github.com/microfin-hq/microfin/pkg/validator"
)

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams contains data for rendering error toasts
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning", "info"
	RequestID string
	Fields    validator.ErrorMap
}

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// ErrorPage renders full error page for regular HTTP requests
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders toast notification for DataStar requests
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget specifies where to render toast notifications (default: "#toast-container")
	ToastTarget string

	// ToastMode specifies how to render toasts (default: PatchPrepend)
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	status := StatusCode(err)
	info := ErrorInfo{
		StatusCode: status,
		Message:    publicMessage(err, status),
		Type:       "error",
		LogLevel:   slog.LevelError,
	}
	if status < http.StatusInternalServerError {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func setConfigDefaults(cfg ErrorHandlerConfig) ErrorHandlerConfig {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	return cfg
}

// wantsJSON reports whether the client expects a JSON error body.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// NewErrorHandler creates the error handler shared by all routes.
// API requests get the JSON error envelope, datastar requests get a toast
// patch and plain requests get a full error page.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	cfg = setConfigDefaults(cfg)
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		requestID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		var resp Response
		switch {
		case wantsJSON(r) && !IsDataStar(r):
			resp = JSONError(err)
		case IsDataStar(r):
			if cfg.ErrorToast == nil {
				log.Warn("no error toast component configured", logger.Component("error_handler"))
				return
			}
			params := ErrorToastParams{
				Message:   info.Message,
				Type:      info.Type,
				RequestID: requestID,
			}
			if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
				params.Fields = verrs.ErrorMap()
			}
			resp = Templ(cfg.ErrorToast(params), WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
		case cfg.ErrorPage != nil:
			resp = TemplStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
				Error:      info.Message,
				StatusCode: info.StatusCode,
				RequestID:  requestID,
				RetryURL:   r.URL.Path,
			}))
		default:
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		if renderErr := resp.Render(w, r); renderErr != nil {
			log.Error("failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
