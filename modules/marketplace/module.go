package marketplace

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/microfin-hq/microfin/binder"
	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/backend"
	"github.com/microfin-hq/microfin/pkg/logger"
	"github.com/microfin-hq/microfin/pkg/ratelimiter"
	"github.com/microfin-hq/microfin/pkg/session"
	"github.com/microfin-hq/microfin/pkg/validator"
	"github.com/microfin-hq/microfin/svc/contracts"
)

// Loans is the loans service as used by the web handlers.
type Loans interface {
	Login(ctx context.Context, rec validator.Record) (session.Principal, error)
	Register(ctx context.Context, rec validator.Record) (session.Principal, error)
	MyApplications(ctx context.Context, p session.Principal) ([]backend.Application, error)
	OpenApplications(ctx context.Context, p session.Principal) ([]backend.Application, error)
	Application(ctx context.Context, p session.Principal, id string) (backend.Application, error)
	Apply(ctx context.Context, p session.Principal, rec validator.Record) (backend.Application, error)
	Accept(ctx context.Context, p session.Principal, id string, rec validator.Record) (backend.Application, error)
	Profile(ctx context.Context, p session.Principal) (backend.BusinessProfile, error)
	SaveProfile(ctx context.Context, p session.Principal, rec validator.Record) (backend.BusinessProfile, error)
	Validate(form string, rec validator.Record) (validator.ErrorMap, error)
}

// Contracts is the contract analysis service as used by the web handlers.
type Contracts interface {
	Analyze(ctx context.Context, p session.Principal, rec validator.Record) (*contracts.Analysis, error)
	Get(p session.Principal, id string) (*contracts.Analysis, error)
	List(p session.Principal) []*contracts.Analysis
	Delete(ctx context.Context, p session.Principal, id string) error
	Explain(ctx context.Context, p session.Principal, id, ptr string) (contracts.Explanation, error)
}

// Module serves the marketplace pages.
type Module struct {
	loans        Loans
	contracts    Contracts
	sessions     *session.Manager
	views        *Views
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]

	limiter  *ratelimiter.Bucket
	limitKey ratelimiter.KeyFunc
}

type Option func(*Module)

// WithViews replaces the built-in views. Nil fields keep their default.
func WithViews(v *Views) Option {
	return func(m *Module) {
		if v != nil {
			m.views = v.withDefaults()
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// WithLimiter throttles contract analysis and explanation requests.
func WithLimiter(b *ratelimiter.Bucket, key ratelimiter.KeyFunc) Option {
	return func(m *Module) {
		m.limiter = b
		m.limitKey = key
	}
}

func New(loans Loans, contracts Contracts, sessions *session.Manager, opts ...Option) *Module {
	m := &Module{
		loans:     loans,
		contracts: contracts,
		sessions:  sessions,
		views:     DefaultViews(),
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.errorHandler = handler.NewErrorHandler(m.log, handler.ErrorHandlerConfig{
		ErrorPage:  m.views.ErrorPage,
		ErrorToast: m.views.ErrorToast,
	})
	return m
}

// Handle returns the module router. The session middleware must run before it.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", m.home)

	r.HandleFunc("/login", wrap(m, m.login))
	r.HandleFunc("/register", wrap(m, m.register))
	r.Post("/logout", wrap(m, m.logout))

	r.Group(func(r chi.Router) {
		r.Use(m.sessions.RequireRole(session.RoleBorrower))
		r.Get("/loans", wrap(m, m.myApplications))
		r.HandleFunc("/loans/apply", wrap(m, m.apply))
		r.HandleFunc("/profile", wrap(m, m.profile))
	})

	r.Group(func(r chi.Router) {
		r.Use(m.sessions.RequireRole(session.RoleLender))
		r.Get("/market", wrap(m, m.market))
		r.HandleFunc("/market/{id}/accept", wrap(m, m.accept))
	})

	r.Group(func(r chi.Router) {
		r.Use(m.sessions.RequireAuth)
		r.Get("/contracts", wrap(m, m.contractsIndex))
		r.With(m.throttle("analyze")).Post("/contracts", wrap(m, m.contractsIndex))
		r.Get("/contracts/{id}", wrap(m, m.analysis))
		r.Get("/contracts/{id}/raw", wrap(m, m.analysisJSON))
		r.Post("/contracts/{id}/delete", wrap(m, m.deleteAnalysis))
		r.With(m.throttle("explain")).Post("/contracts/{id}/explain", wrap(m, m.explain))
	})

	r.Post("/api/validate/{form}", handler.Wrap(m.validate,
		handler.WithBinders[handler.Context, validateRequest](
			binder.Path(chi.URLParam),
			binder.Record(),
		),
		handler.WithErrorHandler[handler.Context, validateRequest](m.errorHandler),
	))

	return r
}

// throttle limits the route when a limiter is configured. Rejections go
// through the error handler so datastar requests get a toast.
func (m *Module) throttle(scope string) func(http.Handler) http.Handler {
	if m.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	key := m.limitKey
	if key == nil {
		key = ratelimiter.ByPrincipal(nil)
	}
	return ratelimiter.Middleware(m.limiter, key,
		ratelimiter.WithScope(scope),
		ratelimiter.WithReject(func(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result) {
			m.errorHandler(handler.NewContext(w, r),
				handler.ErrTooManyRequests.WithMessage("Too many requests, please wait a moment"))
		}),
	)
}

// formRequest carries the submitted record plus the routing fields every
// page shares.
type formRequest struct {
	ID     string `path:"id"`
	Next   string `query:"next"`
	Path   string `query:"path"`
	Record validator.Record
}

func (f *formRequest) SetRecord(rec validator.Record) { f.Record = rec }

func wrap(m *Module, h handler.HandlerFunc[handler.Context, formRequest]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, formRequest](
			binder.Path(chi.URLParam),
			binder.Query(),
			binder.Record(),
		),
		handler.WithErrorHandler[handler.Context, formRequest](m.errorHandler),
	)
}

func (m *Module) home(w http.ResponseWriter, r *http.Request) {
	p, ok := session.PrincipalFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, homePath(p), http.StatusSeeOther)
}

func homePath(p session.Principal) string {
	switch p.Role {
	case session.RoleBorrower:
		return "/loans"
	case session.RoleLender, session.RoleAdmin:
		return "/market"
	default:
		return "/login"
	}
}

// page collects the layout data shared by every page. Flashes are consumed
// only by GET requests so a redirecting POST leaves them for the next page.
func (m *Module) page(ctx handler.Context, title string) Page {
	pg := Page{Title: title}
	if p, ok := ctx.Principal(); ok {
		pg.Principal = &p
	}
	if s := ctx.Session(); s != nil && ctx.Request().Method == http.MethodGet {
		flashes, err := m.sessions.TakeFlashes(ctx, s)
		if err != nil {
			m.log.WarnContext(ctx, "failed to read flashes", logger.Error(err))
		}
		pg.Flashes = flashes
	}
	return pg
}

func (m *Module) flash(ctx handler.Context, kind session.FlashKind, msg string) {
	if err := m.sessions.AddFlash(ctx, ctx.ResponseWriter(), ctx.Request(), session.Flash{Kind: kind, Message: msg}); err != nil {
		m.log.WarnContext(ctx, "failed to queue flash", logger.Error(err))
	}
}

func principal(ctx handler.Context) session.Principal {
	p, _ := ctx.Principal()
	return p
}
