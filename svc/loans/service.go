package loans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/microfin-hq/microfin/pkg/backend"
	"github.com/microfin-hq/microfin/pkg/logger"
	"github.com/microfin-hq/microfin/pkg/sanitizer"
	"github.com/microfin-hq/microfin/pkg/session"
	"github.com/microfin-hq/microfin/pkg/validator"
)

// Marketplace is the part of the backend API the loans service uses.
type Marketplace interface {
	Login(ctx context.Context, in backend.Credentials) (backend.AuthResult, error)
	Register(ctx context.Context, in backend.Registration) (backend.AuthResult, error)
	ListApplications(ctx context.Context, f backend.ApplicationFilter) ([]backend.Application, error)
	GetApplication(ctx context.Context, id string) (backend.Application, error)
	CreateApplication(ctx context.Context, in backend.ApplicationInput) (backend.Application, error)
	AcceptApplication(ctx context.Context, id string, terms backend.Terms) (backend.Application, error)
	GetProfile(ctx context.Context) (backend.BusinessProfile, error)
	SaveProfile(ctx context.Context, in backend.BusinessProfile) (backend.BusinessProfile, error)
}

// Connector returns a Marketplace acting on behalf of the holder of token.
// An empty token means an anonymous caller.
type Connector func(token string) Marketplace

// FromClient adapts a backend client to a Connector.
func FromClient(c *backend.Client) Connector {
	return func(token string) Marketplace {
		return c.WithToken(token)
	}
}

// Observer receives form validation outcomes.
type Observer interface {
	ObserveValidation(form string, valid bool)
}

// Service validates marketplace forms and forwards valid submissions to the backend.
type Service struct {
	connect  Connector
	rules    map[string]validator.RuleSet
	observer Observer
	log      *slog.Logger
}

type Option func(*Service)

// WithRuleSets replaces the embedded form rules.
func WithRuleSets(sets map[string]validator.RuleSet) Option {
	return func(s *Service) {
		if sets != nil {
			s.rules = sets
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates the loans service. It fails only when the embedded rule
// file is broken.
func NewService(connect Connector, opts ...Option) (*Service, error) {
	s := &Service{
		connect:  connect,
		observer: nopObserver{},
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rules == nil {
		sets, err := DefaultRuleSets()
		if err != nil {
			return nil, err
		}
		s.rules = sets
	}
	return s, nil
}

// Login checks the credentials with the backend and returns the principal
// to sign in. Rejected credentials are reported as a form error.
func (s *Service) Login(ctx context.Context, rec validator.Record) (session.Principal, error) {
	if err := s.check(FormLogin, rec); err != nil {
		return session.Principal{}, err
	}

	res, err := s.connect("").Login(ctx, backend.Credentials{
		Email:    sanitizer.NormalizeEmail(rec.String("email")),
		Password: rec.String("password"),
	})
	if backend.IsUnauthorized(err) {
		return session.Principal{}, formError("password", "Invalid email or password")
	}
	if err != nil {
		return session.Principal{}, err
	}
	return principalFrom(res)
}

// Register creates a borrower or lender account.
func (s *Service) Register(ctx context.Context, rec validator.Record) (session.Principal, error) {
	password := rec.String("password")
	confirm := rec.String("password_confirm")
	if err := validator.Merge(
		s.check(FormRegister, rec),
		validator.Apply(validator.Rule{
			Check: func() bool { return confirm == "" || password == confirm },
			Error: validator.ValidationError{
				Field:          "password_confirm",
				Message:        "Passwords do not match",
				TranslationKey: "validation.password_confirm",
			},
		}),
	); err != nil {
		return session.Principal{}, err
	}

	res, err := s.connect("").Register(ctx, backend.Registration{
		Name:     sanitizer.NormalizeWhitespace(rec.String("name")),
		Email:    sanitizer.NormalizeEmail(rec.String("email")),
		Password: password,
		Role:     rec.String("role"),
	})
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
			return session.Principal{}, formError("email", "An account with this email already exists")
		}
		return session.Principal{}, err
	}
	return principalFrom(res)
}

// MyApplications lists the borrower's own applications.
func (s *Service) MyApplications(ctx context.Context, p session.Principal) ([]backend.Application, error) {
	if !p.Can(session.RoleBorrower) {
		return nil, ErrForbidden
	}
	return s.connect(p.APIToken).ListApplications(ctx, backend.ApplicationFilter{Mine: true})
}

// OpenApplications lists the applications lenders can still accept.
func (s *Service) OpenApplications(ctx context.Context, p session.Principal) ([]backend.Application, error) {
	if !p.Can(session.RoleLender) {
		return nil, ErrForbidden
	}
	return s.connect(p.APIToken).ListApplications(ctx, backend.ApplicationFilter{Status: backend.StatusPending})
}

// Application returns a single application for a lender reviewing it before
// making an offer.
func (s *Service) Application(ctx context.Context, p session.Principal, id string) (backend.Application, error) {
	if !p.Can(session.RoleLender) {
		return backend.Application{}, ErrForbidden
	}
	return s.connect(p.APIToken).GetApplication(ctx, id)
}

// Apply submits a new loan application for the borrower.
func (s *Service) Apply(ctx context.Context, p session.Principal, rec validator.Record) (backend.Application, error) {
	if !p.Can(session.RoleBorrower) {
		return backend.Application{}, ErrForbidden
	}
	if err := s.check(FormLoanApplication, rec); err != nil {
		return backend.Application{}, err
	}

	amount, _ := rec.Float("amount")
	amount = roundCents(amount)
	term, ok := rec.Int("term_months")
	if err := validator.Apply(
		validator.PositiveAmount("amount", amount),
		validator.Rule{
			Check: func() bool { return ok },
			Error: validator.ValidationError{Field: "term_months", Message: "Term must be a whole number of months"},
		},
	); err != nil {
		return backend.Application{}, err
	}

	app, err := s.connect(p.APIToken).CreateApplication(ctx, backend.ApplicationInput{
		Amount:      amount,
		TermMonths:  term,
		Purpose:     rec.String("purpose"),
		Description: rec.String("description"),
	})
	if err != nil {
		return backend.Application{}, err
	}
	s.log.InfoContext(ctx, "loan application submitted",
		logger.UserID(p.UserID),
		logger.ApplicationID(app.ID),
	)
	return app, nil
}

// Accept accepts a pending application on the lender's terms. The form takes
// the interest rate in percent; the backend stores it as a fraction.
func (s *Service) Accept(ctx context.Context, p session.Principal, id string, rec validator.Record) (backend.Application, error) {
	if !p.Can(session.RoleLender) {
		return backend.Application{}, ErrForbidden
	}
	mp := s.connect(p.APIToken)

	app, err := mp.GetApplication(ctx, id)
	if err != nil {
		return backend.Application{}, err
	}
	if app.Status != backend.StatusPending {
		return app, ErrNotPending
	}
	if err := s.check(FormLenderTerms, rec); err != nil {
		return app, err
	}

	amount, _ := rec.Float("amount")
	rate, _ := rec.Float("interest_rate")
	term, ok := rec.Int("term_months")
	if err := validator.Apply(
		validator.AmountWithin("amount", amount, app.Amount),
		validator.InterestRate("interest_rate", rate, 100),
		validator.TermWithin("term_months", term, 1, 120),
		validator.Rule{
			Check: func() bool { return ok },
			Error: validator.ValidationError{Field: "term_months", Message: "Term must be a whole number of months"},
		},
	); err != nil {
		return app, err
	}

	accepted, err := mp.AcceptApplication(ctx, id, backend.Terms{
		Amount:       roundCents(amount),
		InterestRate: rate / 100,
		TermMonths:   term,
		Notes:        rec.String("notes"),
	})
	if err != nil {
		return app, err
	}
	s.log.InfoContext(ctx, "loan application accepted",
		logger.UserID(p.UserID),
		logger.ApplicationID(id),
	)
	return accepted, nil
}

// Profile returns the borrower's business profile.
func (s *Service) Profile(ctx context.Context, p session.Principal) (backend.BusinessProfile, error) {
	if !p.Can(session.RoleBorrower) {
		return backend.BusinessProfile{}, ErrForbidden
	}
	return s.connect(p.APIToken).GetProfile(ctx)
}

func (s *Service) SaveProfile(ctx context.Context, p session.Principal, rec validator.Record) (backend.BusinessProfile, error) {
	if !p.Can(session.RoleBorrower) {
		return backend.BusinessProfile{}, ErrForbidden
	}
	if err := s.check(FormBusinessProfile, rec); err != nil {
		return backend.BusinessProfile{}, err
	}

	years, yearsOK := rec.Int("years_in_operation")
	employees, employeesOK := rec.Int("employees")
	revenue, _ := rec.Float("annual_revenue")
	if err := validator.Apply(
		validator.Rule{
			Check: func() bool { return yearsOK },
			Error: validator.ValidationError{Field: "years_in_operation", Message: "Must be a whole number"},
		},
		validator.Rule{
			Check: func() bool { return employeesOK },
			Error: validator.ValidationError{Field: "employees", Message: "Must be a whole number"},
		},
	); err != nil {
		return backend.BusinessProfile{}, err
	}

	return s.connect(p.APIToken).SaveProfile(ctx, backend.BusinessProfile{
		BusinessName:     sanitizer.NormalizeWhitespace(rec.String("business_name")),
		Industry:         sanitizer.NormalizeWhitespace(rec.String("industry")),
		YearsInOperation: years,
		AnnualRevenue:    roundCents(revenue),
		Employees:        employees,
		Phone:            sanitizer.NormalizePhone(rec.String("phone")),
		Address:          sanitizer.NormalizeWhitespace(rec.String("address")),
		Description:      sanitizer.Trim(rec.String("description")),
	})
}

func principalFrom(res backend.AuthResult) (session.Principal, error) {
	role, err := session.ParseRole(res.User.Role)
	if err != nil {
		return session.Principal{}, fmt.Errorf("%w: %q", ErrUnknownRole, res.User.Role)
	}
	return session.Principal{
		UserID:   res.User.ID,
		Name:     res.User.Name,
		Email:    res.User.Email,
		Role:     role,
		APIToken: res.Token,
	}, nil
}

func formError(field, msg string) error {
	return validator.ValidationErrors{{Field: field, Message: msg}}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

type nopObserver struct{}

func (nopObserver) ObserveValidation(string, bool) {}
