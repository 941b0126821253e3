package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/microfin-hq/microfin/pkg/cache"
	"github.com/microfin-hq/microfin/pkg/jsontree"
	"github.com/microfin-hq/microfin/pkg/logger"
	"github.com/microfin-hq/microfin/pkg/sanitizer"
	"github.com/microfin-hq/microfin/pkg/session"
	"github.com/microfin-hq/microfin/pkg/validator"
)

var cleanText = sanitizer.Compose(sanitizer.StripControl, sanitizer.Trim)

// FormAnalysis names the contract submission form in validation metrics.
const FormAnalysis = "contract_analysis"

const (
	cacheAnalyses     = "analyses"
	cacheExplanations = "explanations"
	defaultTitle      = "Contract analysis"
)

// Analysis is one analysed contract.
type Analysis struct {
	ID        uuid.UUID
	OwnerID   string
	Title     string
	Provider  string
	Payload   any
	Raw       json.RawMessage
	CreatedAt time.Time
}

// View returns a fresh tree view of the analysis titled with its title.
func (a *Analysis) View(opts ...jsontree.Option) *jsontree.View {
	return jsontree.NewView(a.Payload, append([]jsontree.Option{jsontree.WithTitle(a.Title)}, opts...)...)
}

// Explanation is the plain-language meaning of one analysed value.
type Explanation struct {
	AnalysisID uuid.UUID
	Event      jsontree.LeafEvent
	Label      string
	Display    string
	Text       string
	Cached     bool
}

// Observer receives cache, validation and provider outcomes.
type Observer interface {
	ObserveValidation(form string, valid bool)
	ObserveExplanation(provider string, err error)
	CacheHit(cache string)
	CacheMiss(cache string)
}

// Service analyses contracts, keeps the results per owner and explains
// individual values on request.
type Service struct {
	provider     Provider
	cfg          Config
	analyses     *cache.LRUCache[uuid.UUID, *Analysis]
	explanations *cache.LRUCache[string, string]
	rules        validator.RuleSet
	observer     Observer
	log          *slog.Logger
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithObserver reports validation, explanation and cache events to o.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the service logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a contract service backed by provider. A nil provider
// makes Analyze fail with ErrNoProvider.
func NewService(provider Provider, cfg Config, opts ...Option) *Service {
	cfg = cfg.withDefaults()
	s := &Service{
		provider: provider,
		cfg:      cfg,
		observer: nopObserver{},
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.analyses = cache.NewLRUCache[uuid.UUID, *Analysis](cfg.MaxAnalyses,
		cache.WithEvictCallback(func(id uuid.UUID, _ *Analysis) {
			s.forgetExplanations(id)
		}),
	)
	s.explanations = cache.NewLRUCache[string, string](cfg.ExplanationCache,
		cache.WithTTL[string, string](cfg.ExplanationTTL),
		cache.WithClock[string, string](s.now),
	)
	s.rules = validator.RuleSet{
		"text":  {validator.Required("Contract text"), validator.MaxLength(cfg.MaxTextLength)},
		"title": {validator.Optional(validator.MaxLength(200))},
	}
	return s
}

// Analyze validates the submitted contract, sends it to the provider and
// stores the result for the principal.
func (s *Service) Analyze(ctx context.Context, p session.Principal, rec validator.Record) (*Analysis, error) {
	if p.UserID == "" {
		return nil, ErrForbidden
	}
	engine := validator.New(s.rules)
	valid := engine.Validate(rec)
	s.observer.ObserveValidation(FormAnalysis, valid)
	if !valid {
		return nil, engine.Err()
	}
	if s.provider == nil {
		return nil, ErrNoProvider
	}

	raw, err := s.provider.Analyze(ctx, p, cleanText(rec.String("text")))
	if err != nil {
		return nil, err
	}
	payload, err := jsontree.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnalysis, err)
	}
	if !jsontree.Classify(payload).IsContainer() {
		return nil, ErrInvalidAnalysis
	}
	if err := jsontree.Walk(payload, func(jsontree.Node) error { return nil }); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnalysis, err)
	}

	title := sanitizer.NormalizeWhitespace(rec.String("title"))
	if title == "" {
		title = defaultTitle
	}
	a := &Analysis{
		ID:        uuid.New(),
		OwnerID:   p.UserID,
		Title:     title,
		Provider:  s.provider.Name(),
		Payload:   payload,
		Raw:       raw,
		CreatedAt: s.now(),
	}
	s.analyses.Put(a.ID, a)

	s.log.InfoContext(ctx, "contract analysed",
		logger.UserID(p.UserID),
		logger.AnalysisID(a.ID),
		slog.String("provider", a.Provider),
	)
	return a, nil
}

// Get returns the analysis with id when the principal may see it.
// Admins see every analysis.
func (s *Service) Get(p session.Principal, id string) (*Analysis, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrAnalysisNotFound
	}
	a, ok := s.analyses.Get(uid)
	if !ok {
		s.observer.CacheMiss(cacheAnalyses)
		return nil, ErrAnalysisNotFound
	}
	s.observer.CacheHit(cacheAnalyses)
	if !s.visible(p, a) {
		return nil, ErrAnalysisNotFound
	}
	return a, nil
}

// List returns the principal's analyses, newest first.
func (s *Service) List(p session.Principal) []*Analysis {
	var out []*Analysis
	for _, a := range s.analyses.Values() {
		if s.visible(p, a) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b *Analysis) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// Delete removes an analysis and its cached explanations.
func (s *Service) Delete(ctx context.Context, p session.Principal, id string) error {
	a, err := s.Get(p, id)
	if err != nil {
		return err
	}
	s.analyses.Remove(a.ID)
	s.log.InfoContext(ctx, "contract analysis deleted", logger.UserID(p.UserID), logger.AnalysisID(a.ID))
	return nil
}

// Explain explains the leaf at the JSON pointer ptr of an analysis.
// Explanations are cached per analysis and leaf.
func (s *Service) Explain(ctx context.Context, p session.Principal, id, ptr string) (Explanation, error) {
	a, err := s.Get(p, id)
	if err != nil {
		return Explanation{}, err
	}
	path, err := jsontree.ParsePointer(ptr)
	if err != nil {
		return Explanation{}, err
	}
	ev, err := a.View().Select(path)
	if err != nil {
		return Explanation{}, err
	}

	out := Explanation{
		AnalysisID: a.ID,
		Event:      ev,
		Label:      leafLabel(a.Payload, ev),
		Display:    jsontree.FormatLeaf(ev.Value),
	}

	key := explanationKey(a.ID, ev.Path)
	if text, ok := s.explanations.Get(key); ok {
		s.observer.CacheHit(cacheExplanations)
		out.Text = text
		out.Cached = true
		return out, nil
	}
	s.observer.CacheMiss(cacheExplanations)

	text, err := s.provider.Explain(ctx, p, Question{
		Title:   a.Title,
		Event:   ev,
		Label:   out.Label,
		Display: out.Display,
	})
	s.observer.ObserveExplanation(s.provider.Name(), err)
	if err != nil {
		s.log.WarnContext(ctx, "explanation failed",
			logger.AnalysisID(a.ID),
			logger.Path(ev.Path.Pointer()),
			logger.Error(err),
		)
		return Explanation{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Explanation{}, ErrEmptyAnalysis
	}
	s.explanations.Put(key, text)
	out.Text = text
	return out, nil
}

// IsNotFound reports whether err means the requested analysis or value does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAnalysisNotFound) ||
		errors.Is(err, jsontree.ErrPathNotFound) ||
		errors.Is(err, jsontree.ErrNotLeaf)
}

func (s *Service) visible(p session.Principal, a *Analysis) bool {
	return p.Role == session.RoleAdmin || (p.UserID != "" && a.OwnerID == p.UserID)
}

func (s *Service) forgetExplanations(id uuid.UUID) {
	prefix := id.String() + "#"
	for _, key := range s.explanations.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.explanations.Remove(key)
		}
	}
}

func explanationKey(id uuid.UUID, p jsontree.Path) string {
	return id.String() + "#" + p.Pointer()
}

func leafLabel(payload any, ev jsontree.LeafEvent) string {
	parent := jsontree.KindObject
	if len(ev.Path) > 1 {
		if v, err := jsontree.Resolve(payload, ev.Path[:len(ev.Path)-1]); err == nil {
			parent = jsontree.Classify(v)
		}
	} else if len(ev.Path) == 1 {
		parent = jsontree.Classify(payload)
	}
	return jsontree.DefaultFormatter().Label(parent, ev.Key)
}

type nopObserver struct{}

func (nopObserver) ObserveValidation(string, bool)   {}
func (nopObserver) ObserveExplanation(string, error) {}
func (nopObserver) CacheHit(string)                  {}
func (nopObserver) CacheMiss(string)                 {}
