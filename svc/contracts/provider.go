package contracts

import (
	"context"
	"encoding/json"

	"github.com/microfin-hq/microfin/pkg/backend"
	"github.com/microfin-hq/microfin/pkg/jsontree"
	"github.com/microfin-hq/microfin/pkg/session"
)

// Question asks for an explanation of one leaf of an analysis.
type Question struct {
	Title string
	Event jsontree.LeafEvent
	// Label is the human-readable name of the leaf, Display its formatted value.
	Label   string
	Display string
}

// Analyzer turns contract text into a JSON document.
type Analyzer interface {
	Analyze(ctx context.Context, p session.Principal, text string) (json.RawMessage, error)
}

// Explainer explains one analysed value in plain language.
type Explainer interface {
	Explain(ctx context.Context, p session.Principal, q Question) (string, error)
}

// BackendProvider delegates analysis and explanation to the marketplace backend.
type BackendProvider struct {
	client *backend.Client
}

func NewBackendProvider(c *backend.Client) *BackendProvider {
	return &BackendProvider{client: c}
}

func (b *BackendProvider) Analyze(ctx context.Context, p session.Principal, text string) (json.RawMessage, error) {
	return b.client.WithToken(p.APIToken).AnalyzeContract(ctx, text)
}

func (b *BackendProvider) Explain(ctx context.Context, p session.Principal, q Question) (string, error) {
	return b.client.WithToken(p.APIToken).Explain(ctx, backend.ExplainRequest{
		Key:   q.Event.Key,
		Value: q.Event.Value,
		Path:  q.Event.Path,
	})
}
