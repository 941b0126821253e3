package contracts

// Provider analyses and explains contracts.
type Provider interface {
	Analyzer
	Explainer
	Name() string
}

func (b *BackendProvider) Name() string { return "backend" }

func (c *Claude) Name() string { return "claude" }
