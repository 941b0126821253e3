package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/microfin-hq/microfin/pkg/jsontree"
	"github.com/microfin-hq/microfin/pkg/session"
)

// ClaudeConfig configures the Anthropic-backed provider.
type ClaudeConfig struct {
	APIKey    string `env:"ANTHROPIC_API_KEY"`
	Model     string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-5"`
	MaxTokens int64  `env:"ANTHROPIC_MAX_TOKENS" envDefault:"2048"`
	BaseURL   string `env:"ANTHROPIC_BASE_URL"`
}

// Enabled reports whether an API key is configured.
func (c ClaudeConfig) Enabled() bool {
	return c.APIKey != ""
}

const analyzeSystemPrompt = `You review microfinance loan contracts for small business owners.
Read the contract and answer with a single JSON object and nothing else.
Use snake_case keys. Include at least: summary, parties, loan_terms (principal, interest_rate as a fraction between 0 and 1, term_months, repayment_schedule), fees, collateral, obligations, risks (array of strings) and red_flags (array of strings).
Use null for anything the contract does not state.`

const explainSystemPrompt = `You explain loan contract terms to small business owners with no legal background.
Answer in at most three short sentences of plain language. Do not use markdown.`

// Claude analyses and explains contracts with the Anthropic Messages API.
type Claude struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewClaude(cfg ClaudeConfig, opts ...option.RequestOption) *Claude {
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Claude{
		client:    anthropic.NewClient(reqOpts...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: maxTokens,
	}
}

func (c *Claude) Analyze(ctx context.Context, _ session.Principal, text string) (json.RawMessage, error) {
	out, err := c.complete(ctx, analyzeSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	doc := extractJSON(out)
	if doc == "" {
		return nil, fmt.Errorf("%w: model answered without JSON", ErrInvalidAnalysis)
	}
	return json.RawMessage(doc), nil
}

func (c *Claude) Explain(ctx context.Context, _ session.Principal, q Question) (string, error) {
	var b strings.Builder
	if q.Title != "" {
		fmt.Fprintf(&b, "Document: %s\n", q.Title)
	}
	fmt.Fprintf(&b, "Field: %s (%s)\n", q.Label, q.Event.Path.Pointer())
	fmt.Fprintf(&b, "Value: %s\n", q.Display)
	b.WriteString("What does this mean for the borrower?")

	out, err := c.complete(ctx, explainSystemPrompt, b.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Claude) complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{{
			Text: system,
			Type: "text",
		}},
		Messages: []anthropic.MessageParam{{
			Role:    anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt)},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyAnalysis
	}

	var out strings.Builder
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			out.WriteString(block.AsText().Text)
		}
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", ErrEmptyAnalysis
	}
	return out.String(), nil
}

// extractJSON returns the first JSON object or array in s, tolerating
// markdown code fences and prose around it.
func extractJSON(s string) string {
	for i, r := range s {
		if r != '{' && r != '[' {
			continue
		}
		for j := len(s); j > i; j-- {
			if c := s[j-1]; c != '}' && c != ']' {
				continue
			}
			if _, err := jsontree.DecodeString(s[i:j]); err == nil {
				return s[i:j]
			}
		}
		return ""
	}
	return ""
}
