// Package enrich builds a bounded prompt from findings and per-domain
// guidance, invokes the generative collaborator once, and deterministically
// validates its output into alerts, with a fallback renderer when the
// collaborator is unavailable or its output is unusable.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gridline-labs/gridline/internal/model"
	"github.com/gridline-labs/gridline/pkg/anthropic"
)

// Config holds enrichment transformer settings.
type Config struct {
	Model     string        `yaml:"model" mapstructure:"model"`
	MaxTokens int64         `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// RequestsPerMinute limits collaborator calls across runs. Zero
	// disables the limiter.
	RequestsPerMinute int `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// Result is the transformer's output. The alert slice has the same shape on
// the enriched and fallback paths.
type Result struct {
	Alerts   []model.Alert
	Warnings []string
	Fallback bool
	Prompt   string
	Model    string
	Usage    anthropic.TokenUsage
}

// Transformer wraps the single suspension point of the pipeline: one
// collaborator call per finding batch, with an explicit timeout. A failed or
// cancelled call routes the whole batch to fallback; there is no retry.
type Transformer struct {
	client  anthropic.Client
	cfg     Config
	limiter *rate.Limiter
}

// New creates a Transformer. A nil client means enrichment always falls
// back, which keeps the pipeline usable without credentials.
func New(client anthropic.Client, cfg Config) *Transformer {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return &Transformer{client: client, cfg: cfg, limiter: limiter}
}

// Enrich transforms a finding batch into alerts. Collaborator failure never
// propagates: the batch falls back deterministically and the result carries
// the fallback flag.
func (t *Transformer) Enrich(ctx context.Context, findings []model.Finding, guidance map[model.Domain]string) (Result, error) {
	if len(findings) == 0 {
		return Result{Alerts: []model.Alert{}, Model: t.cfg.Model}, nil
	}

	prompt, err := BuildPrompt(findings, guidance)
	if err != nil {
		// Findings that cannot be serialized cannot be enriched or
		// hashed; this is an input defect, not a collaborator failure.
		return Result{}, err
	}

	if t.client == nil {
		return t.fallback(findings, prompt, "no collaborator configured"), nil
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return t.fallback(findings, prompt, "rate limiter: "+err.Error()), nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	resp, err := t.client.CreateMessage(callCtx, anthropic.MessageRequest{
		Model:     t.cfg.Model,
		MaxTokens: t.cfg.MaxTokens,
		System:    anthropic.BuildCachedSystemBlocks(systemText),
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return t.fallback(findings, prompt, err.Error()), nil
	}

	resp.Usage.LogCost(t.cfg.Model, "enrich")

	records, err := ParseResponse(extractText(resp))
	if err != nil {
		// Unparseable output is a validation failure, not a transport
		// failure: every finding is independently absent and dropped.
		zap.L().Warn("enrich: unparseable collaborator response", zap.Error(err))
		records = nil
	}

	alerts, warnings := Assemble(findings, records)
	return Result{
		Alerts:   alerts,
		Warnings: warnings,
		Prompt:   prompt,
		Model:    t.cfg.Model,
		Usage:    resp.Usage,
	}, nil
}

func (t *Transformer) fallback(findings []model.Finding, prompt, reason string) Result {
	zap.L().Warn("enrich: falling back to deterministic alerts",
		zap.Int("findings", len(findings)),
		zap.String("reason", reason),
	)
	return Result{
		Alerts:   FallbackAlerts(findings),
		Fallback: true,
		Prompt:   prompt,
		Model:    model.FallbackModel,
	}
}

// extractText concatenates the text content blocks of a response.
func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var out string
	for _, block := range resp.Content {
		if block.Text != "" {
			if out != "" {
				out += "\n"
			}
			out += block.Text
		}
	}
	return out
}
