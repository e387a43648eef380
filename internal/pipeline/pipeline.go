// Package pipeline orchestrates the four-stage transformation: threshold
// evaluation, confidence scoring, enrichment, and portfolio assembly, with
// provenance recorded around the whole run.
package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridline-labs/gridline/internal/confidence"
	"github.com/gridline-labs/gridline/internal/correlate"
	"github.com/gridline-labs/gridline/internal/enrich"
	"github.com/gridline-labs/gridline/internal/ladder"
	"github.com/gridline-labs/gridline/internal/model"
	"github.com/gridline-labs/gridline/internal/provenance"
	"github.com/gridline-labs/gridline/internal/rules"
	"github.com/gridline-labs/gridline/internal/store"
)

// Result is the full pipeline output. Alerts are the primary contract;
// findings, scripts, and ladders are secondary outputs for callers that want
// raw or portfolio-level detail. Slices are always non-nil.
type Result struct {
	RunID      string           `json:"run_id"`
	GameID     string           `json:"game_id"`
	Alerts     []model.Alert    `json:"alerts"`
	Findings   []model.Finding  `json:"findings"`
	Scripts    []model.Script   `json:"scripts"`
	Ladders    []model.Ladder   `json:"ladders"`
	Provenance model.Provenance `json:"provenance"`
	Warnings   []string         `json:"warnings,omitempty"`
	Fallback   bool             `json:"fallback"`
	Cached     bool             `json:"cached,omitempty"`
}

// Pipeline wires the pipeline stages together. All stages are pure except
// the enrichment transformer's single collaborator call.
type Pipeline struct {
	transformer *enrich.Transformer
	guidance    map[model.Domain]string
	thresholds  rules.Thresholds
	scriptCfg   correlate.ScriptConfig
	ladderCfg   ladder.Config
	runs        store.Store // optional run cache; nil disables
}

// Options configures a Pipeline.
type Options struct {
	Transformer *enrich.Transformer
	Guidance    map[model.Domain]string
	Thresholds  rules.Thresholds
	ScriptCfg   correlate.ScriptConfig
	LadderCfg   ladder.Config
	Runs        store.Store
}

// New creates a Pipeline, filling zero-value options with defaults.
func New(opts Options) *Pipeline {
	if opts.Transformer == nil {
		opts.Transformer = enrich.New(nil, enrich.Config{})
	}
	if opts.Guidance == nil {
		opts.Guidance = enrich.DefaultGuidance()
	}
	if opts.Thresholds == (rules.Thresholds{}) {
		opts.Thresholds = rules.DefaultThresholds()
	}
	if opts.ScriptCfg == (correlate.ScriptConfig{}) {
		opts.ScriptCfg = correlate.DefaultScriptConfig()
	}
	if opts.LadderCfg == (ladder.Config{}) {
		opts.LadderCfg = ladder.DefaultConfig()
	}
	return &Pipeline{
		transformer: opts.Transformer,
		guidance:    opts.Guidance,
		thresholds:  opts.Thresholds,
		scriptCfg:   opts.ScriptCfg,
		ladderCfg:   opts.LadderCfg,
		runs:        opts.Runs,
	}
}

// Analyze runs the full pipeline over one matchup. The only hard-error class
// is a malformed matchup context; every downstream failure degrades to
// warnings, drops, or the fallback path, and the result is always a
// syntactically valid (possibly empty) set.
func (p *Pipeline) Analyze(ctx context.Context, matchup *model.MatchupContext) (*Result, error) {
	if err := matchup.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	inputHash, err := provenance.HashObject(matchup)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: hash input")
	}

	if cached := p.lookupCached(ctx, inputHash); cached != nil {
		return cached, nil
	}

	findings, err := rules.Evaluate(ctx, matchup, p.thresholds)
	if err != nil {
		return nil, err
	}
	findings = confidence.Apply(findings)

	enriched, err := p.transformer.Enrich(ctx, findings, p.guidance)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: enrich")
	}

	active := model.Active(enriched.Alerts)
	groups := correlate.Identify(active)
	scripts := correlate.Assemble(groups, active, p.scriptCfg)
	ladders := ladder.Organize(active, p.ladderCfg)

	runID := uuid.New().String()
	prov, err := provenance.Record(provenance.RunInputs{
		RunID:    runID,
		Matchup:  matchup,
		Prompt:   enriched.Prompt,
		Guidance: p.guidance,
		Findings: findings,
		Alerts:   enriched.Alerts,
		Model:    enriched.Model,
	}, time.Now())
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: provenance")
	}

	result := &Result{
		RunID:      runID,
		GameID:     matchup.GameID,
		Alerts:     nonNilAlerts(enriched.Alerts),
		Findings:   nonNilFindings(findings),
		Scripts:    nonNilScripts(scripts),
		Ladders:    nonNilLadders(ladders),
		Provenance: prov,
		Warnings:   enriched.Warnings,
		Fallback:   enriched.Fallback,
	}

	p.saveRun(ctx, result)

	zap.L().Info("pipeline: run complete",
		zap.String("run_id", runID),
		zap.String("game_id", matchup.GameID),
		zap.Int("findings", len(result.Findings)),
		zap.Int("alerts", len(result.Alerts)),
		zap.Int("scripts", len(result.Scripts)),
		zap.Int("ladders", len(result.Ladders)),
		zap.Bool("fallback", result.Fallback),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// lookupCached returns a previously stored run for the identical input
// snapshot, if caching is enabled. Cache failures are non-fatal.
func (p *Pipeline) lookupCached(ctx context.Context, inputHash string) *Result {
	if p.runs == nil {
		return nil
	}
	rec, err := p.runs.GetRunByInputHash(ctx, inputHash)
	if err != nil {
		zap.L().Warn("pipeline: run cache lookup failed", zap.Error(err))
		return nil
	}
	if rec == nil {
		return nil
	}
	var cached Result
	if err := json.Unmarshal(rec.Result, &cached); err != nil {
		zap.L().Warn("pipeline: corrupt cached run", zap.String("run_id", rec.ID), zap.Error(err))
		return nil
	}
	cached.Cached = true
	return &cached
}

// saveRun stores the completed run for caching and audit. Fallback runs are
// not cached: a later run with credentials restored should re-enrich.
func (p *Pipeline) saveRun(ctx context.Context, result *Result) {
	if p.runs == nil || result.Fallback {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		zap.L().Warn("pipeline: marshal run for cache", zap.Error(err))
		return
	}
	err = p.runs.SaveRun(ctx, store.RunRecord{
		ID:        result.RunID,
		GameID:    result.GameID,
		InputHash: result.Provenance.InputHash,
		Model:     result.Provenance.Model,
		Fallback:  result.Fallback,
		Result:    raw,
		CreatedAt: result.Provenance.GeneratedAt,
	})
	if err != nil {
		zap.L().Warn("pipeline: run cache save failed", zap.Error(err))
	}
}

func nonNilAlerts(in []model.Alert) []model.Alert {
	if in == nil {
		return []model.Alert{}
	}
	return in
}

func nonNilFindings(in []model.Finding) []model.Finding {
	if in == nil {
		return []model.Finding{}
	}
	return in
}

func nonNilScripts(in []model.Script) []model.Script {
	if in == nil {
		return []model.Script{}
	}
	return in
}

func nonNilLadders(in []model.Ladder) []model.Ladder {
	if in == nil {
		return []model.Ladder{}
	}
	return in
}
