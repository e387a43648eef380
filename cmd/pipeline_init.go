package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridline-labs/gridline/internal/enrich"
	"github.com/gridline-labs/gridline/internal/pipeline"
	"github.com/gridline-labs/gridline/internal/store"
	anthropicpkg "github.com/gridline-labs/gridline/pkg/anthropic"
)

// pipelineEnv holds the initialized store and pipeline needed by the
// analyze/serve commands.
type pipelineEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initStore opens the run store if one is configured. Returns nil when
// run caching is disabled.
func initStore(ctx context.Context) (store.Store, error) {
	if cfg.Store.Path == "" {
		return nil, nil
	}
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initPipeline sets up the store, the Anthropic client, loads guidance
// overrides, and builds the Pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	var anthropicClient anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		anthropicClient = anthropicpkg.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("GRIDLINE_ANTHROPIC_KEY not set, enrichment will use the deterministic fallback")
	}

	guidance := enrich.DefaultGuidance()
	if cfg.Guidance.Path != "" {
		guidance, err = enrich.LoadGuidance(cfg.Guidance.Path)
		if err != nil {
			if st != nil {
				_ = st.Close()
			}
			return nil, err
		}
	}

	transformer := enrich.New(anthropicClient, enrich.Config{
		Model:             cfg.Anthropic.Model,
		MaxTokens:         cfg.Anthropic.MaxTokens,
		Timeout:           time.Duration(cfg.Anthropic.TimeoutSecs) * time.Second,
		RequestsPerMinute: cfg.Anthropic.RequestsPerMinute,
	})

	p := pipeline.New(pipeline.Options{
		Transformer: transformer,
		Guidance:    guidance,
		Thresholds:  cfg.Rules,
		ScriptCfg:   cfg.Scripts,
		LadderCfg:   cfg.Ladders,
		Runs:        st,
	})

	return &pipelineEnv{Store: st, Pipeline: p}, nil
}
