package rules

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridline-labs/gridline/internal/model"
)

// maxDomainConcurrency bounds concurrent domain evaluations per matchup.
const maxDomainConcurrency = 4

// domainEval evaluates one rule domain over the whole matchup and returns
// its findings already in stable intra-domain order.
type domainEval func(m *model.MatchupContext, th Thresholds) []model.Finding

// evaluators maps each domain to its module. Team-scoped domains evaluate
// home-then-away internally; game-scoped domains (weather, pace, notes)
// evaluate once.
var evaluators = map[model.Domain]domainEval{
	model.DomainEPA:      evalEPA,
	model.DomainPressure: evalPressure,
	model.DomainWeather:  evalWeather,
	model.DomainQB:       evalQB,
	model.DomainHB:       evalHB,
	model.DomainWR:       evalWR,
	model.DomainTE:       evalTE,
	model.DomainInjury:   evalInjury,
	model.DomainUsage:    evalUsage,
	model.DomainPace:     evalPace,
	model.DomainNotes:    evalNotes,
}

// Evaluate runs every applicable domain module over the matchup and merges
// their findings in canonical domain order. Domains are pure and independent
// and run concurrently, but the merged order is always deterministic so
// downstream IDs and hashes are reproducible.
func Evaluate(ctx context.Context, m *model.MatchupContext, th Thresholds) ([]model.Finding, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	byDomain := make(map[model.Domain][]model.Finding, len(model.AllDomains))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxDomainConcurrency)
	for _, domain := range model.AllDomains {
		eval := evaluators[domain]
		g.Go(func() error {
			found := eval(m, th)
			mu.Lock()
			byDomain[domain] = found
			mu.Unlock()
			return nil
		})
	}
	// Rule modules never return errors; the group exists for the
	// concurrency limit and context plumbing.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []model.Finding
	for _, domain := range model.AllDomains {
		merged = append(merged, byDomain[domain]...)
	}

	zap.L().Debug("rules: evaluation complete",
		zap.String("game_id", m.GameID),
		zap.Int("findings", len(merged)),
	)
	return merged, nil
}

// sides returns the two (subject, opponent) pairings in fixed home-first
// order, so team-scoped domains emit findings deterministically.
func sides(m *model.MatchupContext) [2][2]*model.TeamSnapshot {
	return [2][2]*model.TeamSnapshot{
		{&m.Home, &m.Away},
		{&m.Away, &m.Home},
	}
}
