package provenance

import (
	"time"

	"github.com/gridline-labs/gridline/internal/model"
)

// RunInputs collects the materialized artifacts of one pipeline run.
type RunInputs struct {
	RunID    string
	Matchup  *model.MatchupContext
	Prompt   string
	Guidance map[model.Domain]string
	Findings []model.Finding
	Alerts   []model.Alert
	Model    string
}

// Record builds the provenance record for a completed run. Pure over its
// inputs; no locking required.
func Record(in RunInputs, now time.Time) (model.Provenance, error) {
	inputHash, err := HashObject(in.Matchup)
	if err != nil {
		return model.Provenance{}, err
	}
	guidanceHash, err := HashObject(in.Guidance)
	if err != nil {
		return model.Provenance{}, err
	}
	findingHash, err := HashSet(in.Findings)
	if err != nil {
		return model.Provenance{}, err
	}
	alertHash, err := HashSet(in.Alerts)
	if err != nil {
		return model.Provenance{}, err
	}

	invoked, silent := splitDomains(in.Findings)

	rec := model.Provenance{
		RunID:          in.RunID,
		InputHash:      inputHash,
		GuidanceHash:   guidanceHash,
		FindingSetHash: findingHash,
		AlertSetHash:   alertHash,
		DomainsInvoked: invoked,
		DomainsSilent:  silent,
		Model:          in.Model,
		GeneratedAt:    now.UTC(),
	}
	if in.Prompt != "" {
		rec.PromptHash = HashString(in.Prompt)
	}
	return rec, nil
}

// splitDomains partitions the closed domain set into domains that emitted at
// least one finding and domains that stayed silent, in canonical order.
func splitDomains(findings []model.Finding) (invoked, silent []string) {
	seen := make(map[model.Domain]bool, len(findings))
	for _, f := range findings {
		seen[f.Domain] = true
	}
	invoked = make([]string, 0, len(seen))
	silent = make([]string, 0, len(model.AllDomains)-len(seen))
	for _, d := range model.AllDomains {
		if seen[d] {
			invoked = append(invoked, string(d))
		} else {
			silent = append(silent, string(d))
		}
	}
	return invoked, silent
}
