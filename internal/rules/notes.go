package rules

import (
	"github.com/gridline-labs/gridline/internal/model"
)

// evalNotes passes actionable curated scouting notes through as findings.
// Notes are human judgment, not measured stats: partial quality, no rank
// evidence, sample of one snapshot.
func evalNotes(m *model.MatchupContext, _ Thresholds) []model.Finding {
	var out []model.Finding
	for _, n := range m.Notes {
		if !n.Actionable || n.Text == "" {
			continue
		}
		out = append(out, model.Finding{
			ID:                model.FindingID(model.DomainNotes, n.Subject, "curated_note", n.AsOf),
			Domain:            model.DomainNotes,
			Type:              "curated_note",
			Stat:              "note",
			Value:             n.Text,
			ThresholdMet:      "curator marked actionable",
			ComparisonContext: n.Market,
			SourceRef:         n.Source,
			SourceType:        "curated",
			SourceTimestamp:   n.AsOf,
			SampleSize:        1,
			SampleUnit:        "snapshot",
			Quality:           model.QualityPartial,
		})
	}
	return out
}
