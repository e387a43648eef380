package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// teamSample is the games-in-window sample for team-level checks.
func teamSample(m *model.MatchupContext) int {
	if m.Week > 1 {
		return m.Week - 1
	}
	return 1
}

// evalEPA checks offensive EPA efficiency against the opposing defense's
// EPA allowed, per team.
func evalEPA(m *model.MatchupContext, th Thresholds) []model.Finding {
	var out []model.Finding
	sample := teamSample(m)

	for _, pair := range sides(m) {
		sub, opp := pair[0], pair[1]
		if sample < th.MinGames {
			continue
		}
		if !rankMismatch(sub.Stats.OffenseEPARank, opp.Stats.DefenseEPAAllowedRank, th) {
			continue
		}
		out = append(out, model.Finding{
			ID:           model.FindingID(model.DomainEPA, sub.Team, "efficiency_advantage", sub.AsOf),
			Domain:       model.DomainEPA,
			Type:         "efficiency_advantage",
			Stat:         "offense_epa_rank",
			Value:        sub.Stats.OffenseEPARank,
			ThresholdMet: fmt.Sprintf("offense_epa_rank<=%d vs defense_epa_allowed_rank>=%d", th.EliteRank, th.WeakRank),
			ComparisonContext: fmt.Sprintf("%s offense ranks %d in EPA per play; %s defense ranks %d in EPA allowed",
				sub.Team, sub.Stats.OffenseEPARank, opp.Team, opp.Stats.DefenseEPAAllowedRank),
			SourceRef:       sub.Team,
			SourceType:      "team_stats",
			SourceTimestamp: sub.AsOf,
			SampleSize:      sample,
			SampleUnit:      "games",
			Quality:         model.QualityFull,
			SubjectRank:     sub.Stats.OffenseEPARank,
			OpponentRank:    opp.Stats.DefenseEPAAllowedRank,
		})
	}
	return out
}
