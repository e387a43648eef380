package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalPressure checks an elite pass rush against a protection-weak opposing
// line. The subject here is the defense.
func evalPressure(m *model.MatchupContext, th Thresholds) []model.Finding {
	var out []model.Finding
	sample := teamSample(m)

	for _, pair := range sides(m) {
		sub, opp := pair[0], pair[1]
		if sample < th.MinGames {
			continue
		}
		if !rankMismatch(sub.Stats.PressureRateRank, opp.Stats.SackRateAllowedRank, th) {
			continue
		}
		out = append(out, model.Finding{
			ID:           model.FindingID(model.DomainPressure, sub.Team, "pressure_mismatch", sub.AsOf),
			Domain:       model.DomainPressure,
			Type:         "pressure_mismatch",
			Stat:         "pressure_rate_rank",
			Value:        sub.Stats.PressureRateRank,
			ThresholdMet: fmt.Sprintf("pressure_rate_rank<=%d vs sack_rate_allowed_rank>=%d", th.EliteRank, th.WeakRank),
			ComparisonContext: fmt.Sprintf("%s pass rush ranks %d in pressure rate; %s line ranks %d in sack rate allowed",
				sub.Team, sub.Stats.PressureRateRank, opp.Team, opp.Stats.SackRateAllowedRank),
			SourceRef:       sub.Team,
			SourceType:      "team_stats",
			SourceTimestamp: sub.AsOf,
			SampleSize:      sample,
			SampleUnit:      "games",
			Quality:         model.QualityFull,
			SubjectRank:     sub.Stats.PressureRateRank,
			OpponentRank:    opp.Stats.SackRateAllowedRank,
		})
	}
	return out
}
