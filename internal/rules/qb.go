package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalQB checks each quarterback's passing efficiency against the opposing
// pass defense. Attempts below the minimum hard-gate the check.
func evalQB(m *model.MatchupContext, th Thresholds) []model.Finding {
	var out []model.Finding

	for _, pair := range sides(m) {
		sub, opp := pair[0], pair[1]
		for _, p := range sub.Players {
			if p.Position != "QB" {
				continue
			}
			if p.Attempts < th.MinAttempts {
				continue
			}
			if !rankMismatch(p.PassEPARank, opp.Stats.PassDefenseRank, th) {
				continue
			}
			out = append(out, model.Finding{
				ID:           model.FindingID(model.DomainQB, p.Name, "efficiency_advantage", p.AsOf),
				Domain:       model.DomainQB,
				Type:         "efficiency_advantage",
				Stat:         "pass_epa_rank",
				Value:        p.PassEPARank,
				ThresholdMet: fmt.Sprintf("pass_epa_rank<=%d vs pass_defense_rank>=%d", th.EliteRank, th.WeakRank),
				ComparisonContext: fmt.Sprintf("%s ranks %d in passing EPA on %d attempts; %s defense ranks %d against the pass",
					p.Name, p.PassEPARank, p.Attempts, opp.Team, opp.Stats.PassDefenseRank),
				SourceRef:       p.Name,
				SourceType:      "player_stats",
				SourceTimestamp: p.AsOf,
				SampleSize:      p.Attempts,
				SampleUnit:      "attempts",
				Quality:         model.QualityFull,
				SubjectRank:     p.PassEPARank,
				OpponentRank:    opp.Stats.PassDefenseRank,
			})
		}
	}
	return out
}
