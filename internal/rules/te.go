package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalTE checks tight-end target volume against the opposing pass defense.
// Tight ends use a lower target minimum than wide receivers.
func evalTE(m *model.MatchupContext, th Thresholds) []model.Finding {
	var out []model.Finding

	for _, pair := range sides(m) {
		sub, opp := pair[0], pair[1]
		for _, p := range sub.Players {
			if p.Position != "TE" {
				continue
			}
			if p.Targets < th.MinTETargets {
				continue
			}
			if !rankMismatch(p.TargetShareRank, opp.Stats.PassDefenseRank, th) {
				continue
			}
			out = append(out, model.Finding{
				ID:           model.FindingID(model.DomainTE, p.Name, "volume_advantage", p.AsOf),
				Domain:       model.DomainTE,
				Type:         "volume_advantage",
				Stat:         "target_share_rank",
				Value:        p.TargetShareRank,
				ThresholdMet: fmt.Sprintf("target_share_rank<=%d vs pass_defense_rank>=%d", th.EliteRank, th.WeakRank),
				ComparisonContext: fmt.Sprintf("%s ranks %d in target share among tight ends on %d targets; %s ranks %d against the pass",
					p.Name, p.TargetShareRank, p.Targets, opp.Team, opp.Stats.PassDefenseRank),
				SourceRef:       p.Name,
				SourceType:      "player_stats",
				SourceTimestamp: p.AsOf,
				SampleSize:      p.Targets,
				SampleUnit:      "targets",
				Quality:         model.QualityFull,
				SubjectRank:     p.TargetShareRank,
				OpponentRank:    opp.Stats.PassDefenseRank,
			})
		}
	}
	return out
}
