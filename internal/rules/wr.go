package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalWR runs two independent checks per wide receiver in fixed order:
// target volume, then air-yards efficiency. Each gates on its own sample.
func evalWR(m *model.MatchupContext, th Thresholds) []model.Finding {
	var out []model.Finding

	for _, pair := range sides(m) {
		sub, opp := pair[0], pair[1]
		for _, p := range sub.Players {
			if p.Position != "WR" {
				continue
			}
			out = append(out, wrVolume(p, opp, th)...)
			out = append(out, wrEfficiency(p, opp, th)...)
		}
	}
	return out
}

func wrVolume(p model.PlayerStats, opp *model.TeamSnapshot, th Thresholds) []model.Finding {
	if p.Targets < th.MinTargets {
		return nil
	}
	shareElite := p.TargetShare >= th.TargetShareElite ||
		(p.TargetShareRank > 0 && p.TargetShareRank <= th.EliteRank)
	if !shareElite || opp.Stats.PassDefenseRank < th.WeakRank {
		return nil
	}
	return []model.Finding{{
		ID:           model.FindingID(model.DomainWR, p.Name, "volume_advantage", p.AsOf),
		Domain:       model.DomainWR,
		Type:         "volume_advantage",
		Stat:         "target_share",
		Value:        p.TargetShare,
		ThresholdMet: fmt.Sprintf("target_share>=%.2f vs pass_defense_rank>=%d", th.TargetShareElite, th.WeakRank),
		ComparisonContext: fmt.Sprintf("%s commands %.0f%% target share on %d targets; %s ranks %d against the pass",
			p.Name, p.TargetShare*100, p.Targets, opp.Team, opp.Stats.PassDefenseRank),
		SourceRef:       p.Name,
		SourceType:      "player_stats",
		SourceTimestamp: p.AsOf,
		SampleSize:      p.Targets,
		SampleUnit:      "targets",
		Quality:         model.QualityFull,
		SubjectRank:     p.TargetShareRank,
		OpponentRank:    opp.Stats.PassDefenseRank,
	}}
}

func wrEfficiency(p model.PlayerStats, opp *model.TeamSnapshot, th Thresholds) []model.Finding {
	if p.Routes < th.MinRoutes {
		return nil
	}
	if !rankMismatch(p.AirYardsRank, opp.Stats.PassDefenseRank, th) {
		return nil
	}
	return []model.Finding{{
		ID:           model.FindingID(model.DomainWR, p.Name, "efficiency_advantage", p.AsOf),
		Domain:       model.DomainWR,
		Type:         "efficiency_advantage",
		Stat:         "air_yards_rank",
		Value:        p.AirYardsRank,
		ThresholdMet: fmt.Sprintf("air_yards_rank<=%d vs pass_defense_rank>=%d", th.EliteRank, th.WeakRank),
		ComparisonContext: fmt.Sprintf("%s ranks %d in air yards over %d routes; %s ranks %d against the pass",
			p.Name, p.AirYardsRank, p.Routes, opp.Team, opp.Stats.PassDefenseRank),
		SourceRef:       p.Name,
		SourceType:      "player_stats",
		SourceTimestamp: p.AsOf,
		SampleSize:      p.Routes,
		SampleUnit:      "routes",
		Quality:         model.QualityFull,
		SubjectRank:     p.AirYardsRank,
		OpponentRank:    opp.Stats.PassDefenseRank,
	}}
}
