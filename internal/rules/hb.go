package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalHB runs four independent checks per running back, in fixed emission
// order: volume, efficiency, scoring, receiving role. Each check carries its
// own sample gate; a back failing the volume gate can still clear the role
// check (secondary checks do not inherit the primary's gate).
func evalHB(m *model.MatchupContext, th Thresholds) []model.Finding {
	var out []model.Finding

	for _, pair := range sides(m) {
		sub, opp := pair[0], pair[1]
		for _, p := range sub.Players {
			if p.Position != "RB" {
				continue
			}
			out = append(out, hbVolume(p, opp, th)...)
			out = append(out, hbEfficiency(p, opp, th)...)
			out = append(out, hbScoring(p, opp, th)...)
			out = append(out, hbRole(p, opp, th)...)
		}
	}
	return out
}

func hbVolume(p model.PlayerStats, opp *model.TeamSnapshot, th Thresholds) []model.Finding {
	if p.Carries < th.MinCarries {
		return nil
	}
	if !rankMismatch(p.RushYardsRank, opp.Stats.RushDefenseRank, th) {
		return nil
	}
	return []model.Finding{{
		ID:           model.FindingID(model.DomainHB, p.Name, "volume_advantage", p.AsOf),
		Domain:       model.DomainHB,
		Type:         "volume_advantage",
		Stat:         "rush_yards_rank",
		Value:        p.RushYardsRank,
		ThresholdMet: fmt.Sprintf("rush_yards_rank<=%d vs rush_defense_rank>=%d", th.EliteRank, th.WeakRank),
		ComparisonContext: fmt.Sprintf("%s ranks %d in rushing yards on %d carries; %s ranks %d against the run",
			p.Name, p.RushYardsRank, p.Carries, opp.Team, opp.Stats.RushDefenseRank),
		SourceRef:       p.Name,
		SourceType:      "player_stats",
		SourceTimestamp: p.AsOf,
		SampleSize:      p.Carries,
		SampleUnit:      "carries",
		Quality:         model.QualityFull,
		SubjectRank:     p.RushYardsRank,
		OpponentRank:    opp.Stats.RushDefenseRank,
	}}
}

func hbEfficiency(p model.PlayerStats, opp *model.TeamSnapshot, th Thresholds) []model.Finding {
	if p.Carries < th.MinCarries {
		return nil
	}
	if !rankMismatch(p.YPCRank, opp.Stats.RushDefenseRank, th) {
		return nil
	}
	return []model.Finding{{
		ID:           model.FindingID(model.DomainHB, p.Name, "efficiency_advantage", p.AsOf),
		Domain:       model.DomainHB,
		Type:         "efficiency_advantage",
		Stat:         "ypc_rank",
		Value:        p.YPCRank,
		ThresholdMet: fmt.Sprintf("ypc_rank<=%d vs rush_defense_rank>=%d", th.EliteRank, th.WeakRank),
		ComparisonContext: fmt.Sprintf("%s averages %.1f yards per carry (rank %d); %s ranks %d against the run",
			p.Name, p.YardsPerCarry, p.YPCRank, opp.Team, opp.Stats.RushDefenseRank),
		SourceRef:       p.Name,
		SourceType:      "player_stats",
		SourceTimestamp: p.AsOf,
		SampleSize:      p.Carries,
		SampleUnit:      "carries",
		Quality:         model.QualityFull,
		SubjectRank:     p.YPCRank,
		OpponentRank:    opp.Stats.RushDefenseRank,
	}}
}

func hbScoring(p model.PlayerStats, opp *model.TeamSnapshot, th Thresholds) []model.Finding {
	if p.RedZoneTouches < th.MinRedZoneTouches {
		return nil
	}
	if !rankMismatch(p.RedZoneTouchRank, opp.Stats.RushDefenseRank, th) {
		return nil
	}
	return []model.Finding{{
		ID:           model.FindingID(model.DomainHB, p.Name, "scoring_opportunity", p.AsOf),
		Domain:       model.DomainHB,
		Type:         "scoring_opportunity",
		Stat:         "red_zone_touch_rank",
		Value:        p.RedZoneTouchRank,
		ThresholdMet: fmt.Sprintf("red_zone_touch_rank<=%d vs rush_defense_rank>=%d", th.EliteRank, th.WeakRank),
		ComparisonContext: fmt.Sprintf("%s has %d red-zone touches (rank %d); %s ranks %d against the run",
			p.Name, p.RedZoneTouches, p.RedZoneTouchRank, opp.Team, opp.Stats.RushDefenseRank),
		SourceRef:       p.Name,
		SourceType:      "player_stats",
		SourceTimestamp: p.AsOf,
		SampleSize:      p.RedZoneTouches,
		SampleUnit:      "touches",
		Quality:         model.QualityFull,
		SubjectRank:     p.RedZoneTouchRank,
		OpponentRank:    opp.Stats.RushDefenseRank,
	}}
}

func hbRole(p model.PlayerStats, opp *model.TeamSnapshot, th Thresholds) []model.Finding {
	if p.Targets < th.MinBackTargets {
		return nil
	}
	if opp.Stats.PassDefenseRank < th.WeakRank {
		return nil
	}
	return []model.Finding{{
		ID:           model.FindingID(model.DomainHB, p.Name, "receiving_role", p.AsOf),
		Domain:       model.DomainHB,
		Type:         "receiving_role",
		Stat:         "targets",
		Value:        p.Targets,
		ThresholdMet: fmt.Sprintf("targets>=%d vs pass_defense_rank>=%d", th.MinBackTargets, th.WeakRank),
		ComparisonContext: fmt.Sprintf("%s has %d targets out of the backfield; %s ranks %d against the pass",
			p.Name, p.Targets, opp.Team, opp.Stats.PassDefenseRank),
		SourceRef:       p.Name,
		SourceType:      "player_stats",
		SourceTimestamp: p.AsOf,
		SampleSize:      p.Targets,
		SampleUnit:      "targets",
		Quality:         model.QualityFull,
		OpponentRank:    opp.Stats.PassDefenseRank,
	}}
}
