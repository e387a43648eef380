package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalUsage emits a usage-trend finding for each player whose snap share
// jumped by the configured delta. An explicit practice-limited flag is a
// hard gate: limited usage must emit zero findings, not low-confidence ones.
func evalUsage(m *model.MatchupContext, th Thresholds) []model.Finding {
	var out []model.Finding

	for _, pair := range sides(m) {
		sub := pair[0]
		for _, p := range sub.Players {
			if p.PracticeLimited {
				continue
			}
			if p.Games < th.MinGames {
				continue
			}
			if p.SnapShareDelta < th.SnapShareJump {
				continue
			}
			out = append(out, model.Finding{
				ID:           model.FindingID(model.DomainUsage, p.Name, "usage_trend", p.AsOf),
				Domain:       model.DomainUsage,
				Type:         "usage_trend",
				Stat:         "snap_share_delta",
				Value:        p.SnapShareDelta,
				ThresholdMet: fmt.Sprintf("snap_share_delta>=%.2f over >=%d games", th.SnapShareJump, th.MinGames),
				ComparisonContext: fmt.Sprintf("%s (%s) snap share is up %.0f points to %.0f%% over the last %d games",
					p.Name, p.Position, p.SnapShareDelta*100, p.SnapShare*100, p.Games),
				SourceRef:       p.Name,
				SourceType:      "player_stats",
				SourceTimestamp: p.AsOf,
				SampleSize:      p.Games,
				SampleUnit:      "games",
				Quality:         model.QualityFull,
			})
		}
	}
	return out
}
