package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalInjury emits an opportunity-shift finding for each absent starter
// (out or doubtful with a starter-level snap share). Injury designations
// change up to kickoff, so they are partial quality.
func evalInjury(m *model.MatchupContext, th Thresholds) []model.Finding {
	var out []model.Finding

	for _, pair := range sides(m) {
		sub := pair[0]
		for _, p := range sub.Players {
			if p.InjuryStatus != "out" && p.InjuryStatus != "doubtful" {
				continue
			}
			if p.SnapShare < th.SnapShareStarter {
				continue
			}
			out = append(out, model.Finding{
				ID:           model.FindingID(model.DomainInjury, p.Name, "opportunity_shift", p.AsOf),
				Domain:       model.DomainInjury,
				Type:         "opportunity_shift",
				Stat:         "injury_status",
				Value:        p.InjuryStatus,
				ThresholdMet: fmt.Sprintf("injury_status in {out,doubtful} and snap_share>=%.2f", th.SnapShareStarter),
				ComparisonContext: fmt.Sprintf("%s (%s, %.0f%% snap share) is %s; depth-chart volume shifts to the %s replacements",
					p.Name, p.Position, p.SnapShare*100, p.InjuryStatus, sub.Team),
				SourceRef:       p.Name,
				SourceType:      "injury_report",
				SourceTimestamp: p.AsOf,
				SampleSize:      p.Games,
				SampleUnit:      "games",
				Quality:         model.QualityPartial,
			})
		}
	}
	return out
}
