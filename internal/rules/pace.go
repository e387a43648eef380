package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalPace checks the game-level play-volume signal: both offenses fast, or
// a combined plays-per-game total above the cutoff. A projected pace figure
// downgrades quality to fallback; high wind attaches a multiplicative
// confidence modifier instead of suppressing the finding.
func evalPace(m *model.MatchupContext, th Thresholds) []model.Finding {
	sample := teamSample(m)
	if sample < th.MinGames {
		return nil
	}

	home, away := m.Home.Stats, m.Away.Stats
	bothFast := home.PaceRank > 0 && away.PaceRank > 0 &&
		home.PaceRank <= th.EliteRank && away.PaceRank <= th.EliteRank
	combined := home.PlaysPerGame + away.PlaysPerGame
	if !bothFast && combined < th.HighPlaysPerGame {
		return nil
	}

	quality := model.QualityFull
	if home.PaceProjected || away.PaceProjected {
		quality = model.QualityFallback
	}

	f := model.Finding{
		ID:           model.FindingID(model.DomainPace, m.GameID, "high_play_volume", m.Home.AsOf),
		Domain:       model.DomainPace,
		Type:         "high_play_volume",
		Stat:         "combined_plays_per_game",
		Value:        combined,
		ThresholdMet: fmt.Sprintf("pace_rank<=%d both teams or combined_plays_per_game>=%.0f", th.EliteRank, th.HighPlaysPerGame),
		ComparisonContext: fmt.Sprintf("%s (pace rank %d) and %s (pace rank %d) project %.0f combined plays",
			m.Home.Team, home.PaceRank, m.Away.Team, away.PaceRank, combined),
		SourceRef:       m.GameID,
		SourceType:      "team_stats",
		SourceTimestamp: m.Home.AsOf,
		SampleSize:      sample,
		SampleUnit:      "games",
		Quality:         quality,
	}

	if m.Weather != nil && !m.Weather.Dome && m.Weather.WindMPH >= th.HighWindMPH {
		f.ConfidenceModifier = th.WindPaceModifier
	}

	return []model.Finding{f}
}
