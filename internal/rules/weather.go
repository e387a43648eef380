package rules

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// evalWeather emits game-environment findings. Dome games emit nothing.
// Forecasts are projections, not observations, so they are partial quality.
// Check order is fixed: wind, then precipitation.
func evalWeather(m *model.MatchupContext, th Thresholds) []model.Finding {
	w := m.Weather
	if w == nil || w.Dome {
		return nil
	}

	sourceRef := m.GameID
	if w.Source != "" {
		sourceRef = w.Source
	}

	base := model.Finding{
		Domain:          model.DomainWeather,
		SourceRef:       sourceRef,
		SourceType:      "weather",
		SourceTimestamp: w.AsOf,
		SampleSize:      1,
		SampleUnit:      "snapshot",
		Quality:         model.QualityPartial,
	}

	var out []model.Finding
	if w.WindMPH >= th.HighWindMPH {
		f := base
		f.ID = model.FindingID(model.DomainWeather, m.GameID, "high_wind", w.AsOf)
		f.Type = "high_wind"
		f.Stat = "wind_mph"
		f.Value = w.WindMPH
		f.ThresholdMet = fmt.Sprintf("wind_mph>=%.0f", th.HighWindMPH)
		f.ComparisonContext = fmt.Sprintf("forecast wind %.0f mph suppresses downfield passing", w.WindMPH)
		out = append(out, f)
	}
	if w.PrecipChance >= th.HeavyPrecipChance {
		f := base
		f.ID = model.FindingID(model.DomainWeather, m.GameID, "heavy_precip", w.AsOf)
		f.Type = "heavy_precip"
		f.Stat = "precip_chance"
		f.Value = w.PrecipChance
		f.ThresholdMet = fmt.Sprintf("precip_chance>=%.2f", th.HeavyPrecipChance)
		f.ComparisonContext = fmt.Sprintf("precipitation chance %.0f%% favors ground game and ball-security issues", w.PrecipChance*100)
		out = append(out, f)
	}
	return out
}
