// Package ladder buckets alerts into risk tiers and produces single-leg
// stake recommendations. Tier membership is a pure function of each alert's
// confidence and severity; script membership never influences it.
package ladder

import (
	"math"

	"github.com/gridline-labs/gridline/internal/model"
)

// Tier boundaries and stake parameters.
const (
	safeConfidence       = 0.70
	moderateConfidence   = 0.50
	aggressiveConfidence = 0.30

	safeRungCap = 3

	safeBaseStakePct       = 5.0
	moderateBaseStakePct   = 3.0
	aggressiveBaseStakePct = 1.0

	minStakePct = 0.5
	maxStakePct = 10.0

	maxRungs = 5
)

// Config holds ladder organizer settings.
type Config struct {
	// RungCap bounds the moderate and aggressive tiers. The safe tier is
	// always capped at three.
	RungCap int `yaml:"rung_cap" mapstructure:"rung_cap"`
}

// DefaultConfig returns production ladder settings.
func DefaultConfig() Config {
	return Config{RungCap: 3}
}

// TierFor classifies one alert. Safe requires high confidence AND high
// severity; medium severity alone is enough for moderate regardless of
// confidence; low-confidence medium-severity alerts below the aggressive
// floor qualify for nothing.
func TierFor(confidence float64, severity model.Severity) (model.Tier, bool) {
	switch {
	case confidence >= safeConfidence && severity == model.SeverityHigh:
		return model.TierSafe, true
	case (confidence >= moderateConfidence && confidence < safeConfidence) || severity == model.SeverityMedium:
		return model.TierModerate, true
	case confidence >= aggressiveConfidence && confidence < moderateConfidence:
		return model.TierAggressive, true
	default:
		return "", false
	}
}

// Organize buckets the active alerts into at most three ladders, in
// safe/moderate/aggressive order. Tiers with no qualifying alerts are
// omitted.
func Organize(alerts []model.Alert, cfg Config) []model.Ladder {
	rungCap := cfg.RungCap
	if rungCap <= 0 || rungCap > maxRungs {
		rungCap = DefaultConfig().RungCap
	}

	rungs := map[model.Tier][]model.Rung{}
	confidences := map[model.Tier][]float64{}

	for _, a := range alerts {
		if a.Suppressed() {
			continue
		}
		tier, ok := TierFor(a.Confidence, a.Severity)
		if !ok {
			continue
		}
		limit := rungCap
		if tier == model.TierSafe {
			limit = safeRungCap
		}
		if len(rungs[tier]) == limit {
			continue
		}
		rungs[tier] = append(rungs[tier], rungFor(a))
		confidences[tier] = append(confidences[tier], a.Confidence)
	}

	var ladders []model.Ladder
	for _, tier := range []model.Tier{model.TierSafe, model.TierModerate, model.TierAggressive} {
		if len(rungs[tier]) == 0 {
			continue
		}
		meanConf := mean(confidences[tier])
		ladders = append(ladders, model.Ladder{
			Tier:                    tier,
			Rungs:                   rungs[tier],
			TotalImpliedProbability: meanConf,
			RecommendedStakePct:     stakePct(tier, meanConf),
		})
	}
	return ladders
}

func rungFor(a model.Alert) model.Rung {
	market := a.Evidence.Stat
	if len(a.Implications) > 0 {
		market = a.Implications[0]
	}
	return model.Rung{
		AlertID:            a.ID,
		Market:             market,
		ImpliedProbability: a.Confidence,
		Domain:             a.Domain,
		Rationale:          a.Claim,
	}
}

// stakePct starts from the tier's base stake and adjusts it by
// (confidence - 0.5) * 2, clamped to the allowed band.
func stakePct(tier model.Tier, confidence float64) float64 {
	base := aggressiveBaseStakePct
	switch tier {
	case model.TierSafe:
		base = safeBaseStakePct
	case model.TierModerate:
		base = moderateBaseStakePct
	}
	stake := base + (confidence-0.5)*2
	stake = math.Max(minStakePct, math.Min(maxStakePct, stake))
	return math.Round(stake*100) / 100
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return math.Round(sum/float64(len(vals))*10000) / 10000
}
