package correlate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gridline-labs/gridline/internal/model"
	"github.com/gridline-labs/gridline/internal/provenance"
)

const (
	// combinedConfidenceCeiling is the near-certainty cap. Combined
	// confidence must stay strictly below it regardless of legs or bonus.
	combinedConfidenceCeiling = 0.95

	// correlationBonus is a fixed per-script bonus, scaled down and added
	// once; it is not a per-leg value.
	correlationBonus      = 0.10
	correlationBonusScale = 0.5

	// Hard bounds on leg count.
	minLegs         = 2
	absoluteMaxLegs = 6
)

// ScriptConfig holds script assembly settings.
type ScriptConfig struct {
	MaxLegs int `yaml:"max_legs" mapstructure:"max_legs"`
}

// DefaultScriptConfig returns production assembly settings.
func DefaultScriptConfig() ScriptConfig {
	return ScriptConfig{MaxLegs: 4}
}

// explanations templates the per-correlation-type script narrative.
var explanations = map[model.CorrelationType]string{
	model.CorrelationWeatherDriven: "weather conditions and quarterback outlook move together in this matchup",
	model.CorrelationSharedDefense: "the pass-rush mismatch and the quarterback outcome share one defensive matchup",
	model.CorrelationSharedVolume:  "these receivers draw from the same passing volume",
	model.CorrelationGameScript:    "an efficiency advantage sets up a run-heavy game script",
	model.CorrelationPlayerStack:   "quarterback and receiver production stack in the same passing game",
}

// Assemble prices each correlation group into a Script. Groups resolving to
// fewer than two valid legs (a referenced alert was dropped upstream) are
// discarded, not padded.
func Assemble(groups []model.CorrelationGroup, alerts []model.Alert, cfg ScriptConfig) []model.Script {
	maxLegs := cfg.MaxLegs
	if maxLegs < minLegs || maxLegs > absoluteMaxLegs {
		maxLegs = DefaultScriptConfig().MaxLegs
	}

	byID := make(map[string]model.Alert, len(alerts))
	for _, a := range alerts {
		if !a.Suppressed() {
			byID[a.ID] = a
		}
	}

	var scripts []model.Script
	for _, g := range groups {
		legs := resolveLegs(g, byID, maxLegs)
		if len(legs) < minLegs {
			zap.L().Debug("correlate: group discarded, too few valid legs",
				zap.String("type", string(g.Type)),
				zap.Int("legs", len(legs)),
			)
			continue
		}

		combined := combinedConfidence(legs)
		scripts = append(scripts, model.Script{
			ID:                 scriptID(g.Type, legs),
			CorrelationType:    g.Type,
			Legs:               legs,
			CombinedConfidence: combined,
			RiskLevel:          riskLevel(len(legs), combined),
			Explanation:        fmt.Sprintf("%d-leg script: %s", len(legs), explanations[g.Type]),
		})
	}
	return scripts
}

func resolveLegs(g model.CorrelationGroup, byID map[string]model.Alert, maxLegs int) []model.ScriptLeg {
	var legs []model.ScriptLeg
	for _, id := range g.AlertIDs {
		if len(legs) == maxLegs {
			break
		}
		a, ok := byID[id]
		if !ok {
			continue
		}
		legs = append(legs, model.ScriptLeg{
			AlertID:            a.ID,
			Market:             legMarket(a),
			ImpliedProbability: a.Confidence,
		})
	}
	return legs
}

// combinedConfidence is the product of leg implied probabilities plus the
// scaled correlation bonus, capped strictly below the ceiling.
func combinedConfidence(legs []model.ScriptLeg) float64 {
	product := 1.0
	for _, leg := range legs {
		product *= leg.ImpliedProbability
	}
	combined := product + correlationBonus*correlationBonusScale
	if combined >= combinedConfidenceCeiling {
		combined = combinedConfidenceCeiling - 1e-4
	}
	return combined
}

func riskLevel(legCount int, combined float64) model.RiskLevel {
	switch {
	case legCount <= 2 && combined >= 0.5:
		return model.RiskConservative
	case legCount <= 4 && combined >= 0.3:
		return model.RiskModerate
	default:
		return model.RiskAggressive
	}
}

// legMarket picks the leg's market description: the alert's first
// implication, or its evidence stat when none survived filtering.
func legMarket(a model.Alert) string {
	if len(a.Implications) > 0 {
		return a.Implications[0]
	}
	return a.Evidence.Stat
}

// scriptID derives a stable identifier from the correlation type and the
// member set, so identical runs yield identical script ids.
func scriptID(t model.CorrelationType, legs []model.ScriptLeg) string {
	members := make([]string, len(legs))
	for i, leg := range legs {
		members[i] = leg.AlertID
	}
	h, err := provenance.HashSet(members)
	if err != nil || len(h) < 12 {
		return string(t)
	}
	return fmt.Sprintf("%s:%s", t, h[:12])
}
