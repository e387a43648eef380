// Package confidence derives a 0–1 confidence score from a finding's
// sample-size and data-quality signals. Scoring is deterministic and
// referentially transparent: the same finding always yields the same score.
package confidence

import (
	"math"

	"github.com/gridline-labs/gridline/internal/model"
)

const (
	// scoreBase is the confidence assigned to a minimally-sampled finding
	// that still cleared its domain's hard sample gate.
	scoreBase = 0.35

	// Quality ceilings. Partial and fallback data can never score as high
	// as directly observed stats, regardless of sample size.
	ceilingFull     = 0.95
	ceilingPartial  = 0.75
	ceilingFallback = 0.60

	// modifierFloor is the lowest a confidence modifier can drag a score.
	modifierFloor = 0.20
)

// saturationByUnit maps a sample unit to the sample size at which the score
// reaches its quality ceiling. Units not listed saturate at 100.
var saturationByUnit = map[string]int{
	"carries":  150,
	"targets":  90,
	"routes":   350,
	"attempts": 350,
	"touches":  180,
	"games":    10,
	"snapshot": 1,
}

const defaultSaturation = 100

// Score computes the confidence for one finding. Larger samples move the
// score from the base toward the quality ceiling; a confidence modifier, if
// the rule attached one, multiplies the result down but never below the
// modifier floor.
func Score(f model.Finding) float64 {
	ceiling := ceilingFull
	switch f.Quality {
	case model.QualityPartial:
		ceiling = ceilingPartial
	case model.QualityFallback:
		ceiling = ceilingFallback
	}

	sat := saturationByUnit[f.SampleUnit]
	if sat <= 0 {
		sat = defaultSaturation
	}
	frac := float64(f.SampleSize) / float64(sat)
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}

	score := scoreBase + (ceiling-scoreBase)*frac

	if f.ConfidenceModifier > 0 && f.ConfidenceModifier < 1 {
		score *= f.ConfidenceModifier
		if score < modifierFloor {
			score = modifierFloor
		}
	}

	return math.Round(score*10000) / 10000
}

// Apply returns a copy of findings with Confidence populated. Source
// findings are never mutated.
func Apply(findings []model.Finding) []model.Finding {
	out := make([]model.Finding, len(findings))
	for i, f := range findings {
		score := Score(f)
		f.Confidence = &score
		out[i] = f
	}
	return out
}
