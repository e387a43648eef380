package correlate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-labs/gridline/internal/model"
)

func alert(id string, domain model.Domain, confidence float64) model.Alert {
	return model.Alert{
		ID:           id,
		Domain:       domain,
		Confidence:   confidence,
		Severity:     model.SeverityMedium,
		Claim:        id + " claim.",
		Implications: model.DefaultImplications(domain),
		Evidence:     model.Evidence{Stat: string(domain) + "_stat"},
	}
}

func TestIdentifyWeatherCascade(t *testing.T) {
	t.Parallel()

	groups := Identify([]model.Alert{
		alert("w1", model.DomainWeather, 0.7),
		alert("q1", model.DomainQB, 0.8),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, model.CorrelationWeatherDriven, groups[0].Type)
	assert.Equal(t, []string{"w1", "q1"}, groups[0].AlertIDs)
}

func TestIdentifyDefensiveFunnel(t *testing.T) {
	t.Parallel()

	groups := Identify([]model.Alert{
		alert("p1", model.DomainPressure, 0.7),
		alert("q1", model.DomainQB, 0.8),
	})

	require.Len(t, groups, 1)
	assert.Equal(t, model.CorrelationSharedDefense, groups[0].Type)
}

func TestIdentifyVolumeShareCap(t *testing.T) {
	t.Parallel()

	alerts := []model.Alert{
		alert("wr1", model.DomainWR, 0.8),
		alert("wr2", model.DomainWR, 0.7),
		alert("wr3", model.DomainWR, 0.6),
		alert("te1", model.DomainTE, 0.5),
	}

	groups := Identify(alerts)
	require.Len(t, groups, 1)
	assert.Equal(t, model.CorrelationSharedVolume, groups[0].Type)
	// Capped to the first three receivers in stable order.
	assert.Equal(t, []string{"wr1", "wr2", "wr3"}, groups[0].AlertIDs)
}

func TestIdentifyReceiversBelowVolumeMinimum(t *testing.T) {
	t.Parallel()

	groups := Identify([]model.Alert{
		alert("wr1", model.DomainWR, 0.8),
		alert("te1", model.DomainTE, 0.5),
	})
	assert.Empty(t, groups)
}

func TestIdentifyGameScriptAndStack(t *testing.T) {
	t.Parallel()

	groups := Identify([]model.Alert{
		alert("e1", model.DomainEPA, 0.8),
		alert("h1", model.DomainHB, 0.7),
		alert("q1", model.DomainQB, 0.8),
		alert("wr1", model.DomainWR, 0.7),
	})

	types := make([]model.CorrelationType, len(groups))
	for i, g := range groups {
		types[i] = g.Type
	}
	assert.Contains(t, types, model.CorrelationGameScript)
	assert.Contains(t, types, model.CorrelationPlayerStack)
}

func TestIdentifySkipsSuppressed(t *testing.T) {
	t.Parallel()

	suppressed := alert("w1", model.DomainWeather, 0.7)
	suppressed.Suppressions = []string{"forecast stale"}

	groups := Identify([]model.Alert{suppressed, alert("q1", model.DomainQB, 0.8)})
	assert.Empty(t, groups)
}

func TestIdentifySingletonGroupDiscarded(t *testing.T) {
	t.Parallel()

	// A QB alert alone proposes nothing; no single-member groups.
	groups := Identify([]model.Alert{alert("q1", model.DomainQB, 0.9)})
	assert.Empty(t, groups)
}

func TestAssembleScript(t *testing.T) {
	t.Parallel()

	alerts := []model.Alert{
		alert("w1", model.DomainWeather, 0.8),
		alert("q1", model.DomainQB, 0.9),
	}
	groups := Identify(alerts)

	scripts := Assemble(groups, alerts, DefaultScriptConfig())
	require.Len(t, scripts, 1)
	s := scripts[0]

	require.Len(t, s.Legs, 2)
	assert.Equal(t, "w1", s.Legs[0].AlertID)
	assert.Equal(t, model.DefaultImplications(model.DomainWeather)[0], s.Legs[0].Market)

	// 0.8*0.9 + 0.10*0.5
	assert.InDelta(t, 0.77, s.CombinedConfidence, 1e-9)
	assert.Equal(t, model.RiskConservative, s.RiskLevel)
	assert.Contains(t, s.Explanation, "2-leg")
	assert.Contains(t, s.ID, string(model.CorrelationWeatherDriven))
}

func TestAssembleCeiling(t *testing.T) {
	t.Parallel()

	alerts := []model.Alert{
		alert("w1", model.DomainWeather, 0.99),
		alert("q1", model.DomainQB, 0.99),
	}
	scripts := Assemble(Identify(alerts), alerts, DefaultScriptConfig())
	require.Len(t, scripts, 1)
	assert.Less(t, scripts[0].CombinedConfidence, combinedConfidenceCeiling)
}

func TestAssembleMaxLegsTruncation(t *testing.T) {
	t.Parallel()

	alerts := []model.Alert{
		alert("q1", model.DomainQB, 0.8),
		alert("wr1", model.DomainWR, 0.7),
		alert("wr2", model.DomainWR, 0.7),
		alert("wr3", model.DomainWR, 0.7),
		alert("te1", model.DomainTE, 0.6),
	}
	group := model.CorrelationGroup{
		Type:     model.CorrelationPlayerStack,
		AlertIDs: []string{"q1", "wr1", "wr2", "wr3", "te1"},
	}

	scripts := Assemble([]model.CorrelationGroup{group}, alerts, ScriptConfig{MaxLegs: 3})
	require.Len(t, scripts, 1)
	assert.Len(t, scripts[0].Legs, 3)

	// Out-of-bounds config falls back to the default cap.
	scripts = Assemble([]model.CorrelationGroup{group}, alerts, ScriptConfig{MaxLegs: 9})
	require.Len(t, scripts, 1)
	assert.Len(t, scripts[0].Legs, 4)
}

func TestAssembleDropsThinGroups(t *testing.T) {
	t.Parallel()

	// Only one referenced alert survives: the group dissolves.
	alerts := []model.Alert{alert("q1", model.DomainQB, 0.8)}
	group := model.CorrelationGroup{
		Type:     model.CorrelationWeatherDriven,
		AlertIDs: []string{"w1", "q1"},
	}

	scripts := Assemble([]model.CorrelationGroup{group}, alerts, DefaultScriptConfig())
	assert.Empty(t, scripts)
}

func TestRiskLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		legs     int
		combined float64
		want     model.RiskLevel
	}{
		{legs: 2, combined: 0.60, want: model.RiskConservative},
		{legs: 2, combined: 0.45, want: model.RiskModerate},
		{legs: 3, combined: 0.60, want: model.RiskModerate},
		{legs: 4, combined: 0.30, want: model.RiskModerate},
		{legs: 4, combined: 0.29, want: model.RiskAggressive},
		{legs: 5, combined: 0.90, want: model.RiskAggressive},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d legs %.2f", tt.legs, tt.combined), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, riskLevel(tt.legs, tt.combined))
		})
	}
}

func TestScriptIDStable(t *testing.T) {
	t.Parallel()

	legs := []model.ScriptLeg{{AlertID: "a"}, {AlertID: "b"}}
	reversed := []model.ScriptLeg{{AlertID: "b"}, {AlertID: "a"}}

	assert.Equal(t,
		scriptID(model.CorrelationPlayerStack, legs),
		scriptID(model.CorrelationPlayerStack, reversed),
	)
	assert.NotEqual(t,
		scriptID(model.CorrelationPlayerStack, legs),
		scriptID(model.CorrelationGameScript, legs),
	)
}
