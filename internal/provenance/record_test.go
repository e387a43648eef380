package provenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-labs/gridline/internal/model"
)

func recordInputs() RunInputs {
	ts := time.Date(2025, 11, 9, 18, 0, 0, 0, time.UTC)
	return RunInputs{
		RunID: "run-1",
		Matchup: &model.MatchupContext{
			GameID:      "2025-W10-ATL-NO",
			Week:        10,
			Kickoff:     ts,
			DataVersion: "2025.11.09",
			Home:        model.TeamSnapshot{Team: "ATL", AsOf: ts},
			Away:        model.TeamSnapshot{Team: "NO", AsOf: ts},
		},
		Prompt:   "prompt text",
		Guidance: map[model.Domain]string{model.DomainQB: "guidance"},
		Findings: []model.Finding{
			{ID: "qb:a:efficiency_advantage:20251109", Domain: model.DomainQB},
			{ID: "weather:g:high_wind:20251109", Domain: model.DomainWeather},
		},
		Alerts: []model.Alert{{ID: "qb:a:efficiency_advantage:20251109", Domain: model.DomainQB}},
		Model:  "claude-sonnet-4-5-20250929",
	}
}

func TestRecord(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 9, 19, 0, 0, 0, time.UTC)
	rec, err := Record(recordInputs(), now)
	require.NoError(t, err)

	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, "claude-sonnet-4-5-20250929", rec.Model)
	assert.Equal(t, now, rec.GeneratedAt)
	assert.Len(t, rec.InputHash, 64)
	assert.Len(t, rec.GuidanceHash, 64)
	assert.Len(t, rec.FindingSetHash, 64)
	assert.Len(t, rec.AlertSetHash, 64)
	assert.Equal(t, HashString("prompt text"), rec.PromptHash)

	assert.Equal(t, []string{"weather", "qb"}, rec.DomainsInvoked)
	assert.Len(t, rec.DomainsSilent, len(model.AllDomains)-2)
	assert.NotContains(t, rec.DomainsSilent, "qb")
	assert.NotContains(t, rec.DomainsSilent, "weather")
}

func TestRecordStableAcrossFindingOrder(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	a := recordInputs()
	b := recordInputs()
	b.Findings[0], b.Findings[1] = b.Findings[1], b.Findings[0]

	ra, err := Record(a, now)
	require.NoError(t, err)
	rb, err := Record(b, now)
	require.NoError(t, err)

	assert.Equal(t, ra.FindingSetHash, rb.FindingSetHash)
	assert.Equal(t, ra.InputHash, rb.InputHash)
}

func TestRecordNoPrompt(t *testing.T) {
	t.Parallel()

	in := recordInputs()
	in.Prompt = ""
	rec, err := Record(in, time.Now())
	require.NoError(t, err)
	assert.Empty(t, rec.PromptHash)
}
