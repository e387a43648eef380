package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-labs/gridline/internal/model"
)

func mismatchFinding() model.Finding {
	conf := 0.82
	return model.Finding{
		ID:              "qb:penix:efficiency_advantage:20251109",
		Domain:          model.DomainQB,
		Type:            "efficiency_advantage",
		Stat:            "pass_epa_rank",
		Value:           3,
		ThresholdMet:    "pass_epa_rank<=10 vs pass_defense_rank>=22",
		SourceRef:       "Michael Penix",
		SourceType:      "player_stats",
		SourceTimestamp: time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC),
		SampleSize:      290,
		SampleUnit:      "attempts",
		Quality:         model.QualityFull,
		SubjectRank:     3,
		OpponentRank:    30,
		Confidence:      &conf,
	}
}

func validRecord() enrichmentRecord {
	return enrichmentRecord{
		Severity: "high",
		Claim: claimParts{
			Subject:   "Michael Penix",
			Assertion: "projects well against a bottom-five pass defense",
			Market:    "passing yards",
		},
		Implications: []string{"passing_yards_over"},
	}
}

func TestValidateAccepts(t *testing.T) {
	t.Parallel()

	outcome := Validate(mismatchFinding(), validRecord())
	require.Equal(t, OutcomeValidated, outcome.Kind)
	assert.Equal(t, model.SeverityHigh, outcome.Fields.Severity)
	assert.Equal(t, "Michael Penix projects well against a bottom-five pass defense (passing yards).", outcome.Fields.Claim)
	assert.Equal(t, []string{"passing_yards_over"}, outcome.Fields.Implications)
}

func TestValidateRejectsInvalidSeverity(t *testing.T) {
	t.Parallel()

	for _, severity := range []string{"", "low", "critical", "HIGH"} {
		rec := validRecord()
		rec.Severity = severity
		outcome := Validate(mismatchFinding(), rec)
		assert.Equal(t, OutcomeRejected, outcome.Kind, "severity %q", severity)
	}
}

func TestValidateClampsUnsupportedHigh(t *testing.T) {
	t.Parallel()

	// Rank evidence supports only medium: claimed high is clamped, not
	// rejected.
	f := mismatchFinding()
	f.SubjectRank = 8
	outcome := Validate(f, validRecord())
	require.Equal(t, OutcomeValidated, outcome.Kind)
	assert.Equal(t, model.SeverityMedium, outcome.Fields.Severity)
}

func TestValidateRejectsBannedLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		assertion string
		rejected  bool
	}{
		{name: "banned word lock", assertion: "is a lock against this defense", rejected: true},
		{name: "banned word edge", assertion: "has a clear edge here", rejected: true},
		{name: "case insensitive", assertion: "is SHARP money this week", rejected: true},
		{name: "substring is fine", assertion: "unlocks the short passing game over the sharpest coverage", rejected: false},
		{name: "valued as substring is fine", assertion: "is valued by this offense", rejected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := validRecord()
			rec.Claim.Assertion = tt.assertion
			outcome := Validate(mismatchFinding(), rec)
			if tt.rejected {
				assert.Equal(t, OutcomeRejected, outcome.Kind)
			} else {
				assert.Equal(t, OutcomeValidated, outcome.Kind)
			}
		})
	}
}

func TestValidateFiltersImplications(t *testing.T) {
	t.Parallel()

	rec := validRecord()
	rec.Implications = []string{"passing_yards_over", "anytime_td", "completions_over", "made_up_market"}

	outcome := Validate(mismatchFinding(), rec)
	require.Equal(t, OutcomeValidated, outcome.Kind)
	// Out-of-list tags are filtered, never fatal.
	assert.Equal(t, []string{"passing_yards_over", "completions_over"}, outcome.Fields.Implications)
}

func TestValidateRejectsIncompleteClaim(t *testing.T) {
	t.Parallel()

	rec := validRecord()
	rec.Claim.Subject = ""
	assert.Equal(t, OutcomeRejected, Validate(mismatchFinding(), rec).Kind)

	rec = validRecord()
	rec.Claim.Assertion = "   "
	assert.Equal(t, OutcomeRejected, Validate(mismatchFinding(), rec).Kind)
}

func TestRenderClaimNoMarket(t *testing.T) {
	t.Parallel()

	claim, err := renderClaim(claimParts{Subject: "ATL offense", Assertion: "should sustain drives."})
	require.NoError(t, err)
	assert.Equal(t, "ATL offense should sustain drives.", claim)
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	f := mismatchFinding()
	other := mismatchFinding()
	other.ID = "hb:back:volume_advantage:20251109"
	other.Domain = model.DomainHB

	bad := validRecord()
	bad.Severity = "low"

	records := map[string]enrichmentRecord{
		f.ID:     validRecord(),
		other.ID: bad,
	}

	alerts, warnings := Assemble([]model.Finding{f, other, {ID: "missing"}}, records)
	require.Len(t, alerts, 1)
	assert.Equal(t, f.ID, alerts[0].ID)
	assert.Equal(t, f.Domain, alerts[0].Domain)
	assert.Equal(t, 0.82, alerts[0].Confidence)
	assert.Equal(t, model.EvidenceOf(f), alerts[0].Evidence)
	assert.False(t, alerts[0].Fallback)

	// One warning for the rejected record, one for the absent one.
	assert.Len(t, warnings, 2)
}

func TestAssembleNilRecords(t *testing.T) {
	t.Parallel()

	alerts, warnings := Assemble([]model.Finding{mismatchFinding()}, nil)
	assert.Empty(t, alerts)
	assert.Len(t, warnings, 1)
}

func TestCleanJSON(t *testing.T) {
	t.Parallel()

	want := `{"a": 1}`

	tests := []struct {
		name string
		in   string
	}{
		{name: "bare object", in: `{"a": 1}`},
		{name: "json fence", in: "```json\n{\"a\": 1}\n```"},
		{name: "plain fence", in: "```\n{\"a\": 1}\n```"},
		{name: "leading prose", in: "Here is the result:\n{\"a\": 1}"},
		{name: "surrounding whitespace", in: "  \n{\"a\": 1}\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, cleanJSON(tt.in))
		})
	}
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	text := "```json\n{\"qb:penix:efficiency_advantage:20251109\": {\"severity\": \"medium\", \"claim\": {\"subject\": \"Penix\", \"assertion\": \"holds up\", \"market\": \"\"}, \"implications\": [], \"suppressions\": []}}\n```"

	records, err := ParseResponse(text)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "medium", records["qb:penix:efficiency_advantage:20251109"].Severity)

	_, err = ParseResponse("not json at all")
	assert.Error(t, err)
}
