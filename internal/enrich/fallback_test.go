package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-labs/gridline/internal/model"
)

func TestFallbackAlerts(t *testing.T) {
	t.Parallel()

	high := mismatchFinding() // subject 3 vs opponent 30
	medium := mismatchFinding()
	medium.ID = "hb:back:receiving_role:20251109"
	medium.Domain = model.DomainHB
	medium.SubjectRank = 0
	medium.OpponentRank = 28

	alerts := FallbackAlerts([]model.Finding{high, medium})
	require.Len(t, alerts, 2)

	// One alert per finding, always flagged, identity carried verbatim.
	assert.Equal(t, high.ID, alerts[0].ID)
	assert.True(t, alerts[0].Fallback)
	assert.Equal(t, model.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, 0.82, alerts[0].Confidence)
	assert.Equal(t, model.EvidenceOf(high), alerts[0].Evidence)
	assert.Equal(t, model.DefaultImplications(model.DomainQB), alerts[0].Implications)

	// Without rank evidence severity stays medium.
	assert.Equal(t, model.SeverityMedium, alerts[1].Severity)
	assert.Equal(t, model.DefaultImplications(model.DomainHB), alerts[1].Implications)
}

func TestFallbackClaimTemplated(t *testing.T) {
	t.Parallel()

	f := mismatchFinding()
	f.ComparisonContext = "ranks 3 in passing EPA"

	claim := fallbackClaim(f)
	assert.Contains(t, claim, f.SourceRef)
	assert.Contains(t, claim, f.Stat)
	assert.Contains(t, claim, f.ThresholdMet)
	assert.Contains(t, claim, "ranks 3 in passing EPA")

	f.ComparisonContext = ""
	assert.NotContains(t, fallbackClaim(f), ";")
}

func TestFallbackAlertsEmpty(t *testing.T) {
	t.Parallel()

	alerts := FallbackAlerts(nil)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
