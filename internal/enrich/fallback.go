package enrich

import (
	"fmt"

	"github.com/gridline-labs/gridline/internal/model"
)

// FallbackAlerts converts every finding in a batch directly into a minimal
// Alert: per-domain default implications and a claim templated only from the
// finding's own fields. No narrative generation. Output shape is identical
// to the enriched path, so callers never special-case fallback beyond the
// flag.
func FallbackAlerts(findings []model.Finding) []model.Alert {
	alerts := make([]model.Alert, 0, len(findings))
	for _, f := range findings {
		fields := AlertFields{
			Severity:     model.SeverityFor(f.SubjectRank, f.OpponentRank),
			Claim:        fallbackClaim(f),
			Implications: model.DefaultImplications(f.Domain),
		}
		alerts = append(alerts, mergeAlert(f, fields, true))
	}
	return alerts
}

func fallbackClaim(f model.Finding) string {
	claim := fmt.Sprintf("%s: %s %v met %s", f.SourceRef, f.Stat, f.Value, f.ThresholdMet)
	if f.ComparisonContext != "" {
		claim += "; " + f.ComparisonContext
	}
	return claim + "."
}
