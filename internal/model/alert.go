package model

// Alert is an enriched, narrative-bearing claim derived from exactly one
// Finding. Identity fields (ID, Domain, Confidence, Evidence) are carried
// verbatim from the Finding; Severity, Claim, Implications and Suppressions
// come from validated enrichment output or the deterministic fallback.
type Alert struct {
	ID         string   `json:"id"`
	Domain     Domain   `json:"domain"`
	Confidence float64  `json:"confidence"`
	Evidence   Evidence `json:"evidence"`

	Severity     Severity `json:"severity"`
	Claim        string   `json:"claim"`
	Implications []string `json:"implications"`
	Suppressions []string `json:"suppressions,omitempty"`

	// Fallback is set when this alert was synthesized directly from its
	// Finding because the enrichment collaborator was unavailable.
	Fallback bool `json:"fallback,omitempty"`
}

// Suppressed reports whether the alert must be excluded from all downstream
// stages (scripts, ladders, correlation).
func (a Alert) Suppressed() bool {
	return len(a.Suppressions) > 0
}

// Active filters out suppressed alerts.
func Active(alerts []Alert) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if !a.Suppressed() {
			out = append(out, a)
		}
	}
	return out
}
