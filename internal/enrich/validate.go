package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gridline-labs/gridline/internal/model"
)

// bannedLanguage lists promotional terms that reject an enrichment record
// outright. Matching is case-insensitive on whole words.
var bannedLanguage = []string{"edge", "lock", "sharp", "exploit", "value", "mispriced"}

// OutcomeKind tags the per-finding enrichment result. Modeling the untrusted
// output as a variant keeps per-finding failure isolated: no exceptions, and
// the fallback path is a structural substitution rather than control flow.
type OutcomeKind int

const (
	OutcomeAbsent OutcomeKind = iota
	OutcomeRejected
	OutcomeValidated
)

// Outcome is the validation result for one finding's enrichment record.
type Outcome struct {
	Kind   OutcomeKind
	Fields AlertFields
	Reason string
}

// AlertFields are the enrichment-derived fields merged into an Alert after
// validation. Identity fields never pass through here.
type AlertFields struct {
	Severity     model.Severity
	Claim        string
	Implications []string
	Suppressions []string
}

// claimParts is the structured claim the collaborator returns. The rendered
// sentence is built here from the parts; collaborator free text is never
// used as the claim directly.
type claimParts struct {
	Subject   string `json:"subject"`
	Assertion string `json:"assertion"`
	Market    string `json:"market"`
}

// enrichmentRecord is one raw per-finding record from the collaborator.
type enrichmentRecord struct {
	Severity     string     `json:"severity"`
	Claim        claimParts `json:"claim"`
	Implications []string   `json:"implications"`
	Suppressions []string   `json:"suppressions"`
}

// ParseResponse extracts the finding-id-keyed record map from raw model
// output, tolerating markdown fences around the JSON object.
func ParseResponse(text string) (map[string]enrichmentRecord, error) {
	cleaned := cleanJSON(text)
	var records map[string]enrichmentRecord
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Validate checks one record against its source finding. Severity outside
// {high, medium} or banned language rejects the record; out-of-list
// implications are filtered, not fatal; a claimed high severity without
// elite-vs-weak rank evidence is clamped to medium.
func Validate(f model.Finding, rec enrichmentRecord) Outcome {
	severity := model.Severity(rec.Severity)
	if !severity.Valid() {
		return Outcome{Kind: OutcomeRejected, Reason: fmt.Sprintf("invalid severity %q", rec.Severity)}
	}
	if severity == model.SeverityHigh && model.SeverityFor(f.SubjectRank, f.OpponentRank) != model.SeverityHigh {
		severity = model.SeverityMedium
	}

	claim, err := renderClaim(rec.Claim)
	if err != nil {
		return Outcome{Kind: OutcomeRejected, Reason: err.Error()}
	}
	if term, found := containsBanned(claim); found {
		return Outcome{Kind: OutcomeRejected, Reason: fmt.Sprintf("banned language %q", term)}
	}

	implications := make([]string, 0, len(rec.Implications))
	for _, tag := range rec.Implications {
		if model.ImplicationAllowed(f.Domain, tag) {
			implications = append(implications, tag)
		}
	}

	return Outcome{
		Kind: OutcomeValidated,
		Fields: AlertFields{
			Severity:     severity,
			Claim:        claim,
			Implications: implications,
			Suppressions: rec.Suppressions,
		},
	}
}

// Assemble merges validated enrichment fields with code-derived identity
// from each source finding. Findings with no valid record are dropped with a
// warning; the drop is deliberate, fallback substitution happens only when
// the collaborator call itself failed.
func Assemble(findings []model.Finding, records map[string]enrichmentRecord) ([]model.Alert, []string) {
	alerts := make([]model.Alert, 0, len(findings))
	var warnings []string

	for _, f := range findings {
		rec, ok := records[f.ID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("finding %s: no enrichment record", f.ID))
			continue
		}
		outcome := Validate(f, rec)
		if outcome.Kind != OutcomeValidated {
			warnings = append(warnings, fmt.Sprintf("finding %s: %s", f.ID, outcome.Reason))
			continue
		}
		alerts = append(alerts, mergeAlert(f, outcome.Fields, false))
	}
	return alerts, warnings
}

// mergeAlert builds an Alert from code-derived identity plus enrichment
// fields. Confidence defaults to zero if the calculator never ran.
func mergeAlert(f model.Finding, fields AlertFields, fallback bool) model.Alert {
	conf := 0.0
	if f.Confidence != nil {
		conf = *f.Confidence
	}
	implications := fields.Implications
	if implications == nil {
		implications = []string{}
	}
	return model.Alert{
		ID:           f.ID,
		Domain:       f.Domain,
		Confidence:   conf,
		Evidence:     model.EvidenceOf(f),
		Severity:     fields.Severity,
		Claim:        fields.Claim,
		Implications: implications,
		Suppressions: fields.Suppressions,
		Fallback:     fallback,
	}
}

// renderClaim builds the claim sentence from structured parts.
func renderClaim(parts claimParts) (string, error) {
	subject := strings.TrimSpace(parts.Subject)
	assertion := strings.TrimSpace(parts.Assertion)
	if subject == "" || assertion == "" {
		return "", fmt.Errorf("incomplete claim parts")
	}
	claim := subject + " " + strings.TrimRight(assertion, ".")
	if market := strings.TrimSpace(parts.Market); market != "" {
		claim += " (" + market + ")"
	}
	return claim + ".", nil
}

// containsBanned scans for banned promotional terms as whole words.
func containsBanned(claim string) (string, bool) {
	words := strings.FieldsFunc(strings.ToLower(claim), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})
	for _, w := range words {
		for _, banned := range bannedLanguage {
			if w == banned {
				return banned, true
			}
		}
	}
	return "", false
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
