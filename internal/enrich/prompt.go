package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gridline-labs/gridline/internal/model"
)

// Prompt bounds. One prompt is built per batch of findings; batches beyond
// the cap are truncated rather than split, and long free-text fields are
// clipped so a pathological input cannot blow up the context window.
const (
	maxPromptFindings    = 40
	maxContextFieldChars = 280
)

// systemText is the fixed system prompt for the enrichment call.
const systemText = "You are a sports analytics writer. You turn deterministic statistical findings into short, factual betting-relevant claims. You only restate the findings you are given. You never invent statistics, players, or markets, and you never use promotional language."

// promptTemplate lays out guidance, the finding batch, and the closed-world
// instruction. The response schema keys every record by finding id.
const promptTemplate = `Domain guidance:
%s

Findings (JSON):
%s

For each finding above, return one enrichment record. Respond with a single
valid JSON object keyed by finding id:
{"<finding_id>": {"severity": "high" or "medium", "claim": {"subject": "<who or what>", "assertion": "<what the finding supports>", "market": "<market description>"}, "implications": ["<market tag>"], "suppressions": []}}

Rules:
- Reference ONLY the findings and market tags listed above. Do not invent
  statistics, players, injuries, or markets that do not appear in the input.
- severity is "high" only for an elite-versus-weak rank mismatch; otherwise "medium".
- implications must be drawn from the allowed tags for the finding's domain: %s
- add a suppression reason string if the claim should not surface; otherwise
  leave suppressions empty.`

// BuildPrompt assembles the bounded enrichment prompt for a finding batch.
// Guidance is included only for domains present in the batch, in canonical
// domain order so the prompt is deterministic.
func BuildPrompt(findings []model.Finding, guidance map[model.Domain]string) (string, error) {
	if len(findings) > maxPromptFindings {
		findings = findings[:maxPromptFindings]
	}

	present := make(map[model.Domain]bool, len(findings))
	for _, f := range findings {
		present[f.Domain] = true
	}

	var guide strings.Builder
	var allowed strings.Builder
	for _, d := range model.AllDomains {
		if !present[d] {
			continue
		}
		fmt.Fprintf(&guide, "- %s: %s\n", d, guidance[d])
		fmt.Fprintf(&allowed, "%s=%s ", d, strings.Join(model.AllowedImplications(d), ","))
	}

	batch := make([]model.Finding, len(findings))
	for i, f := range findings {
		f.ComparisonContext = clip(f.ComparisonContext, maxContextFieldChars)
		if s, ok := f.Value.(string); ok {
			f.Value = clip(s, maxContextFieldChars)
		}
		batch[i] = f
	}

	findingsJSON, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "enrich: marshal findings")
	}

	return fmt.Sprintf(promptTemplate,
		strings.TrimRight(guide.String(), "\n"),
		string(findingsJSON),
		strings.TrimSpace(allowed.String()),
	), nil
}

func clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
