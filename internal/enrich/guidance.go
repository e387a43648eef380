package enrich

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/gridline-labs/gridline/internal/model"
)

// defaultGuidance is the built-in per-domain guidance text included in the
// enrichment prompt. An override file can replace any entry; loading that
// file is the caller's concern.
var defaultGuidance = map[model.Domain]string{
	model.DomainEPA:      "Efficiency mismatches support team totals and spread leans. Tie the claim to the EPA rank gap; do not project exact scores.",
	model.DomainPressure: "Pass-rush mismatches support sack props and suppressed passing volume for the opposing offense.",
	model.DomainWeather:  "Weather findings constrain the passing game and kicking. Prefer under-leaning implications; never predict a postponement.",
	model.DomainQB:       "Quarterback efficiency findings support passing yardage and touchdown props against weak pass defenses.",
	model.DomainHB:       "Back findings map volume to rushing yardage and attempts, scoring opportunity to touchdown props, receiving role to reception props.",
	model.DomainWR:       "Receiver findings map target share to receptions and yardage props. Respect the stated sample.",
	model.DomainTE:       "Tight-end findings behave like receiver findings with thinner samples; keep claims modest.",
	model.DomainInjury:   "Injury findings are about displaced volume, not the injured player. Point implications at the replacements.",
	model.DomainUsage:    "Usage-trend findings support touch and snap-based props; they are trend evidence, not matchup evidence.",
	model.DomainPace:     "Pace findings support play-volume and game-total leans for the matchup as a whole.",
	model.DomainNotes:    "Curated notes are human scouting judgment. Restate them faithfully; never extrapolate beyond the note text.",
}

// DefaultGuidance returns a copy of the built-in guidance documents.
func DefaultGuidance() map[model.Domain]string {
	out := make(map[model.Domain]string, len(defaultGuidance))
	for d, text := range defaultGuidance {
		out[d] = text
	}
	return out
}

// LoadGuidance reads a YAML override file mapping domain to guidance text
// and merges it over the defaults. Unknown domains in the file are an error;
// a missing path returns the defaults untouched.
func LoadGuidance(path string) (map[model.Domain]string, error) {
	docs := DefaultGuidance()
	if path == "" {
		return docs, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return docs, nil
		}
		return nil, eris.Wrapf(err, "enrich: read guidance %s", path)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, eris.Wrapf(err, "enrich: parse guidance %s", path)
	}

	for key, text := range overrides {
		d := model.Domain(key)
		if !d.Valid() {
			return nil, eris.Errorf("enrich: guidance for unknown domain %q", key)
		}
		docs[d] = text
	}
	return docs, nil
}
