package model

// allowedImplications is the per-domain allow-list of downstream betting
// market tags. An Alert's implications must always be a subset of its
// domain's list; enrichment output outside the list is filtered, never
// passed through.
var allowedImplications = map[Domain][]string{
	DomainEPA: {
		"team_total_over", "spread_cover", "first_half_over", "game_total_over",
	},
	DomainPressure: {
		"sacks_over", "passing_yards_under", "interceptions_over", "team_total_under",
	},
	DomainWeather: {
		"game_total_under", "passing_yards_under", "rushing_attempts_over", "field_goals_under",
	},
	DomainQB: {
		"passing_yards_over", "passing_tds_over", "completions_over", "team_total_over",
	},
	DomainHB: {
		"rushing_yards_over", "rushing_attempts_over", "anytime_td", "receptions_over",
	},
	DomainWR: {
		"receiving_yards_over", "receptions_over", "anytime_td", "longest_reception_over",
	},
	DomainTE: {
		"receiving_yards_over", "receptions_over", "anytime_td",
	},
	DomainInjury: {
		"replacement_volume_over", "rushing_attempts_over", "receptions_over", "snap_share_shift",
	},
	DomainUsage: {
		"touches_over", "rushing_attempts_over", "receptions_over", "snap_share_shift",
	},
	DomainPace: {
		"game_total_over", "plays_over", "first_half_over",
	},
	DomainNotes: {
		"team_total_over", "spread_cover", "prop_lean",
	},
}

// defaultImplications is the conservative per-domain set used by the
// deterministic fallback path. Always a subset of allowedImplications.
var defaultImplications = map[Domain][]string{
	DomainEPA:      {"team_total_over"},
	DomainPressure: {"sacks_over"},
	DomainWeather:  {"game_total_under"},
	DomainQB:       {"passing_yards_over"},
	DomainHB:       {"rushing_yards_over"},
	DomainWR:       {"receiving_yards_over"},
	DomainTE:       {"receiving_yards_over"},
	DomainInjury:   {"replacement_volume_over"},
	DomainUsage:    {"touches_over"},
	DomainPace:     {"game_total_over"},
	DomainNotes:    {"prop_lean"},
}

// AllowedImplications returns the allow-list for a domain. Unknown domains
// get an empty list, which rejects every implication.
func AllowedImplications(d Domain) []string {
	return allowedImplications[d]
}

// DefaultImplications returns the fallback implication set for a domain.
func DefaultImplications(d Domain) []string {
	defaults := defaultImplications[d]
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}

// ImplicationAllowed reports whether tag is in the domain's allow-list.
func ImplicationAllowed(d Domain, tag string) bool {
	for _, allowed := range allowedImplications[d] {
		if tag == allowed {
			return true
		}
	}
	return false
}
