// Package rules implements the threshold engine: pure per-domain rule
// modules over matchup statistics. Each domain is a data-described rule set
// consumed by small pure comparison functions; there is no shared state
// between rule invocations.
package rules

// Thresholds holds every numeric cutoff the rule modules consume. Values are
// data, not code: config can override any of them, and tests pin them
// explicitly.
type Thresholds struct {
	// Joint rank gates. A finding requires the subject at or better than
	// EliteRank AND the opponent at or worse than WeakRank; neither alone
	// is sufficient. Ranks are 1 = best of 32.
	EliteRank int `yaml:"elite_rank" mapstructure:"elite_rank"`
	WeakRank  int `yaml:"weak_rank" mapstructure:"weak_rank"`

	// Hard sample gates. Below these the check emits nothing at all:
	// suppression, never a low-confidence finding.
	MinCarries        int `yaml:"min_carries" mapstructure:"min_carries"`
	MinTargets        int `yaml:"min_targets" mapstructure:"min_targets"`
	MinTETargets      int `yaml:"min_te_targets" mapstructure:"min_te_targets"`
	MinRoutes         int `yaml:"min_routes" mapstructure:"min_routes"`
	MinAttempts       int `yaml:"min_attempts" mapstructure:"min_attempts"`
	MinGames          int `yaml:"min_games" mapstructure:"min_games"`
	MinBackTargets    int `yaml:"min_back_targets" mapstructure:"min_back_targets"`
	MinRedZoneTouches int `yaml:"min_red_zone_touches" mapstructure:"min_red_zone_touches"`

	// Share-based cutoffs.
	TargetShareElite float64 `yaml:"target_share_elite" mapstructure:"target_share_elite"`
	SnapShareStarter float64 `yaml:"snap_share_starter" mapstructure:"snap_share_starter"`
	SnapShareJump    float64 `yaml:"snap_share_jump" mapstructure:"snap_share_jump"`

	// Weather cutoffs.
	HighWindMPH       float64 `yaml:"high_wind_mph" mapstructure:"high_wind_mph"`
	HeavyPrecipChance float64 `yaml:"heavy_precip_chance" mapstructure:"heavy_precip_chance"`

	// WindPaceModifier multiplies pace-signal confidence under high wind.
	// A modifier, not a gate: the finding still surfaces.
	WindPaceModifier float64 `yaml:"wind_pace_modifier" mapstructure:"wind_pace_modifier"`

	// Combined plays-per-game cutoff for the pace domain.
	HighPlaysPerGame float64 `yaml:"high_plays_per_game" mapstructure:"high_plays_per_game"`
}

// DefaultThresholds returns the production cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EliteRank:         10,
		WeakRank:          22,
		MinCarries:        80,
		MinTargets:        40,
		MinTETargets:      30,
		MinRoutes:         150,
		MinAttempts:       150,
		MinGames:          3,
		MinBackTargets:    20,
		MinRedZoneTouches: 8,
		TargetShareElite:  0.24,
		SnapShareStarter:  0.50,
		SnapShareJump:     0.12,
		HighWindMPH:       15,
		HeavyPrecipChance: 0.60,
		WindPaceModifier:  0.75,
		HighPlaysPerGame:  128,
	}
}

// rankMismatch is the core joint gate: subject elite AND opponent weak.
func rankMismatch(subjectRank, opponentRank int, th Thresholds) bool {
	if subjectRank <= 0 || opponentRank <= 0 {
		return false
	}
	return subjectRank <= th.EliteRank && opponentRank >= th.WeakRank
}
