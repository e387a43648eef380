package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// ErrInvalidContext marks a malformed matchup context. This is the only error
// class the pipeline propagates to callers: the threshold engine cannot
// safely guess at missing required fields.
var ErrInvalidContext = eris.New("invalid matchup context")

// MatchupContext is the pipeline's sole input: already-assembled per-matchup
// statistics for two opposing teams, stamped with a data version. The
// pipeline never fetches any of this itself.
type MatchupContext struct {
	GameID      string         `json:"game_id"`
	Week        int            `json:"week"`
	Kickoff     time.Time      `json:"kickoff"`
	DataVersion string         `json:"data_version"`
	Home        TeamSnapshot   `json:"home"`
	Away        TeamSnapshot   `json:"away"`
	Weather     *WeatherReport `json:"weather,omitempty"`
	Notes       []ScoutingNote `json:"notes,omitempty"`
}

// TeamSnapshot bundles one team's team-level stats and roster stats.
type TeamSnapshot struct {
	Team    string        `json:"team"`
	Stats   TeamStats     `json:"stats"`
	Players []PlayerStats `json:"players"`
	AsOf    time.Time     `json:"as_of"`
}

// TeamStats holds team-level league ranks and rates. Ranks are 1 = best.
type TeamStats struct {
	OffenseEPARank        int     `json:"offense_epa_rank"`
	DefenseEPAAllowedRank int     `json:"defense_epa_allowed_rank"`
	PressureRateRank      int     `json:"pressure_rate_rank"`
	SackRateAllowedRank   int     `json:"sack_rate_allowed_rank"`
	RushDefenseRank       int     `json:"rush_defense_rank"`
	PassDefenseRank       int     `json:"pass_defense_rank"`
	PaceRank              int     `json:"pace_rank"`
	SecondsPerPlay        float64 `json:"seconds_per_play"`
	PlaysPerGame          float64 `json:"plays_per_game"`
	// PaceProjected is set when seconds-per-play was derived from a
	// secondary formula instead of direct observation.
	PaceProjected bool `json:"pace_projected,omitempty"`
}

// PlayerStats holds one player's per-window stats. Sample fields (carries,
// targets, routes, attempts, games) gate threshold checks outright; rank
// fields feed the joint rank comparisons.
type PlayerStats struct {
	Name     string `json:"name"`
	Position string `json:"position"` // QB, RB, WR, TE
	Games    int    `json:"games"`

	Carries       int     `json:"carries,omitempty"`
	RushYards     int     `json:"rush_yards,omitempty"`
	RushYardsRank int     `json:"rush_yards_rank,omitempty"`
	YardsPerCarry float64 `json:"yards_per_carry,omitempty"`
	YPCRank       int     `json:"ypc_rank,omitempty"`

	RedZoneTouches   int `json:"red_zone_touches,omitempty"`
	RedZoneTouchRank int `json:"red_zone_touch_rank,omitempty"`

	Targets         int     `json:"targets,omitempty"`
	Routes          int     `json:"routes,omitempty"`
	TargetShare     float64 `json:"target_share,omitempty"`
	TargetShareRank int     `json:"target_share_rank,omitempty"`
	ReceivingYards  int     `json:"receiving_yards,omitempty"`
	AirYardsShare   float64 `json:"air_yards_share,omitempty"`
	AirYardsRank    int     `json:"air_yards_rank,omitempty"`

	Attempts    int     `json:"attempts,omitempty"`
	PassEPARank int     `json:"pass_epa_rank,omitempty"`
	SackRate    float64 `json:"sack_rate,omitempty"`

	SnapShare      float64 `json:"snap_share,omitempty"`
	SnapShareDelta float64 `json:"snap_share_delta,omitempty"`

	// InjuryStatus: "", "questionable", "doubtful", "out".
	InjuryStatus string `json:"injury_status,omitempty"`
	// PracticeLimited hard-gates usage findings for this player.
	PracticeLimited bool `json:"practice_limited,omitempty"`

	AsOf time.Time `json:"as_of"`
}

// WeatherReport is an optional game-environment snapshot.
type WeatherReport struct {
	WindMPH      float64   `json:"wind_mph"`
	PrecipChance float64   `json:"precip_chance"`
	TempF        float64   `json:"temp_f"`
	Dome         bool      `json:"dome"`
	Source       string    `json:"source,omitempty"`
	AsOf         time.Time `json:"as_of"`
}

// ScoutingNote is a curated human observation passed through the notes
// domain. Only actionable notes produce findings.
type ScoutingNote struct {
	Subject    string    `json:"subject"`
	Text       string    `json:"text"`
	Market     string    `json:"market,omitempty"`
	Actionable bool      `json:"actionable"`
	Source     string    `json:"source"`
	AsOf       time.Time `json:"as_of"`
}

// Validate checks the required fields the threshold engine cannot guess.
// Failures here are the pipeline's only hard-error class.
func (m *MatchupContext) Validate() error {
	switch {
	case m == nil:
		return eris.Wrap(ErrInvalidContext, "nil context")
	case m.GameID == "":
		return eris.Wrap(ErrInvalidContext, "missing game_id")
	case m.DataVersion == "":
		return eris.Wrap(ErrInvalidContext, "missing data_version")
	case m.Kickoff.IsZero():
		return eris.Wrap(ErrInvalidContext, "missing kickoff")
	case m.Home.Team == "":
		return eris.Wrap(ErrInvalidContext, "missing home team")
	case m.Away.Team == "":
		return eris.Wrap(ErrInvalidContext, "missing away team")
	case m.Home.AsOf.IsZero() || m.Away.AsOf.IsZero():
		return eris.Wrap(ErrInvalidContext, "missing snapshot timestamp")
	}
	return nil
}
