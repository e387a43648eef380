package model

// Tier is a Ladder risk tier.
type Tier string

const (
	TierSafe       Tier = "safe"
	TierModerate   Tier = "moderate"
	TierAggressive Tier = "aggressive"
)

// Rung is an Alert reduced to a single-leg stake recommendation.
type Rung struct {
	AlertID            string  `json:"alert_id"`
	Market             string  `json:"market"`
	Line               float64 `json:"line,omitempty"`
	ImpliedProbability float64 `json:"implied_probability,omitempty"`
	Domain             Domain  `json:"domain"`
	Rationale          string  `json:"rationale"`
}

// Ladder is a risk-tiered bundle of 1–5 independent single-leg bets. The
// total implied probability is a mean, not a product: rungs are separate
// bets, not a parlay.
type Ladder struct {
	Tier                    Tier    `json:"tier"`
	Rungs                   []Rung  `json:"rungs"`
	TotalImpliedProbability float64 `json:"total_implied_probability"`
	RecommendedStakePct     float64 `json:"recommended_stake_pct"`
}
