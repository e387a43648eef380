package model

// CorrelationType names a fixed co-occurrence pattern across alert domains.
type CorrelationType string

const (
	CorrelationWeatherDriven CorrelationType = "weather_driven"
	CorrelationSharedDefense CorrelationType = "shared_defensive_matchup"
	CorrelationSharedVolume  CorrelationType = "shared_volume_driver"
	CorrelationGameScript    CorrelationType = "game_script_driven"
	CorrelationPlayerStack   CorrelationType = "player_stack"
)

// RiskLevel classifies a Script by leg count and combined confidence.
type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskModerate     RiskLevel = "moderate"
	RiskAggressive   RiskLevel = "aggressive"
)

// ScriptLeg references one Alert inside a Script.
type ScriptLeg struct {
	AlertID            string  `json:"alert_id"`
	Market             string  `json:"market"`
	ImpliedProbability float64 `json:"implied_probability"`
}

// Script is a 2–6 leg correlated combination of Alerts sharing one
// correlation type. CombinedConfidence is always strictly below the
// near-certainty ceiling regardless of leg count or bonus.
type Script struct {
	ID                 string          `json:"id"`
	CorrelationType    CorrelationType `json:"correlation_type"`
	Legs               []ScriptLeg     `json:"legs"`
	CombinedConfidence float64         `json:"combined_confidence"`
	RiskLevel          RiskLevel       `json:"risk_level"`
	Explanation        string          `json:"explanation"`
}

// CorrelationGroup is a candidate grouping proposed by the correlation
// identifier, before pricing and risk classification.
type CorrelationGroup struct {
	Type     CorrelationType `json:"type"`
	AlertIDs []string        `json:"alert_ids"`
}
