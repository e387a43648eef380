package model

import "time"

// FallbackModel is recorded as the model identity when the deterministic
// fallback path produced the alert set.
const FallbackModel = "fallback"

// Provenance is the content-hash audit record attached to every pipeline
// run. Hashes are order-independent over object keys, so semantically
// identical inputs always hash identically regardless of construction order.
type Provenance struct {
	RunID          string    `json:"run_id"`
	InputHash      string    `json:"input_hash"`
	PromptHash     string    `json:"prompt_hash,omitempty"`
	GuidanceHash   string    `json:"guidance_hash"`
	FindingSetHash string    `json:"finding_set_hash"`
	AlertSetHash   string    `json:"alert_set_hash"`
	DomainsInvoked []string  `json:"domains_invoked"`
	DomainsSilent  []string  `json:"domains_silent"`
	Model          string    `json:"model"`
	GeneratedAt    time.Time `json:"generated_at"`
}
