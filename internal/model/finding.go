package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DataQuality describes how directly a stat was observed. Quality caps the
// confidence ceiling: a pace projection derived from a secondary formula is
// "fallback" quality and can never score as high as a directly observed stat.
type DataQuality string

const (
	QualityFull     DataQuality = "full"
	QualityPartial  DataQuality = "partial"
	QualityFallback DataQuality = "fallback"
)

// Finding is an atomic, deterministic observation emitted by one threshold
// check. It is immutable once emitted and carries no severity or narrative;
// those are added by the enrichment stage. Confidence is filled in by the
// confidence calculator, not by the rule itself.
type Finding struct {
	ID                string      `json:"id"`
	Domain            Domain      `json:"domain"`
	Type              string      `json:"type"`
	Stat              string      `json:"stat"`
	Value             any         `json:"value"`
	ThresholdMet      string      `json:"threshold_met"`
	ComparisonContext string      `json:"comparison_context,omitempty"`
	SourceRef         string      `json:"source_ref"`
	SourceType        string      `json:"source_type"`
	SourceTimestamp   time.Time   `json:"source_timestamp"`
	SampleSize        int         `json:"sample_size"`
	SampleUnit        string      `json:"sample_unit,omitempty"`
	Quality           DataQuality `json:"quality"`
	SubjectRank       int         `json:"subject_rank,omitempty"`
	OpponentRank      int         `json:"opponent_rank,omitempty"`
	// ConfidenceModifier is a multiplicative adjustment a rule attaches
	// instead of suppressing the finding outright (e.g. high wind on a pace
	// signal). Zero means no modifier. The confidence calculator applies it
	// against a floor; it is never a hard gate.
	ConfidenceModifier float64  `json:"confidence_modifier,omitempty"`
	Confidence         *float64 `json:"confidence,omitempty"`
}

// Evidence is the code-derived portion of an Alert, carried verbatim from the
// source Finding. The enrichment collaborator is never trusted to originate
// any of these fields.
type Evidence struct {
	Stat              string    `json:"stat"`
	Value             any       `json:"value"`
	ThresholdMet      string    `json:"threshold_met"`
	ComparisonContext string    `json:"comparison_context,omitempty"`
	SourceRef         string    `json:"source_ref"`
	SourceType        string    `json:"source_type"`
	SourceTimestamp   time.Time `json:"source_timestamp"`
	SubjectRank       int       `json:"subject_rank,omitempty"`
	OpponentRank      int       `json:"opponent_rank,omitempty"`
}

// EvidenceOf extracts the code-derived evidence fields from a Finding.
func EvidenceOf(f Finding) Evidence {
	return Evidence{
		Stat:              f.Stat,
		Value:             f.Value,
		ThresholdMet:      f.ThresholdMet,
		ComparisonContext: f.ComparisonContext,
		SourceRef:         f.SourceRef,
		SourceType:        f.SourceType,
		SourceTimestamp:   f.SourceTimestamp,
		SubjectRank:       f.SubjectRank,
		OpponentRank:      f.OpponentRank,
	}
}

// idBucketLayout is the coarse timestamp bucket embedded in Finding IDs.
// Day granularity: repeated runs over the same daily snapshot produce
// identical IDs, which downstream hashing and run caching depend on.
const idBucketLayout = "20060102"

// FindingID composes a stable Finding identifier from domain, normalized
// subject identity, check type, and a coarse timestamp bucket.
func FindingID(domain Domain, subject, checkType string, ts time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		domain, NormalizeSubject(subject), checkType, ts.UTC().Format(idBucketLayout))
}

var subjectNormalizer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeSubject lowercases a subject name, strips diacritics, and maps
// runs of non-alphanumeric characters to single hyphens, so "Ja'Marr Chase"
// and "JaMarr  chase" resolve to the same identity across data versions.
func NormalizeSubject(subject string) string {
	folded, _, err := transform.String(subjectNormalizer, subject)
	if err != nil {
		folded = subject
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
