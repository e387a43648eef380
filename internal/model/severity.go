package model

// Severity tier cutoffs. High severity is reserved for elite-vs-weak rank
// mismatches (top-5 subject against bottom-5 opponent); everything else that
// clears a threshold is medium.
const (
	severityTopTierRank    = 5
	severityBottomTierRank = 28
)

// SeverityFor derives severity from the rank comparison that gated a
// finding. Checks without rank evidence are always medium.
func SeverityFor(subjectRank, opponentRank int) Severity {
	if subjectRank > 0 && opponentRank > 0 &&
		subjectRank <= severityTopTierRank && opponentRank >= severityBottomTierRank {
		return SeverityHigh
	}
	return SeverityMedium
}
