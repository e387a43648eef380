package model

// Domain identifies a rule-evaluation category. The set is closed: the
// threshold engine dispatches one rule module per domain and downstream
// correlation rules key off these values.
type Domain string

const (
	DomainEPA      Domain = "epa"
	DomainPressure Domain = "pressure"
	DomainWeather  Domain = "weather"
	DomainQB       Domain = "qb"
	DomainHB       Domain = "hb"
	DomainWR       Domain = "wr"
	DomainTE       Domain = "te"
	DomainInjury   Domain = "injury"
	DomainUsage    Domain = "usage"
	DomainPace     Domain = "pace"
	DomainNotes    Domain = "notes"
)

// AllDomains is the canonical evaluation order. Findings from concurrent
// domain evaluation are merged in this order so IDs and hashes are
// reproducible across runs.
var AllDomains = []Domain{
	DomainEPA,
	DomainPressure,
	DomainWeather,
	DomainQB,
	DomainHB,
	DomainWR,
	DomainTE,
	DomainInjury,
	DomainUsage,
	DomainPace,
	DomainNotes,
}

// Valid reports whether d is a member of the closed domain set.
func (d Domain) Valid() bool {
	for _, known := range AllDomains {
		if d == known {
			return true
		}
	}
	return false
}

// Receiver reports whether d is a receiver domain. The shared-volume
// correlation rule treats WR and TE alerts as one pool.
func (d Domain) Receiver() bool {
	return d == DomainWR || d == DomainTE
}

// Severity classifies an Alert's strength.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Valid reports whether s is a recognized severity.
func (s Severity) Valid() bool {
	return s == SeverityHigh || s == SeverityMedium
}
