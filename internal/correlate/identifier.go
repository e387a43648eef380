// Package correlate scans alert sets for fixed co-occurrence patterns and
// prices the resulting groups into multi-leg scripts.
package correlate

import (
	"github.com/gridline-labs/gridline/internal/model"
)

// volumeShareCap bounds the shared-volume group: beyond three receivers the
// correlation premise (one ball to go around) flips against the combination.
const volumeShareCap = 3

// groupRule inspects the per-domain alert pools and proposes zero or one
// candidate group. Rules are independent; an alert may land in several
// groups.
type groupRule func(pools map[model.Domain][]model.Alert) *model.CorrelationGroup

var groupRules = []groupRule{
	weatherCascade,
	defensiveFunnel,
	volumeShare,
	gameScript,
	playerStack,
}

// Identify proposes correlation groups over the active alert set. Groups
// with fewer than two members are discarded, never padded.
func Identify(alerts []model.Alert) []model.CorrelationGroup {
	pools := make(map[model.Domain][]model.Alert)
	for _, a := range alerts {
		if a.Suppressed() {
			continue
		}
		pools[a.Domain] = append(pools[a.Domain], a)
	}

	var groups []model.CorrelationGroup
	for _, rule := range groupRules {
		g := rule(pools)
		if g == nil || len(g.AlertIDs) < 2 {
			continue
		}
		groups = append(groups, *g)
	}
	return groups
}

// weatherCascade: weather and quarterback alerts together imply the game
// environment drives the quarterback outcome.
func weatherCascade(pools map[model.Domain][]model.Alert) *model.CorrelationGroup {
	if len(pools[model.DomainWeather]) == 0 || len(pools[model.DomainQB]) == 0 {
		return nil
	}
	return &model.CorrelationGroup{
		Type:     model.CorrelationWeatherDriven,
		AlertIDs: ids(pools[model.DomainWeather], pools[model.DomainQB]),
	}
}

// defensiveFunnel: an elite pass rush and a quarterback alert share one
// defensive matchup.
func defensiveFunnel(pools map[model.Domain][]model.Alert) *model.CorrelationGroup {
	if len(pools[model.DomainPressure]) == 0 || len(pools[model.DomainQB]) == 0 {
		return nil
	}
	return &model.CorrelationGroup{
		Type:     model.CorrelationSharedDefense,
		AlertIDs: ids(pools[model.DomainPressure], pools[model.DomainQB]),
	}
}

// volumeShare: three or more receiver-domain alerts share one passing-volume
// driver. Capped to the first three in stable alert order.
func volumeShare(pools map[model.Domain][]model.Alert) *model.CorrelationGroup {
	receivers := append(append([]model.Alert{}, pools[model.DomainWR]...), pools[model.DomainTE]...)
	if len(receivers) < 3 {
		return nil
	}
	return &model.CorrelationGroup{
		Type:     model.CorrelationSharedVolume,
		AlertIDs: ids(receivers[:volumeShareCap]),
	}
}

// gameScript: efficiency and rusher alerts together imply a lead-and-run
// game script.
func gameScript(pools map[model.Domain][]model.Alert) *model.CorrelationGroup {
	if len(pools[model.DomainEPA]) == 0 || len(pools[model.DomainHB]) == 0 {
		return nil
	}
	return &model.CorrelationGroup{
		Type:     model.CorrelationGameScript,
		AlertIDs: ids(pools[model.DomainEPA], pools[model.DomainHB]),
	}
}

// playerStack: a quarterback alert plus at least one receiver alert stack
// the same passing production.
func playerStack(pools map[model.Domain][]model.Alert) *model.CorrelationGroup {
	receivers := append(append([]model.Alert{}, pools[model.DomainWR]...), pools[model.DomainTE]...)
	if len(pools[model.DomainQB]) == 0 || len(receivers) == 0 {
		return nil
	}
	return &model.CorrelationGroup{
		Type:     model.CorrelationPlayerStack,
		AlertIDs: ids(pools[model.DomainQB], receivers),
	}
}

func ids(pools ...[]model.Alert) []string {
	var out []string
	for _, pool := range pools {
		for _, a := range pool {
			out = append(out, a.ID)
		}
	}
	return out
}
