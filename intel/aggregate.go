package intel

import "bottells/signal"

// EmpireGroup is the projections of one emitting empire, in input order.
type EmpireGroup struct {
	EmpireID    string
	Projections []Projection
}

// GroupByEmpire groups projections by emitter. Groups appear in the order
// their first projection does.
func GroupByEmpire(projections []Projection) []EmpireGroup {
	index := make(map[string]int)
	var groups []EmpireGroup
	for _, p := range projections {
		i, ok := index[p.Tell.EmpireID]
		if !ok {
			i = len(groups)
			index[p.Tell.EmpireID] = i
			groups = append(groups, EmpireGroup{EmpireID: p.Tell.EmpireID})
		}
		groups[i].Projections = append(groups[i].Projections, p)
	}
	return groups
}

// MostConfident returns the projection with the highest display confidence.
// Ties keep the earliest.
func MostConfident(projections []Projection) (Projection, bool) {
	if len(projections) == 0 {
		return Projection{}, false
	}
	best := projections[0]
	for _, p := range projections[1:] {
		if p.DisplayConfidence > best.DisplayConfidence {
			best = p
		}
	}
	return best, true
}

// MostRecent returns the projection created on the latest turn. Ties keep
// the earliest.
func MostRecent(projections []Projection) (Projection, bool) {
	if len(projections) == 0 {
		return Projection{}, false
	}
	best := projections[0]
	for _, p := range projections[1:] {
		if p.Tell.CreatedAtTurn > best.Tell.CreatedAtTurn {
			best = p
		}
	}
	return best, true
}

var threatTypes = map[signal.Type]bool{
	signal.TypeMilitaryBuildup: true,
	signal.TypeFleetMovement:   true,
	signal.TypeTargetFixation:  true,
	signal.TypeAggressionSpike: true,
}

var diplomaticTypes = map[signal.Type]bool{
	signal.TypeDiplomaticOverture: true,
	signal.TypeTreatyInterest:     true,
}

// IsThreat reports whether t signals hostile intent.
func IsThreat(t signal.Type) bool {
	return threatTypes[t]
}

// IsDiplomatic reports whether t signals a diplomatic opening.
func IsDiplomatic(t signal.Type) bool {
	return diplomaticTypes[t]
}
