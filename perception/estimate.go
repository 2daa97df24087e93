package perception

import "bottells/signal"

// EstimateSuccessProbability is the chance a fresh d20 lets an observer at
// tier see through the archetype's bluffs with default stats.
func (e *Engine) EstimateSuccessProbability(tier signal.IntelLevel, a signal.Archetype, researchBonus int) float64 {
	requiredRoll := e.EmitterDifficulty(a, DefaultStats) - StaticPerception(tier, researchBonus) + averageRoll
	switch {
	case requiredRoll <= 1:
		return 1.0
	case requiredRoll > 20:
		return 0.0
	default:
		return float64(21-requiredRoll) / 20
	}
}

// MinimumTierFor is the lowest tier whose best-case roll can still meet the
// archetype's DC. It falls back to full when no tier can.
func (e *Engine) MinimumTierFor(a signal.Archetype) signal.IntelLevel {
	dc := e.EmitterDifficulty(a, DefaultStats)
	for _, tier := range signal.AllIntelLevels() {
		if StaticPerception(tier, 0)+10 >= dc {
			return tier
		}
	}
	return signal.IntelFull
}

// ChanceDescription buckets the estimated probability for display.
func (e *Engine) ChanceDescription(tier signal.IntelLevel, a signal.Archetype) string {
	p := e.EstimateSuccessProbability(tier, a, 0)
	switch {
	case p >= 0.9:
		return "Very High"
	case p >= 0.7:
		return "High"
	case p >= 0.5:
		return "Moderate"
	case p >= 0.3:
		return "Low"
	case p > 0:
		return "Very Low"
	default:
		return "None"
	}
}

// OddsRow is one archetype's detection odds at every tier.
type OddsRow struct {
	Archetype   signal.Archetype
	MinimumTier signal.IntelLevel
	ByTier      map[signal.IntelLevel]float64
}

// Odds tabulates EstimateSuccessProbability for every archetype and tier.
func (e *Engine) Odds(researchBonus int) []OddsRow {
	rows := make([]OddsRow, 0, len(signal.AllArchetypes()))
	for _, a := range signal.AllArchetypes() {
		row := OddsRow{
			Archetype:   a,
			MinimumTier: e.MinimumTierFor(a),
			ByTier:      make(map[signal.IntelLevel]float64, 4),
		}
		for _, tier := range signal.AllIntelLevels() {
			row.ByTier[tier] = e.EstimateSuccessProbability(tier, a, researchBonus)
		}
		rows = append(rows, row)
	}
	return rows
}
