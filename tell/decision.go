package tell

import (
	"strings"
	"unicode"

	"bottells/signal"
)

// DecisionKind discriminates the bot decision variants the classifier reads.
type DecisionKind string

const (
	DecisionBuildUnits   DecisionKind = "build_units"
	DecisionAttack       DecisionKind = "attack"
	DecisionDiplomacy    DecisionKind = "diplomacy"
	DecisionTrade        DecisionKind = "trade"
	DecisionCovertOp     DecisionKind = "covert_op"
	DecisionFundResearch DecisionKind = "fund_research"
	DecisionUpgradeUnits DecisionKind = "upgrade_units"
	DecisionBuyPlanet    DecisionKind = "buy_planet"
	DecisionDoNothing    DecisionKind = "do_nothing"
)

// LargeSaleThreshold is the sale quantity above which a trade leaks intent.
const LargeSaleThreshold = 1000

// Decision is one action chosen by the bot decision engine. Only the fields
// relevant to Kind are populated.
type Decision struct {
	Kind             DecisionKind `json:"kind"`
	UnitType         string       `json:"unitType,omitempty"`
	TargetID         string       `json:"targetId,omitempty"`
	DiplomaticAction string       `json:"diplomaticAction,omitempty"`
	TradeAction      string       `json:"tradeAction,omitempty"` // "buy" or "sell"
	Resource         string       `json:"resource,omitempty"`
	Quantity         int          `json:"quantity,omitempty"`
	Operation        string       `json:"operation,omitempty"`
	ResearchBranch   string       `json:"researchBranch,omitempty"`
	SectorType       string       `json:"sectorType,omitempty"`
}

var militaryUnits = map[string]bool{
	"soldiers":       true,
	"fighters":       true,
	"light_cruisers": true,
	"heavy_cruisers": true,
	"carriers":       true,
}

var defensiveUnits = map[string]bool{
	"stations":         true,
	"defense_stations": true,
}

var pactProposals = map[string]bool{
	"propose_alliance": true,
	"propose_nap":      true,
}

var reconOperations = map[string]bool{
	"send_spy":        true,
	"gather_intel":    true,
	"reconnaissance":  true,
	"infiltrate":      true,
	"monitor_borders": true,
}

var violentOperations = map[string]bool{
	"sabotage":        true,
	"assassination":   true,
	"insurgent_aid":   true,
	"bombing":         true,
	"setup_coup":      true,
	"demoralize":      true,
	"destroy_defense": true,
}

var militaryBranches = map[string]bool{
	"military": true,
	"defense":  true,
}

// Classify maps a decision to the signal it would leak. It returns
// signal.TypeNone for decisions that leak nothing, including kinds it does
// not recognise.
func Classify(d Decision) signal.Type {
	switch d.Kind {
	case DecisionBuildUnits:
		unit := unitKey(d.UnitType)
		switch {
		case militaryUnits[unit]:
			return signal.TypeMilitaryBuildup
		case defensiveUnits[unit]:
			return signal.TypeSilence
		}
		return signal.TypeNone
	case DecisionAttack:
		return signal.TypeAggressionSpike
	case DecisionDiplomacy:
		if pactProposals[normalize(d.DiplomaticAction)] {
			return signal.TypeDiplomaticOverture
		}
		return signal.TypeTreatyInterest
	case DecisionTrade:
		if normalize(d.TradeAction) == "sell" && d.Quantity > LargeSaleThreshold {
			return signal.TypeEconomicPreparation
		}
		return signal.TypeNone
	case DecisionCovertOp:
		op := normalize(d.Operation)
		switch {
		case reconOperations[op]:
			return signal.TypeTargetFixation
		case violentOperations[op]:
			return signal.TypeAggressionSpike
		}
		return signal.TypeSilence
	case DecisionFundResearch:
		if militaryBranches[normalize(d.ResearchBranch)] {
			return signal.TypeMilitaryBuildup
		}
		return signal.TypeEconomicPreparation
	case DecisionUpgradeUnits:
		return signal.TypeMilitaryBuildup
	case DecisionBuyPlanet:
		return signal.TypeEconomicPreparation
	case DecisionDoNothing:
		return signal.TypeSilence
	default:
		return signal.TypeNone
	}
}

// targetOf returns the empire a decision is aimed at, if any.
func targetOf(d Decision) string {
	switch d.Kind {
	case DecisionAttack, DecisionDiplomacy, DecisionCovertOp:
		return strings.TrimSpace(d.TargetID)
	default:
		return ""
	}
}

// normalize folds identifiers to lower snake_case: "Send-Spy",
// "send spy" and "sendSpy" all become "send_spy".
func normalize(s string) string {
	var b strings.Builder
	var prev rune
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '-' || r == ' ':
			r = '_'
		case unicode.IsUpper(r):
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		if r == '_' && prev == '_' {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// unitKey normalizes a unit type and accepts the singular form.
func unitKey(s string) string {
	unit := normalize(s)
	if unit != "" && !strings.HasSuffix(unit, "s") {
		unit += "s"
	}
	return unit
}
