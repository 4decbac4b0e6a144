package agent

import engine "github.com/jason-s-yu/splendor/engine"

// DeckEstimate is an abstract remaining-deck size for one tier.
type DeckEstimate uint8

const (
	DeckHigh   DeckEstimate = iota // 0: more than half the tier left
	DeckMedium                     // 1: a quarter to a half
	DeckLow                        // 2: under a quarter
	DeckEmpty                      // 3: exhausted
)

// GamePhase is the abstract phase of the game.
type GamePhase uint8

const (
	PhaseStart    GamePhase = iota // 0: nobody has moved
	PhaseEarly                     // 1: leader below 6 points
	PhaseMid                       // 2: leader 6-11 points
	PhaseLate                      // 3: leader 12 or more
	PhaseTerminal                  // 4: game over
)

// tierSize is the full deck size of each tier.
var tierSize = [engine.NumTiers]int{40, 30, 20}

// DeckEstimateFromSize converts a tier's remaining deck length to a DeckEstimate.
func DeckEstimateFromSize(tier int, deckLen uint8) DeckEstimate {
	n := int(deckLen)
	full := tierSize[tier]
	switch {
	case n == 0:
		return DeckEmpty
	case n*4 < full:
		return DeckLow
	case n*2 <= full:
		return DeckMedium
	default:
		return DeckHigh
	}
}

// GamePhaseFromState derives the phase from the turn counter and the leading
// score. Game over takes priority.
func GamePhaseFromState(g *engine.GameState) GamePhase {
	if g.GameEnds() {
		return PhaseTerminal
	}
	if g.Turn == 0 {
		return PhaseStart
	}
	lead := 0
	for i := 0; i < int(g.NumAgents); i++ {
		lead = max(lead, g.Agents[i].Score)
	}
	switch {
	case lead >= 12:
		return PhaseLate
	case lead >= 6:
		return PhaseMid
	default:
		return PhaseEarly
	}
}
