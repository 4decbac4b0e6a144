package engine

import "fmt"

// ApplyAction applies a for the agent to move and advances the turn.
//
// a must come from LegalActions for the current mover. Anything the
// generator could never have produced (a card that is not where the action
// says, counts that would go negative, a full bucket) is rejected with an
// error wrapping ErrInvariant before the state is touched.
func (g *GameState) ApplyAction(a Action) error {
	if g.GameEnds() {
		return ErrGameOver
	}
	if err := g.checkAction(a); err != nil {
		return err
	}

	agent := &g.Agents[g.AgentToMove]
	board := &g.Board
	score := 0

	switch a.Kind {
	case ActionCollect, ActionReserve:
		board.Gems = board.Gems.Sub(a.Collected)
		agent.Gems = agent.Gems.Add(a.Collected)
		agent.Gems = agent.Gems.Sub(a.Returned)
		board.Gems = board.Gems.Add(a.Returned)

		if a.Kind == ActionReserve {
			// Keep the other face-up cards in place; refill only this slot.
			tier, slot, _ := board.findDealt(a.Card)
			board.Dealt[tier][slot] = g.deal(tier)
			agent.addCard(Yellow, a.Card)
		}

	case ActionBuy, ActionBuyReserved:
		agent.Gems = agent.Gems.Sub(a.Returned)
		board.Gems = board.Gems.Add(a.Returned)

		if a.Kind == ActionBuy {
			tier, slot, _ := board.findDealt(a.Card)
			board.Dealt[tier][slot] = g.deal(tier)
		} else {
			agent.removeReserved(a.Card)
		}
		agent.addCard(a.Card.Colour(), a.Card)
		score += a.Card.Points()
	}

	if !a.Noble.IsNone() {
		board.removeNoble(a.Noble)
		agent.Nobles[agent.NobleLen] = a.Noble
		agent.NobleLen++
		score += a.Noble.Points()
	}

	agent.LastAction = a
	agent.Trace = append(agent.Trace, TraceEntry{Action: a, ScoreDelta: score})
	agent.Score += score
	agent.Passed = a.Kind == ActionPass
	g.AgentToMove = g.NextAgent(g.AgentToMove)
	g.Turn++
	return nil
}

// checkAction validates everything ApplyAction relies on, without mutating.
func (g *GameState) checkAction(a Action) error {
	agent := &g.Agents[g.AgentToMove]
	board := &g.Board

	switch a.Kind {
	case ActionCollect, ActionReserve, ActionBuy, ActionBuyReserved, ActionPass:
	default:
		return fmt.Errorf("%w: unknown action kind %d", ErrInvariant, a.Kind)
	}

	needsCard := a.Kind == ActionReserve || a.IsBuy()
	if needsCard && int(a.Card) >= NumCards {
		return fmt.Errorf("%w: %s action without a card", ErrInvariant, a.Kind)
	}

	switch a.Kind {
	case ActionCollect, ActionReserve:
		if a.Collected.hasNegative() || a.Returned.hasNegative() {
			return fmt.Errorf("%w: negative gem counts in %s", ErrInvariant, a.Kind)
		}
		if board.Gems.Sub(a.Collected).hasNegative() {
			return fmt.Errorf("%w: bank %s cannot supply %s", ErrInvariant, board.Gems, a.Collected)
		}
		after := agent.Gems.Add(a.Collected).Sub(a.Returned)
		if after.hasNegative() {
			return fmt.Errorf("%w: agent %d cannot return %s", ErrInvariant, g.AgentToMove, a.Returned)
		}
		if after.Total() > g.Rules.MaxGems {
			return fmt.Errorf("%w: agent %d would hold %d gems", ErrInvariant, g.AgentToMove, after.Total())
		}
		if a.Kind == ActionReserve {
			if agent.CardLen[Yellow] >= g.Rules.MaxReserved {
				return fmt.Errorf("%w: agent %d already holds %d reserved cards", ErrInvariant, g.AgentToMove, agent.CardLen[Yellow])
			}
			if _, _, ok := board.findDealt(a.Card); !ok {
				return fmt.Errorf("%w: card %s is not face up", ErrInvariant, a.Card.Code())
			}
		}

	case ActionBuy, ActionBuyReserved:
		if a.Returned.hasNegative() || agent.Gems.Sub(a.Returned).hasNegative() {
			return fmt.Errorf("%w: agent %d cannot pay %s", ErrInvariant, g.AgentToMove, a.Returned)
		}
		if agent.CardLen[a.Card.Colour()] >= g.Rules.MaxBucket {
			return fmt.Errorf("%w: agent %d %s bucket is full", ErrInvariant, g.AgentToMove, a.Card.Colour())
		}
		if a.Kind == ActionBuy {
			if _, _, ok := board.findDealt(a.Card); !ok {
				return fmt.Errorf("%w: card %s is not face up", ErrInvariant, a.Card.Code())
			}
		} else if !agent.isReserved(a.Card) {
			return fmt.Errorf("%w: card %s is not reserved by agent %d", ErrInvariant, a.Card.Code(), g.AgentToMove)
		}
	}

	if !a.Noble.IsNone() {
		if int(a.Noble) >= NumNobles {
			return fmt.Errorf("%w: unknown noble %d", ErrInvariant, a.Noble)
		}
		onBoard := false
		for _, n := range board.Nobles[:board.NobleLen] {
			if n == a.Noble {
				onBoard = true
				break
			}
		}
		if !onBoard {
			return fmt.Errorf("%w: noble %s is not on the board", ErrInvariant, a.Noble.Code())
		}
	}
	return nil
}

// addCard appends c to the agent's bucket for colour.
func (a *AgentState) addCard(colour Colour, c Card) {
	a.Cards[colour][a.CardLen[colour]] = c
	a.CardLen[colour]++
}

// removeReserved deletes c from the reserve pile, preserving order.
func (a *AgentState) removeReserved(c Card) {
	n := a.CardLen[Yellow]
	for i := uint8(0); i < n; i++ {
		if a.Cards[Yellow][i] == c {
			copy(a.Cards[Yellow][i:n], a.Cards[Yellow][i+1:n])
			a.CardLen[Yellow]--
			a.Cards[Yellow][a.CardLen[Yellow]] = EmptyCard
			return
		}
	}
}
