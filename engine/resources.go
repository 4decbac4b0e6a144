package engine

// ResourcesSufficient reports whether the agent can pay cost and, if so,
// which tokens it hands back to the bank.
//
// Owned cards of a colour are permanent discounts and are never spent. Any
// remaining shortfall after cards and coloured gems must be covered by wild
// tokens. ok is false when the wilds run out; an all-zero payment with ok
// true means the cards alone cover the cost.
func ResourcesSufficient(agent *AgentState, cost Gems) (payment Gems, ok bool) {
	wild := agent.Gems[Yellow]
	for c := Colour(0); c < NumColours; c++ {
		need := cost[c]
		if need == 0 {
			continue
		}
		cards := int(agent.CardLen[c])
		available := agent.Gems[c] + cards
		wild -= max(need-available, 0)
		if wild < 0 {
			return Gems{}, false
		}
		// Coloured gems are spent before wilds; cards before gems.
		gemCost := max(need-cards, 0)
		gemShortfall := max(gemCost-agent.Gems[c], 0)
		payment[c] += gemCost - gemShortfall
		payment[Yellow] += gemShortfall
	}
	return payment, true
}

// NobleVisit reports whether the agent's permanent cards meet the noble's
// requirement. Gems never count.
func NobleVisit(agent *AgentState, noble Noble) bool {
	req := noble.Requirement()
	for c := Colour(0); c < NumColours; c++ {
		if int(agent.CardLen[c]) < req[c] {
			return false
		}
	}
	return true
}
