package engine

// LegalActions returns every legal action for agentID in the current state.
// It does not mutate g. The order is deterministic (colour order, then tier
// and slot order) but callers should treat the result as a set.
func (g *GameState) LegalActions(agentID int) []Action {
	agent := &g.Agents[agentID]
	board := &g.Board
	var actions []Action

	nobles := g.nobleCandidates(agent)

	g.legalCollectDistinct(agent, nobles, &actions)
	g.legalCollectSame(agent, nobles, &actions)
	g.legalReserve(agent, nobles, &actions)
	g.legalBuy(agent, board.DealtCards(), ActionBuy, &actions)
	g.legalBuy(agent, agent.Reserved(), ActionBuyReserved, &actions)

	if len(actions) == 0 {
		for _, n := range nobles {
			actions = append(actions, NewPass(n))
		}
	}
	return actions
}

// nobleCandidates returns the board nobles the agent already qualifies for,
// or a single NoNoble when there are none.
func (g *GameState) nobleCandidates(agent *AgentState) []Noble {
	var out []Noble
	for _, n := range g.Board.Nobles[:g.Board.NobleLen] {
		if NobleVisit(agent, n) {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		out = append(out, NoNoble)
	}
	return out
}

// legalCollectDistinct adds the collect-different-colours actions. The
// fewest colours an agent may take shrinks as its hand approaches the limit.
func (g *GameState) legalCollectDistinct(agent *AgentState, nobles []Noble, out *[]Action) {
	var available []Colour
	for _, c := range CostColours {
		if g.Board.Gems[c] > 0 {
			available = append(available, c)
		}
	}

	held := agent.Gems.Total()
	minLen := 1
	switch {
	case held <= g.Rules.MaxGems-3:
		minLen = 3
	case held == g.Rules.MaxGems-2:
		minLen = 2
	}
	minLen = min(minLen, len(available))
	maxLen := min(3, len(available))

	for length := max(minLen, 1); length <= maxLen; length++ {
		forEachCombination(available, length, func(combo []Colour) {
			var collected Gems
			for _, c := range combo {
				collected[c] = 1
			}
			for _, returned := range g.returnCombos(agent.Gems, collected) {
				for _, n := range nobles {
					*out = append(*out, NewCollect(collected, returned, n))
				}
			}
		})
	}
}

// legalCollectSame adds the take-two-of-one-colour actions, allowed when the
// bank holds at least four of that colour.
func (g *GameState) legalCollectSame(agent *AgentState, nobles []Noble, out *[]Action) {
	for _, c := range CostColours {
		if g.Board.Gems[c] < 4 {
			continue
		}
		var collected Gems
		collected[c] = 2
		for _, returned := range g.returnCombos(agent.Gems, collected) {
			for _, n := range nobles {
				*out = append(*out, NewCollect(collected, returned, n))
			}
		}
	}
}

// legalReserve adds a reserve action per face-up card, taking a wild token
// when the bank has one.
func (g *GameState) legalReserve(agent *AgentState, nobles []Noble, out *[]Action) {
	if agent.CardLen[Yellow] >= g.Rules.MaxReserved {
		return
	}
	var collected Gems
	if g.Board.Gems[Yellow] > 0 {
		collected[Yellow] = 1
	}
	dealt := g.Board.DealtCards()
	for _, returned := range g.returnCombos(agent.Gems, collected) {
		for _, card := range dealt {
			for _, n := range nobles {
				*out = append(*out, NewReserve(card, collected, returned, n))
			}
		}
	}
}

// legalBuy adds purchase actions of the given kind for each affordable
// candidate. Noble eligibility is re-evaluated with the card already owned.
func (g *GameState) legalBuy(agent *AgentState, candidates []Card, kind ActionKind, out *[]Action) {
	for _, card := range candidates {
		colour := card.Colour()
		if agent.CardLen[colour] >= g.Rules.MaxBucket {
			continue
		}
		payment, ok := ResourcesSufficient(agent, card.Cost())
		if !ok {
			continue
		}

		post := *agent
		post.CardLen[colour]++
		var nobles []Noble
		for _, n := range g.Board.Nobles[:g.Board.NobleLen] {
			if NobleVisit(&post, n) {
				nobles = append(nobles, n)
			}
		}
		if len(nobles) == 0 {
			nobles = append(nobles, NoNoble)
		}

		for _, n := range nobles {
			if kind == ActionBuyReserved {
				*out = append(*out, NewBuyReserved(card, payment, n))
			} else {
				*out = append(*out, NewBuy(card, payment, n))
			}
		}
	}
}

// returnCombos lists every distinct multiset of tokens the agent can hand
// back to get down to the gem limit after collecting. Colours collected in
// the same action are never returned. A single empty Gems means no return is
// needed; nil means the collection cannot be made legal.
func (g *GameState) returnCombos(current, collected Gems) []Gems {
	total := current.Total() + collected.Total()
	if total <= g.Rules.MaxGems {
		return []Gems{{}}
	}
	numReturn := total - g.Rules.MaxGems

	var pool Gems
	for c := Colour(0); c < NumColours; c++ {
		if collected[c] == 0 {
			pool[c] = current[c]
		}
	}
	if pool.Total() < numReturn {
		return nil
	}

	var combos []Gems
	var cur Gems
	var walk func(c Colour, remaining int)
	walk = func(c Colour, remaining int) {
		if remaining == 0 {
			combos = append(combos, cur)
			return
		}
		if c >= NumColours {
			return
		}
		for k := min(pool[c], remaining); k >= 0; k-- {
			cur[c] = k
			walk(c+1, remaining-k)
		}
		cur[c] = 0
	}
	walk(0, numReturn)
	return combos
}

// forEachCombination calls fn with every k-element combination of items,
// preserving input order. The slice passed to fn is reused between calls.
func forEachCombination(items []Colour, k int, fn func([]Colour)) {
	combo := make([]Colour, 0, k)
	var rec func(start int)
	rec = func(start int) {
		if len(combo) == k {
			fn(combo)
			return
		}
		for i := start; i < len(items); i++ {
			combo = append(combo, items[i])
			rec(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	rec(0)
}
