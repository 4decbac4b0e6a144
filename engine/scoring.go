package engine

// CalScore returns the ranking score of agentID. It is the agent's points,
// plus half a point when the agent shares the top score with at least one
// other agent and owns no more bought cards than anyone at the table.
func (g *GameState) CalScore(agentID int) float64 {
	n := int(g.NumAgents)
	maxScore := g.Agents[0].Score
	minCards := g.Agents[0].BoughtCards()
	for i := 1; i < n; i++ {
		maxScore = max(maxScore, g.Agents[i].Score)
		minCards = min(minCards, g.Agents[i].BoughtCards())
	}

	agent := &g.Agents[agentID]
	base := float64(agent.Score)
	if agent.Score != maxScore {
		return base
	}

	victors := 0
	for i := 0; i < n; i++ {
		if g.Agents[i].Score == maxScore {
			victors++
		}
	}
	if victors > 1 && agent.BoughtCards() == minCards {
		return base + 0.5
	}
	return base
}

// Scores returns CalScore for every agent in seat order.
func (g *GameState) Scores() []float64 {
	out := make([]float64, g.NumAgents)
	for i := range out {
		out[i] = g.CalScore(i)
	}
	return out
}

// Winners returns the agents holding the highest ranking score. More than one
// entry means the tie-break did not separate them.
func (g *GameState) Winners() []int {
	scores := g.Scores()
	best := scores[0]
	for _, s := range scores[1:] {
		best = max(best, s)
	}
	var out []int
	for i, s := range scores {
		if s == best {
			out = append(out, i)
		}
	}
	return out
}
