package engine

// GameEnds reports whether the game is over: an agent reached the winning
// score, or every agent passed on its last turn.
//
// With Rules.FinishRound set, a winning score only ends the game once the
// round has completed and agent 0 is to move again. A full-table pass always
// ends the game immediately.
func (g *GameState) GameEnds() bool {
	if g.allPassed() {
		return true
	}
	if !g.scoreReached() {
		return false
	}
	return !g.Rules.FinishRound || g.AgentToMove == 0
}

// scoreReached reports whether any agent holds at least the winning score.
func (g *GameState) scoreReached() bool {
	for i := uint8(0); i < g.NumAgents; i++ {
		if g.Agents[i].Score >= g.Rules.WinningScore {
			return true
		}
	}
	return false
}

func (g *GameState) allPassed() bool {
	for i := uint8(0); i < g.NumAgents; i++ {
		if !g.Agents[i].Passed {
			return false
		}
	}
	return g.NumAgents > 0
}
