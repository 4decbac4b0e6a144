package agent

import engine "github.com/jason-s-yu/splendor/engine"

const (
	BankDim   = engine.NumColours
	SlotDim   = 13 // present, bonus colour (5), points, cost (5), affordable
	NobleDim  = 6  // present, requirement (5)
	AgentDim  = 14 // gems (6), cards (5), reserved, score, noble progress
	DeckDim   = 4
	PhaseDim  = 5
	NumSlots  = engine.NumTiers * engine.SlotsPerTier
	InputDim  = BankDim + NumSlots*SlotDim + engine.MaxNobles*NobleDim + engine.MaxAgents*AgentDim + engine.NumTiers*DeckDim + PhaseDim // 265
	maxCost   = 7
	maxNeeded = 4
)

// costIndex maps a colour to its position among the five cost colours.
// Yellow has none.
var costIndex = [engine.NumColours]int{engine.Black: 0, engine.Red: 1, engine.Yellow: -1, engine.Green: 2, engine.Blue: 3, engine.White: 4}

// Encode writes the feature vector of g as seen by agentID into out.
// Agents are laid out starting with agentID, then in turn order; missing
// seats stay zero. out is zeroed internally before writing.
func Encode(g *engine.GameState, agentID int, out *[InputDim]float32) {
	*out = [InputDim]float32{}
	self := g.Agent(agentID)
	offset := 0

	// Bank: 6
	for c, v := range g.Board.Gems {
		out[offset+c] = float32(v) / maxCost
	}
	offset += BankDim
	// offset = 6

	// Face-up cards: 12 slots × 13 = 156
	for t := 0; t < engine.NumTiers; t++ {
		for _, c := range g.Board.Dealt[t] {
			if !c.IsEmpty() {
				out[offset] = 1
				out[offset+1+costIndex[c.Colour()]] = 1
				out[offset+6] = float32(c.Points()) / 5
				cost := c.Cost()
				for _, col := range engine.CostColours {
					out[offset+7+costIndex[col]] = float32(cost[col]) / maxCost
				}
				if _, ok := engine.ResourcesSufficient(self, cost); ok {
					out[offset+12] = 1
				}
			}
			offset += SlotDim
		}
	}
	// offset = 162

	// Nobles: 5 × 6 = 30
	nobles := g.Board.NobleList()
	for i := 0; i < engine.MaxNobles; i++ {
		if i < len(nobles) {
			out[offset] = 1
			req := nobles[i].Requirement()
			for _, col := range engine.CostColours {
				out[offset+1+costIndex[col]] = float32(req[col]) / maxNeeded
			}
		}
		offset += NobleDim
	}
	// offset = 192

	// Agents: 4 × 14 = 56
	n := int(g.NumAgents)
	for k := 0; k < engine.MaxAgents; k++ {
		if k < n {
			encodeAgent(g.Agent((agentID+k)%n), nobles, out[offset:offset+AgentDim])
		}
		offset += AgentDim
	}
	// offset = 248

	// Deck estimates: 3 × 4 = 12
	for t := 0; t < engine.NumTiers; t++ {
		out[offset+int(DeckEstimateFromSize(t, g.Board.DeckLen[t]))] = 1
		offset += DeckDim
	}
	// offset = 260

	// Game phase: 5
	out[offset+int(GamePhaseFromState(g))] = 1
	// offset = 265
}

// encodeAgent writes one agent's AgentDim features into out.
func encodeAgent(a *engine.AgentState, nobles []engine.Noble, out []float32) {
	for c, v := range a.Gems {
		out[c] = float32(v) / 10
	}
	for _, col := range engine.CostColours {
		out[engine.NumColours+costIndex[col]] = float32(a.CardCount(col)) / engine.MaxBucket
	}
	out[11] = float32(a.CardCount(engine.Yellow)) / 3
	out[12] = float32(min(a.Score, 15)) / 15
	if len(nobles) > 0 {
		out[13] = float32(NobleProgress(a, nobles) / float64(len(nobles)))
	}
}
