package engine

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	NumAgents    uint8 `json:"num_agents"`    // 2 to 4; 0 treated as 2
	WinningScore int   `json:"winning_score"` // score that ends the game
	MaxGems      int   `json:"max_gems"`      // token hand limit after a collect or reserve
	MaxReserved  uint8 `json:"max_reserved"`  // reserved-card limit
	MaxBucket    uint8 `json:"max_bucket"`    // bought cards per colour before further buys of that colour are refused
	// FinishRound ends a game on score only once the round completes
	// (mover back to agent 0). Deadlock still ends the game immediately.
	FinishRound bool `json:"finish_round,omitempty"`
}

// DefaultHouseRules returns the standard Splendor rules for numAgents players.
func DefaultHouseRules(numAgents uint8) HouseRules {
	return HouseRules{
		NumAgents:    numAgents,
		WinningScore: 15,
		MaxGems:      10,
		MaxReserved:  3,
		MaxBucket:    MaxBucket,
		FinishRound:  false,
	}
}

// numAgents returns the effective number of agents, at least 2.
func (r *HouseRules) numAgents() uint8 {
	if r.NumAgents < 2 {
		return 2
	}
	return r.NumAgents
}

// maxBucket clamps the configured bucket cap to the storage capacity.
func (r *HouseRules) maxBucket() uint8 {
	if r.MaxBucket == 0 || r.MaxBucket > MaxBucket {
		return MaxBucket
	}
	return r.MaxBucket
}

// bankPerColour returns the starting bank of each non-wild colour.
func bankPerColour(numAgents uint8) int {
	switch numAgents {
	case 2:
		return 4
	case 3:
		return 5
	default:
		return 7
	}
}

// InitialPool returns the starting bank for numAgents players. Token
// conservation is checked against this pool.
func InitialPool(numAgents uint8) Gems {
	n := bankPerColour(numAgents)
	return Gems{Black: n, Red: n, Yellow: WildTokens, Green: n, Blue: n, White: n}
}
