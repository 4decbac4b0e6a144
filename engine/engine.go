package engine

// RuleEngine is the contract a turn orchestrator drives. It mirrors the
// GameState methods so a runner can be handed an alternative rule set.
type RuleEngine interface {
	Initialize(numAgents int, seed uint64) (GameState, error)
	LegalActions(g *GameState, agentID int) []Action
	ApplyAction(g *GameState, a Action) error
	ValidAction(a Action, legal []Action) bool
	CalScore(g *GameState, agentID int) float64
	GameEnds(g *GameState) bool
}

// Splendor is the standard RuleEngine. Rules overrides the defaults for
// every game it initializes; zero fields keep the standard values.
type Splendor struct {
	Rules HouseRules
}

var _ RuleEngine = Splendor{}

// Initialize builds a new game with the engine's rules.
func (s Splendor) Initialize(numAgents int, seed uint64) (GameState, error) {
	if err := checkNumAgents(numAgents); err != nil {
		return GameState{}, err
	}
	rules := s.Rules
	rules.NumAgents = uint8(numAgents)
	return NewGame(seed, rules), nil
}

func (Splendor) LegalActions(g *GameState, agentID int) []Action { return g.LegalActions(agentID) }

func (Splendor) ApplyAction(g *GameState, a Action) error { return g.ApplyAction(a) }

func (Splendor) ValidAction(a Action, legal []Action) bool { return ValidAction(a, legal) }

func (Splendor) CalScore(g *GameState, agentID int) float64 { return g.CalScore(agentID) }

func (Splendor) GameEnds(g *GameState) bool { return g.GameEnds() }
