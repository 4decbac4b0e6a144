package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is returned when an action is not in the mover's legal set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrReplayMismatch is returned when a replayed log disagrees with itself.
	ErrReplayMismatch = errors.New("replay does not match log")
)

// LogEntry is one applied action.
type LogEntry struct {
	Turn    int    `json:"turn"`
	AgentID int    `json:"agent"`
	Action  Action `json:"action"`
}

// GameLog is everything needed to replay a game: the seed and rules that
// built the table, every action in order, and the final ranking scores.
type GameLog struct {
	Seed      uint64     `json:"seed"`
	NumAgents int        `json:"num_agents"`
	Rules     HouseRules `json:"rules"`
	Entries   []LogEntry `json:"entries"`
	Scores    []float64  `json:"scores,omitempty"`
}

// NewGameLog starts an empty log for a game created from g.
func NewGameLog(g *GameState) GameLog {
	return GameLog{Seed: g.Seed, NumAgents: int(g.NumAgents), Rules: g.Rules}
}

// Append records a applied by agentID on the given turn.
func (l *GameLog) Append(turn, agentID int, a Action) {
	l.Entries = append(l.Entries, LogEntry{Turn: turn, AgentID: agentID, Action: a})
}

// Replay rebuilds a game from its log. Every entry must name the agent to
// move and an action legal in that position. When the log carries scores,
// they must match the replayed final state.
func Replay(l GameLog) (GameState, error) {
	if err := checkNumAgents(l.NumAgents); err != nil {
		return GameState{}, err
	}
	rules := l.Rules
	rules.NumAgents = uint8(l.NumAgents)
	g := NewGame(l.Seed, rules)

	for i, e := range l.Entries {
		if e.AgentID != g.Mover() {
			return g, fmt.Errorf("%w: entry %d: agent %d acted but agent %d was to move",
				ErrReplayMismatch, i, e.AgentID, g.Mover())
		}
		if !ValidAction(e.Action, g.LegalActions(e.AgentID)) {
			return g, fmt.Errorf("entry %d: %w: %s", i, ErrIllegalAction, ActionString(e.AgentID, e.Action))
		}
		if err := g.ApplyAction(e.Action); err != nil {
			return g, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	if len(l.Scores) > 0 {
		got := g.Scores()
		if len(got) != len(l.Scores) {
			return g, fmt.Errorf("%w: %d scores logged for %d agents", ErrReplayMismatch, len(l.Scores), len(got))
		}
		for i := range got {
			if got[i] != l.Scores[i] {
				return g, fmt.Errorf("%w: agent %d scored %.1f, log says %.1f", ErrReplayMismatch, i, got[i], l.Scores[i])
			}
		}
	}
	return g, nil
}
