package game

import (
	"slices"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/splendor/engine"
	"github.com/jason-s-yu/splendor/service/internal/storage"
)

// NoForfeit is the ForfeitAgent value of a game played to its end.
const NoForfeit = storage.NoForfeit

// WarningPosition records a warning: who got it, on which turn and why.
type WarningPosition struct {
	Agent  int           `json:"agent"`
	Turn   int           `json:"turn"`
	Reason WarningReason `json:"reason"`
}

// Result is the outcome of one game.
type Result struct {
	ID        uuid.UUID
	StartedAt time.Time
	// Log replays the game; Log.Scores are the engine scores of the final state.
	Log              engine.GameLog
	Warnings         []int
	WarningPositions []WarningPosition
	ForfeitAgent     int
	// TurnLimitReached is set when the game was cut off by Config.MaxTurns.
	TurnLimitReached bool
	// Scores are the ranking scores: the engine scores, or -1 for a forfeiting
	// agent and 0 for everyone else.
	Scores  []float64
	Winners []int
	State   engine.GameState
}

// Forfeited reports whether the game ended on a forfeit.
func (r Result) Forfeited() bool { return r.ForfeitAgent != NoForfeit }

func (r Result) finalScores() []float64 {
	out := make([]float64, len(r.Log.Scores))
	if r.Forfeited() {
		out[r.ForfeitAgent] = -1
		return out
	}
	copy(out, r.Log.Scores)
	return out
}

// winners returns the agents holding the top score in r.Scores.
func (r Result) winners() []int {
	if len(r.Scores) == 0 {
		return nil
	}
	best := r.Scores[0]
	for _, s := range r.Scores[1:] {
		best = max(best, s)
	}
	var out []int
	for i, s := range r.Scores {
		if s == best {
			out = append(out, i)
		}
	}
	return out
}

// Record converts r into a storage record for agents named names.
func (r Result) Record(names []string) storage.GameRecord {
	return storage.GameRecord{
		ID:           r.ID,
		CreatedAt:    r.StartedAt,
		AgentNames:   slices.Clone(names),
		Warnings:     slices.Clone(r.Warnings),
		ForfeitAgent: r.ForfeitAgent,
		Scores:       slices.Clone(r.Scores),
		Log:          r.Log,
	}
}
