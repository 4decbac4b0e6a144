// Package agent provides decision agents for the Splendor engine and the
// feature encoding that learning agents consume.
//
// Every agent implements the same contract: given the legal actions and a
// private copy of the state, pick one. Agents may mutate their copy freely.
package agent

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	engine "github.com/jason-s-yu/splendor/engine"
)

// ErrNoActions is returned when an agent is handed an empty legal set.
var ErrNoActions = errors.New("no legal actions to choose from")

// Agent picks one action from a non-empty legal set.
type Agent interface {
	SelectAction(ctx context.Context, actions []engine.Action, state engine.GameState) (engine.Action, error)
}

// factories maps agent names to constructors.
var factories = map[string]func(id int, seed uint64) Agent{
	"random": func(_ int, seed uint64) Agent { return NewRandom(seed) },
	"first":  func(int, uint64) Agent { return FirstMove{} },
	"greedy": func(id int, _ uint64) Agent { return NewGreedy(id) },
}

// New returns the agent registered under name, playing seat id.
func New(name string, id int, seed uint64) (Agent, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q (have %v)", name, Names())
	}
	return f(id, seed), nil
}

// Names returns the registered agent names, sorted.
func Names() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Random picks uniformly among the legal actions.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random agent with a seeded PCG source.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) SelectAction(_ context.Context, actions []engine.Action, _ engine.GameState) (engine.Action, error) {
	if len(actions) == 0 {
		return engine.Action{}, ErrNoActions
	}
	return actions[r.rng.IntN(len(actions))], nil
}

// FirstMove always plays the first legal action.
type FirstMove struct{}

func (FirstMove) SelectAction(_ context.Context, actions []engine.Action, _ engine.GameState) (engine.Action, error) {
	if len(actions) == 0 {
		return engine.Action{}, ErrNoActions
	}
	return actions[0], nil
}
