package agent

import (
	"context"
	"fmt"
	"runtime"

	engine "github.com/jason-s-yu/splendor/engine"
	"golang.org/x/sync/errgroup"
)

// Heuristic weights.
const (
	weightWin   = 100.0
	weightScore = 1.5
	weightNoble = 2.5
)

// Greedy looks one move ahead: it applies each legal action to its own copy
// of the state and keeps the one whose result evaluates best for it.
type Greedy struct {
	ID int
	// Workers bounds the number of positions evaluated concurrently.
	// Values below 2 evaluate sequentially.
	Workers int
}

// NewGreedy returns a Greedy agent for seat id using every CPU.
func NewGreedy(id int) *Greedy {
	return &Greedy{ID: id, Workers: runtime.GOMAXPROCS(0)}
}

func (gr *Greedy) SelectAction(ctx context.Context, actions []engine.Action, state engine.GameState) (engine.Action, error) {
	if len(actions) == 0 {
		return engine.Action{}, ErrNoActions
	}

	values := make([]float64, len(actions))
	eval := func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := state.DeepCopy()
		if err := next.ApplyAction(actions[i]); err != nil {
			return fmt.Errorf("evaluate action %d: %w", i, err)
		}
		values[i] = Evaluate(&next, gr.ID)
		return nil
	}

	if gr.Workers < 2 {
		for i := range actions {
			if err := eval(i); err != nil {
				return engine.Action{}, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(gr.Workers)
		for i := range actions {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error { return eval(i) })
		}
		if err := g.Wait(); err != nil {
			return engine.Action{}, err
		}
		if err := ctx.Err(); err != nil {
			return engine.Action{}, err
		}
	}

	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return actions[best], nil
}

// Evaluate scores g from agentID's point of view: its own value minus the
// value of its strongest opponent.
func Evaluate(g *engine.GameState, agentID int) float64 {
	self := agentValue(g, agentID)
	opp := 0.0
	first := true
	for i := 0; i < int(g.NumAgents); i++ {
		if i == agentID {
			continue
		}
		v := agentValue(g, i)
		if first || v > opp {
			opp = v
			first = false
		}
	}
	return self - opp
}

// agentValue is 100·win/loss + 1.5·points + 2.5·noble progress + cards + gems.
func agentValue(g *engine.GameState, agentID int) float64 {
	a := g.Agent(agentID)
	total := 0
	for c := engine.Colour(0); c < engine.NumColours; c++ {
		total += a.CardCount(c)
	}
	return weightWin*winLoss(g, agentID) +
		weightScore*g.CalScore(agentID) +
		weightNoble*NobleProgress(a, g.Board.NobleList()) +
		float64(total) +
		float64(a.Gems.Total())
}

// winLoss is 1 if agentID reached the winning score, -1 if someone else did,
// 0 otherwise.
func winLoss(g *engine.GameState, agentID int) float64 {
	target := float64(g.Rules.WinningScore)
	if g.CalScore(agentID) >= target {
		return 1
	}
	for i := 0; i < int(g.NumAgents); i++ {
		if i != agentID && g.CalScore(i) >= target {
			return -1
		}
	}
	return 0
}

// NobleProgress sums, over nobles, the fraction of each noble's requirement
// the agent's cards already cover. A fully met noble counts 1.
func NobleProgress(a *engine.AgentState, nobles []engine.Noble) float64 {
	total := 0.0
	for _, n := range nobles {
		req := n.Requirement()
		progress, colours := 0.0, 0
		for c, need := range req {
			if need == 0 {
				continue
			}
			colours++
			progress += min(float64(a.CardCount(engine.Colour(c)))/float64(need), 1)
		}
		if colours > 0 {
			total += progress / float64(colours)
		}
	}
	return total
}
