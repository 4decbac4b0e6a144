// Package game drives Splendor games between agents: it enforces move time
// limits, substitutes random moves for failed turns, forfeits agents that
// keep failing, and reports what happened through events and a Result.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/splendor/engine"
	"github.com/jason-s-yu/splendor/engine/agent"
	"github.com/sirupsen/logrus"
)

// Default limits.
const (
	DefaultTimeLimit    = time.Second
	DefaultWarmUp       = 15 * time.Second
	DefaultWarningLimit = 3
)

// Config controls one game.
type Config struct {
	// TimeLimit bounds every move after an agent's first.
	TimeLimit time.Duration
	// WarmUp bounds each agent's first move.
	WarmUp time.Duration
	// WarningLimit is the number of warnings that forfeits the game.
	WarningLimit int
	// MaxTurns stops a game that is still running after that many actions.
	// Zero means no limit.
	MaxTurns int
	// Seed builds the table and drives random substitutions.
	Seed uint64
}

func (c Config) withDefaults() Config {
	if c.TimeLimit <= 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	if c.WarmUp <= 0 {
		c.WarmUp = DefaultWarmUp
	}
	if c.WarningLimit <= 0 {
		c.WarningLimit = DefaultWarningLimit
	}
	return c
}

// Runner plays one game. Agents[i] plays seat i.
type Runner struct {
	Engine engine.RuleEngine
	Agents []agent.Agent
	Names  []string
	Config Config
	Logger logrus.FieldLogger
	// OnEvent, if set, receives every event synchronously from the game loop.
	OnEvent func(Event)
}

// Run plays the game to the end. It returns early with ctx.Err() when ctx is
// cancelled and with a wrapped engine.ErrInvariant if the engine rejects an
// action it generated.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	n := len(r.Agents)
	if r.Engine == nil {
		return Result{}, fmt.Errorf("runner has no engine")
	}
	if len(r.Names) != 0 && len(r.Names) != n {
		return Result{}, fmt.Errorf("%d names for %d agents", len(r.Names), n)
	}
	cfg := r.Config.withDefaults()

	state, err := r.Engine.Initialize(n, cfg.Seed)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ID:           uuid.New(),
		StartedAt:    time.Now().UTC(),
		Log:          engine.NewGameLog(&state),
		Warnings:     make([]int, n),
		ForfeitAgent: NoForfeit,
	}
	log := r.logger().WithField("game_id", res.ID)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xda3e39cb94b95bdb))

	log.WithField("agents", r.Names).Info("game started")
	r.emit(Event{Type: EventGameStarted, GameID: res.ID})

	for !r.Engine.GameEnds(&state) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if cfg.MaxTurns > 0 && len(res.Log.Entries) >= cfg.MaxTurns {
			res.TurnLimitReached = true
			log.WithField("max_turns", cfg.MaxTurns).Warn("turn limit reached")
			break
		}
		mover := state.Mover()
		turn := int(state.Turn)
		tlog := log.WithFields(logrus.Fields{"turn": turn, "agent": mover})

		legal := r.Engine.LegalActions(&state, mover)
		if len(legal) == 0 {
			return res, fmt.Errorf("%w: no legal actions for agent %d on turn %d", engine.ErrInvariant, mover, turn)
		}
		limit := cfg.TimeLimit
		if turn < n {
			limit = cfg.WarmUp
		}
		r.emit(Event{Type: EventTurnStarted, GameID: res.ID, Turn: turn, Agent: mover})

		action, reason, agentErr := r.ask(ctx, mover, legal, state, limit)
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if reason != "" {
			res.Warnings[mover]++
			res.WarningPositions = append(res.WarningPositions, WarningPosition{Agent: mover, Turn: turn, Reason: reason})
			tlog.WithFields(logrus.Fields{"reason": reason, "warnings": res.Warnings[mover]}).WithError(agentErr).Warn("agent warned")
			r.emit(Event{Type: EventWarning, GameID: res.ID, Turn: turn, Agent: mover, Reason: reason,
				Text: fmt.Sprintf("Agent %d received warning %d of %d (%s).", mover, res.Warnings[mover], cfg.WarningLimit, reason)})

			if res.Warnings[mover] >= cfg.WarningLimit {
				res.ForfeitAgent = mover
				tlog.Warn("agent forfeited")
				break
			}
			action = legal[rng.IntN(len(legal))]
		}

		if err := r.Engine.ApplyAction(&state, action); err != nil {
			return res, fmt.Errorf("turn %d: %w", turn, err)
		}
		res.Log.Append(turn, mover, action)
		text := engine.ActionString(mover, action)
		tlog.WithField("action", action.Kind.String()).Debug(text)
		r.emit(Event{Type: EventActionApplied, GameID: res.ID, Turn: turn, Agent: mover, Action: &action, Text: text})
	}

	res.State = state
	res.Log.Scores = make([]float64, n)
	for i := range n {
		res.Log.Scores[i] = r.Engine.CalScore(&state, i)
	}
	res.Scores = res.finalScores()
	res.Winners = res.winners()

	log.WithFields(logrus.Fields{
		"scores":  res.Scores,
		"winners": res.Winners,
		"turns":   len(res.Log.Entries),
		"forfeit": res.ForfeitAgent,
	}).Info("game ended")
	r.emit(Event{Type: EventGameEnded, GameID: res.ID, Turn: int(state.Turn), Agent: res.ForfeitAgent, Scores: res.Scores})
	return res, nil
}

type reply struct {
	action engine.Action
	err    error
}

// ask requests a move from agent id within limit. A non-empty reason means
// the move must be replaced; err carries the agent's failure, if any.
//
// The agent works on its own copies of the state and the legal set. An agent
// that ignores its context is abandoned when the deadline passes.
func (r *Runner) ask(ctx context.Context, id int, legal []engine.Action, state engine.GameState, limit time.Duration) (engine.Action, WarningReason, error) {
	actx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	snapshot := state.DeepCopy()
	choices := slices.Clone(legal)
	ch := make(chan reply, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- reply{err: fmt.Errorf("agent panicked: %v", p)}
			}
		}()
		a, err := r.Agents[id].SelectAction(actx, choices, snapshot)
		ch <- reply{action: a, err: err}
	}()

	select {
	case <-actx.Done():
		return engine.Action{}, WarningTimeout, actx.Err()
	case rep := <-ch:
		switch {
		case errors.Is(rep.err, context.DeadlineExceeded):
			return engine.Action{}, WarningTimeout, rep.err
		case rep.err != nil:
			return engine.Action{}, WarningError, rep.err
		case !r.Engine.ValidAction(rep.action, legal):
			return engine.Action{}, WarningIllegal, fmt.Errorf("%w: %s", engine.ErrIllegalAction, engine.ActionString(id, rep.action))
		}
		return rep.action, "", nil
	}
}

func (r *Runner) emit(ev Event) {
	if r.OnEvent != nil {
		r.OnEvent(ev)
	}
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Logger != nil {
		return r.Logger
	}
	return logrus.StandardLogger()
}
