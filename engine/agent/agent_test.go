package agent

import (
	"context"
	"errors"
	"testing"

	engine "github.com/jason-s-yu/splendor/engine"
)

func newGame(t *testing.T, numAgents int, seed uint64) engine.GameState {
	t.Helper()
	g, err := engine.Initialize(numAgents, seed)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		a, err := New(name, 0, 1)
		if err != nil || a == nil {
			t.Errorf("New(%q) = %v, %v", name, a, err)
		}
	}
	if _, err := New("oracle", 0, 1); err == nil {
		t.Error("New accepted an unknown agent")
	}
	if got := Names(); len(got) != 3 || got[0] != "first" || got[1] != "greedy" || got[2] != "random" {
		t.Errorf("Names = %v", got)
	}
}

func TestEmptyActions(t *testing.T) {
	g := newGame(t, 2, 1)
	for _, name := range Names() {
		a, _ := New(name, 0, 1)
		if _, err := a.SelectAction(context.Background(), nil, g); !errors.Is(err, ErrNoActions) {
			t.Errorf("%s: err = %v, want ErrNoActions", name, err)
		}
	}
}

func TestFirstMove(t *testing.T) {
	g := newGame(t, 2, 1)
	actions := g.LegalActions(0)
	got, err := FirstMove{}.SelectAction(context.Background(), actions, g)
	if err != nil || got != actions[0] {
		t.Errorf("FirstMove = %v, %v", got, err)
	}
}

// TestRandomSeeded verifies two agents with one seed make the same picks.
func TestRandomSeeded(t *testing.T) {
	g := newGame(t, 2, 1)
	actions := g.LegalActions(0)
	a, b := NewRandom(5), NewRandom(5)
	for i := 0; i < 20; i++ {
		x, _ := a.SelectAction(context.Background(), actions, g)
		y, _ := b.SelectAction(context.Background(), actions, g)
		if x != y {
			t.Fatalf("pick %d differs", i)
		}
		if !engine.ValidAction(x, actions) {
			t.Fatalf("pick %d not in the legal set", i)
		}
	}
}

// winningPosition gives agent 0 fourteen points and one affordable scoring card.
func winningPosition(t *testing.T) (engine.GameState, engine.Card) {
	t.Helper()
	g := newGame(t, 2, 3)
	var target engine.Card = engine.EmptyCard
	for _, c := range engine.TierCards(1) {
		if c.Points() > 0 {
			target = c
			break
		}
	}
	if target.IsEmpty() {
		t.Fatal("no scoring tier 1 card")
	}
	g.Board.Dealt[0] = [engine.SlotsPerTier]engine.Card{target, engine.EmptyCard, engine.EmptyCard, engine.EmptyCard}
	a := g.Agent(0)
	a.Score = 14
	a.Gems = target.Cost()
	g.Board.Gems = g.Board.Gems.Sub(target.Cost())
	return g, target
}

func TestGreedyTakesWin(t *testing.T) {
	g, target := winningPosition(t)
	actions := g.LegalActions(0)

	for _, workers := range []int{0, 4} {
		gr := &Greedy{ID: 0, Workers: workers}
		got, err := gr.SelectAction(context.Background(), actions, g)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if got.Kind != engine.ActionBuy || got.Card != target {
			t.Errorf("workers=%d: picked %s, want the winning buy", workers, engine.ActionString(0, got))
		}
	}
	if g.Agent(0).Score != 14 {
		t.Error("Greedy mutated the caller's state")
	}
}

// TestGreedyParallelMatchesSequential checks both evaluation modes agree.
func TestGreedyParallelMatchesSequential(t *testing.T) {
	g := newGame(t, 3, 9)
	for step := 0; step < 12 && !g.GameEnds(); step++ {
		mover := g.Mover()
		actions := g.LegalActions(mover)
		seq, err := (&Greedy{ID: mover}).SelectAction(context.Background(), actions, g)
		if err != nil {
			t.Fatal(err)
		}
		par, err := (&Greedy{ID: mover, Workers: 3}).SelectAction(context.Background(), actions, g)
		if err != nil {
			t.Fatal(err)
		}
		if seq != par {
			t.Fatalf("step %d: sequential %s, parallel %s", step,
				engine.ActionString(mover, seq), engine.ActionString(mover, par))
		}
		if err := g.ApplyAction(seq); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGreedyCancelled(t *testing.T) {
	g := newGame(t, 2, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{0, 2} {
		gr := &Greedy{ID: 0, Workers: workers}
		if _, err := gr.SelectAction(ctx, g.LegalActions(0), g); !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: err = %v, want context.Canceled", workers, err)
		}
	}
}

func TestEvaluateWinLoss(t *testing.T) {
	g := newGame(t, 2, 1)
	g.Agent(1).Score = 15
	if v := Evaluate(&g, 0); v > -100 {
		t.Errorf("Evaluate for the loser = %v, want below -100", v)
	}
	if v := Evaluate(&g, 1); v < 100 {
		t.Errorf("Evaluate for the winner = %v, want above 100", v)
	}
}

func TestNobleProgress(t *testing.T) {
	n, _ := engine.NobleByCode("4g4r")
	var a engine.AgentState
	a.CardLen[engine.Green] = 2
	a.CardLen[engine.Red] = 6
	if got := NobleProgress(&a, []engine.Noble{n}); got != 0.75 {
		t.Errorf("NobleProgress = %v, want 0.75", got)
	}
	if got := NobleProgress(&a, nil); got != 0 {
		t.Errorf("NobleProgress with no nobles = %v", got)
	}
}
