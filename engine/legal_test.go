package engine

import "testing"

// countKinds tallies actions by kind.
func countKinds(actions []Action) map[ActionKind]int {
	m := make(map[ActionKind]int)
	for _, a := range actions {
		m[a.Kind]++
	}
	return m
}

// firstCard returns the first catalog card of tier with the given colour.
func firstCard(t *testing.T, tier uint8, colour Colour) Card {
	t.Helper()
	for _, c := range TierCards(tier) {
		if c.Colour() == colour {
			return c
		}
	}
	t.Fatalf("no tier %d %s card", tier, colour)
	return EmptyCard
}

// TestLegalActionsOpening checks the fixed opening action set of a 2-agent game:
// C(5,3) distinct collects, 5 doubles, 12 reserves, nothing affordable.
func TestLegalActionsOpening(t *testing.T) {
	g := newTestGame(t, 2, 42)
	actions := g.LegalActions(0)

	kinds := countKinds(actions)
	if len(actions) != 27 {
		t.Errorf("got %d actions, want 27 (%v)", len(actions), kinds)
	}
	if kinds[ActionReserve] != 12 {
		t.Errorf("reserve actions = %d, want 12", kinds[ActionReserve])
	}
	if kinds[ActionBuy] != 0 || kinds[ActionPass] != 0 {
		t.Errorf("unexpected buys or passes: %v", kinds)
	}

	doubles := 0
	for _, a := range actions {
		if a.Kind == ActionCollect && a.Collected.Total() == 2 {
			doubles++
		}
		if !a.Noble.IsNone() {
			t.Errorf("opening action carries noble %s", a.Noble.Code())
		}
		if a.Kind == ActionReserve && a.Collected != (Gems{Yellow: 1}) {
			t.Errorf("reserve collects %s, want one yellow", a.Collected)
		}
	}
	if doubles != 5 {
		t.Errorf("double collects = %d, want 5", doubles)
	}
}

// TestLegalActionsDistinct verifies no action is generated twice.
func TestLegalActionsDistinct(t *testing.T) {
	g := newTestGame(t, 2, 42)
	g.Agents[0].Gems = Gems{Black: 4, Red: 4, Yellow: 1}
	g.Board.Gems = g.Board.Gems.Sub(Gems{Black: 4, Red: 4, Yellow: 1})
	g.Board.Gems[Green], g.Board.Gems[Blue] = 4, 4

	seen := make(map[Action]bool)
	for _, a := range g.LegalActions(0) {
		if seen[a] {
			t.Errorf("duplicate action %s", ActionString(0, a))
		}
		seen[a] = true
	}
}

// TestCollectMinimumLength checks how many distinct colours must be taken
// as the hand fills up.
func TestCollectMinimumLength(t *testing.T) {
	cases := []struct {
		held    Gems
		wantMin int
	}{
		{Gems{}, 3},
		{Gems{Black: 4, Red: 3}, 3},
		{Gems{Black: 4, Red: 4}, 2},
		{Gems{Black: 4, Red: 4, Yellow: 1}, 1},
	}
	for _, tc := range cases {
		g := newTestGame(t, 4, 1)
		g.Agents[0].Gems = tc.held

		shortest := 99
		for _, a := range g.LegalActions(0) {
			if a.Kind != ActionCollect {
				continue
			}
			n := countColours(a.Collected)
			if n == 1 && a.Collected.Total() == 2 {
				continue // take-two
			}
			shortest = min(shortest, n)
		}
		if shortest != tc.wantMin {
			t.Errorf("held %s: shortest distinct collect = %d, want %d", tc.held, shortest, tc.wantMin)
		}
	}
}

func countColours(g Gems) int {
	n := 0
	for _, v := range g {
		if v > 0 {
			n++
		}
	}
	return n
}

// TestCollectLimitedByBank verifies distinct collects shrink to the colours
// the bank still has.
func TestCollectLimitedByBank(t *testing.T) {
	g := newTestGame(t, 2, 1)
	g.Board.Gems = Gems{Black: 1, Red: 1}

	var collects []Gems
	for _, a := range g.LegalActions(0) {
		if a.Kind == ActionCollect {
			collects = append(collects, a.Collected)
		}
	}
	if len(collects) != 1 || collects[0] != (Gems{Black: 1, Red: 1}) {
		t.Errorf("collects = %v, want only {black: 1, red: 1}", collects)
	}
}

func TestReturnCombos(t *testing.T) {
	g := newTestGame(t, 2, 1)

	got := g.returnCombos(Gems{Black: 5, Red: 4}, Gems{Green: 1, Blue: 1, White: 1})
	want := map[Gems]bool{
		{Black: 2}:         true,
		{Black: 1, Red: 1}: true,
		{Red: 2}:           true,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d combos %v, want %d", len(got), got, len(want))
	}
	for _, r := range got {
		if !want[r] {
			t.Errorf("unexpected return %s", r)
		}
	}

	if combos := g.returnCombos(Gems{Black: 3}, Gems{Red: 1}); len(combos) != 1 || !combos[0].IsZero() {
		t.Errorf("under the limit: got %v, want a single empty return", combos)
	}

	// Collected colours are never handed back, so a hand of one colour
	// cannot take more of it once full.
	if combos := g.returnCombos(Gems{Green: 10}, Gems{Green: 2}); combos != nil {
		t.Errorf("unreturnable collection: got %v, want nil", combos)
	}
}

// TestForcedReturnKeepsLimit checks every generated collect leaves the agent
// at or under the gem limit.
func TestForcedReturnKeepsLimit(t *testing.T) {
	g := newTestGame(t, 2, 1)
	g.Agents[0].Gems = Gems{Black: 3, Red: 3, Green: 2, Yellow: 2}
	g.Board.Gems = Gems{Blue: 4, White: 4, Black: 1, Yellow: 3}

	found := false
	for _, a := range g.LegalActions(0) {
		if a.Kind != ActionCollect && a.Kind != ActionReserve {
			continue
		}
		after := g.Agents[0].Gems.Add(a.Collected).Sub(a.Returned)
		if after.Total() > 10 || after.hasNegative() {
			t.Errorf("%s leaves %s", ActionString(0, a), after)
		}
		if !a.Returned.IsZero() {
			found = true
		}
		for c, v := range a.Returned {
			if v > 0 && a.Collected[c] > 0 {
				t.Errorf("%s returns a colour it collected", ActionString(0, a))
			}
		}
	}
	if !found {
		t.Error("no action required a return")
	}
}

func TestReserveLimit(t *testing.T) {
	g := newTestGame(t, 2, 1)
	a := &g.Agents[0]
	for i := 0; i < 3; i++ {
		a.addCard(Yellow, g.Board.Decks[0][i])
	}
	if n := countKinds(g.LegalActions(0))[ActionReserve]; n != 0 {
		t.Errorf("got %d reserves with a full reserve pile", n)
	}
}

func TestReserveWithoutWild(t *testing.T) {
	g := newTestGame(t, 2, 1)
	g.Board.Gems[Yellow] = 0
	for _, a := range g.LegalActions(0) {
		if a.Kind == ActionReserve && !a.Collected.IsZero() {
			t.Errorf("reserve collects %s with no wild in the bank", a.Collected)
		}
	}
}

// TestPassOnlyWhenStuck builds a position with nothing to do.
func TestPassOnlyWhenStuck(t *testing.T) {
	g := newTestGame(t, 2, 1)
	g.Board.Gems = Gems{}
	a := &g.Agents[0]
	for i := 0; i < 3; i++ {
		a.addCard(Yellow, g.Board.Decks[0][i])
	}

	actions := g.LegalActions(0)
	if len(actions) != 1 || actions[0] != NewPass(NoNoble) {
		t.Fatalf("got %v, want a single pass", actions)
	}
}

// TestBuyAttractsNoble verifies the noble check sees the card being bought.
func TestBuyAttractsNoble(t *testing.T) {
	g := newTestGame(t, 2, 1)
	noble, _ := NobleByCode("4g4r")
	g.Board.Nobles[0] = noble
	g.Board.NobleLen = 1

	red := firstCard(t, 1, Red)
	g.Board.Dealt[0] = [SlotsPerTier]Card{red, EmptyCard, EmptyCard, EmptyCard}

	a := &g.Agents[0]
	a.CardLen[Green] = 4
	a.CardLen[Red] = 3
	a.Gems = red.Cost()

	var buys []Action
	for _, act := range g.LegalActions(0) {
		if act.Kind == ActionBuy && act.Card == red {
			buys = append(buys, act)
		}
	}
	if len(buys) != 1 {
		t.Fatalf("got %d buys of %s, want 1", len(buys), red.Code())
	}
	if buys[0].Noble != noble {
		t.Errorf("buy carries noble %v, want %s", buys[0].Noble, noble.Code())
	}
}

// TestBuyBucketFull verifies a colour with seven bought cards cannot grow.
func TestBuyBucketFull(t *testing.T) {
	g := newTestGame(t, 2, 1)
	red := firstCard(t, 1, Red)
	g.Board.Dealt[0] = [SlotsPerTier]Card{red, EmptyCard, EmptyCard, EmptyCard}
	a := &g.Agents[0]
	a.CardLen[Red] = MaxBucket
	a.Gems = red.Cost()

	for _, act := range g.LegalActions(0) {
		if act.IsBuy() && act.Card.Colour() == Red {
			t.Errorf("bought %s into a full bucket", act.Card.Code())
		}
	}
}

// TestBuyReserved verifies reserved cards are offered as BuyReserved.
func TestBuyReserved(t *testing.T) {
	g := newTestGame(t, 2, 1)
	c := g.Board.Decks[1][0]
	a := &g.Agents[0]
	a.addCard(Yellow, c)
	a.Gems = c.Cost()

	want := NewBuyReserved(c, c.Cost(), NoNoble)
	if !ValidAction(want, g.LegalActions(0)) {
		t.Errorf("missing %s", ActionString(0, want))
	}
}
