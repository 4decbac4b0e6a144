package engine

import "testing"

// withScores sets score and bought-card counts for each agent.
func withScores(t *testing.T, scores, cards []int) GameState {
	t.Helper()
	g := newTestGame(t, len(scores), 1)
	for i := range scores {
		g.Agents[i].Score = scores[i]
		// Spread the cards over two colours to stay under the bucket cap.
		g.Agents[i].CardLen[Black] = uint8(cards[i] / 2)
		g.Agents[i].CardLen[White] = uint8(cards[i] - cards[i]/2)
	}
	return g
}

func TestCalScoreTieBreak(t *testing.T) {
	g := withScores(t, []int{15, 15}, []int{8, 6})
	if got := g.CalScore(0); got != 15.0 {
		t.Errorf("CalScore(8 cards) = %v, want 15", got)
	}
	if got := g.CalScore(1); got != 15.5 {
		t.Errorf("CalScore(6 cards) = %v, want 15.5", got)
	}
	if w := g.Winners(); len(w) != 1 || w[0] != 1 {
		t.Errorf("Winners = %v, want [1]", w)
	}
}

func TestCalScoreReserveNotCounted(t *testing.T) {
	g := withScores(t, []int{15, 15}, []int{6, 6})
	g.Agents[1].addCard(Yellow, g.Board.Decks[0][0])
	g.Agents[1].addCard(Yellow, g.Board.Decks[0][1])
	if g.CalScore(0) != 15.5 || g.CalScore(1) != 15.5 {
		t.Errorf("scores = %v, want both 15.5", g.Scores())
	}
	if w := g.Winners(); len(w) != 2 {
		t.Errorf("Winners = %v, want both", w)
	}
}

func TestCalScoreNoBonus(t *testing.T) {
	cases := []struct {
		name   string
		scores []int
		cards  []int
		agent  int
		want   float64
	}{
		{"sole leader", []int{16, 15}, []int{9, 3}, 0, 16},
		{"trailing agent with fewest cards", []int{16, 12}, []int{9, 3}, 1, 12},
		// The minimum is over the whole table, not just the tied victors.
		{"non-victor has fewer cards", []int{15, 15, 10}, []int{8, 6, 2}, 1, 15},
		{"three-way tie", []int{15, 15, 15}, []int{8, 6, 6}, 2, 15.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := withScores(t, tc.scores, tc.cards)
			if got := g.CalScore(tc.agent); got != tc.want {
				t.Errorf("CalScore(%d) = %v, want %v", tc.agent, got, tc.want)
			}
		})
	}
}
