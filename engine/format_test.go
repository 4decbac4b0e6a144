package engine

import (
	"strings"
	"testing"
)

func TestGemsString(t *testing.T) {
	cases := []struct {
		g    Gems
		want string
	}{
		{Gems{}, ""},
		{Gems{Red: 1}, "1 red gem"},
		{Gems{Red: 2}, "2 red gems"},
		{Gems{Black: 1, Blue: 2}, "1 black and 2 blue gems"},
		{Gems{Black: 1, Red: 1, Green: 1}, "1 black, 1 red, and 1 green gems"},
	}
	for _, tc := range cases {
		if got := GemsString(tc.g); got != tc.want {
			t.Errorf("GemsString(%s) = %q, want %q", tc.g, got, tc.want)
		}
	}
}

func TestActionString(t *testing.T) {
	free := firstCard(t, 1, Black)
	var pointed Card
	for _, c := range TierCards(3) {
		if c.Points() > 1 {
			pointed = c
			break
		}
	}
	noble := mustNoble(t, "4g4r")

	cases := []struct {
		a    Action
		want string
	}{
		{
			NewCollect(Gems{Black: 1, Red: 1, Green: 1}, Gems{}, NoNoble),
			"Agent 0 collected 1 black, 1 red, and 1 green gems.",
		},
		{
			NewCollect(Gems{Blue: 2}, Gems{White: 1}, NoNoble),
			"Agent 0 collected 2 blue gems, exceeded the limit, and returned 1 white gem.",
		},
		{
			NewReserve(free, Gems{Yellow: 1}, Gems{}, NoNoble),
			"Agent 0 reserved a Tier 1 black card (" + free.Code() + ").",
		},
		{
			NewPass(NoNoble),
			"Agent 0 has no gems to take, and nothing to buy.",
		},
		{
			NewPass(noble),
			"Agent 0 has no gems to take, and nothing to buy. A noble has also taken interest, earning 3 points!",
		},
	}
	for _, tc := range cases {
		if got := ActionString(0, tc.a); got != tc.want {
			t.Errorf("ActionString = %q, want %q", got, tc.want)
		}
	}

	got := ActionString(1, NewBuyReserved(pointed, Gems{}, NoNoble))
	if !strings.HasPrefix(got, "Agent 1 bought a previously reserved Tier 3") || !strings.HasSuffix(got, "points!") {
		t.Errorf("buy reserved = %q", got)
	}
}

func TestGameStateString(t *testing.T) {
	g := newTestGame(t, 2, 1)
	s := g.String()
	for _, want := range []string{"turn 0, agent 0 to move", "tier 3 (16 in deck)", "agent 1: score 0"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
