package agent

import (
	"testing"

	engine "github.com/jason-s-yu/splendor/engine"
)

const (
	slotsOffset  = BankDim
	noblesOffset = slotsOffset + NumSlots*SlotDim
	agentsOffset = noblesOffset + engine.MaxNobles*NobleDim
	decksOffset  = agentsOffset + engine.MaxAgents*AgentDim
	phaseOffset  = decksOffset + engine.NumTiers*DeckDim
)

func TestInputDim(t *testing.T) {
	if InputDim != 265 {
		t.Errorf("InputDim = %d, want 265", InputDim)
	}
	if phaseOffset+PhaseDim != InputDim {
		t.Errorf("layout ends at %d, want %d", phaseOffset+PhaseDim, InputDim)
	}
}

// TestEncodeOpening checks the features of a fresh two-agent table.
func TestEncodeOpening(t *testing.T) {
	g := newGame(t, 2, 1)
	var out [InputDim]float32
	Encode(&g, 0, &out)

	if out[engine.Black] != 4.0/7 || out[engine.Yellow] != 5.0/7 {
		t.Errorf("bank features = %v", out[:BankDim])
	}
	for s := 0; s < NumSlots; s++ {
		base := slotsOffset + s*SlotDim
		if out[base] != 1 {
			t.Errorf("slot %d not marked present", s)
		}
		if out[base+12] != 0 {
			t.Errorf("slot %d affordable with no gems", s)
		}
	}
	for i := 0; i < engine.MaxNobles; i++ {
		want := float32(0)
		if i < 3 {
			want = 1
		}
		if got := out[noblesOffset+i*NobleDim]; got != want {
			t.Errorf("noble %d present = %v, want %v", i, got, want)
		}
	}
	for t2 := 0; t2 < engine.NumTiers; t2++ {
		if out[decksOffset+t2*DeckDim+int(DeckHigh)] != 1 {
			t.Errorf("tier %d deck not high", t2+1)
		}
	}
	if out[phaseOffset+int(PhaseStart)] != 1 {
		t.Error("phase not start")
	}
	for i := agentsOffset + 2*AgentDim; i < decksOffset; i++ {
		if out[i] != 0 {
			t.Fatalf("empty seat feature %d = %v", i, out[i])
		}
	}
}

// TestEncodePerspective verifies the encoding agent comes first.
func TestEncodePerspective(t *testing.T) {
	g := newGame(t, 3, 1)
	g.Agent(1).Gems[engine.Red] = 3
	g.Agent(2).Score = 6

	var out [InputDim]float32
	Encode(&g, 1, &out)
	if got := out[agentsOffset+int(engine.Red)]; got != 0.3 {
		t.Errorf("own red gems = %v, want 0.3", got)
	}
	if got := out[agentsOffset+AgentDim+12]; got != 6.0/15 {
		t.Errorf("next agent score = %v, want %v", got, 6.0/15)
	}
}

func TestEncodeAffordable(t *testing.T) {
	g := newGame(t, 2, 1)
	c := g.Board.Dealt[0][0]
	g.Agent(0).Gems = c.Cost()

	var out [InputDim]float32
	Encode(&g, 0, &out)
	if out[slotsOffset+12] != 1 {
		t.Error("affordable card not flagged")
	}
}

func TestDeckEstimateFromSize(t *testing.T) {
	cases := []struct {
		tier int
		n    uint8
		want DeckEstimate
	}{
		{0, 36, DeckHigh},
		{0, 20, DeckMedium},
		{0, 9, DeckLow},
		{0, 0, DeckEmpty},
		{2, 11, DeckHigh},
		{2, 10, DeckMedium},
		{2, 4, DeckLow},
	}
	for _, tc := range cases {
		if got := DeckEstimateFromSize(tc.tier, tc.n); got != tc.want {
			t.Errorf("DeckEstimateFromSize(%d, %d) = %d, want %d", tc.tier, tc.n, got, tc.want)
		}
	}
}

func TestGamePhaseFromState(t *testing.T) {
	g := newGame(t, 2, 1)
	if p := GamePhaseFromState(&g); p != PhaseStart {
		t.Errorf("fresh game phase = %d", p)
	}
	g.Turn = 4
	if p := GamePhaseFromState(&g); p != PhaseEarly {
		t.Errorf("turn 4 phase = %d", p)
	}
	g.Agent(1).Score = 12
	if p := GamePhaseFromState(&g); p != PhaseLate {
		t.Errorf("leader at 12 phase = %d", p)
	}
	g.Agent(1).Score = 15
	if p := GamePhaseFromState(&g); p != PhaseTerminal {
		t.Errorf("finished game phase = %d", p)
	}
}
