// Package engine implements the Splendor rules.
//
// The engine is synchronous and performs no I/O. A GameState is a
// self-contained value: fixed-size arrays for the board and the agents, a
// seeded RNG for deck draws, and the house rules in force. Callers drive the
// game through LegalActions, ApplyAction and GameEnds, and hand DeepCopy
// snapshots to agents that want to plan.
package engine

import (
	"errors"
	"fmt"
)

const (
	MaxAgents    = 4
	NumTiers     = 3
	SlotsPerTier = 4
	MaxDeckSize  = 40 // tier 1 holds the most cards
	MaxNobles    = MaxAgents + 1
	MaxBucket    = 7 // per-colour card storage, including the reserve bucket
	WildTokens   = 5
)

var (
	// ErrGameOver is returned when acting on a finished game.
	ErrGameOver = errors.New("game is already over")
	// ErrInvariant marks an internal-consistency failure: an action that the
	// generator should never have produced, or a corrupted state.
	ErrInvariant = errors.New("engine invariant violated")
)

// BoardState holds the shared table: draw piles, face-up slots, the token
// bank and the nobles still available.
type BoardState struct {
	Decks    [NumTiers][MaxDeckSize]Card
	DeckLen  [NumTiers]uint8
	Dealt    [NumTiers][SlotsPerTier]Card
	Gems     Gems
	Nobles   [MaxNobles]Noble
	NobleLen uint8
}

// TraceEntry records one applied action and the score it earned.
type TraceEntry struct {
	Action     Action
	ScoreDelta int
}

// AgentState holds one player's holdings. Cards[Yellow] is the reserve pile.
type AgentState struct {
	ID         int
	Score      int
	Passed     bool
	Gems       Gems
	Cards      [NumColours][MaxBucket]Card
	CardLen    [NumColours]uint8
	Nobles     [MaxNobles]Noble
	NobleLen   uint8
	LastAction Action
	Trace      []TraceEntry
}

// GameState holds the complete state of a Splendor game.
type GameState struct {
	Board       BoardState
	Agents      [MaxAgents]AgentState
	NumAgents   uint8
	AgentToMove uint8
	Turn        uint32
	RNG         uint64
	Seed        uint64
	Rules       HouseRules
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, stored in the state
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

// Initialize builds a standard game for numAgents players.
func Initialize(numAgents int, seed uint64) (GameState, error) {
	if err := checkNumAgents(numAgents); err != nil {
		return GameState{}, err
	}
	return NewGame(seed, DefaultHouseRules(uint8(numAgents))), nil
}

func checkNumAgents(n int) error {
	if n < 2 || n > MaxAgents {
		return fmt.Errorf("unsupported number of agents %d (want 2..%d)", n, MaxAgents)
	}
	return nil
}

// NewGame sets up bank, nobles, decks and face-up cards with the given seed
// and rules. The same seed and rules always produce the same table.
func NewGame(seed uint64, rules HouseRules) GameState {
	var g GameState
	g.Seed = seed
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules.withDefaults()
	n := g.Rules.numAgents()
	g.NumAgents = n

	for i := uint8(0); i < n; i++ {
		a := &g.Agents[i]
		a.ID = int(i)
		a.LastAction = Action{Card: EmptyCard, Noble: NoNoble}
	}

	g.Board.Gems = InitialPool(n)

	// Draw numAgents+1 nobles.
	var nobles [NumNobles]Noble
	for i := range nobles {
		nobles[i] = Noble(i)
	}
	for i := NumNobles - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		nobles[i], nobles[j] = nobles[j], nobles[i]
	}
	g.Board.NobleLen = n + 1
	copy(g.Board.Nobles[:], nobles[:n+1])

	// Build and shuffle the three decks in catalog order.
	for c := 0; c < NumCards; c++ {
		tier := Card(c).Tier() - 1
		g.Board.Decks[tier][g.Board.DeckLen[tier]] = Card(c)
		g.Board.DeckLen[tier]++
	}
	for t := 0; t < NumTiers; t++ {
		g.shuffleDeck(t)
	}

	for t := 0; t < NumTiers; t++ {
		for s := 0; s < SlotsPerTier; s++ {
			g.Board.Dealt[t][s] = g.deal(t)
		}
	}
	return g
}

// shuffleDeck applies a Fisher-Yates shuffle to the tier deck.
func (g *GameState) shuffleDeck(tier int) {
	deck := &g.Board.Decks[tier]
	for i := int(g.Board.DeckLen[tier]) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// deal shuffles the tier deck and pops its last card. An exhausted deck
// yields EmptyCard.
func (g *GameState) deal(tier int) Card {
	if g.Board.DeckLen[tier] == 0 {
		return EmptyCard
	}
	g.shuffleDeck(tier)
	g.Board.DeckLen[tier]--
	c := g.Board.Decks[tier][g.Board.DeckLen[tier]]
	g.Board.Decks[tier][g.Board.DeckLen[tier]] = EmptyCard
	return c
}

// withDefaults fills zero-valued limits with the standard values and clamps
// the agent count to 2..MaxAgents.
func (r HouseRules) withDefaults() HouseRules {
	def := DefaultHouseRules(r.numAgents())
	if r.NumAgents < 2 {
		r.NumAgents = def.NumAgents
	}
	if r.NumAgents > MaxAgents {
		r.NumAgents = MaxAgents
	}
	if r.WinningScore <= 0 {
		r.WinningScore = def.WinningScore
	}
	if r.MaxGems <= 0 {
		r.MaxGems = def.MaxGems
	}
	if r.MaxReserved == 0 || r.MaxReserved > MaxBucket {
		r.MaxReserved = def.MaxReserved
	}
	r.MaxBucket = r.maxBucket()
	return r
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// Agent returns the state of agent id.
func (g *GameState) Agent(id int) *AgentState { return &g.Agents[id] }

// Mover returns the agent whose turn it is.
func (g *GameState) Mover() int { return int(g.AgentToMove) }

// NextAgent returns the agent after current in turn order.
func (g *GameState) NextAgent(current uint8) uint8 {
	return (current + 1) % g.NumAgents
}

// DealtCards returns the face-up cards in tier then slot order, skipping
// empty slots.
func (b *BoardState) DealtCards() []Card {
	out := make([]Card, 0, NumTiers*SlotsPerTier)
	for t := range b.Dealt {
		for _, c := range b.Dealt[t] {
			if !c.IsEmpty() {
				out = append(out, c)
			}
		}
	}
	return out
}

// findDealt returns the tier and slot holding card c.
func (b *BoardState) findDealt(c Card) (tier, slot int, ok bool) {
	t := int(c.Tier()) - 1
	for s, d := range b.Dealt[t] {
		if d == c {
			return t, s, true
		}
	}
	return 0, 0, false
}

// NobleList returns the nobles still on the board in order.
func (b *BoardState) NobleList() []Noble {
	out := make([]Noble, b.NobleLen)
	copy(out, b.Nobles[:b.NobleLen])
	return out
}

// removeNoble deletes n from the board, preserving order.
func (b *BoardState) removeNoble(n Noble) bool {
	for i := uint8(0); i < b.NobleLen; i++ {
		if b.Nobles[i] == n {
			copy(b.Nobles[i:b.NobleLen], b.Nobles[i+1:b.NobleLen])
			b.NobleLen--
			b.Nobles[b.NobleLen] = NoNoble
			return true
		}
	}
	return false
}

// CardCount returns how many cards the agent holds in colour c.
func (a *AgentState) CardCount(c Colour) int { return int(a.CardLen[c]) }

// Reserved returns the agent's reserved cards.
func (a *AgentState) Reserved() []Card {
	out := make([]Card, a.CardLen[Yellow])
	copy(out, a.Cards[Yellow][:a.CardLen[Yellow]])
	return out
}

// isReserved reports whether c is in the agent's reserve pile.
func (a *AgentState) isReserved(c Card) bool {
	for _, r := range a.Cards[Yellow][:a.CardLen[Yellow]] {
		if r == c {
			return true
		}
	}
	return false
}

// BoughtCards returns the number of permanently owned cards (reserve pile
// excluded).
func (a *AgentState) BoughtCards() int {
	n := 0
	for c := Colour(0); c < NumColours; c++ {
		if c != Yellow {
			n += int(a.CardLen[c])
		}
	}
	return n
}

// NobleList returns the nobles the agent has attracted.
func (a *AgentState) NobleList() []Noble {
	out := make([]Noble, a.NobleLen)
	copy(out, a.Nobles[:a.NobleLen])
	return out
}

// ---------------------------------------------------------------------------
// Copies
// ---------------------------------------------------------------------------

// DeepCopy returns a copy of the state that shares no mutable memory with g.
// Everything but the action traces is a fixed-size array, so only the traces
// need cloning.
func (g *GameState) DeepCopy() GameState {
	cp := *g
	for i := range cp.Agents {
		if g.Agents[i].Trace != nil {
			cp.Agents[i].Trace = append([]TraceEntry(nil), g.Agents[i].Trace...)
		}
	}
	return cp
}

// Snapshot is a complete copy of GameState for undo support.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(g.DeepCopy()) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) {
	src := GameState(s)
	*g = src.DeepCopy()
}

// ---------------------------------------------------------------------------
// Invariants
// ---------------------------------------------------------------------------

// CheckInvariants verifies token conservation against the starting pool and
// the per-agent holding limits.
func (g *GameState) CheckInvariants() error {
	pool := InitialPool(g.NumAgents)
	sum := g.Board.Gems
	if g.Board.Gems.hasNegative() {
		return fmt.Errorf("%w: negative bank %s", ErrInvariant, g.Board.Gems)
	}
	for i := uint8(0); i < g.NumAgents; i++ {
		a := &g.Agents[i]
		if a.Gems.hasNegative() {
			return fmt.Errorf("%w: agent %d has negative gems %s", ErrInvariant, i, a.Gems)
		}
		if a.Gems.Total() > g.Rules.MaxGems {
			return fmt.Errorf("%w: agent %d holds %d gems (limit %d)", ErrInvariant, i, a.Gems.Total(), g.Rules.MaxGems)
		}
		if a.CardLen[Yellow] > g.Rules.MaxReserved {
			return fmt.Errorf("%w: agent %d has %d reserved cards (limit %d)", ErrInvariant, i, a.CardLen[Yellow], g.Rules.MaxReserved)
		}
		sum = sum.Add(a.Gems)
	}
	if sum != pool {
		return fmt.Errorf("%w: tokens not conserved: have %s, want %s", ErrInvariant, sum, pool)
	}
	return nil
}
