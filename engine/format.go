package engine

import (
	"fmt"
	"strings"
)

// GemsString renders gem counts as table text, e.g. "1 black and 2 red gems".
// Zero entries are skipped; an empty multiset renders as "".
func GemsString(g Gems) string {
	var parts []string
	for c, v := range g {
		if v > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", v, Colour(c)))
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		if g.Total() > 1 {
			return parts[0] + " gems"
		}
		return parts[0] + " gem"
	case 2:
		return parts[0] + " and " + parts[1] + " gems"
	default:
		last := len(parts) - 1
		parts[last] = "and " + parts[last] + " gems"
		return strings.Join(parts, ", ")
	}
}

// ActionString describes what agentID did with a.
func ActionString(agentID int, a Action) string {
	var b strings.Builder
	switch a.Kind {
	case ActionCollect:
		if a.Returned.IsZero() {
			fmt.Fprintf(&b, "Agent %d collected %s.", agentID, GemsString(a.Collected))
		} else {
			fmt.Fprintf(&b, "Agent %d collected %s, exceeded the limit, and returned %s.",
				agentID, GemsString(a.Collected), GemsString(a.Returned))
		}
	case ActionReserve:
		fmt.Fprintf(&b, "Agent %d reserved a Tier %d %s card (%s).",
			agentID, a.Card.Tier(), a.Card.Colour(), a.Card.Code())
	case ActionBuy, ActionBuyReserved:
		prefix := ""
		if a.Kind == ActionBuyReserved {
			prefix = "previously reserved "
		}
		fmt.Fprintf(&b, "Agent %d bought a %sTier %d %s card (%s)",
			agentID, prefix, a.Card.Tier(), a.Card.Colour(), a.Card.Code())
		switch p := a.Card.Points(); {
		case p == 1:
			b.WriteString(", earning 1 point!")
		case p > 1:
			fmt.Fprintf(&b, ", earning %d points!", p)
		default:
			b.WriteByte('.')
		}
	case ActionPass:
		fmt.Fprintf(&b, "Agent %d has no gems to take, and nothing to buy.", agentID)
	}
	if !a.Noble.IsNone() {
		b.WriteString(" A noble has also taken interest, earning 3 points!")
	}
	return b.String()
}

// String returns a multi-line dump of the board and every agent.
func (g *GameState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn %d, agent %d to move\n", g.Turn, g.AgentToMove)
	fmt.Fprintf(&b, "bank %s\n", g.Board.Gems)
	for t := 0; t < NumTiers; t++ {
		fmt.Fprintf(&b, "tier %d (%d in deck):", t+1, g.Board.DeckLen[t])
		for _, c := range g.Board.Dealt[t] {
			if c.IsEmpty() {
				b.WriteString(" --")
			} else {
				b.WriteString(" " + c.Code())
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("nobles:")
	for _, n := range g.Board.NobleList() {
		b.WriteString(" " + n.Code())
	}
	b.WriteByte('\n')
	for i := uint8(0); i < g.NumAgents; i++ {
		a := &g.Agents[i]
		fmt.Fprintf(&b, "agent %d: score %d, gems %s, cards", a.ID, a.Score, a.Gems)
		for _, c := range CostColours {
			fmt.Fprintf(&b, " %s=%d", c, a.CardLen[c])
		}
		fmt.Fprintf(&b, ", reserved %d, nobles %d", a.CardLen[Yellow], a.NobleLen)
		if a.Passed {
			b.WriteString(", passed")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
