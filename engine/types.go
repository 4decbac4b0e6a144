package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Colour is a gem colour. The numeric order is the canonical iteration order
// for every enumeration in the engine.
type Colour uint8

const (
	Black  Colour = 0
	Red    Colour = 1
	Yellow Colour = 2 // wild token; never part of a card cost
	Green  Colour = 3
	Blue   Colour = 4
	White  Colour = 5

	NumColours = 6
)

var colourNames = [NumColours]string{"black", "red", "yellow", "green", "blue", "white"}

// CostColours are the five non-wild colours, in canonical order.
var CostColours = [5]Colour{Black, Red, Green, Blue, White}

// String returns the lower-case colour name.
func (c Colour) String() string {
	if int(c) < NumColours {
		return colourNames[c]
	}
	return fmt.Sprintf("colour(%d)", uint8(c))
}

// ParseColour parses a lower-case colour name.
func ParseColour(s string) (Colour, error) {
	for i, name := range colourNames {
		if name == s {
			return Colour(i), nil
		}
	}
	return 0, fmt.Errorf("unknown colour %q", s)
}

// ---------------------------------------------------------------------------
// Gems
// ---------------------------------------------------------------------------

// Gems is a count per colour. A zero entry means the colour is absent, so two
// Gems values are equal exactly when they hold the same multiset.
type Gems [NumColours]int

// Total returns the sum over all colours.
func (g Gems) Total() int {
	n := 0
	for _, v := range g {
		n += v
	}
	return n
}

// Add returns g + o.
func (g Gems) Add(o Gems) Gems {
	for i := range g {
		g[i] += o[i]
	}
	return g
}

// Sub returns g - o. The result may be negative; callers check.
func (g Gems) Sub(o Gems) Gems {
	for i := range g {
		g[i] -= o[i]
	}
	return g
}

// IsZero reports whether every count is zero.
func (g Gems) IsZero() bool { return g == Gems{} }

// hasNegative reports whether any count is below zero.
func (g Gems) hasNegative() bool {
	for _, v := range g {
		if v < 0 {
			return true
		}
	}
	return false
}

// String renders the non-zero entries, e.g. "{black: 2, yellow: 1}".
func (g Gems) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for c, v := range g {
		if v == 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %d", Colour(c), v)
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the non-zero entries as an object keyed by colour name.
func (g Gems) MarshalJSON() ([]byte, error) {
	m := make(map[string]int)
	for c, v := range g {
		if v != 0 {
			m[colourNames[c]] = v
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by colour name.
func (g *Gems) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*g = Gems{}
	for name, v := range m {
		c, err := ParseColour(name)
		if err != nil {
			return err
		}
		g[c] = v
	}
	return nil
}

// ---------------------------------------------------------------------------
// Card and Noble handles
// ---------------------------------------------------------------------------

// Card is an index into the card catalog.
type Card uint8

// EmptyCard represents the absence of a card (an empty dealt slot).
const EmptyCard Card = 0xFF

// IsEmpty reports whether c is EmptyCard.
func (c Card) IsEmpty() bool { return c == EmptyCard }

// def returns the catalog entry, or a zero entry for EmptyCard and other
// out-of-range handles.
func (c Card) def() *cardDef {
	if int(c) >= NumCards {
		return &noCardDef
	}
	return &cardDefs[c]
}

var noCardDef cardDef

// Code returns the catalog-unique card code.
func (c Card) Code() string {
	if int(c) >= NumCards {
		return ""
	}
	return c.def().code
}

// Colour returns the bonus colour the card grants.
func (c Card) Colour() Colour { return c.def().colour }

// Tier returns the tier, 1..3.
func (c Card) Tier() uint8 { return c.def().tier }

// Points returns the prestige points printed on the card.
func (c Card) Points() int { return int(c.def().points) }

// Cost returns the gem cost of the card. Yellow is always zero.
func (c Card) Cost() Gems { return c.def().cost }

// String describes the card the way the table announces it.
func (c Card) String() string {
	if int(c) >= NumCards {
		return "empty"
	}
	costs := make([]string, 0, NumColours)
	for col, v := range c.Cost() {
		if v > 0 {
			costs = append(costs, fmt.Sprintf("%d %s", v, Colour(col)))
		}
	}
	return fmt.Sprintf("Tier %d %s card worth %d points and costing %s",
		c.Tier(), c.Colour(), c.Points(), strings.Join(costs, ", "))
}

// Noble is an index into the noble catalog.
type Noble uint8

// NoNoble represents the absence of a noble on an action.
const NoNoble Noble = 0xFF

// IsNone reports whether n is NoNoble.
func (n Noble) IsNone() bool { return n == NoNoble }

// Code returns the catalog-unique noble code.
func (n Noble) Code() string {
	if int(n) >= NumNobles {
		return ""
	}
	return nobleDefs[n].code
}

// Requirement returns the card counts needed to attract the noble.
func (n Noble) Requirement() Gems {
	if int(n) >= NumNobles {
		return Gems{}
	}
	return nobleDefs[n].requirement
}

// Points returns the prestige the noble is worth.
func (n Noble) Points() int { return NoblePoints }

// ---------------------------------------------------------------------------
// Action kinds
// ---------------------------------------------------------------------------

// ActionKind tags the variant of an Action.
type ActionKind uint8

const (
	ActionNone        ActionKind = iota // 0: zero value, never legal
	ActionCollect                       // 1
	ActionReserve                       // 2
	ActionBuy                           // 3: buy a face-up card
	ActionBuyReserved                   // 4
	ActionPass                          // 5
)

var actionKindNames = [...]string{"none", "collect", "reserve", "buy", "buy_reserved", "pass"}

// String returns the wire name of the kind.
func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseActionKind parses a wire name produced by ActionKind.String.
func ParseActionKind(s string) (ActionKind, error) {
	for i, name := range actionKindNames {
		if name == s && i != int(ActionNone) {
			return ActionKind(i), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action kind %q", s)
}
