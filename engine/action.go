package engine

import (
	"encoding/json"
	"fmt"
)

// Action is one move. It is a plain comparable value: two actions are the same
// move exactly when a == b. Each kind uses only the fields it needs; the rest
// stay at their zero values (Card EmptyCard, Noble NoNoble).
//
//	Collect      Collected, Returned, Noble
//	Reserve      Card, Collected (Yellow or nothing), Returned, Noble
//	Buy          Card, Returned (payment), Noble
//	BuyReserved  Card, Returned (payment), Noble
//	Pass         Noble
type Action struct {
	Kind      ActionKind
	Collected Gems
	Returned  Gems
	Card      Card
	Noble     Noble
}

// NewCollect returns a gem-collection action.
func NewCollect(collected, returned Gems, noble Noble) Action {
	return Action{Kind: ActionCollect, Collected: collected, Returned: returned, Card: EmptyCard, Noble: noble}
}

// NewReserve returns a reserve action for a face-up card.
func NewReserve(card Card, collected, returned Gems, noble Noble) Action {
	return Action{Kind: ActionReserve, Collected: collected, Returned: returned, Card: card, Noble: noble}
}

// NewBuy returns a purchase of a face-up card paying the given gems.
func NewBuy(card Card, payment Gems, noble Noble) Action {
	return Action{Kind: ActionBuy, Returned: payment, Card: card, Noble: noble}
}

// NewBuyReserved returns a purchase of one of the agent's reserved cards.
func NewBuyReserved(card Card, payment Gems, noble Noble) Action {
	return Action{Kind: ActionBuyReserved, Returned: payment, Card: card, Noble: noble}
}

// NewPass returns the no-move action.
func NewPass(noble Noble) Action {
	return Action{Kind: ActionPass, Card: EmptyCard, Noble: noble}
}

// IsBuy reports whether the action purchases a card.
func (a Action) IsBuy() bool { return a.Kind == ActionBuy || a.Kind == ActionBuyReserved }

// ValidAction reports whether a is a member of legal.
func ValidAction(a Action, legal []Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

// actionJSON is the log representation of an Action. Cards and nobles are
// identified by catalog code.
type actionJSON struct {
	Kind      string `json:"kind"`
	Collected *Gems  `json:"collected,omitempty"`
	Returned  *Gems  `json:"returned,omitempty"`
	Card      string `json:"card,omitempty"`
	Noble     string `json:"noble,omitempty"`
}

// MarshalJSON encodes the action with catalog codes.
func (a Action) MarshalJSON() ([]byte, error) {
	out := actionJSON{Kind: a.Kind.String()}
	if !a.Collected.IsZero() {
		c := a.Collected
		out.Collected = &c
	}
	if !a.Returned.IsZero() {
		r := a.Returned
		out.Returned = &r
	}
	if !a.Card.IsEmpty() {
		out.Card = a.Card.Code()
	}
	if !a.Noble.IsNone() {
		out.Noble = a.Noble.Code()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an action written by MarshalJSON.
func (a *Action) UnmarshalJSON(data []byte) error {
	var in actionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, err := ParseActionKind(in.Kind)
	if err != nil {
		return err
	}
	out := Action{Kind: kind, Card: EmptyCard, Noble: NoNoble}
	if in.Collected != nil {
		out.Collected = *in.Collected
	}
	if in.Returned != nil {
		out.Returned = *in.Returned
	}
	if in.Card != "" {
		c, ok := CardByCode(in.Card)
		if !ok {
			return fmt.Errorf("unknown card code %q", in.Card)
		}
		out.Card = c
	}
	if in.Noble != "" {
		n, ok := NobleByCode(in.Noble)
		if !ok {
			return fmt.Errorf("unknown noble code %q", in.Noble)
		}
		out.Noble = n
	}
	*a = out
	return nil
}
