package engine

// cardDef is one immutable catalog entry for a development card.
type cardDef struct {
	code   string
	colour Colour
	tier   uint8
	points uint8
	cost   Gems
}

// nobleDef is one immutable catalog entry for a noble tile.
type nobleDef struct {
	code        string
	requirement Gems
}

const (
	NumCards  = 90
	NumNobles = 10

	// NoblePoints is the prestige every noble is worth.
	NoblePoints = 3
)

// cardDefs lists every development card in catalog order. A Card is an index
// into this table.
var cardDefs = [NumCards]cardDef{
	{code: "1g1w1r1b", colour: Black, tier: 1, points: 0, cost: Gems{Green: 1, White: 1, Red: 1, Blue: 1}},
	{code: "1g1w1r2b", colour: Black, tier: 1, points: 0, cost: Gems{Green: 1, White: 1, Red: 1, Blue: 2}},
	{code: "2b1r2w", colour: Black, tier: 1, points: 0, cost: Gems{Blue: 2, Red: 1, White: 2}},
	{code: "2b2g3w", colour: Black, tier: 2, points: 1, cost: Gems{Blue: 2, Green: 2, White: 3}},
	{code: "2g1r", colour: Black, tier: 1, points: 0, cost: Gems{Green: 2, Red: 1}},
	{code: "2w2g", colour: Black, tier: 1, points: 0, cost: Gems{White: 2, Green: 2}},
	{code: "3g", colour: Black, tier: 1, points: 0, cost: Gems{Green: 3}},
	{code: "3g2B3w", colour: Black, tier: 2, points: 1, cost: Gems{Green: 3, Black: 2, White: 3}},
	{code: "3r1B1g", colour: Black, tier: 1, points: 0, cost: Gems{Red: 3, Black: 1, Green: 1}},
	{code: "4b", colour: Black, tier: 1, points: 1, cost: Gems{Blue: 4}},
	{code: "4g2r1b", colour: Black, tier: 2, points: 2, cost: Gems{Green: 4, Red: 2, Blue: 1}},
	{code: "5g3r", colour: Black, tier: 2, points: 2, cost: Gems{Green: 5, Red: 3}},
	{code: "5g3w3r3b", colour: Black, tier: 3, points: 3, cost: Gems{Green: 5, White: 3, Red: 3, Blue: 3}},
	{code: "5w", colour: Black, tier: 2, points: 2, cost: Gems{White: 5}},
	{code: "6B", colour: Black, tier: 2, points: 3, cost: Gems{Black: 6}},
	{code: "6r3B3g", colour: Black, tier: 3, points: 4, cost: Gems{Red: 6, Black: 3, Green: 3}},
	{code: "7r", colour: Black, tier: 3, points: 4, cost: Gems{Red: 7}},
	{code: "7r3B", colour: Black, tier: 3, points: 5, cost: Gems{Red: 7, Black: 3}},
	{code: "1r1w1B1g", colour: Blue, tier: 1, points: 0, cost: Gems{Red: 1, White: 1, Black: 1, Green: 1}},
	{code: "1r4B2w", colour: Blue, tier: 2, points: 2, cost: Gems{Red: 1, Black: 4, White: 2}},
	{code: "1w2B", colour: Blue, tier: 1, points: 0, cost: Gems{White: 1, Black: 2}},
	{code: "2g2B", colour: Blue, tier: 1, points: 0, cost: Gems{Green: 2, Black: 2}},
	{code: "2g2r1w", colour: Blue, tier: 1, points: 0, cost: Gems{Green: 2, Red: 2, White: 1}},
	{code: "2g3r2b", colour: Blue, tier: 2, points: 1, cost: Gems{Green: 2, Red: 3, Blue: 2}},
	{code: "2r1w1B1g", colour: Blue, tier: 1, points: 0, cost: Gems{Red: 2, White: 1, Black: 1, Green: 1}},
	{code: "3B", colour: Blue, tier: 1, points: 0, cost: Gems{Black: 3}},
	{code: "3b3B6w", colour: Blue, tier: 3, points: 4, cost: Gems{Blue: 3, Black: 3, White: 6}},
	{code: "3g1r1b", colour: Blue, tier: 1, points: 0, cost: Gems{Green: 3, Red: 1, Blue: 1}},
	{code: "3g3B2b", colour: Blue, tier: 2, points: 1, cost: Gems{Green: 3, Black: 3, Blue: 2}},
	{code: "3r3w5B3g", colour: Blue, tier: 3, points: 3, cost: Gems{Red: 3, White: 3, Black: 5, Green: 3}},
	{code: "4r", colour: Blue, tier: 1, points: 1, cost: Gems{Red: 4}},
	{code: "5b", colour: Blue, tier: 2, points: 2, cost: Gems{Blue: 5}},
	{code: "5w3b", colour: Blue, tier: 2, points: 2, cost: Gems{White: 5, Blue: 3}},
	{code: "6b", colour: Blue, tier: 2, points: 3, cost: Gems{Blue: 6}},
	{code: "7w", colour: Blue, tier: 3, points: 4, cost: Gems{White: 7}},
	{code: "7w3b", colour: Blue, tier: 3, points: 5, cost: Gems{White: 7, Blue: 3}},
	{code: "1r1w1B1b", colour: Green, tier: 1, points: 0, cost: Gems{Red: 1, White: 1, Black: 1, Blue: 1}},
	{code: "1r1w2B1b", colour: Green, tier: 1, points: 0, cost: Gems{Red: 1, White: 1, Black: 2, Blue: 1}},
	{code: "2b1B4w", colour: Green, tier: 2, points: 2, cost: Gems{Blue: 2, Black: 1, White: 4}},
	{code: "2b2r", colour: Green, tier: 1, points: 0, cost: Gems{Blue: 2, Red: 2}},
	{code: "2g3r3w", colour: Green, tier: 2, points: 1, cost: Gems{Green: 2, Red: 3, White: 3}},
	{code: "2r2B1b", colour: Green, tier: 1, points: 0, cost: Gems{Red: 2, Black: 2, Blue: 1}},
	{code: "2w1b", colour: Green, tier: 1, points: 0, cost: Gems{White: 2, Blue: 1}},
	{code: "3b1g1w", colour: Green, tier: 1, points: 0, cost: Gems{Blue: 3, Green: 1, White: 1}},
	{code: "3b2B2w", colour: Green, tier: 2, points: 1, cost: Gems{Blue: 3, Black: 2, White: 2}},
	{code: "3r", colour: Green, tier: 1, points: 0, cost: Gems{Red: 3}},
	{code: "3r5w3B3b", colour: Green, tier: 3, points: 3, cost: Gems{Red: 3, White: 5, Black: 3, Blue: 3}},
	{code: "4B", colour: Green, tier: 1, points: 1, cost: Gems{Black: 4}},
	{code: "5b3g", colour: Green, tier: 2, points: 2, cost: Gems{Blue: 5, Green: 3}},
	{code: "5g", colour: Green, tier: 2, points: 2, cost: Gems{Green: 5}},
	{code: "6b3g3w", colour: Green, tier: 3, points: 4, cost: Gems{Blue: 6, Green: 3, White: 3}},
	{code: "6g", colour: Green, tier: 2, points: 3, cost: Gems{Green: 6}},
	{code: "7b", colour: Green, tier: 3, points: 4, cost: Gems{Blue: 7}},
	{code: "7b3g", colour: Green, tier: 3, points: 5, cost: Gems{Blue: 7, Green: 3}},
	{code: "1g1w1B1b", colour: Red, tier: 1, points: 0, cost: Gems{Green: 1, White: 1, Black: 1, Blue: 1}},
	{code: "1g2B2w", colour: Red, tier: 1, points: 0, cost: Gems{Green: 1, Black: 2, White: 2}},
	{code: "1g2w1B1b", colour: Red, tier: 1, points: 0, cost: Gems{Green: 1, White: 2, Black: 1, Blue: 1}},
	{code: "1r3B1w", colour: Red, tier: 1, points: 0, cost: Gems{Red: 1, Black: 3, White: 1}},
	{code: "2b1g", colour: Red, tier: 1, points: 0, cost: Gems{Blue: 2, Green: 1}},
	{code: "2r3B2w", colour: Red, tier: 2, points: 1, cost: Gems{Red: 2, Black: 3, White: 2}},
	{code: "2r3B3b", colour: Red, tier: 2, points: 1, cost: Gems{Red: 2, Black: 3, Blue: 3}},
	{code: "2w2r", colour: Red, tier: 1, points: 0, cost: Gems{White: 2, Red: 2}},
	{code: "3g3w3B5b", colour: Red, tier: 3, points: 3, cost: Gems{Green: 3, White: 3, Black: 3, Blue: 5}},
	{code: "3w", colour: Red, tier: 1, points: 0, cost: Gems{White: 3}},
	{code: "3w5B", colour: Red, tier: 2, points: 2, cost: Gems{White: 3, Black: 5}},
	{code: "4b2g1w", colour: Red, tier: 2, points: 2, cost: Gems{Blue: 4, Green: 2, White: 1}},
	{code: "4w", colour: Red, tier: 1, points: 1, cost: Gems{White: 4}},
	{code: "5B", colour: Red, tier: 2, points: 2, cost: Gems{Black: 5}},
	{code: "6g3r3b", colour: Red, tier: 3, points: 4, cost: Gems{Green: 6, Red: 3, Blue: 3}},
	{code: "6r", colour: Red, tier: 2, points: 3, cost: Gems{Red: 6}},
	{code: "7g", colour: Red, tier: 3, points: 4, cost: Gems{Green: 7}},
	{code: "7g3r", colour: Red, tier: 3, points: 5, cost: Gems{Green: 7, Red: 3}},
	{code: "1b1B3w", colour: White, tier: 1, points: 0, cost: Gems{Blue: 1, Black: 1, White: 3}},
	{code: "1r1b1B1g", colour: White, tier: 1, points: 0, cost: Gems{Red: 1, Blue: 1, Black: 1, Green: 1}},
	{code: "1r1b1B2g", colour: White, tier: 1, points: 0, cost: Gems{Red: 1, Blue: 1, Black: 1, Green: 2}},
	{code: "2b2B", colour: White, tier: 1, points: 0, cost: Gems{Blue: 2, Black: 2}},
	{code: "2g1B2b", colour: White, tier: 1, points: 0, cost: Gems{Green: 2, Black: 1, Blue: 2}},
	{code: "2r1B", colour: White, tier: 1, points: 0, cost: Gems{Red: 2, Black: 1}},
	{code: "2r2B3g", colour: White, tier: 2, points: 1, cost: Gems{Red: 2, Black: 2, Green: 3}},
	{code: "3b", colour: White, tier: 1, points: 0, cost: Gems{Blue: 3}},
	{code: "3b3r2w", colour: White, tier: 2, points: 1, cost: Gems{Blue: 3, Red: 3, White: 2}},
	{code: "3r6B3w", colour: White, tier: 3, points: 4, cost: Gems{Red: 3, Black: 6, White: 3}},
	{code: "3w7B", colour: White, tier: 3, points: 5, cost: Gems{White: 3, Black: 7}},
	{code: "4g", colour: White, tier: 1, points: 1, cost: Gems{Green: 4}},
	{code: "4r2B1g", colour: White, tier: 2, points: 2, cost: Gems{Red: 4, Black: 2, Green: 1}},
	{code: "5r", colour: White, tier: 2, points: 2, cost: Gems{Red: 5}},
	{code: "5r3B", colour: White, tier: 2, points: 2, cost: Gems{Red: 5, Black: 3}},
	{code: "5r3b3B3g", colour: White, tier: 3, points: 3, cost: Gems{Red: 5, Blue: 3, Black: 3, Green: 3}},
	{code: "6w", colour: White, tier: 2, points: 3, cost: Gems{White: 6}},
	{code: "7B", colour: White, tier: 3, points: 4, cost: Gems{Black: 7}},
}

// nobleDefs lists every noble tile in catalog order.
var nobleDefs = [NumNobles]nobleDef{
	{code: "4g4r", requirement: Gems{Green: 4, Red: 4}},
	{code: "3w3r3B", requirement: Gems{White: 3, Red: 3, Black: 3}},
	{code: "3b3g3r", requirement: Gems{Blue: 3, Green: 3, Red: 3}},
	{code: "3w3b3g", requirement: Gems{White: 3, Blue: 3, Green: 3}},
	{code: "4w4b", requirement: Gems{White: 4, Blue: 4}},
	{code: "4w4B", requirement: Gems{White: 4, Black: 4}},
	{code: "3w3b3B", requirement: Gems{White: 3, Blue: 3, Black: 3}},
	{code: "4r4B", requirement: Gems{Red: 4, Black: 4}},
	{code: "4b4g", requirement: Gems{Blue: 4, Green: 4}},
	{code: "3g3r3B", requirement: Gems{Green: 3, Red: 3, Black: 3}},
}

var (
	cardsByCode  = make(map[string]Card, NumCards)
	noblesByCode = make(map[string]Noble, NumNobles)
)

func init() {
	for i := range cardDefs {
		cardsByCode[cardDefs[i].code] = Card(i)
	}
	for i := range nobleDefs {
		noblesByCode[nobleDefs[i].code] = Noble(i)
	}
}

// CardByCode returns the catalog card with the given code.
func CardByCode(code string) (Card, bool) {
	c, ok := cardsByCode[code]
	return c, ok
}

// NobleByCode returns the catalog noble with the given code.
func NobleByCode(code string) (Noble, bool) {
	n, ok := noblesByCode[code]
	return n, ok
}

// TierCards returns every catalog card of the given tier (1..3) in catalog order.
func TierCards(tier uint8) []Card {
	var out []Card
	for i := range cardDefs {
		if cardDefs[i].tier == tier {
			out = append(out, Card(i))
		}
	}
	return out
}
