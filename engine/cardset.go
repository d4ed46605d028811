package engine

import (
	"math/bits"
	"strings"
)

// CardSet is a set of cards packed into a 64-bit mask, bit i = card index i.
// Iteration is always in ascending card order.
type CardSet uint64

// FullDeck contains all 52 cards.
const FullDeck CardSet = 1<<NumCards - 1

// suitMask covers one suit's 13 bits at the bottom of the word.
const suitMask CardSet = 1<<NumRanks - 1

// NewCardSet builds a set from the given cards.
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s = s.Add(c)
	}
	return s
}

// ParseCardSet parses a whitespace separated list of cards.
func ParseCardSet(s string) (CardSet, error) {
	var set CardSet
	for _, field := range strings.Fields(s) {
		c, err := ParseCard(field)
		if err != nil {
			return 0, err
		}
		set = set.Add(c)
	}
	return set, nil
}

// MustParseCardSet is like ParseCardSet but panics on malformed input.
func MustParseCardSet(s string) CardSet {
	set, err := ParseCardSet(s)
	if err != nil {
		panic(err)
	}
	return set
}

func (s CardSet) Add(c Card) CardSet          { return s | 1<<c }
func (s CardSet) Remove(c Card) CardSet       { return s &^ (1 << c) }
func (s CardSet) Contains(c Card) bool        { return s&(1<<c) != 0 }
func (s CardSet) Union(o CardSet) CardSet     { return s | o }
func (s CardSet) Intersect(o CardSet) CardSet { return s & o }
func (s CardSet) Minus(o CardSet) CardSet     { return s &^ o }
func (s CardSet) IsEmpty() bool               { return s == 0 }
func (s CardSet) Len() int                    { return bits.OnesCount64(uint64(s)) }

// OfSuit returns the subset of cards belonging to suit.
func (s CardSet) OfSuit(suit Suit) CardSet {
	return s & (suitMask << (uint(suit) * NumRanks))
}

// HasSuit reports whether the set holds any card of suit.
func (s CardSet) HasSuit(suit Suit) bool { return !s.OfSuit(suit).IsEmpty() }

// Lowest returns the lowest-indexed card. ok is false for an empty set.
func (s CardSet) Lowest() (c Card, ok bool) {
	if s == 0 {
		return 0, false
	}
	return Card(bits.TrailingZeros64(uint64(s))), true
}

// Highest returns the highest-indexed card. ok is false for an empty set.
func (s CardSet) Highest() (c Card, ok bool) {
	if s == 0 {
		return 0, false
	}
	return Card(63 - bits.LeadingZeros64(uint64(s))), true
}

// Cards returns the members in ascending order (allocates).
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for w := uint64(s); w != 0; w &= w - 1 {
		out = append(out, Card(bits.TrailingZeros64(w)))
	}
	return out
}

// PointValue sums the point values of the members.
func (s CardSet) PointValue() int {
	pts := s.OfSuit(SuitHearts).Len()
	if s.Contains(QueenOfSpades) {
		pts += QueenOfSpades.PointValue()
	}
	return pts
}

// PointCards returns the members that carry points.
func (s CardSet) PointCards() CardSet {
	return s.OfSuit(SuitHearts) | s&(1<<QueenOfSpades)
}

func (s CardSet) String() string {
	cards := s.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
