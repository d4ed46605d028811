package engine

import "fmt"

// Play is one seat's card in a trick.
type Play struct {
	Seat Seat
	Card Card
}

// Trick is one round of up to four plays. It is a flat value type; copies
// are independent.
type Trick struct {
	Leader Seat
	cards  [NumSeats]Card // cards[i] was played by Leader.Incr(i)
	n      uint8
	high   uint8 // index into cards of the current high play
}

// NewTrick returns an empty trick led by leader.
func NewTrick(leader Seat) Trick {
	return Trick{Leader: leader}
}

// NumPlays returns how many cards have been played.
func (t Trick) NumPlays() int { return int(t.n) }

// IsEmpty is true before the first card is played.
func (t Trick) IsEmpty() bool { return t.n == 0 }

// IsComplete is true once all four seats have played.
func (t Trick) IsComplete() bool { return t.n == NumSeats }

// NextSeat returns the seat due to play next. Only meaningful while the
// trick is incomplete.
func (t Trick) NextSeat() Seat { return t.Leader.Incr(int(t.n)) }

// SuitLed returns the suit of the first card, if any.
func (t Trick) SuitLed() (Suit, bool) {
	if t.n == 0 {
		return 0, false
	}
	return t.cards[0].Suit(), true
}

// HighPlay returns the play currently winning the trick, if any.
func (t Trick) HighPlay() (Play, bool) {
	if t.n == 0 {
		return Play{}, false
	}
	return Play{Seat: t.Leader.Incr(int(t.high)), Card: t.cards[t.high]}, true
}

// Plays returns the plays in play order (allocates).
func (t Trick) Plays() []Play {
	out := make([]Play, t.n)
	for i := uint8(0); i < t.n; i++ {
		out[i] = Play{Seat: t.Leader.Incr(int(i)), Card: t.cards[i]}
	}
	return out
}

// CardOf returns the card played by seat in this trick, if it has played.
func (t Trick) CardOf(seat Seat) (Card, bool) {
	i := t.Leader.Distance(seat)
	if i >= int(t.n) {
		return 0, false
	}
	return t.cards[i], true
}

// Cards returns the set of cards played so far.
func (t Trick) Cards() CardSet {
	var s CardSet
	for i := uint8(0); i < t.n; i++ {
		s = s.Add(t.cards[i])
	}
	return s
}

// PointValue sums the point values of the cards played so far.
func (t Trick) PointValue() int { return t.Cards().PointValue() }

// AddPlay appends card for the next seat. The first card fixes the suit led;
// later cards become the high play only if they follow suit and outrank it.
// Panics if the trick is already complete.
func (t *Trick) AddPlay(card Card) {
	if t.IsComplete() {
		panic(fmt.Sprintf("trick led by %v is already complete", t.Leader))
	}
	t.cards[t.n] = card
	if t.n > 0 {
		hi := t.cards[t.high]
		if card.Suit() == hi.Suit() && card.Rank() > hi.Rank() {
			t.high = t.n
		}
	}
	t.n++
}

func (t Trick) String() string {
	s := fmt.Sprintf("%v:", t.Leader)
	for i := uint8(0); i < t.n; i++ {
		s += " " + t.cards[i].String()
	}
	return s
}
