package engine

// NumTricks is the number of tricks in a deal.
const NumTricks = NumCards / NumSeats // 13

// ClosedDeal is the publicly observable state of a deal. It holds no hidden
// card locations and is safe to hand to any seat. It is a flat value type:
// assigning it produces an independent copy.
type ClosedDeal struct {
	Dealer            Seat
	ExchangeDirection ExchangeDirection
	HeartsBroken      bool
	Score             Score // points taken so far this deal

	current    Trick
	hasCurrent bool
	completed  [NumTricks]Trick // in play order
	numDone    uint8
	voids      uint16 // bit seat*NumSuits+suit
}

// NewClosedDeal returns a deal with no tricks started.
func NewClosedDeal(dealer Seat, dir ExchangeDirection) ClosedDeal {
	return ClosedDeal{Dealer: dealer, ExchangeDirection: dir}
}

// Start opens the first trick. Panics if play has already started.
func (d *ClosedDeal) Start(leader Seat) {
	if d.hasCurrent || d.numDone > 0 {
		panic("deal has already started")
	}
	d.current = NewTrick(leader)
	d.hasCurrent = true
}

// CurrentTrick returns the trick in progress. Absent before play starts and
// after the last trick completes.
func (d ClosedDeal) CurrentTrick() (Trick, bool) {
	return d.current, d.hasCurrent
}

// NumCompletedTricks returns how many tricks have been won.
func (d ClosedDeal) NumCompletedTricks() int { return int(d.numDone) }

// CompletedTricks returns the completed tricks, most recent first.
func (d ClosedDeal) CompletedTricks() []Trick {
	out := make([]Trick, d.numDone)
	for i := 0; i < int(d.numDone); i++ {
		out[i] = d.completed[int(d.numDone)-1-i]
	}
	return out
}

// IsComplete is true once all 13 tricks have been played.
func (d ClosedDeal) IsComplete() bool { return d.numDone == NumTricks }

// IsFirstTrick is true while the opening trick is in progress.
func (d ClosedDeal) IsFirstTrick() bool { return d.hasCurrent && d.numDone == 0 }

// CurrentPlayer returns the seat due to play, if play is in progress.
func (d ClosedDeal) CurrentPlayer() (Seat, bool) {
	if !d.hasCurrent {
		return 0, false
	}
	return d.current.NextSeat(), true
}

// IsVoid reports whether seat is known to hold no cards of suit.
func (d ClosedDeal) IsVoid(seat Seat, suit Suit) bool {
	return d.voids&voidBit(seat, suit) != 0
}

func voidBit(seat Seat, suit Suit) uint16 {
	return 1 << (uint(seat)*NumSuits + uint(suit))
}

func (d *ClosedDeal) setVoid(seat Seat, suit Suit) {
	d.voids |= voidBit(seat, suit)
}

// PlayedCards returns every card played so far, current trick included.
func (d ClosedDeal) PlayedCards() CardSet {
	var s CardSet
	for i := 0; i < int(d.numDone); i++ {
		s = s.Union(d.completed[i].Cards())
	}
	if d.hasCurrent {
		s = s.Union(d.current.Cards())
	}
	return s
}

// UnplayedCards returns every card not yet played by anyone.
func (d ClosedDeal) UnplayedCards() CardSet {
	return FullDeck.Minus(d.PlayedCards())
}

// AddPlay plays card for the current player and updates public knowledge:
// hearts-broken, inferred voids, score, and trick turnover. The caller is
// responsible for checking legality. Panics if no trick is in progress.
func (d *ClosedDeal) AddPlay(card Card) {
	if !d.hasCurrent {
		panic("no trick in progress")
	}
	seat := d.current.NextSeat()
	d.inferVoids(seat, card)
	if card.PointValue() > 0 {
		d.HeartsBroken = true
	}
	d.current.AddPlay(card)
	if !d.current.IsComplete() {
		return
	}

	high, _ := d.current.HighPlay()
	d.Score[high.Seat] += d.current.PointValue()
	d.completed[d.numDone] = d.current
	d.numDone++
	if d.numDone == NumTricks {
		d.current = Trick{}
		d.hasCurrent = false
	} else {
		d.current = NewTrick(high.Seat)
	}
}
