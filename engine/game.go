// Package engine implements the rules of Hearts as an extensive-form game.
//
// All state is held in flat value types (bitmask card sets, fixed arrays)
// so a deal can be copied with = and explored without allocation by an
// external solver. Hidden card locations live only in OpenDeal; ClosedDeal
// and InformationSet expose what a seat is entitled to know.
package engine

import (
	"errors"
	"fmt"
)

// Errors returned by OpenDeal transitions.
var (
	ErrDealComplete = errors.New("deal is complete")
	ErrWrongPhase   = errors.New("action not allowed in this phase")
	ErrIllegalCard  = errors.New("illegal card")
)

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline, no interface
// ---------------------------------------------------------------------------

type xorshift uint64

func newXorshift(seed uint64) xorshift {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return xorshift(seed)
}

func (x *xorshift) next() uint64 {
	v := uint64(*x)
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	*x = xorshift(v)
	return v
}

// ShuffledDeck returns the 52 cards in an order determined entirely by seed.
func ShuffledDeck(seed uint64) [NumCards]Card {
	var deck [NumCards]Card
	for i := range deck {
		deck[i] = Card(i)
	}
	rng := newXorshift(seed)
	// Fisher-Yates shuffle.
	for i := NumCards - 1; i > 0; i-- {
		j := int(rng.next() % uint64(i+1))
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// DealHands distributes deck one card at a time, starting with the seat
// after the dealer.
func DealHands(deck [NumCards]Card, dealer Seat) [NumSeats]CardSet {
	var hands [NumSeats]CardSet
	seat := dealer.Next()
	for _, c := range deck {
		hands[seat] = hands[seat].Add(c)
		seat = seat.Next()
	}
	return hands
}

// ---------------------------------------------------------------------------
// OpenDeal
// ---------------------------------------------------------------------------

// OpenDeal is a ClosedDeal plus the actual hands. It is the only place that
// knows where unplayed cards are.
type OpenDeal struct {
	ClosedDeal ClosedDeal
	Exchange   Exchange // unused when the direction is Hold

	hands [NumSeats]CardSet // unplayed cards per seat
}

// NewOpenDeal starts a deal from explicit hands. The hands must partition
// the deck into four 13-card sets. With direction Hold, play starts at once.
func NewOpenDeal(hands [NumSeats]CardSet, dealer Seat, dir ExchangeDirection) (OpenDeal, error) {
	var all CardSet
	for _, seat := range AllSeats {
		h := hands[seat]
		if h.Len() != NumTricks {
			return OpenDeal{}, fmt.Errorf("%v holds %d cards, want %d", seat, h.Len(), NumTricks)
		}
		if !all.Intersect(h).IsEmpty() {
			return OpenDeal{}, fmt.Errorf("%v shares cards with another hand: %v", seat, all.Intersect(h))
		}
		all = all.Union(h)
	}
	d := OpenDeal{
		ClosedDeal: NewClosedDeal(dealer, dir),
		Exchange:   NewExchange(dealer),
		hands:      hands,
	}
	if dir == Hold {
		d.startPlay()
	}
	return d, nil
}

// DealSeeded shuffles with seed and deals.
func DealSeeded(seed uint64, dealer Seat, dir ExchangeDirection) OpenDeal {
	d, err := NewOpenDeal(DealHands(ShuffledDeck(seed), dealer), dealer, dir)
	if err != nil {
		panic(err) // a shuffled deck always partitions
	}
	return d
}

// startPlay opens the first trick, led by the holder of the lowest club.
func (d *OpenDeal) startPlay() {
	clubs := FullDeck.OfSuit(SuitClubs)
	for _, c := range clubs.Cards() {
		for _, seat := range AllSeats {
			if d.hands[seat].Contains(c) {
				d.ClosedDeal.Start(seat)
				return
			}
		}
	}
	panic("no seat holds a club")
}

// Hand returns the unplayed cards held by seat.
func (d OpenDeal) Hand(seat Seat) CardSet { return d.hands[seat] }

// Hands returns all unplayed hands.
func (d OpenDeal) Hands() [NumSeats]CardSet { return d.hands }

// InExchange is true while the pass phase is still being played.
func (d OpenDeal) InExchange() bool {
	return d.ClosedDeal.ExchangeDirection != Hold && !d.Exchange.IsComplete()
}

// IsComplete is true once all tricks are played.
func (d OpenDeal) IsComplete() bool { return d.ClosedDeal.IsComplete() }

// CurrentPlayer returns the seat due to act, absent once the deal is over.
func (d OpenDeal) CurrentPlayer() (Seat, bool) {
	if d.InExchange() {
		return d.Exchange.CurrentPasser()
	}
	return d.ClosedDeal.CurrentPlayer()
}

// AddPass passes card from the current passer's hand. When the last pass
// is complete, the passes are delivered and play starts.
func (d *OpenDeal) AddPass(card Card) error {
	if !d.InExchange() {
		return fmt.Errorf("pass %v: %w", card, ErrWrongPhase)
	}
	seat, _ := d.Exchange.CurrentPasser()
	if !d.hands[seat].Contains(card) {
		return fmt.Errorf("%v passing %v not in hand: %w", seat, card, ErrIllegalCard)
	}
	d.Exchange.AddPass(card)
	d.hands[seat] = d.hands[seat].Remove(card)
	if d.Exchange.IsComplete() {
		d.hands = d.Exchange.Apply(d.hands, d.ClosedDeal.ExchangeDirection)
		d.startPlay()
	}
	return nil
}

// AddPlay plays card for the current player after checking it against the
// legality rules.
func (d *OpenDeal) AddPlay(card Card) error {
	if d.IsComplete() {
		return fmt.Errorf("play %v: %w", card, ErrDealComplete)
	}
	if d.InExchange() {
		return fmt.Errorf("play %v during exchange: %w", card, ErrWrongPhase)
	}
	seat, _ := d.ClosedDeal.CurrentPlayer()
	if !d.ClosedDeal.LegalPlays(d.hands[seat]).Contains(card) {
		return fmt.Errorf("%v playing %v: %w", seat, card, ErrIllegalCard)
	}
	d.hands[seat] = d.hands[seat].Remove(card)
	d.ClosedDeal.AddPlay(card)
	return nil
}

// Apply routes card to AddPass or AddPlay depending on the phase.
func (d *OpenDeal) Apply(card Card) error {
	if d.InExchange() {
		return d.AddPass(card)
	}
	return d.AddPlay(card)
}

// TryFinalScore returns the deal's final points once they are certain.
// Besides a finished deal, two shortcuts apply at the start of a trick:
// no points remain in any hand, or the leader holds only cards that top
// their suit, so it will take every remaining trick.
func (d OpenDeal) TryFinalScore() (Score, bool) {
	closed := d.ClosedDeal
	if closed.IsComplete() {
		return closed.Score, true
	}
	if d.InExchange() {
		return Score{}, false
	}
	trick, _ := closed.CurrentTrick()
	if !trick.IsEmpty() {
		return Score{}, false
	}

	var unplayed CardSet
	for _, h := range d.hands {
		unplayed = unplayed.Union(h)
	}
	remaining := unplayed.PointValue()
	if remaining == 0 {
		return closed.Score, true
	}

	leader := trick.Leader
	if leaderTakesAll(d.hands[leader], unplayed.Minus(d.hands[leader])) {
		score := closed.Score
		score[leader] += remaining
		return score, true
	}
	return Score{}, false
}

// leaderTakesAll reports whether every card in hand outranks all cards of
// its suit in others.
func leaderTakesAll(hand, others CardSet) bool {
	for suit := Suit(0); suit < NumSuits; suit++ {
		mine, ok := hand.OfSuit(suit).Lowest()
		if !ok {
			continue
		}
		if theirs, ok := others.OfSuit(suit).Highest(); ok && theirs > mine {
			return false
		}
	}
	return true
}
