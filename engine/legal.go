package engine

import "fmt"

// LegalPlays returns the cards in hand the current player may play.
//
//   - Opening lead of the deal: the lowest club only.
//   - Leading later: anything, except that hearts are excluded until broken
//     unless the hand holds nothing else.
//   - Following: cards of the suit led if any, else the whole hand. On the
//     first trick point cards are excluded unless nothing else remains.
//
// Panics if no trick is in progress.
func (d ClosedDeal) LegalPlays(hand CardSet) CardSet {
	if !d.hasCurrent {
		panic("no trick in progress")
	}
	suitLed, following := d.current.SuitLed()
	switch {
	case !following && d.numDone == 0:
		c, ok := hand.OfSuit(SuitClubs).Lowest()
		if !ok {
			panic(fmt.Sprintf("opening leader holds no clubs: %v", hand))
		}
		return NewCardSet(c)

	case !following:
		if d.HeartsBroken {
			return hand
		}
		if rest := hand.Minus(hand.OfSuit(SuitHearts)); !rest.IsEmpty() {
			return rest
		}
		return hand

	default:
		legal := hand.OfSuit(suitLed)
		if legal.IsEmpty() {
			legal = hand
		}
		if d.numDone == 0 {
			if safe := legal.Minus(legal.PointCards()); !safe.IsEmpty() {
				legal = safe
			}
		}
		return legal
	}
}

// inferVoids records what a legal play of card by seat reveals. Must run
// before the card is added to the trick and before hearts-broken changes.
func (d *ClosedDeal) inferVoids(seat Seat, card Card) {
	suitLed, following := d.current.SuitLed()
	if !following {
		// Leading a heart before they are broken means nothing else was held.
		if card.Suit() == SuitHearts && !d.HeartsBroken {
			d.setVoid(seat, SuitClubs)
			d.setVoid(seat, SuitDiamonds)
			d.setVoid(seat, SuitSpades)
		}
		return
	}
	if card.Suit() == suitLed {
		return
	}
	d.setVoid(seat, suitLed)

	// A point card sloughed on the first trick means no safe card was held.
	if d.numDone == 0 && card.PointValue() > 0 {
		d.setVoid(seat, SuitDiamonds)
		accounted := card == QueenOfSpades || d.current.Cards().Contains(QueenOfSpades)
		if accounted {
			d.setVoid(seat, SuitSpades)
		}
	}
}
