package engine

import "fmt"

// PassSize is the number of cards each seat passes.
const PassSize = 3

// ExchangeState is the lifecycle of the pass phase.
type ExchangeState uint8

const (
	ExchangeNotStarted ExchangeState = iota // 0
	ExchangeInProgress                      // 1
	ExchangeComplete                        // 2
)

// Exchange records the pass phase. Seats pass in dealer-relative order:
// the seat after the dealer passes first, the dealer passes last.
type Exchange struct {
	First  Seat              // first seat to pass
	passes [NumSeats]CardSet // passes[i] belongs to First.Incr(i)
	n      uint8             // number of passes started, current one included
}

// NewExchange returns an empty exchange for a deal dealt by dealer.
func NewExchange(dealer Seat) Exchange {
	return Exchange{First: dealer.Next()}
}

// State reports whether passing has started or finished.
func (e Exchange) State() ExchangeState {
	switch {
	case e.IsComplete():
		return ExchangeComplete
	case e.n == 0:
		return ExchangeNotStarted
	}
	return ExchangeInProgress
}

// IsComplete is true once all four seats have passed three cards.
func (e Exchange) IsComplete() bool {
	return e.n == NumSeats && e.passes[NumSeats-1].Len() == PassSize
}

// CurrentPasser returns the seat that must pass next.
func (e Exchange) CurrentPasser() (Seat, bool) {
	if e.IsComplete() {
		return 0, false
	}
	return e.First.Incr(e.currentIndex()), true
}

// currentIndex is the pass-order index of the pass being built.
func (e Exchange) currentIndex() int {
	if e.n == 0 || e.passes[e.n-1].Len() == PassSize {
		return int(e.n)
	}
	return int(e.n) - 1
}

// CurrentPass returns the pass being built (possibly empty), absent once
// the exchange is complete.
func (e Exchange) CurrentPass() (CardSet, bool) {
	if e.IsComplete() {
		return 0, false
	}
	i := e.currentIndex()
	if i == int(e.n) {
		return 0, true
	}
	return e.passes[i], true
}

// CompletedPasses returns the full passes in pass order.
func (e Exchange) CompletedPasses() []CardSet {
	out := make([]CardSet, 0, NumSeats)
	for i := uint8(0); i < e.n; i++ {
		if e.passes[i].Len() == PassSize {
			out = append(out, e.passes[i])
		}
	}
	return out
}

// OutgoingPass returns the cards seat has passed so far. ok is false if the
// seat has not started passing.
func (e Exchange) OutgoingPass(seat Seat) (CardSet, bool) {
	i := e.First.Distance(seat)
	if i >= int(e.n) {
		return 0, false
	}
	return e.passes[i], true
}

// IncomingPass returns the pass delivered to seat. It is only known once the
// exchange is complete.
func (e Exchange) IncomingPass(seat Seat, dir ExchangeDirection) (CardSet, bool) {
	if !e.IsComplete() || dir == Hold {
		return 0, false
	}
	pass, _ := e.OutgoingPass(dir.Unapply(seat))
	return pass, true
}

// Contains reports whether card is in any pass.
func (e Exchange) Contains(card Card) bool {
	for i := uint8(0); i < e.n; i++ {
		if e.passes[i].Contains(card) {
			return true
		}
	}
	return false
}

// AddPass adds card to the current seat's pass, starting the next seat's
// pass when the previous one is full. Panics if the exchange is complete or
// the card has already been passed.
func (e *Exchange) AddPass(card Card) {
	if e.IsComplete() {
		panic("exchange is already complete")
	}
	if e.Contains(card) {
		panic(fmt.Sprintf("card %v has already been passed", card))
	}
	i := e.currentIndex()
	if i == int(e.n) {
		e.n++
	}
	e.passes[i] = e.passes[i].Add(card)
}

// Apply redistributes hands once the exchange is complete: each seat's
// outgoing cards are removed and its incoming cards added. Cards already
// removed while passing are unaffected by the removal step.
func (e Exchange) Apply(hands [NumSeats]CardSet, dir ExchangeDirection) [NumSeats]CardSet {
	if !e.IsComplete() {
		panic("exchange is not complete")
	}
	out := hands
	for i := 0; i < NumSeats; i++ {
		from := e.First.Incr(i)
		out[from] = out[from].Minus(e.passes[i])
	}
	for i := 0; i < NumSeats; i++ {
		from := e.First.Incr(i)
		to := dir.Apply(from)
		out[to] = out[to].Union(e.passes[i])
	}
	return out
}
