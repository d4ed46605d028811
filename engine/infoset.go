package engine

import "fmt"

// ActionType is the kind of decision a seat faces.
type ActionType uint8

const (
	ActionPass ActionType = iota // 0
	ActionPlay                   // 1
)

func (t ActionType) String() string {
	if t == ActionPass {
		return "Pass"
	}
	return "Play"
}

// InformationSet is everything one seat may know at a decision point: its
// own hand, its own passes, and the public deal. It never holds another
// seat's hand. Derive a fresh one after every action.
type InformationSet struct {
	Player Seat
	Hand   CardSet
	Deal   ClosedDeal

	outgoing    CardSet
	hasOutgoing bool
	incoming    CardSet
	hasIncoming bool
}

// NewInformationSet builds the view for player. outgoing and incoming are
// nil when absent. Panics if the view is inconsistent with the public deal:
// the deal is over, it is not player's turn to play, or the hand contains
// played cards.
func NewInformationSet(player Seat, hand CardSet, outgoing, incoming *CardSet, deal ClosedDeal) InformationSet {
	is := InformationSet{Player: player, Hand: hand, Deal: deal}
	if outgoing != nil {
		is.outgoing, is.hasOutgoing = *outgoing, true
	}
	if incoming != nil {
		is.incoming, is.hasIncoming = *incoming, true
	}

	if deal.IsComplete() {
		panic("information set for a completed deal")
	}
	if played := hand.Intersect(deal.PlayedCards()); !played.IsEmpty() {
		panic(fmt.Sprintf("%v hand contains played cards %v", player, played))
	}
	switch is.LegalActionType() {
	case ActionPass:
		if _, started := deal.CurrentTrick(); started || deal.NumCompletedTricks() > 0 {
			panic(fmt.Sprintf("%v has an incomplete pass after play started", player))
		}
		if hand.IsEmpty() {
			panic(fmt.Sprintf("%v has no cards to pass", player))
		}
	case ActionPlay:
		if seat, ok := deal.CurrentPlayer(); !ok || seat != player {
			panic(fmt.Sprintf("%v is not the current player", player))
		}
	}
	return is
}

// OutgoingPass returns the cards this seat has passed, if it has started.
func (is InformationSet) OutgoingPass() (CardSet, bool) { return is.outgoing, is.hasOutgoing }

// IncomingPass returns the cards passed to this seat, once known.
func (is InformationSet) IncomingPass() (CardSet, bool) { return is.incoming, is.hasIncoming }

// LegalActionType is Pass while this seat's outgoing pass is incomplete
// (and there is an exchange), otherwise Play.
func (is InformationSet) LegalActionType() ActionType {
	if is.Deal.ExchangeDirection != Hold && (!is.hasOutgoing || is.outgoing.Len() < PassSize) {
		return ActionPass
	}
	return ActionPlay
}

// LegalActions returns the cards this seat may choose now.
func (is InformationSet) LegalActions() CardSet {
	if is.LegalActionType() == ActionPass {
		return is.Hand
	}
	return is.Deal.LegalPlays(is.Hand)
}

// LegalActionsList returns LegalActions in ascending card order.
func (is InformationSet) LegalActionsList() []Card { return is.LegalActions().Cards() }

// InformationSet returns the current player's view of the deal. Panics once
// the deal is complete.
func (d OpenDeal) InformationSet() InformationSet {
	seat, ok := d.CurrentPlayer()
	if !ok {
		panic("no current player: deal is complete")
	}
	return d.InformationSetFor(seat)
}

// InformationSetFor returns seat's view. The seat must be the current player.
func (d OpenDeal) InformationSetFor(seat Seat) InformationSet {
	if cur, ok := d.CurrentPlayer(); !ok || cur != seat {
		panic(fmt.Sprintf("%v is not the current player", seat))
	}
	var outgoing, incoming *CardSet
	if d.ClosedDeal.ExchangeDirection != Hold {
		if pass, ok := d.Exchange.OutgoingPass(seat); ok {
			outgoing = &pass
		}
		if pass, ok := d.Exchange.IncomingPass(seat, d.ClosedDeal.ExchangeDirection); ok {
			incoming = &pass
		}
	}
	return NewInformationSet(seat, d.hands[seat], outgoing, incoming, d.ClosedDeal)
}
