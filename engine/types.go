package engine

import "fmt"

// Suit of a card. The order is fixed: it determines card indices and
// therefore every bitmap produced by the encoder.
type Suit uint8

const (
	SuitClubs    Suit = 0
	SuitDiamonds Suit = 1
	SuitHearts   Suit = 2
	SuitSpades   Suit = 3

	NumSuits = 4
)

// Rank of a card, Two (lowest) through Ace (highest).
type Rank uint8

const (
	RankTwo   Rank = 0
	RankThree Rank = 1
	RankFour  Rank = 2
	RankFive  Rank = 3
	RankSix   Rank = 4
	RankSeven Rank = 5
	RankEight Rank = 6
	RankNine  Rank = 7
	RankTen   Rank = 8
	RankJack  Rank = 9
	RankQueen Rank = 10
	RankKing  Rank = 11
	RankAce   Rank = 12

	NumRanks = 13
)

const suitChars = "CDHS"
const rankChars = "23456789TJQKA"

// Char returns the single-letter form of the suit (C, D, H, S).
func (s Suit) Char() byte { return suitChars[s] }

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "Clubs"
	case SuitDiamonds:
		return "Diamonds"
	case SuitHearts:
		return "Hearts"
	case SuitSpades:
		return "Spades"
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// Char returns the single-letter form of the rank (2..9, T, J, Q, K, A).
func (r Rank) Char() byte { return rankChars[r] }

func (r Rank) String() string { return string(r.Char()) }

// Card is a packed index in [0, 52): suit*13 + rank.
type Card uint8

const (
	NumCards = NumSuits * NumRanks // 52

	// TotalPoints is the number of points available in every deal.
	TotalPoints = 26
)

// NewCard constructs a Card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(suit)*NumRanks + uint8(rank))
}

var (
	TwoOfClubs    = NewCard(RankTwo, SuitClubs)
	QueenOfSpades = NewCard(RankQueen, SuitSpades)
)

// Suit returns the card's suit.
func (c Card) Suit() Suit { return Suit(uint8(c) / NumRanks) }

// Rank returns the card's rank.
func (c Card) Rank() Rank { return Rank(uint8(c) % NumRanks) }

// Index returns the card's position in the canonical 52-card order.
func (c Card) Index() int { return int(c) }

// PointValue returns 1 for a heart, 13 for the queen of spades, else 0.
func (c Card) PointValue() int {
	switch {
	case c.Suit() == SuitHearts:
		return 1
	case c == QueenOfSpades:
		return 13
	}
	return 0
}

// String renders the card as rank then suit, e.g. "TH" or "QS".
func (c Card) String() string {
	if uint8(c) >= NumCards {
		return fmt.Sprintf("Card(%d)", uint8(c))
	}
	return string([]byte{c.Rank().Char(), c.Suit().Char()})
}

// ParseCard parses the two-character form produced by Card.String.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	var (
		rank Rank
		suit Suit
		ok   bool
	)
	for i := 0; i < NumRanks; i++ {
		if rankChars[i] == s[0] {
			rank, ok = Rank(i), true
			break
		}
	}
	if !ok {
		return 0, fmt.Errorf("invalid rank in card %q", s)
	}
	ok = false
	for i := 0; i < NumSuits; i++ {
		if suitChars[i] == s[1] {
			suit, ok = Suit(i), true
			break
		}
	}
	if !ok {
		return 0, fmt.Errorf("invalid suit in card %q", s)
	}
	return NewCard(rank, suit), nil
}

// MustParseCard is like ParseCard but panics on malformed input.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}
