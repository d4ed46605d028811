package engine

import "fmt"

// Seat is one of the four fixed positions, in clockwise play order.
type Seat uint8

const (
	West  Seat = 0
	North Seat = 1
	East  Seat = 2
	South Seat = 3

	NumSeats = 4
)

// AllSeats lists the seats in rotation order starting from West.
var AllSeats = [NumSeats]Seat{West, North, East, South}

// Next returns the seat that plays after s.
func (s Seat) Next() Seat { return s.Incr(1) }

// Prev returns the seat that plays before s.
func (s Seat) Prev() Seat { return s.Incr(NumSeats - 1) }

// Incr returns the seat n places after s (n may be negative).
func (s Seat) Incr(n int) Seat {
	return Seat(((int(s)+n)%NumSeats + NumSeats) % NumSeats)
}

// Distance returns how many places after s the seat to sits, in [0, 4).
func (s Seat) Distance(to Seat) int {
	return ((int(to)-int(s))%NumSeats + NumSeats) % NumSeats
}

func (s Seat) String() string {
	switch s {
	case West:
		return "West"
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	}
	return fmt.Sprintf("Seat(%d)", uint8(s))
}

// ParseSeat accepts the full name or its first letter.
func ParseSeat(s string) (Seat, error) {
	switch s {
	case "West", "W":
		return West, nil
	case "North", "N":
		return North, nil
	case "East", "E":
		return East, nil
	case "South", "S":
		return South, nil
	}
	return 0, fmt.Errorf("invalid seat %q", s)
}

// ---------------------------------------------------------------------------
// Exchange direction
// ---------------------------------------------------------------------------

// ExchangeDirection says where each seat's pass is delivered.
type ExchangeDirection uint8

const (
	Left   ExchangeDirection = 0
	Right  ExchangeDirection = 1
	Across ExchangeDirection = 2
	Hold   ExchangeDirection = 3

	NumDirections = 4
)

// Apply returns the seat that receives the pass made by seat.
func (d ExchangeDirection) Apply(seat Seat) Seat {
	switch d {
	case Left:
		return seat.Next()
	case Right:
		return seat.Prev()
	case Across:
		return seat.Incr(2)
	}
	return seat
}

// Unapply returns the seat whose pass is delivered to seat.
func (d ExchangeDirection) Unapply(seat Seat) Seat {
	switch d {
	case Left:
		return seat.Prev()
	case Right:
		return seat.Next()
	case Across:
		return seat.Incr(2)
	}
	return seat
}

// DirectionForDeal returns the direction used by the n-th deal of a game
// (0-based): Left, Right, Across, Hold, repeating.
func DirectionForDeal(n int) ExchangeDirection {
	return ExchangeDirection(n % NumDirections)
}

func (d ExchangeDirection) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Across:
		return "Across"
	case Hold:
		return "Hold"
	}
	return fmt.Sprintf("ExchangeDirection(%d)", uint8(d))
}

// ParseExchangeDirection parses the String form.
func ParseExchangeDirection(s string) (ExchangeDirection, error) {
	for d := ExchangeDirection(0); d < NumDirections; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid exchange direction %q", s)
}
