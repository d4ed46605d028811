package engine

import "fmt"

// Score holds points per seat, indexed by Seat.
type Score [NumSeats]int

// ScoreFor returns a score with points assigned to seat only.
func ScoreFor(seat Seat, points int) Score {
	var s Score
	s[seat] = points
	return s
}

// Add returns the pointwise sum of s and o.
func (s Score) Add(o Score) Score {
	for i := range s {
		s[i] += o[i]
	}
	return s
}

// Sum returns the total points across all seats.
func (s Score) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Min returns the lowest per-seat value.
func (s Score) Min() int {
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Leaders returns the seats holding the lowest score, in seat order.
func (s Score) Leaders() []Seat {
	m := s.Min()
	var out []Seat
	for _, seat := range AllSeats {
		if s[seat] == m {
			out = append(out, seat)
		}
	}
	return out
}

// Shooter returns the seat that took every point, if one did.
func (s Score) Shooter() (Seat, bool) {
	for _, seat := range AllSeats {
		if s[seat] == TotalPoints {
			return seat, true
		}
	}
	return 0, false
}

func (s Score) String() string {
	return fmt.Sprintf("W:%d N:%d E:%d S:%d", s[West], s[North], s[East], s[South])
}
