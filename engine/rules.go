package engine

import "fmt"

// MoonRule selects how a shot moon is scored against the game score.
type MoonRule uint8

const (
	// MoonLeaderSensitive adds 26 to every other seat, unless that leaves the
	// set of game leaders unchanged, in which case 26 is taken from the shooter.
	MoonLeaderSensitive MoonRule = iota
	// MoonAddToOthers always adds 26 to every other seat.
	MoonAddToOthers
)

func (r MoonRule) String() string {
	switch r {
	case MoonLeaderSensitive:
		return "leader-sensitive"
	case MoonAddToOthers:
		return "add-to-others"
	}
	return fmt.Sprintf("MoonRule(%d)", uint8(r))
}

// ParseMoonRule parses the String form.
func ParseMoonRule(s string) (MoonRule, error) {
	switch s {
	case "leader-sensitive":
		return MoonLeaderSensitive, nil
	case "add-to-others":
		return MoonAddToOthers, nil
	}
	return 0, fmt.Errorf("invalid moon rule %q", s)
}

// Rules holds configurable game settings.
type Rules struct {
	EndScore int // game ends when any seat reaches this
	MoonRule MoonRule
}

// DefaultRules returns the standard rules: play to 100, leader-sensitive moon.
func DefaultRules() Rules {
	return Rules{
		EndScore: 100,
		MoonRule: MoonLeaderSensitive,
	}
}

// ShootTheMoon converts a deal's raw points into the score change applied to
// the game. Deals without a shooter pass through unchanged; gameScore is the
// cumulative score before this deal.
func ShootTheMoon(gameScore, dealScore Score, rule MoonRule) Score {
	shooter, ok := dealScore.Shooter()
	if !ok {
		return dealScore
	}
	var addToOthers Score
	for _, seat := range AllSeats {
		if seat != shooter {
			addToOthers[seat] = TotalPoints
		}
	}
	if rule == MoonAddToOthers {
		return addToOthers
	}
	before := gameScore.Leaders()
	after := gameScore.Add(addToOthers).Leaders()
	if sameSeats(before, after) {
		return ScoreFor(shooter, -TotalPoints)
	}
	return addToOthers
}

func sameSeats(a, b []Seat) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Game tracks the cumulative score across deals.
type Game struct {
	Rules    Rules
	Score    Score
	NumDeals int
}

// NewGame returns a game with no deals played.
func NewGame(rules Rules) Game {
	return Game{Rules: rules}
}

// Dealer returns the dealer of the next deal: West deals first, then the
// deal passes to the next seat.
func (g Game) Dealer() Seat { return Seat(g.NumDeals % NumSeats) }

// Direction returns the exchange direction of the next deal.
func (g Game) Direction() ExchangeDirection { return DirectionForDeal(g.NumDeals) }

// AddDeal applies a finished deal's raw points and returns the change that
// was applied after the shoot-the-moon adjustment.
func (g *Game) AddDeal(dealScore Score) Score {
	if dealScore.Sum() != TotalPoints {
		panic(fmt.Sprintf("deal score %v does not total %d", dealScore, TotalPoints))
	}
	delta := ShootTheMoon(g.Score, dealScore, g.Rules.MoonRule)
	g.Score = g.Score.Add(delta)
	g.NumDeals++
	return delta
}

// IsOver is true once any seat reaches the end score.
func (g Game) IsOver() bool {
	for _, v := range g.Score {
		if v >= g.Rules.EndScore {
			return true
		}
	}
	return false
}

// Winners returns the seats with the lowest score once the game is over.
func (g Game) Winners() []Seat {
	if !g.IsOver() {
		return nil
	}
	return g.Score.Leaders()
}
