package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playRandom plays a deal to the end choosing uniformly among legal actions.
// check runs after every action.
func playRandom(t *testing.T, seed uint64, dealer Seat, dir ExchangeDirection, check func(d OpenDeal)) OpenDeal {
	t.Helper()
	d := DealSeeded(seed, dealer, dir)
	rng := newXorshift(seed ^ 0x9E3779B97F4A7C15)
	for steps := 0; !d.IsComplete(); steps++ {
		require.Less(t, steps, NumCards+NumSeats*PassSize, "deal did not terminate")
		legal := d.InformationSet().LegalActionsList()
		require.NotEmpty(t, legal, "no legal actions at step %d", steps)
		c := legal[rng.next()%uint64(len(legal))]
		require.NoError(t, d.Apply(c))
		if check != nil {
			check(d)
		}
	}
	return d
}

func TestDealSeededIsDeterministic(t *testing.T) {
	a := DealSeeded(42, West, Left)
	b := DealSeeded(42, West, Left)
	assert.Equal(t, a.Hands(), b.Hands())
	assert.NotEqual(t, a.Hands(), DealSeeded(43, West, Left).Hands())

	var all CardSet
	for _, h := range a.Hands() {
		assert.Equal(t, NumTricks, h.Len())
		all = all.Union(h)
	}
	assert.Equal(t, FullDeck, all)
}

func TestNewOpenDealRejectsBadHands(t *testing.T) {
	hands := DealHands(ShuffledDeck(1), West)
	short := hands
	short[North] = short[North].Remove(short[North].Cards()[0])
	_, err := NewOpenDeal(short, West, Hold)
	assert.Error(t, err)

	overlap := hands
	c := overlap[East].Cards()[0]
	overlap[West] = overlap[West].Remove(overlap[West].Cards()[0]).Add(c)
	_, err = NewOpenDeal(overlap, West, Hold)
	assert.Error(t, err)
}

func TestHoldDealOpensWithLowestClub(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		d := DealSeeded(seed, East, Hold)
		require.False(t, d.InExchange())
		is := d.InformationSet()
		assert.True(t, is.Hand.Contains(TwoOfClubs), "seed %d", seed)
		assert.Equal(t, ActionPlay, is.LegalActionType())
		assert.Equal(t, []Card{TwoOfClubs}, is.LegalActionsList())
	}
}

func TestOpenDealExchange(t *testing.T) {
	d := DealSeeded(5, West, Left)
	before := d.Hands()
	require.True(t, d.InExchange())

	err := d.AddPlay(before[North].Cards()[0])
	assert.ErrorIs(t, err, ErrWrongPhase)

	seat, _ := d.CurrentPlayer()
	require.Equal(t, North, seat)
	err = d.AddPass(before[East].Cards()[0])
	assert.ErrorIs(t, err, ErrIllegalCard)

	var order []Seat
	passed := make(map[Seat]CardSet)
	for d.InExchange() {
		seat, _ := d.CurrentPlayer()
		order = append(order, seat)
		is := d.InformationSet()
		require.Equal(t, ActionPass, is.LegalActionType())
		assert.Equal(t, d.Hand(seat), is.LegalActions())
		c, _ := is.Hand.Highest()
		require.NoError(t, d.AddPass(c))
		passed[seat] = passed[seat].Add(c)
	}
	assert.Equal(t, []Seat{North, North, North, East, East, East, South, South, South, West, West, West}, order)

	for _, seat := range AllSeats {
		h := d.Hand(seat)
		assert.Equal(t, NumTricks, h.Len())
		from := Left.Unapply(seat)
		assert.Equal(t, passed[from], h.Intersect(passed[from]), "%v received %v's pass", seat, from)
	}

	leader, ok := d.CurrentPlayer()
	require.True(t, ok)
	assert.True(t, d.Hand(leader).Contains(TwoOfClubs))
	is := d.InformationSet()
	assert.Equal(t, ActionPlay, is.LegalActionType())
	in, ok := is.IncomingPass()
	require.True(t, ok)
	assert.Equal(t, passed[Left.Unapply(leader)], in)

	assert.ErrorIs(t, d.AddPass(TwoOfClubs), ErrWrongPhase)
	assert.ErrorIs(t, d.AddPlay(MustParseCard("AS")), ErrIllegalCard)
}

func TestRandomSelfPlay(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		dealer := Seat(seed % NumSeats)
		dir := DirectionForDeal(int(seed))

		var voids [NumSeats][NumSuits]bool
		var early Score
		haveEarly := false
		d := playRandom(t, seed, dealer, dir, func(d OpenDeal) {
			for _, seat := range AllSeats {
				for suit := Suit(0); suit < NumSuits; suit++ {
					v := d.ClosedDeal.IsVoid(seat, suit)
					if voids[seat][suit] {
						require.True(t, v, "void %v/%v was cleared", seat, suit)
					}
					if v {
						require.False(t, d.Hand(seat).HasSuit(suit), "%v wrongly void in %v", seat, suit)
					}
					voids[seat][suit] = v
				}
			}
			if s, ok := d.TryFinalScore(); ok && !haveEarly {
				early, haveEarly = s, true
			}
		})

		require.True(t, d.IsComplete())
		played := d.ClosedDeal.PlayedCards()
		assert.Equal(t, FullDeck, played, "seed %d", seed)
		n := 0
		for _, tr := range d.ClosedDeal.CompletedTricks() {
			n += tr.NumPlays()
		}
		assert.Equal(t, NumCards, n)
		assert.Equal(t, TotalPoints, d.ClosedDeal.Score.Sum())

		final, ok := d.TryFinalScore()
		require.True(t, ok)
		require.True(t, haveEarly)
		assert.Equal(t, final, early, "seed %d: early score disagrees with the played-out deal", seed)
		assert.ErrorIs(t, d.AddPlay(TwoOfClubs), ErrDealComplete)
	}
}

func TestTryFinalScoreLeaderHoldsTopCards(t *testing.T) {
	hands := [NumSeats]CardSet{
		West:  FullDeck.OfSuit(SuitClubs),
		North: FullDeck.OfSuit(SuitDiamonds),
		East:  FullDeck.OfSuit(SuitHearts),
		South: FullDeck.OfSuit(SuitSpades),
	}
	d, err := NewOpenDeal(hands, South, Hold)
	require.NoError(t, err)

	score, ok := d.TryFinalScore()
	require.True(t, ok)
	assert.Equal(t, ScoreFor(West, TotalPoints), score)

	rng := newXorshift(3)
	for !d.IsComplete() {
		legal := d.InformationSet().LegalActionsList()
		require.NoError(t, d.AddPlay(legal[rng.next()%uint64(len(legal))]))
	}
	assert.Equal(t, score, d.ClosedDeal.Score)
}

func TestTryFinalScoreWaitsForTrickStart(t *testing.T) {
	d := DealSeeded(9, West, Hold)
	_, ok := d.TryFinalScore()
	require.False(t, ok, "seed 9 opening should be undecided")

	legal := d.InformationSet().LegalActionsList()
	require.NoError(t, d.AddPlay(legal[0]))
	_, ok = d.TryFinalScore()
	assert.False(t, ok, "mid-trick positions are never shortcut")

	ex := DealSeeded(9, West, Left)
	_, ok = ex.TryFinalScore()
	assert.False(t, ok)
}
