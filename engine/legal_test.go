package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cs = MustParseCardSet

// clubsTrick returns a deal after one all-club opening trick, won by South.
func clubsTrick(t *testing.T) ClosedDeal {
	t.Helper()
	d := NewClosedDeal(South, Hold)
	d.Start(West)
	for _, c := range []string{"2C", "3C", "4C", "5C"} {
		d.AddPlay(MustParseCard(c))
	}
	require.Equal(t, 1, d.NumCompletedTricks())
	leader, ok := d.CurrentPlayer()
	require.True(t, ok)
	require.Equal(t, South, leader)
	return d
}

func TestLegalOpeningLeadIsLowestClub(t *testing.T) {
	d := NewClosedDeal(South, Hold)
	d.Start(West)
	assert.Equal(t, cs("2C"), d.LegalPlays(cs("2C 9C AH QS")))
	assert.Equal(t, cs("3C"), d.LegalPlays(cs("3C 5C KD")))
	assert.Panics(t, func() { d.LegalPlays(cs("AH KD")) })
}

func TestLegalLeadWithHeartsUnbroken(t *testing.T) {
	d := clubsTrick(t)
	assert.False(t, d.HeartsBroken)
	assert.Equal(t, cs("KD"), d.LegalPlays(cs("2H 3H KD")))
	assert.Equal(t, cs("2H 3H"), d.LegalPlays(cs("2H 3H")), "all hearts may lead a heart")

	d.HeartsBroken = true
	assert.Equal(t, cs("2H 3H KD"), d.LegalPlays(cs("2H 3H KD")))
}

func TestLegalFollowSuit(t *testing.T) {
	d := clubsTrick(t)
	d.AddPlay(MustParseCard("KD")) // South leads

	assert.Equal(t, cs("3D"), d.LegalPlays(cs("3D 4H")))
	assert.Equal(t, cs("4H 5S"), d.LegalPlays(cs("4H 5S")), "void may play anything after the first trick")
	assert.Equal(t, cs("QS 4H"), d.LegalPlays(cs("QS 4H")))
}

func TestLegalFirstTrickExcludesPoints(t *testing.T) {
	d := NewClosedDeal(South, Hold)
	d.Start(West)
	d.AddPlay(TwoOfClubs)

	assert.Equal(t, cs("3C"), d.LegalPlays(cs("3C QS")))
	assert.Equal(t, cs("7D"), d.LegalPlays(cs("QS 4H 7D")))
	assert.Equal(t, cs("KS 8S"), d.LegalPlays(cs("QS KS 8S 2H")))
	assert.Equal(t, cs("QS 4H 5H"), d.LegalPlays(cs("QS 4H 5H")), "only point cards left")
}

func TestLegalPlaysWithoutTrickPanics(t *testing.T) {
	d := NewClosedDeal(West, Left)
	assert.Panics(t, func() { d.LegalPlays(cs("2C")) })
	assert.Panics(t, func() { d.AddPlay(TwoOfClubs) })
}

func TestVoidOnFailingToFollow(t *testing.T) {
	d := NewClosedDeal(South, Hold)
	d.Start(West)
	d.AddPlay(TwoOfClubs)
	d.AddPlay(MustParseCard("7D")) // North sloughs a safe card

	assert.True(t, d.IsVoid(North, SuitClubs))
	assert.False(t, d.IsVoid(North, SuitDiamonds))
	assert.False(t, d.IsVoid(West, SuitClubs))
}

func TestVoidOnFirstTrickPointSlough(t *testing.T) {
	d := NewClosedDeal(South, Hold)
	d.Start(West)
	d.AddPlay(TwoOfClubs)
	d.AddPlay(MustParseCard("4H")) // North: only hearts and maybe the queen

	assert.True(t, d.IsVoid(North, SuitClubs))
	assert.True(t, d.IsVoid(North, SuitDiamonds))
	assert.False(t, d.IsVoid(North, SuitSpades), "North may still hold the queen")
	assert.False(t, d.IsVoid(North, SuitHearts))

	d.AddPlay(QueenOfSpades) // East
	assert.True(t, d.IsVoid(East, SuitSpades))
	assert.True(t, d.IsVoid(East, SuitDiamonds))

	d.AddPlay(MustParseCard("5H")) // South, queen already in the trick
	assert.True(t, d.IsVoid(South, SuitSpades))
	assert.True(t, d.HeartsBroken)
	assert.Equal(t, 15, d.Score[West])
}

func TestVoidOnUnbrokenHeartLead(t *testing.T) {
	d := clubsTrick(t)
	d.AddPlay(MustParseCard("2H"))
	for _, s := range []Suit{SuitClubs, SuitDiamonds, SuitSpades} {
		assert.True(t, d.IsVoid(South, s), "South void in %v", s)
	}
	assert.False(t, d.IsVoid(South, SuitHearts))
	assert.True(t, d.HeartsBroken)

	after := clubsTrick(t)
	after.HeartsBroken = true
	after.AddPlay(MustParseCard("2H"))
	assert.False(t, after.IsVoid(South, SuitClubs), "leading a broken heart reveals nothing")
}

func TestClosedDealTurnover(t *testing.T) {
	d := clubsTrick(t)
	tricks := d.CompletedTricks()
	require.Len(t, tricks, 1)
	high, _ := tricks[0].HighPlay()
	assert.Equal(t, South, high.Seat)
	assert.Equal(t, cs("2C 3C 4C 5C"), d.PlayedCards())
	assert.Equal(t, FullDeck.Minus(cs("2C 3C 4C 5C")), d.UnplayedCards())
	assert.False(t, d.IsFirstTrick())
	assert.Panics(t, func() { d.Start(West) })
}
