// Package replay holds the persisted deal record format, replays records
// through the engine, and extracts supervised training samples.
package replay

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	engine "github.com/brianberns/hearts/engine"
	"github.com/brianberns/hearts/engine/agent"
)

// ErrMalformedRecord wraps every reason a record is rejected.
var ErrMalformedRecord = errors.New("malformed deal record")

// Action is one pass or play.
type Action struct {
	Seat engine.Seat `json:"seat"`
	Card engine.Card `json:"card"`
}

// Record is a complete deal: initial hands, every pass and play in order,
// and the deal's raw points. Plays may stop early when the result became
// inevitable.
type Record struct {
	ID        uuid.UUID                       `json:"id"`
	Dealer    engine.Seat                     `json:"dealer"`
	Direction engine.ExchangeDirection        `json:"direction"`
	Hands     [engine.NumSeats]engine.CardSet `json:"hands"`
	Passes    []Action                        `json:"passes,omitempty"`
	Plays     []Action                        `json:"plays"`
	Score     engine.Score                    `json:"score"`
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}

// Validate checks the record's shape without replaying it.
func (r Record) Validate() error {
	if r.Dealer >= engine.NumSeats {
		return malformed("dealer %d out of range", r.Dealer)
	}
	if r.Direction >= engine.NumDirections {
		return malformed("direction %d out of range", r.Direction)
	}
	if _, err := engine.NewOpenDeal(r.Hands, r.Dealer, r.Direction); err != nil {
		return malformed("hands: %v", err)
	}
	wantPasses := engine.NumSeats * engine.PassSize
	if r.Direction == engine.Hold {
		wantPasses = 0
	}
	if len(r.Passes) != wantPasses {
		return malformed("%d passes, want %d", len(r.Passes), wantPasses)
	}
	if len(r.Plays) > engine.NumCards {
		return malformed("%d plays, want at most %d", len(r.Plays), engine.NumCards)
	}
	if r.Score.Sum() != engine.TotalPoints {
		return malformed("score %v does not total %d", r.Score, engine.TotalPoints)
	}
	for _, v := range r.Score {
		if v < 0 {
			return malformed("negative score %v", r.Score)
		}
	}
	return nil
}

// Step is called for each action during a replay with the acting seat's
// information set before the action is applied.
type Step func(is engine.InformationSet, a Action)

// Replay validates r, feeds every action through the engine, and checks
// that the recorded score matches the engine's. onStep may be nil.
func Replay(r Record, onStep Step) (engine.OpenDeal, error) {
	if err := r.Validate(); err != nil {
		return engine.OpenDeal{}, err
	}
	deal, _ := engine.NewOpenDeal(r.Hands, r.Dealer, r.Direction)

	apply := func(phase string, i int, a Action) error {
		seat, ok := deal.CurrentPlayer()
		if !ok {
			return malformed("%s %d: deal already complete", phase, i)
		}
		if seat != a.Seat {
			return malformed("%s %d: %v acted, want %v", phase, i, a.Seat, seat)
		}
		if onStep != nil {
			onStep(deal.InformationSet(), a)
		}
		if err := deal.Apply(a.Card); err != nil {
			return malformed("%s %d: %v", phase, i, err)
		}
		return nil
	}
	for i, a := range r.Passes {
		if err := apply("pass", i, a); err != nil {
			return deal, err
		}
	}
	for i, a := range r.Plays {
		if err := apply("play", i, a); err != nil {
			return deal, err
		}
	}

	score, ok := deal.TryFinalScore()
	if !ok {
		return deal, malformed("deal unfinished after %d plays", len(r.Plays))
	}
	if score != r.Score {
		return deal, malformed("recorded score %v, replayed %v", r.Score, score)
	}
	return deal, nil
}

// Sample is one decision extracted from a record for supervised training.
type Sample struct {
	Seat     engine.Seat
	Type     engine.ActionType
	Encoding agent.Encoding
	Legal    []engine.Card
	Chosen   int // index of the recorded card in Legal
}

// Samples replays r and returns one sample per decision.
func Samples(r Record) ([]Sample, error) {
	samples := make([]Sample, 0, len(r.Passes)+len(r.Plays))
	var bad error
	_, err := Replay(r, func(is engine.InformationSet, a Action) {
		legal := is.LegalActionsList()
		chosen := -1
		for i, c := range legal {
			if c == a.Card {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			// Replay rejects the action right after this callback.
			if bad == nil {
				bad = malformed("%v chose illegal %v", a.Seat, a.Card)
			}
			return
		}
		samples = append(samples, Sample{
			Seat:     a.Seat,
			Type:     is.LegalActionType(),
			Encoding: agent.Encode(is),
			Legal:    legal,
			Chosen:   chosen,
		})
	})
	if err != nil {
		return nil, err
	}
	if bad != nil {
		return nil, bad
	}
	return samples, nil
}

// ---------------------------------------------------------------------------
// Recorder
// ---------------------------------------------------------------------------

// Recorder builds a Record while a deal is played.
type Recorder struct {
	rec Record
}

// NewRecorder starts a record for a freshly dealt deal.
func NewRecorder(deal engine.OpenDeal) *Recorder {
	return &Recorder{rec: Record{
		ID:        uuid.New(),
		Dealer:    deal.ClosedDeal.Dealer,
		Direction: deal.ClosedDeal.ExchangeDirection,
		Hands:     deal.Hands(),
	}}
}

// Observe appends an action of the given type.
func (r *Recorder) Observe(t engine.ActionType, seat engine.Seat, card engine.Card) {
	a := Action{Seat: seat, Card: card}
	if t == engine.ActionPass {
		r.rec.Passes = append(r.rec.Passes, a)
	} else {
		r.rec.Plays = append(r.rec.Plays, a)
	}
}

// Finish returns the record with the final raw score.
func (r *Recorder) Finish(score engine.Score) Record {
	r.rec.Score = score
	if r.rec.Plays == nil {
		r.rec.Plays = []Action{}
	}
	return r.rec
}
