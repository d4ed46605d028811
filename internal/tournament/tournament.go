// Package tournament drives self-play: single deals, full games, and many
// independent deals in parallel reduced to a zero-sum payoff.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	engine "github.com/brianberns/hearts/engine"
	"github.com/brianberns/hearts/engine/agent"
	"github.com/brianberns/hearts/internal/replay"
)

// MaxGameDeals bounds PlayGame in case scores stop rising.
const MaxGameDeals = 1000

// ErrGameTooLong is returned when a game exceeds MaxGameDeals.
var ErrGameTooLong = errors.New("game did not finish")

// Players assigns a decision function to each seat.
type Players [engine.NumSeats]agent.Player

// RecordSink receives the record of every deal played by Run.
type RecordSink interface {
	Save(ctx context.Context, r replay.Record) error
}

// Config controls a Run.
type Config struct {
	NumDeals int
	Seed     uint64
	Workers  int // <= 0 uses runtime.NumCPU()
	MoonRule engine.MoonRule
	Records  RecordSink // optional
	Log      logrus.FieldLogger
}

// DefaultConfig returns a small reproducible run.
func DefaultConfig() Config {
	return Config{
		NumDeals: 1000,
		Seed:     0,
		Workers:  runtime.NumCPU(),
		MoonRule: engine.DefaultRules().MoonRule,
		Log:      logrus.StandardLogger(),
	}
}

// DealSeed derives the shuffle seed of deal i from the base seed
// (splitmix64), so a deal's cards do not depend on scheduling.
func DealSeed(base uint64, i int) uint64 {
	z := base + uint64(i+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// PlayDeal plays deal to its final score. Every chosen card is checked
// against the legal actions and then applied; an illegal choice aborts the
// deal with an error wrapping engine.ErrIllegalCard. rec may be nil.
func PlayDeal(ctx context.Context, deal engine.OpenDeal, players Players, rec *replay.Recorder) (engine.Score, error) {
	for {
		if score, ok := deal.TryFinalScore(); ok {
			return score, nil
		}
		if err := ctx.Err(); err != nil {
			return engine.Score{}, err
		}
		is := deal.InformationSet()
		card, err := players[is.Player].Act(ctx, is)
		if err != nil {
			return engine.Score{}, fmt.Errorf("%v act: %w", is.Player, err)
		}
		if !is.LegalActions().Contains(card) {
			return engine.Score{}, fmt.Errorf("%v chose %v: %w", is.Player, card, engine.ErrIllegalCard)
		}
		if err := deal.Apply(card); err != nil {
			return engine.Score{}, err
		}
		if rec != nil {
			rec.Observe(is.LegalActionType(), is.Player, card)
		}
	}
}

// PlayGame plays deals until a seat reaches rules.EndScore. Dealer and
// exchange direction rotate each deal; deal n is shuffled with
// DealSeed(seed, n).
func PlayGame(ctx context.Context, rules engine.Rules, seed uint64, players Players) (engine.Game, error) {
	game := engine.NewGame(rules)
	for !game.IsOver() {
		if game.NumDeals >= MaxGameDeals {
			return game, fmt.Errorf("%w after %d deals", ErrGameTooLong, game.NumDeals)
		}
		deal := engine.DealSeeded(DealSeed(seed, game.NumDeals), game.Dealer(), game.Direction())
		score, err := PlayDeal(ctx, deal, players, nil)
		if err != nil {
			return game, fmt.Errorf("deal %d: %w", game.NumDeals, err)
		}
		game.AddDeal(score)
	}
	return game, nil
}

// DealResult is the outcome of one deal in a Run.
type DealResult struct {
	Index     int
	Seed      uint64
	Dealer    engine.Seat
	Direction engine.ExchangeDirection
	Points    engine.Score // raw points taken
	Score     engine.Score // after shoot-the-moon adjustment
}

// Result aggregates a Run.
type Result struct {
	RunID  uuid.UUID
	Deals  []DealResult // by deal index
	Total  engine.Score
	Payoff [engine.NumSeats]float64
}

// Run plays cfg.NumDeals independent deals, in parallel across cfg.Workers.
// Deal i is dealt by seat i%4 with direction DirectionForDeal(i), so the
// result is the same for any worker count.
func Run(ctx context.Context, cfg Config, players Players) (Result, error) {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	res := Result{RunID: uuid.New(), Deals: make([]DealResult, cfg.NumDeals)}
	log = log.WithField("run", res.RunID)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.NumDeals; i++ {
		g.Go(func() error {
			dr, err := runDeal(ctx, cfg, players, i)
			if err != nil {
				return err
			}
			res.Deals[i] = dr
			log.WithFields(logrus.Fields{
				"deal":      i,
				"dealer":    dr.Dealer.String(),
				"direction": dr.Direction.String(),
				"score":     dr.Score.String(),
			}).Debug("Deal finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	scores := make([]engine.Score, len(res.Deals))
	for i, dr := range res.Deals {
		scores[i] = dr.Score
		res.Total = res.Total.Add(dr.Score)
	}
	res.Payoff = Payoff(scores)
	log.WithFields(logrus.Fields{
		"deals":   cfg.NumDeals,
		"workers": workers,
		"total":   res.Total.String(),
		"elapsed": time.Since(start).String(),
	}).Info("Run finished")
	return res, nil
}

func runDeal(ctx context.Context, cfg Config, players Players, i int) (DealResult, error) {
	dr := DealResult{
		Index:     i,
		Seed:      DealSeed(cfg.Seed, i),
		Dealer:    engine.Seat(i % engine.NumSeats),
		Direction: engine.DirectionForDeal(i),
	}
	deal := engine.DealSeeded(dr.Seed, dr.Dealer, dr.Direction)
	var rec *replay.Recorder
	if cfg.Records != nil {
		rec = replay.NewRecorder(deal)
	}
	points, err := PlayDeal(ctx, deal, players, rec)
	if err != nil {
		return dr, fmt.Errorf("deal %d (seed %d): %w", i, dr.Seed, err)
	}
	dr.Points = points
	dr.Score = engine.ShootTheMoon(engine.Score{}, points, cfg.MoonRule)
	if rec != nil {
		if err := cfg.Records.Save(ctx, rec.Finish(points)); err != nil {
			return dr, fmt.Errorf("deal %d: save record: %w", i, err)
		}
	}
	return dr, nil
}

// Payoff reduces deal scores to a zero-sum payoff per seat: the average of
// the other seats' points minus the seat's own, averaged over deals.
// Positive is good, since points are bad in Hearts.
func Payoff(scores []engine.Score) [engine.NumSeats]float64 {
	var out [engine.NumSeats]float64
	if len(scores) == 0 {
		return out
	}
	for _, s := range scores {
		total := float64(s.Sum())
		for _, seat := range engine.AllSeats {
			own := float64(s[seat])
			others := (total - own) / float64(engine.NumSeats-1)
			out[seat] += others - own
		}
	}
	for i := range out {
		out[i] /= float64(len(scores))
	}
	return out
}

// Benchmark plays champion at seat against baseline everywhere else and
// returns the champion's payoff.
func Benchmark(ctx context.Context, cfg Config, champion, baseline agent.Player, seat engine.Seat) (float64, Result, error) {
	var players Players
	for _, s := range engine.AllSeats {
		players[s] = baseline
	}
	players[seat] = champion
	res, err := Run(ctx, cfg, players)
	if err != nil {
		return 0, res, err
	}
	return res.Payoff[seat], res, nil
}
