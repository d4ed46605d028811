package tournament

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/brianberns/hearts/engine"
	"github.com/brianberns/hearts/engine/agent"
	"github.com/brianberns/hearts/internal/replay"
)

func uniform(p agent.Player) Players {
	return Players{p, p, p, p}
}

func quietConfig(t *testing.T, n, workers int) (Config, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	cfg := DefaultConfig()
	cfg.NumDeals = n
	cfg.Seed = 12345
	cfg.Workers = workers
	cfg.Log = log
	return cfg, hook
}

type memorySink struct {
	mu      sync.Mutex
	records []replay.Record
}

func (s *memorySink) Save(_ context.Context, r replay.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func TestDealSeed(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		s := DealSeed(7, i)
		require.False(t, seen[s], "collision at %d", i)
		seen[s] = true
	}
	assert.Equal(t, DealSeed(7, 3), DealSeed(7, 3))
	assert.NotEqual(t, DealSeed(7, 3), DealSeed(8, 3))
}

func TestPlayDeal(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		deal := engine.DealSeeded(seed, engine.West, engine.DirectionForDeal(int(seed)))
		score, err := PlayDeal(context.Background(), deal, uniform(agent.NewRandomPlayer(seed)), nil)
		require.NoError(t, err)
		assert.Equal(t, engine.TotalPoints, score.Sum())
	}
}

func TestPlayDealRejectsIllegalCard(t *testing.T) {
	cheat := agent.PlayerFunc(func(_ context.Context, is engine.InformationSet) (engine.Card, error) {
		c, _ := engine.FullDeck.Minus(is.LegalActions()).Lowest()
		return c, nil
	})
	deal := engine.DealSeeded(1, engine.West, engine.Hold)
	_, err := PlayDeal(context.Background(), deal, uniform(cheat), nil)
	assert.ErrorIs(t, err, engine.ErrIllegalCard)
}

func TestPlayDealPlayerError(t *testing.T) {
	boom := errors.New("model unavailable")
	p := agent.PlayerFunc(func(context.Context, engine.InformationSet) (engine.Card, error) {
		return 0, boom
	})
	deal := engine.DealSeeded(1, engine.West, engine.Left)
	_, err := PlayDeal(context.Background(), deal, uniform(p), nil)
	assert.ErrorIs(t, err, boom)
}

func TestPlayGame(t *testing.T) {
	g, err := PlayGame(context.Background(), engine.DefaultRules(), 99, uniform(agent.NewRandomPlayer(1)))
	require.NoError(t, err)
	require.True(t, g.IsOver())
	assert.Greater(t, g.NumDeals, 0)
	assert.NotEmpty(t, g.Winners())

	again, err := PlayGame(context.Background(), engine.DefaultRules(), 99, uniform(agent.NewRandomPlayer(1)))
	require.NoError(t, err)
	assert.Equal(t, g, again)
}

func TestRunIsIndependentOfWorkers(t *testing.T) {
	ctx := context.Background()
	players := uniform(agent.NewRandomPlayer(5))

	cfg1, _ := quietConfig(t, 40, 1)
	serial, err := Run(ctx, cfg1, players)
	require.NoError(t, err)

	cfg8, hook := quietConfig(t, 40, 8)
	parallel, err := Run(ctx, cfg8, players)
	require.NoError(t, err)

	assert.Equal(t, serial.Deals, parallel.Deals)
	assert.Equal(t, serial.Total, parallel.Total)
	assert.Equal(t, serial.Payoff, parallel.Payoff)
	assert.NotEqual(t, serial.RunID, parallel.RunID)

	for i, dr := range parallel.Deals {
		assert.Equal(t, i, dr.Index)
		assert.Equal(t, engine.Seat(i%4), dr.Dealer)
		assert.Equal(t, engine.DirectionForDeal(i), dr.Direction)
		assert.Equal(t, engine.TotalPoints, dr.Points.Sum())
	}

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Run finished", last.Message)
	assert.Equal(t, logrus.InfoLevel, last.Level)
}

func TestPayoff(t *testing.T) {
	assert.Equal(t, [engine.NumSeats]float64{}, Payoff(nil))

	p := Payoff([]engine.Score{{26, 0, 0, 0}})
	assert.InDelta(t, -26.0, p[engine.West], 1e-9)
	assert.InDelta(t, 26.0/3, p[engine.North], 1e-9)

	p = Payoff([]engine.Score{{3, 13, 10, 0}, {0, 26, 26, 26}, {-26, 0, 0, 0}})
	sum := 0.0
	for _, v := range p {
		sum += v
	}
	assert.InDelta(t, 0, sum, 1e-9, "payoffs are zero-sum")
}

func TestBenchmark(t *testing.T) {
	cfg, _ := quietConfig(t, 24, 4)
	payoff, res, err := Benchmark(context.Background(), cfg, agent.NewRandomPlayer(2), agent.LowestPlayer{}, engine.North)
	require.NoError(t, err)
	assert.Equal(t, res.Payoff[engine.North], payoff)
	assert.Len(t, res.Deals, 24)
}

func TestRunRecordsDeals(t *testing.T) {
	cfg, _ := quietConfig(t, 8, 3)
	sink := &memorySink{}
	cfg.Records = sink
	_, err := Run(context.Background(), cfg, uniform(agent.LowestPlayer{}))
	require.NoError(t, err)

	require.Len(t, sink.records, 8)
	for _, r := range sink.records {
		_, err := replay.Replay(r, nil)
		assert.NoError(t, err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg, _ := quietConfig(t, 16, 2)
	_, err := Run(ctx, cfg, uniform(agent.LowestPlayer{}))
	assert.ErrorIs(t, err, context.Canceled)
}
