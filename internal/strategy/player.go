package strategy

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	engine "github.com/brianberns/hearts/engine"
	"github.com/brianberns/hearts/engine/agent"
)

// Fallback is the policy for information sets missing from the store.
type Fallback uint8

const (
	FallbackFirst   Fallback = iota // legal action index 0
	FallbackUniform                 // uniform over legal actions
)

// Player plays by looking up each information set in a Store.
type Player struct {
	store    Store
	seed     uint64
	greedy   bool
	fallback Fallback
	log      logrus.FieldLogger

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Player.
type Option func(*Player)

// WithSeed sets the seed used when sampling from distributions.
func WithSeed(seed uint64) Option { return func(p *Player) { p.seed = seed } }

// WithGreedy makes the player take the most probable action instead of
// sampling.
func WithGreedy() Option { return func(p *Player) { p.greedy = true } }

// WithFallback sets the unknown-state policy.
func WithFallback(f Fallback) Option { return func(p *Player) { p.fallback = f } }

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option { return func(p *Player) { p.log = log } }

// NewPlayer returns a Player backed by store.
func NewPlayer(store Store, opts ...Option) *Player {
	p := &Player{store: store, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Act implements agent.Player. Store errors and strategies that do not fit
// the legal actions are returned as errors.
func (p *Player) Act(ctx context.Context, is engine.InformationSet) (engine.Card, error) {
	legal := is.LegalActionsList()
	if len(legal) == 0 {
		return 0, fmt.Errorf("%v has no legal actions", is.Player)
	}
	key := agent.Encode(is).Key()
	st, found, err := p.store.Lookup(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("lookup strategy: %w", err)
	}
	u := agent.HashUnit(p.seed, key)

	if !found {
		p.misses.Add(1)
		if p.fallback == FallbackUniform {
			return legal[int(u*float64(len(legal)))%len(legal)], nil
		}
		return legal[0], nil
	}
	p.hits.Add(1)

	if !st.IsDistribution() {
		if st.Index < 0 || st.Index >= len(legal) {
			return 0, fmt.Errorf("strategy index %d out of range for %d legal actions", st.Index, len(legal))
		}
		return legal[st.Index], nil
	}
	if len(st.Probs) != len(legal) {
		return 0, fmt.Errorf("strategy has %d probabilities for %d legal actions", len(st.Probs), len(legal))
	}
	if p.greedy {
		return legal[argmax(st.Probs)], nil
	}
	return legal[agent.SampleIndex(st.Probs, u)], nil
}

// Hits returns how many lookups found a strategy.
func (p *Player) Hits() int64 { return p.hits.Load() }

// Misses returns how many lookups fell back.
func (p *Player) Misses() int64 { return p.misses.Load() }

// LogStats reports hit and miss counts.
func (p *Player) LogStats() {
	p.log.WithFields(logrus.Fields{
		"hits":   p.Hits(),
		"misses": p.Misses(),
	}).Info("Strategy lookups")
}

func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}
