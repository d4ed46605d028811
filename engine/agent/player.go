package agent

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"

	engine "github.com/brianberns/hearts/engine"
)

// Player is the decision function consumed by the self-play harness. It
// must return one of is.LegalActions(); anything else is rejected by the
// deal, never corrected.
type Player interface {
	Act(ctx context.Context, is engine.InformationSet) (engine.Card, error)
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(ctx context.Context, is engine.InformationSet) (engine.Card, error)

// Act calls f.
func (f PlayerFunc) Act(ctx context.Context, is engine.InformationSet) (engine.Card, error) {
	return f(ctx, is)
}

// LowestPlayer always picks the legal action with the lowest card index,
// which is also the default action for unknown states.
type LowestPlayer struct{}

// Act returns legal action 0.
func (LowestPlayer) Act(_ context.Context, is engine.InformationSet) (engine.Card, error) {
	c, ok := is.LegalActions().Lowest()
	if !ok {
		return 0, fmt.Errorf("%v has no legal actions", is.Player)
	}
	return c, nil
}

// RandomPlayer picks uniformly among legal actions. The choice is a hash of
// the seed and the encoded information set, so it is reproducible and safe
// to share between goroutines.
type RandomPlayer struct {
	Seed uint64
}

// NewRandomPlayer returns a RandomPlayer with the given seed.
func NewRandomPlayer(seed uint64) RandomPlayer { return RandomPlayer{Seed: seed} }

// Act picks a legal action.
func (p RandomPlayer) Act(_ context.Context, is engine.InformationSet) (engine.Card, error) {
	legal := is.LegalActionsList()
	if len(legal) == 0 {
		return 0, fmt.Errorf("%v has no legal actions", is.Player)
	}
	u := HashUnit(p.Seed, Encode(is).Key())
	return legal[int(u*float64(len(legal)))%len(legal)], nil
}

// HashUnit maps (seed, key) to a number in [0, 1) using FNV-1a.
func HashUnit(seed uint64, key string) float64 {
	h := fnv.New64a()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	h.Write(b[:])
	h.Write([]byte(key))
	return float64(h.Sum64()>>11) / float64(1<<53)
}

// SampleIndex returns the index selected by u in [0, 1) from a probability
// distribution. Weights need not be normalized; an all-zero or empty
// distribution returns 0.
func SampleIndex(probs []float64, u float64) int {
	total := 0.0
	for _, p := range probs {
		if p > 0 {
			total += p
		}
	}
	if total <= 0 {
		return 0
	}
	target := u * total
	acc := 0.0
	last := 0
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		acc += p
		last = i
		if target < acc {
			return i
		}
	}
	return last
}
