package agent

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	engine "github.com/brianberns/hearts/engine"
)

// ErrInvalidKey is returned by ParseKey for strings not produced by Key.
var ErrInvalidKey = errors.New("invalid encoding key")

// Encoding is the fixed-length feature vector of an information set.
// Entries before ScoreOffset are 0/1 flags; the last ScoreDim entries are
// raw point counts in [0, 26].
type Encoding [EncodedLength]byte

// Encode writes the seat-canonical feature vector for is. It is a pure
// function of the information set's content: the absolute seat of the
// acting player, the dealer, and the exchange direction do not appear.
func Encode(is engine.InformationSet) Encoding {
	var out Encoding
	player := is.Player
	deal := is.Deal

	offset := 0

	// Own hand: 52
	for _, c := range is.Hand.Cards() {
		out[offset+c.Index()] = 1
	}
	offset += HandDim
	// offset = 52

	// Other unplayed cards: 52
	others := deal.UnplayedCards().Minus(is.Hand)
	for _, c := range others.Cards() {
		out[offset+c.Index()] = 1
	}
	offset += OtherDim
	// offset = 104

	// Current trick, one 52-bit block per other seat in relative order: 156
	trick, hasTrick := deal.CurrentTrick()
	for rel := 1; rel < engine.NumSeats; rel++ {
		if hasTrick {
			if c, ok := trick.CardOf(player.Incr(rel)); ok {
				out[offset+c.Index()] = 1
			}
		}
		offset += engine.NumCards
	}
	// offset = 260

	// Voids, suit-major: 12
	for suit := engine.Suit(0); suit < engine.NumSuits; suit++ {
		for rel := 1; rel < engine.NumSeats; rel++ {
			if deal.IsVoid(player.Incr(rel), suit) {
				out[offset] = 1
			}
			offset++
		}
	}
	// offset = 272

	// Deal score per relative seat: 4
	for rel := 0; rel < engine.NumSeats; rel++ {
		out[offset] = byte(deal.Score[player.Incr(rel)])
		offset++
	}

	if offset != EncodedLength {
		panic(fmt.Sprintf("encoding length %d, want %d", offset, EncodedLength))
	}
	return out
}

// Bytes returns a copy of the raw feature vector.
func (e Encoding) Bytes() []byte {
	b := make([]byte, EncodedLength)
	copy(b, e[:])
	return b
}

// Floats returns the feature vector as float32 input for a network.
func (e Encoding) Floats() []float32 {
	out := make([]float32, EncodedLength)
	for i, v := range e {
		out[i] = float32(v)
	}
	return out
}

// Packed returns the flags packed eight per byte (LSB first) followed by
// the score bytes.
func (e Encoding) Packed() [KeyLength]byte {
	var p [KeyLength]byte
	for i := 0; i < FlagDim; i++ {
		if e[i] != 0 {
			p[i/8] |= 1 << (i % 8)
		}
	}
	copy(p[(FlagDim+7)/8:], e[ScoreOffset:])
	return p
}

// Key renders the packed encoding as a printable string, one rune per byte.
func (e Encoding) Key() string {
	p := e.Packed()
	var sb strings.Builder
	sb.Grow(KeyLength * 2)
	for _, b := range p {
		sb.WriteRune(rune(b) + KeyOffset)
	}
	return sb.String()
}

func (e Encoding) String() string { return e.Key() }

// ParseKey inverts Encoding.Key.
func ParseKey(key string) (Encoding, error) {
	var e Encoding
	if n := utf8.RuneCountInString(key); n != KeyLength {
		return e, fmt.Errorf("%w: %d runes, want %d", ErrInvalidKey, n, KeyLength)
	}
	var p [KeyLength]byte
	i := 0
	for _, r := range key {
		v := r - KeyOffset
		if v < 0 || v > 0xFF {
			return e, fmt.Errorf("%w: rune %U out of range", ErrInvalidKey, r)
		}
		p[i] = byte(v)
		i++
	}
	flagBytes := (FlagDim + 7) / 8
	for j := 0; j < FlagDim; j++ {
		if p[j/8]&(1<<(j%8)) != 0 {
			e[j] = 1
		}
	}
	// Bits past FlagDim in the last flag byte must be clear for a canonical key.
	if FlagDim%8 != 0 && p[flagBytes-1]>>(FlagDim%8) != 0 {
		return e, fmt.Errorf("%w: padding bits set", ErrInvalidKey)
	}
	copy(e[ScoreOffset:], p[flagBytes:])
	return e, nil
}

// ---------------------------------------------------------------------------
// Decoded views, used by tests and diagnostics
// ---------------------------------------------------------------------------

// Hand returns the own-hand block as a card set.
func (e Encoding) Hand() engine.CardSet { return e.cardBlock(HandOffset) }

// Others returns the other-unplayed block as a card set.
func (e Encoding) Others() engine.CardSet { return e.cardBlock(OtherOffset) }

// TrickCard returns the current-trick card of relative seat rel (1..3).
func (e Encoding) TrickCard(rel int) (engine.Card, bool) {
	return e.cardBlock(TrickOffset + (rel-1)*engine.NumCards).Lowest()
}

// IsVoid returns the void flag for relative seat rel (1..3).
func (e Encoding) IsVoid(rel int, suit engine.Suit) bool {
	return e[VoidOffset+int(suit)*NumOtherSeats+rel-1] != 0
}

// Score returns the deal points of relative seat rel (0..3).
func (e Encoding) Score(rel int) int { return int(e[ScoreOffset+rel]) }

func (e Encoding) cardBlock(offset int) engine.CardSet {
	var s engine.CardSet
	for i := 0; i < engine.NumCards; i++ {
		if e[offset+i] != 0 {
			s = s.Add(engine.Card(i))
		}
	}
	return s
}
