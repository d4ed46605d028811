// Package agent implements the canonical feature encoding of an
// information set and the decision-function interface consumed by
// self-play and solver code.
package agent

import engine "github.com/brianberns/hearts/engine"

const (
	NumOtherSeats = engine.NumSeats - 1 // 3

	// Feature layout. Every seat-indexed block is relative to the acting
	// player: relative seat 0 is the player, 1 the next seat, and so on.
	HandOffset  = 0
	HandDim     = engine.NumCards // own hand, multi-hot
	OtherOffset = HandOffset + HandDim
	OtherDim    = engine.NumCards // unplayed cards not in own hand, multi-hot
	TrickOffset = OtherOffset + OtherDim
	TrickDim    = NumOtherSeats * engine.NumCards // current-trick card per other seat, one-hot or empty
	VoidOffset  = TrickOffset + TrickDim
	VoidDim     = engine.NumSuits * NumOtherSeats // suit-major, then relative seat
	ScoreOffset = VoidOffset + VoidDim
	ScoreDim    = engine.NumSeats // raw deal points per relative seat

	FlagDim       = ScoreOffset // 272 one-bit flags precede the score bytes
	EncodedLength = ScoreOffset + ScoreDim // 276
)

const (
	// KeyOffset is added to each packed byte to form a printable rune.
	// Runes U+0100..U+01FF are all assigned letters.
	KeyOffset = 0x100

	// KeyLength is the number of runes in a key: flags packed eight per
	// byte, then one byte per score entry.
	KeyLength = (FlagDim+7)/8 + ScoreDim // 38
)
