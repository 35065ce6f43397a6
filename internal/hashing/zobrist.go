package hashing

import (
	"math/rand"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// zobristSeed fixes the key table across runs.
const zobristSeed = 0x70676e74

var (
	pieceKeys [2][chess.King + 1][chess.BoardSize * chess.BoardSize]uint64
	blackKey  uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = rng.Uint64()
			}
		}
	}
	blackKey = rng.Uint64()
}

// GenerateZobristHash returns the Zobrist key of a board's placement.
func GenerateZobristHash(board *chess.Board) uint64 {
	var h uint64
	if board == nil {
		return h
	}
	for _, p := range board.Pieces {
		if !p.Square.IsValid() || p.Kind <= chess.Empty || p.Kind > chess.King {
			continue
		}
		h ^= pieceKeys[p.Colour][p.Kind][p.Square.Index()]
	}
	return h
}

// Key combines the placement key with the side to move.
func Key(board *chess.Board, toMove chess.Colour) uint64 {
	h := GenerateZobristHash(board)
	if toMove == chess.Black {
		h ^= blackKey
	}
	return h
}

// PositionKey returns the key of the position after a resolved turn, or 0.
func PositionKey(turn *chess.Turn) uint64 {
	if turn == nil || turn.Position == nil {
		return 0
	}
	return Key(turn.Position, turn.Colour.Opposite())
}

// WeakHash is a cheap secondary check on a board: a weighted sum over the
// occupied squares.
func WeakHash(board *chess.Board) uint32 {
	var h uint32
	if board == nil {
		return h
	}
	for _, p := range board.Pieces {
		if !p.Square.IsValid() {
			continue
		}
		h += uint32(p.Square.Index()+1) * uint32(int(p.Kind)+7*int(p.Colour))
	}
	return h
}
