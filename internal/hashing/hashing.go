// Package hashing provides position keys, duplicate game detection and a
// transposition index over variation trees.
package hashing

import (
	"hash/fnv"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// DuplicateDetector tracks final positions for duplicate game detection.
type DuplicateDetector struct {
	// hashTable stores seen signatures by final-position key
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires equal main-line length
	useExactMatch bool
	// maxCapacity bounds stored signatures; 0 means unlimited
	maxCapacity int
	entries     int

	duplicateCount int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist key of the final main-line position
	Hash uint64
	// PlyCount is the number of main-line half-moves
	PlyCount int
	// WeakHash is a fast secondary hash of the same position
	WeakHash uint32
	// GameNum is the number of the game that was first seen
	GameNum int
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// Signature computes the signature of a resolved game.
func Signature(game *chess.Game) GameSignature {
	board := game.FinalPosition()
	toMove := chess.White
	if last := game.LastTurn(); last != nil && last.Resolved() {
		toMove = last.Colour.Opposite()
	}
	return GameSignature{
		Hash:     Key(board, toMove),
		PlyCount: game.PlyCount(),
		WeakHash: WeakHash(board),
		GameNum:  game.Number,
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns the signature of the earlier game and true if it is a duplicate.
// Once the detector is full new games are still checked but not stored.
func (d *DuplicateDetector) CheckAndAdd(game *chess.Game) (GameSignature, bool) {
	if game == nil || game.FinalPosition() == nil {
		return GameSignature{}, false
	}

	sig := Signature(game)
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing, true
		}
	}

	if !d.IsFull() {
		d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
		d.entries++
	}
	return sig, false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.PlyCount != b.PlyCount {
		return false
	}
	return true
}

// IsFull reports whether the detector has reached its capacity.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.entries >= d.maxCapacity
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.entries
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.entries = 0
	d.duplicateCount = 0
}

// HashType specifies what to hash for a game.
type HashType int

const (
	// HashFinalPosition hashes only the final position
	HashFinalPosition HashType = iota
	// HashAllPositions hashes every main-line position in order
	HashAllPositions
	// HashMoveSequence hashes the main-line move tokens
	HashMoveSequence
)

// GameHasher provides different hashing strategies for games.
type GameHasher struct {
	hashType HashType
}

// NewGameHasher creates a new game hasher with the specified strategy.
func NewGameHasher(ht HashType) *GameHasher {
	return &GameHasher{hashType: ht}
}

// HashGame generates a hash for a resolved game based on the hash type.
func (gh *GameHasher) HashGame(game *chess.Game) uint64 {
	switch gh.hashType {
	case HashAllPositions:
		h := Key(game.Board, chess.White)
		for _, turn := range game.Turns {
			h = h<<1 | h>>63
			h ^= PositionKey(turn)
		}
		return h
	case HashMoveSequence:
		return hashMoveSequence(game)
	default:
		return Signature(game).Hash
	}
}

// hashMoveSequence ignores annotations and move numbers.
func hashMoveSequence(game *chess.Game) uint64 {
	h := fnv.New64a()
	for _, turn := range game.Turns {
		h.Write([]byte(turn.Move))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
