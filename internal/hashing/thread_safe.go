package hashing

import (
	"sync"

	"github.com/lgbarn/pgn-turns-go/internal/chess"
)

// ThreadSafeDuplicateDetector is a DuplicateDetector shared by resolver
// workers, and by every request of a long-running server.
type ThreadSafeDuplicateDetector struct {
	mu    sync.RWMutex
	inner *DuplicateDetector
}

// NewThreadSafeDuplicateDetector creates a shared detector. exactMatch and
// maxCapacity are as for NewDuplicateDetector.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{inner: NewDuplicateDetector(exactMatch, maxCapacity)}
}

// CheckAndAdd looks game up and records it under one lock, so two workers
// finishing the same game cannot both see it as new.
func (d *ThreadSafeDuplicateDetector) CheckAndAdd(game *chess.Game) (GameSignature, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inner.CheckAndAdd(game)
}

// Seed adds the signatures recorded by other.
func (d *ThreadSafeDuplicateDetector) Seed(other *DuplicateDetector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, sigs := range other.hashTable {
		d.inner.hashTable[key] = append(d.inner.hashTable[key], sigs...)
		d.inner.entries += len(sigs)
	}
}

func (d *ThreadSafeDuplicateDetector) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.inner.DuplicateCount()
}

func (d *ThreadSafeDuplicateDetector) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.inner.UniqueCount()
}

// IsFull reports whether the capacity bound has been reached; new games
// are then checked but no longer recorded.
func (d *ThreadSafeDuplicateDetector) IsFull() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.inner.IsFull()
}
