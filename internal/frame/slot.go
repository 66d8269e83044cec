// Package frame holds a single-slot, last-write-wins exchange between one
// writer goroutine and any number of readers.
package frame

import "sync"

// Slot keeps only the most recent value. Writers take the lock; a reader
// always sees a complete value and never waits on a queue.
type Slot[T any] struct {
	mu      sync.RWMutex
	value   T
	seq     uint64
	changed chan struct{}
}

// NewSlot creates a slot holding the zero value at sequence 0.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{changed: make(chan struct{}, 1)}
}

// Put replaces the held value and wakes at most one waiter on Changed.
func (s *Slot[T]) Put(v T) uint64 {
	s.mu.Lock()
	s.value = v
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	select {
	case s.changed <- struct{}{}:
	default:
	}
	return seq
}

// Latest returns the held value and its sequence number. Sequence 0 means
// nothing has been written yet.
func (s *Slot[T]) Latest() (T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.seq
}

// Changed signals after one or more Puts. Several Puts between receives
// collapse into one signal.
func (s *Slot[T]) Changed() <-chan struct{} {
	return s.changed
}
