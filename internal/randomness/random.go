// Package randomness routes every random pick (user agents, variants, delay
// jitter, batch sizes) through one injectable source.
package randomness

import (
	"math/rand/v2"
	"sync"
)

// Source is satisfied by *rand.Rand from math/rand/v2.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Locked serializes access to a Source shared between goroutines.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// NewSeeded builds a goroutine-safe PCG source.
func NewSeeded(seed1, seed2 uint64) *Locked {
	return NewLocked(rand.New(rand.NewPCG(seed1, seed2)))
}

// New builds a goroutine-safe source seeded from the runtime.
func New() *Locked {
	return NewSeeded(rand.Uint64(), rand.Uint64())
}

func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Pick returns a uniformly random element of items, or the zero value when empty.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.IntN(len(items))]
}
