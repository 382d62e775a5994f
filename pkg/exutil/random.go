package exutil

import (
	"math/rand/v2"
	"sync"
	"time"
)

// IDGenerator produces 16-bit request identifiers. Each value is a
// pseudo-random draw plus a running counter, so consecutive identifiers
// differ even if the source repeats itself.
// It is safe for concurrent use.
type IDGenerator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	counter uint16
}

// NewIDGenerator creates a generator with a deterministic seed.
func NewIDGenerator(seed uint64) *IDGenerator {
	return &IDGenerator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns the next identifier.
func (g *IDGenerator) Next() uint16 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := uint16(g.rng.Uint32()) + g.counter
	g.counter++
	return id
}

var defaultIDs = NewIDGenerator(uint64(time.Now().UnixNano()))

// RandomID returns a pseudo-random 16-bit identifier from the process-wide
// generator. It never fails.
func RandomID() uint16 {
	return defaultIDs.Next()
}
