package world

import "sync/atomic"

// firstMonsterID is where IDs start. 0 is reserved for "no source".
const firstMonsterID = 0x20000000

// IDGenerator hands out monster IDs.
// One generator is shared by every level of a run so that attribution IDs
// never collide, even when levels are simulated on separate goroutines.
type IDGenerator struct {
	next atomic.Uint32
}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	gen := &IDGenerator{}
	gen.next.Store(firstMonsterID)
	return gen
}

// Next generates the next unique monster ID.
// Thread-safe via atomic increment.
func (g *IDGenerator) Next() uint32 {
	return g.next.Add(1)
}

// Observe makes sure future IDs are greater than id.
// Used after restoring monsters whose IDs were issued by an earlier run.
func (g *IDGenerator) Observe(id uint32) {
	for {
		cur := g.next.Load()
		if cur >= id || g.next.CompareAndSwap(cur, id) {
			return
		}
	}
}
