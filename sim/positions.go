package sim

import (
	"fmt"
	"math/rand"
)

// BlockPositions describes one response block's relevant-position request:
// the target set size and the user-given core positions (1-based).
type BlockPositions struct {
	Count int
	Core  []int
}

// AllocatePositions partitions the 1-based index range [1, total] into one
// relevant set per block plus the residual irrelevant set. Each returned set
// starts with its core positions and is extended to Count by sampling without
// replacement, uniformly, from the pool of indices not yet claimed by any
// block. Blocks are processed in declaration order, so later blocks can never
// reuse positions claimed by earlier ones; the returned sets are pairwise
// disjoint by construction.
//
// Draw order: for each block in order, one rng.Intn draw per extension slot.
func AllocatePositions(total int, blocks []BlockPositions, rng *rand.Rand) ([][]int, []int, error) {
	claimed := make(map[int]bool, total)
	for bi, b := range blocks {
		if b.Count < len(b.Core) {
			return nil, nil, fmt.Errorf("%w: block %d requests %d positions but lists %d core positions",
				ErrInvalidPosition, bi+1, b.Count, len(b.Core))
		}
		for _, pos := range b.Core {
			if pos < 1 || pos > total {
				return nil, nil, fmt.Errorf("%w: block %d position %d outside [1, %d]",
					ErrInvalidPosition, bi+1, pos, total)
			}
			if claimed[pos] {
				return nil, nil, fmt.Errorf("%w: position %d claimed twice", ErrInvalidPosition, pos)
			}
			claimed[pos] = true
		}
	}

	// Unclaimed indices in ascending order form the shared pool.
	pool := make([]int, 0, total-len(claimed))
	for pos := 1; pos <= total; pos++ {
		if !claimed[pos] {
			pool = append(pool, pos)
		}
	}

	sets := make([][]int, len(blocks))
	for bi, b := range blocks {
		set := make([]int, 0, b.Count)
		set = append(set, b.Core...)
		need := b.Count - len(b.Core)
		if need > len(pool) {
			return nil, nil, fmt.Errorf("%w: block %d needs %d extra positions, only %d unclaimed",
				ErrInvalidPosition, bi+1, need, len(pool))
		}
		for i := 0; i < need; i++ {
			j := rng.Intn(len(pool))
			set = append(set, pool[j])
			pool = append(pool[:j], pool[j+1:]...)
		}
		sets[bi] = set
	}

	irrelevant := make([]int, len(pool))
	copy(irrelevant, pool)
	return sets, irrelevant, nil
}
