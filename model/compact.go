package model

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/gomip/gomip/internal/utils"
)

// handle is the collections' view over *Var and *Constr: a mutable index
// cell written only by the collection holding the entity.
type handle interface {
	owner() *Model
	index() int
	setIndex(int)
}

// markRemovals builds the removal bitmap over a collection of length n and
// the sorted, deduplicated engine positions for a batch of handles.
//
// Handles already detached are skipped, so removal is idempotent. A handle
// owned by another model, or one whose index exceeds the collection (held
// across a Rebuild), is rejected before anything is marked.
func markRemovals[H handle](m *Model, n int, handles []H) (*bitset.BitSet, []int, error) {
	removed := bitset.New(uint(n))
	positions := make([]int, 0, len(handles))
	for _, h := range handles {
		if h.owner() != m {
			return nil, nil, fmt.Errorf("remove: %w", ErrForeignHandle)
		}
		i := h.index()
		if i == DetachedIndex {
			continue
		}
		if i >= n {
			return nil, nil, fmt.Errorf("remove: %w: handle index %d, collection length %d", ErrOutOfRange, i, n)
		}
		removed.Set(uint(i))
		positions = append(positions, i)
	}
	return removed, utils.SortedUnique(positions), nil
}

// compact walks seq once in original order: handles marked removed are
// detached, survivors receive dense zero-based indices preserving their
// relative order. Returns the compacted sequence.
func compact[H handle](seq []H, removed *bitset.BitSet) []H {
	n := 0
	for _, h := range seq {
		if removed.Test(uint(h.index())) {
			h.setIndex(DetachedIndex)
			continue
		}
		h.setIndex(n)
		seq[n] = h
		n++
	}
	return seq[:n]
}
