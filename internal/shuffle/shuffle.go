// Package shuffle draws file indices in a non-repeating pseudo-random
// order: every index in [1, count] comes out once before any repeats, the
// same index is never returned twice in a row (even across table
// regenerations), and when only odd-numbered files are addressable the
// selector skips even indices entirely.
package shuffle

import (
	"math/rand"
	"time"
)

// maxTable bounds the permutation table; cards hold at most a few hundred
// tracks.
const maxTable = 512

// Selector owns the permutation table and cursor. Not safe for concurrent
// use; the control loop is single-threaded.
type Selector struct {
	count  int
	step   int // 1, or 2 when only odd indices are addressable
	table  []int
	cursor int
	last   int // previously returned index, 0 before the first draw
	rng    *rand.Rand
}

// New creates a selector over [1, count]. step must be 1 or 2; 2 restricts
// draws to odd indices. A nil rng gets a time-seeded source.
func New(count, step int, rng *rand.Rand) *Selector {
	if count > maxTable {
		count = maxTable
	}
	if count < 1 {
		count = 1
	}
	if step != 2 {
		step = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{count: count, step: step, rng: rng}
}

// Next returns the next file index. Draws that violate the odd-only
// constraint are consumed and skipped; table exhaustion triggers a
// regeneration, so the walk always terminates.
func (s *Selector) Next() int {
	for {
		if s.table == nil || s.cursor >= len(s.table) {
			s.regenerate()
		}
		v := s.table[s.cursor]
		s.cursor++
		if s.step == 2 && v%2 == 0 {
			continue
		}
		s.last = v
		return v
	}
}

// regenerate reshuffles the table in place and resets the cursor. If the
// first entry Next would return equals the previously returned index, the
// cursor starts past it, so the same track never plays back to back across
// the shuffle boundary. The comparison must look at the first returnable
// entry, not table[0]: with the odd-only constraint the leading entries may
// all be skipped.
func (s *Selector) regenerate() {
	if s.table == nil {
		s.table = make([]int, s.count)
		for i := range s.table {
			s.table[i] = i + 1
		}
	}

	// Fisher–Yates, last index down to 1.
	for i := len(s.table) - 1; i >= 1; i-- {
		j := s.rng.Intn(i + 1)
		s.table[i], s.table[j] = s.table[j], s.table[i]
	}

	s.cursor = 0
	if i, ok := s.firstReturnable(0); ok && s.table[i] == s.last {
		// Skip only when another returnable value exists; with a single
		// returnable file, repeats are unavoidable.
		if _, ok := s.firstReturnable(i + 1); ok {
			s.cursor = i + 1
		}
	}
}

// firstReturnable finds the index of the first table entry at or after from
// that Next would return under the current step constraint.
func (s *Selector) firstReturnable(from int) (int, bool) {
	for i := from; i < len(s.table); i++ {
		if s.step == 2 && s.table[i]%2 == 0 {
			continue
		}
		return i, true
	}
	return 0, false
}

// Count returns the number of selectable files.
func (s *Selector) Count() int { return s.count }

// Step returns the configured index step size.
func (s *Selector) Step() int { return s.step }
