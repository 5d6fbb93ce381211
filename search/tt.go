package search

import (
	"sync"
	"sync/atomic"

	"github.com/gorgonia/tsumego/game"
)

const ttVeryOldGenerations = 8

// provenDepth is the depth recorded for proven entries. A proof holds at
// any depth, so proven entries never look shallow.
const provenDepth int8 = 127

// TTEntry is one transposition table slot. Score is a negamax ordinal from
// the side to move of the keyed position; Proven marks game-theoretic
// results as opposed to depth-limited ones.
type TTEntry struct {
	Key         uint64
	Score       int8
	Depth       int8
	Flag        Bound
	Proven      bool
	Best        game.Single
	HasBest     bool
	GenWritten  uint32
	GenLastUsed uint32
	Valid       bool
}

// TranspositionTable is a bounded, bucketed map from position keys to
// entries. Locking is striped so parallel root workers contend rarely.
// Replacement is strictly by strength: a proven entry is never displaced by
// an unproven one.
type TranspositionTable struct {
	mask        uint64
	buckets     int
	entries     []TTEntry
	stripeLocks []sync.Mutex
	stripeMask  uint64
	gen         atomic.Uint32
}

func NewTranspositionTable(size uint64, buckets int) *TranspositionTable {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	if (size & (size - 1)) != 0 {
		size = nextPowerOfTwo(size)
	}
	maxStripes := 64
	if int(size) < maxStripes {
		maxStripes = int(size)
	}
	stripes := 1
	for stripes*2 <= maxStripes {
		stripes *= 2
	}
	tt := &TranspositionTable{
		mask:        size - 1,
		buckets:     buckets,
		entries:     make([]TTEntry, int(size)*buckets),
		stripeLocks: make([]sync.Mutex, stripes),
		stripeMask:  uint64(stripes - 1),
	}
	tt.gen.Store(1)
	return tt
}

// NextGeneration ages the table. Called once per deepening iteration.
func (tt *TranspositionTable) NextGeneration() {
	gen := tt.gen.Add(1)
	if gen == 0 {
		tt.gen.CompareAndSwap(0, 1)
	}
}

func (tt *TranspositionTable) Generation() uint32 { return tt.currentGeneration() }

func (tt *TranspositionTable) Clear() {
	tt.lockAllStripes()
	defer tt.unlockAllStripes()
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.gen.Store(1)
}

func (tt *TranspositionTable) bucketIndex(key uint64) int {
	return int(key&tt.mask) * tt.buckets
}

func (tt *TranspositionTable) stripeIndexForKey(key uint64) int {
	return int((key & tt.mask) & tt.stripeMask)
}

func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	stripe := tt.stripeIndexForKey(key)
	tt.stripeLocks[stripe].Lock()
	defer tt.stripeLocks[stripe].Unlock()
	gen := tt.currentGeneration()
	start := tt.bucketIndex(key)
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		if !entry.Valid || entry.Key != key {
			continue
		}
		entry.GenLastUsed = gen
		tt.entries[idx] = entry
		return entry, true
	}
	return TTEntry{}, false
}

// Store records a result. Weaker results never displace stronger ones:
// existing entries for the same key are only overwritten per
// shouldReplaceByRules, and victim selection prefers unproven slots.
func (tt *TranspositionTable) Store(key uint64, score int8, depth int8, flag Bound, proven bool, best game.Single, hasBest bool) (replaced bool, overwrote bool) {
	stripe := tt.stripeIndexForKey(key)
	tt.stripeLocks[stripe].Lock()
	defer tt.stripeLocks[stripe].Unlock()
	gen := tt.currentGeneration()
	if proven {
		depth = provenDepth
	}
	start := tt.bucketIndex(key)

	fresh := TTEntry{
		Key:         key,
		Score:       score,
		Depth:       depth,
		Flag:        flag,
		Proven:      proven,
		Best:        best,
		HasBest:     hasBest,
		GenWritten:  gen,
		GenLastUsed: gen,
		Valid:       true,
	}

	// exact key hit: only replace under strict policy
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		if !entry.Valid || entry.Key != key {
			continue
		}
		if !shouldReplaceByRules(entry, depth, flag, proven, gen) {
			return false, false
		}
		tt.entries[idx] = fresh
		return false, true
	}

	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		if tt.entries[idx].Valid {
			continue
		}
		tt.entries[idx] = fresh
		return false, false
	}

	victim := -1
	victimClass := 0
	victimAge := uint32(0)
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		class := replacementClass(entry, depth, flag, proven, gen)
		if class == 0 {
			continue
		}
		age := entryAge(gen, entry)
		if victim == -1 || class < victimClass || (class == victimClass && age > victimAge) {
			victim = idx
			victimClass = class
			victimAge = age
		}
	}
	if victim == -1 {
		return false, false
	}
	tt.entries[victim] = fresh
	return true, false
}

func (tt *TranspositionTable) Count() int {
	tt.lockAllStripes()
	defer tt.unlockAllStripes()
	count := 0
	for i := range tt.entries {
		if tt.entries[i].Valid {
			count++
		}
	}
	return count
}

func (tt *TranspositionTable) Capacity() int {
	if tt == nil {
		return 0
	}
	return len(tt.entries)
}

func (tt *TranspositionTable) currentGeneration() uint32 {
	gen := tt.gen.Load()
	if gen != 0 {
		return gen
	}
	if tt.gen.CompareAndSwap(0, 1) {
		return 1
	}
	gen = tt.gen.Load()
	if gen == 0 {
		return 1
	}
	return gen
}

func (tt *TranspositionTable) lockAllStripes() {
	for i := range tt.stripeLocks {
		tt.stripeLocks[i].Lock()
	}
}

func (tt *TranspositionTable) unlockAllStripes() {
	for i := len(tt.stripeLocks) - 1; i >= 0; i-- {
		tt.stripeLocks[i].Unlock()
	}
}

// replacementClass ranks entries as eviction victims. 0 means never evict
// for this candidate; lower non-zero classes are preferred.
func replacementClass(entry TTEntry, depth int8, flag Bound, proven bool, gen uint32) int {
	if entry.Proven && !proven {
		return 0
	}
	if proven && !entry.Proven {
		return 1
	}
	if depth > entry.Depth {
		return 2
	}
	if depth == entry.Depth && flag == Exact && entry.Flag != Exact {
		return 3
	}
	if depth == entry.Depth && flag == entry.Flag && entryAge(gen, entry) >= ttVeryOldGenerations {
		return 4
	}
	return 0
}

func shouldReplaceByRules(entry TTEntry, depth int8, flag Bound, proven bool, gen uint32) bool {
	return replacementClass(entry, depth, flag, proven, gen) != 0
}

func entryAge(gen uint32, entry TTEntry) uint32 {
	last := entry.GenLastUsed
	if last == 0 {
		last = entry.GenWritten
	}
	return gen - last
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
