package alphabeta

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/go5/board"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 32

const depthMask = (1 << 6) - 1

const (
	minSizePowerOf2 = 8
	maxSizePowerOf2 = 26
)

// Policy decides what happens when a store lands on an occupied slot.
type Policy int

const (
	// AlwaysOverwrite lets the latest store win.
	AlwaysOverwrite Policy = iota
	// KeepDeepest only replaces an entry searched at least as deep.
	KeepDeepest
)

func (p Policy) String() string {
	switch p {
	case AlwaysOverwrite:
		return "always-overwrite"
	case KeepDeepest:
		return "keep-deepest"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "always-overwrite", "":
		return AlwaysOverwrite, nil
	case "keep-deepest":
		return KeepDeepest, nil
	}
	return AlwaysOverwrite, fmt.Errorf("unknown transposition table policy %q", s)
}

// 32 bytes (entrySize)
type TableEntry struct {
	key uint64
	// check is an independent digest of the board, only filled in when
	// verification is on.
	check        uint64
	score        float64
	flagAndDepth uint8
}

func (t TableEntry) flag() uint8 {
	return t.flagAndDepth >> 6
}

// depth is the number of plies that were still to be searched below the
// node when the entry was stored.
func (t TableEntry) depth() uint8 {
	return t.flagAndDepth & depthMask
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag() != 0
}

type TranspositionTable struct {
	table        []TableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	policy       Policy
	verify       bool
	// "type 2" collisions. A type 2 collision happens when two positions share
	// the same slot. A type 1 collision happens when two positions share the
	// same overall hash; those are only detected when verify is on.
	t2collisions atomic.Uint64
	t1collisions atomic.Uint64
}

// NewTranspositionTable allocates a table of 2^sizePowerOf2 entries,
// shrunk if needed so it takes at most fractionOfMemory of system memory.
func NewTranspositionTable(sizePowerOf2 int, fractionOfMemory float64, policy Policy) *TranspositionTable {
	t := &TranspositionTable{policy: policy}
	t.Reset(sizePowerOf2, fractionOfMemory)
	return t
}

// SetVerify turns on board digests for detecting full-key collisions.
func (t *TranspositionTable) SetVerify(v bool) {
	t.verify = v
}

func (t *TranspositionTable) Policy() Policy {
	return t.policy
}

func digest(b *board.Board) uint64 {
	var buf [board.NumPoints]byte
	for i, c := range b {
		buf[i] = byte(c)
	}
	return xxhash.Sum64(buf[:])
}

func (t *TranspositionTable) lookup(zval uint64, b *board.Board) TableEntry {
	t.lookups.Add(1)
	idx := zval & t.sizeMask
	entry := t.table[idx]
	if entry.key != zval || !entry.valid() {
		if entry.valid() {
			// There is another unrelated node at this position.
			t.t2collisions.Add(1)
		}
		return TableEntry{}
	}
	if t.verify && entry.check != digest(b) {
		// Same key, different board. Counted but otherwise trusted.
		t.t1collisions.Add(1)
	}
	t.hits.Add(1)
	return entry
}

func (t *TranspositionTable) store(zval uint64, b *board.Board, tentry TableEntry) {
	idx := zval & t.sizeMask
	if t.policy == KeepDeepest {
		old := t.table[idx]
		if old.valid() && old.depth() > tentry.depth() {
			return
		}
	}
	tentry.key = zval
	if t.verify {
		tentry.check = digest(b)
	}
	t.table[idx] = tentry
	t.created.Add(1)
}

func (t *TranspositionTable) Reset(sizePowerOf2 int, fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	if sizePowerOf2 < minSizePowerOf2 {
		sizePowerOf2 = minSizePowerOf2
	}
	if sizePowerOf2 > maxSizePowerOf2 {
		sizePowerOf2 = maxSizePowerOf2
	}
	if totalMem > 0 && fractionOfMemory > 0 {
		maxElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
		// find biggest power of 2 lower than allowed.
		if capped := int(math.Log2(maxElems)); capped < sizePowerOf2 {
			sizePowerOf2 = max(capped, minSizePowerOf2)
		}
	}
	t.sizePowerOf2 = sizePowerOf2

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}

	log.Debug().Int("num-elems", numElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Str("policy", t.policy.String()).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
	t.t1collisions.Store(0)
}

// TTStats is a snapshot of the table's counters.
type TTStats struct {
	Created      uint64
	Lookups      uint64
	Hits         uint64
	T2Collisions uint64
	T1Collisions uint64
}

func (t *TranspositionTable) Stats() TTStats {
	return TTStats{
		Created:      t.created.Load(),
		Lookups:      t.lookups.Load(),
		Hits:         t.hits.Load(),
		T2Collisions: t.t2collisions.Load(),
		T1Collisions: t.t1collisions.Load(),
	}
}
