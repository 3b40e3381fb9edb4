package common

import "github.com/grailbio/base/log"

// maxBgzfMemberSize is the largest a single BGZF member (header + CDATA +
// footer) may be: BSIZE is a uint16, so total member size is at most 2^16.
const maxBgzfMemberSize = 65536

// ByteArena is a fixed-capacity, non-allocating scratch buffer sized to hold
// one compressed BGZF member. It plays the role of the FiniteCapacityVector
// scratch arenas a BgzfReader worker owns in the original implementation
// (include/common/FiniteCapacityVector.hh): push/resize never grow the
// backing array, they only move the length cursor within it.
type ByteArena struct {
	data [maxBgzfMemberSize]byte
	n    int
}

// Reset clears the arena's length without touching its backing array.
func (a *ByteArena) Reset() { a.n = 0 }

// Len returns the number of valid bytes currently in the arena.
func (a *ByteArena) Len() int { return a.n }

// Cap returns the arena's fixed capacity.
func (a *ByteArena) Cap() int { return len(a.data) }

// Bytes returns the valid prefix of the arena.
func (a *ByteArena) Bytes() []byte { return a.data[:a.n] }

// Grow extends the arena's valid length by n bytes and returns that new
// suffix for the caller to fill in-place (e.g. via io.ReadFull).
//
// Panics if the arena's capacity would be exceeded: overflow here is a
// programming error (a BGZF member larger than 64KiB is not legal per the
// format), not a runtime-recoverable failure.
func (a *ByteArena) Grow(n int) []byte {
	if a.n+n > len(a.data) {
		log.Panicf("bgzf: ByteArena overflow: %d + %d > %d", a.n, n, len(a.data))
	}
	start := a.n
	a.n += n
	return a.data[start:a.n]
}

// CigarVector is a fixed-capacity (64 ops), non-allocating sequence of
// CigarOp. alignment.Template uses it as its shared, append-only CIGAR
// buffer: it holds both fragments' original ops plus every clip-site run
// appended later, and Push panics once the 64 ops are used up.
type CigarVector struct {
	ops [64]CigarOp
	n   int
}

// Clear empties the vector.
func (v *CigarVector) Clear() { v.n = 0 }

// Len returns the number of ops currently stored.
func (v *CigarVector) Len() int { return v.n }

// Push appends op to the vector.
//
// Panics on overflow, a programming error per spec §4.4.
func (v *CigarVector) Push(op CigarOp) {
	if v.n >= len(v.ops) {
		log.Panicf("alignment: CigarVector overflow (capacity %d)", len(v.ops))
	}
	v.ops[v.n] = op
	v.n++
}

// PushAll appends every op in ops, in order.
func (v *CigarVector) PushAll(ops []CigarOp) {
	for _, op := range ops {
		v.Push(op)
	}
}

// Ops returns the valid prefix of the vector.
func (v *CigarVector) Ops() []CigarOp { return v.ops[:v.n] }
