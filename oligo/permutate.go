package oligo

import "github.com/grailbio/base/log"

// maxBlocks is the largest permitted block count: order/absoluteReverseOrder
// pack one 4-bit target index per block, so at most 16 blocks fit in a
// uint64-encoded order (§3.2, §4.2 "encodingBits").
const (
	maxBlocks     = 16
	encodingBits  = 4
	encodingMask  = 0xF
)

// Permutation rearranges the fixed-width blocks of a k-mer from one
// ordering ("from") to another ("to"). Both are permutations of
// {0,...,count-1}; BlockLength is the block size in bases.
//
// The Apply32/64/128 and Reorder32/64/128 methods are the only operations a
// caller needs: order and
// absoluteReverseOrder are precomputed encodings (§4.2) that make both O(count).
type Permutation struct {
	BlockLength int
	From        []int
	To          []int

	count                int
	order                uint64 // from -> to
	absoluteReverseOrder uint64 // to -> natural order 0,1,2,...
}

// NewPermutation constructs a Permutation. from and to must be equal-length
// permutations of {0,...,n-1} with n <= 16; violating this is a programming
// error (assertion), not a recoverable failure, per spec §4.2/§7.
func NewPermutation(blockLength int, from, to []int) Permutation {
	n := len(from)
	if len(to) != n {
		log.Panicf("oligo: from/to length mismatch: %d vs %d", n, len(to))
	}
	if n > maxBlocks {
		log.Panicf("oligo: block count %d exceeds maximum %d", n, maxBlocks)
	}
	requirePermutation(from)
	requirePermutation(to)

	fromCopy := append([]int(nil), from...)
	toCopy := append([]int(nil), to...)

	return Permutation{
		BlockLength:          blockLength,
		From:                 fromCopy,
		To:                   toCopy,
		count:                n,
		order:                encode(fromCopy, toCopy),
		absoluteReverseOrder: encode(toCopy, naturalOrder(n)),
	}
}

// Count returns the number of blocks this permutation operates over.
func (p Permutation) Count() int { return p.count }

func requirePermutation(xs []int) {
	seen := make([]bool, len(xs))
	for _, x := range xs {
		if x < 0 || x >= len(xs) {
			log.Panicf("oligo: value %d out of range for permutation of length %d", x, len(xs))
		}
		if seen[x] {
			log.Panicf("oligo: value %d repeated in permutation %v", x, xs)
		}
		seen[x] = true
	}
}

func naturalOrder(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// encode builds the packed order value described in §4.2: for each origin
// index o, the target index t is where from[o] sits inside to; these are
// concatenated 4 bits each, most significant first (origin 0 in the highest
// bits).
func encode(from, to []int) uint64 {
	n := len(from)
	var ret uint64
	for origin := 0; origin < n; origin++ {
		target := indexOf(to, from[origin])
		ret <<= encodingBits
		ret |= uint64(target)
	}
	return ret
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	log.Panicf("oligo: value %d not found in %v", v, xs)
	return -1
}

func requireFits(count, blockLength int, width Width) {
	if blockLength*count*2 > int(width) {
		log.Panicf("oligo: permutation (blockLength=%d, count=%d) incompatible with %d-bit kmer", blockLength, count, width)
	}
}

// Apply64 rearranges the blocks of kmer from the "from" layout to the "to"
// layout.
func (p Permutation) Apply64(kmer Kmer64) Kmer64 {
	requireFits(p.count, p.BlockLength, Standard)
	return Kmer64(transform64(uint64(kmer), p.order, p.count, p.BlockLength))
}

// Reorder64 undoes an already-permuted kmer, returning it to natural block
// order (0,1,2,...).
func (p Permutation) Reorder64(kmer Kmer64) Kmer64 {
	requireFits(p.count, p.BlockLength, Standard)
	return Kmer64(transform64(uint64(kmer), p.absoluteReverseOrder, p.count, p.BlockLength))
}

// Apply32 is Apply64's Short-kmer counterpart.
func (p Permutation) Apply32(kmer Kmer32) Kmer32 {
	requireFits(p.count, p.BlockLength, Short)
	return Kmer32(transform64(uint64(kmer), p.order, p.count, p.BlockLength))
}

// Reorder32 is Reorder64's Short-kmer counterpart.
func (p Permutation) Reorder32(kmer Kmer32) Kmer32 {
	requireFits(p.count, p.BlockLength, Short)
	return Kmer32(transform64(uint64(kmer), p.absoluteReverseOrder, p.count, p.BlockLength))
}

// Apply128 is Apply64's Long-kmer counterpart.
func (p Permutation) Apply128(kmer Kmer128) Kmer128 {
	requireFits(p.count, p.BlockLength, Long)
	hi, lo := transform128(kmer.Hi, kmer.Lo, p.order, p.count, p.BlockLength)
	return Kmer128{Hi: hi, Lo: lo}
}

// Reorder128 is Reorder64's Long-kmer counterpart.
func (p Permutation) Reorder128(kmer Kmer128) Kmer128 {
	requireFits(p.count, p.BlockLength, Long)
	hi, lo := transform128(kmer.Hi, kmer.Lo, p.absoluteReverseOrder, p.count, p.BlockLength)
	return Kmer128{Hi: hi, Lo: lo}
}

// transform64 implements §4.2's block-rearrangement loop for any k-mer up to
// 64 bits wide.
func transform64(kmer uint64, order uint64, count, blockLength int) uint64 {
	blockBits := uint(BitsPerBase * blockLength)
	var blockMask uint64 = ^uint64(0)
	if blockBits < 64 {
		blockMask = (uint64(1) << blockBits) - 1
	}
	var result uint64
	for origin := 0; origin < count; origin++ {
		orderShift := uint(count-origin-1) * encodingBits
		target := (order >> orderShift) & encodingMask
		srcShift := uint(count-origin-1) * blockBits
		dstShift := (uint(count) - uint(target) - 1) * blockBits
		result |= ((kmer >> srcShift) & blockMask) << dstShift
	}
	return result
}

// transform128 is transform64's 128-bit counterpart, represented as two
// uint64 halves (Hi the higher-order 64 bits).
func transform128(hi, lo uint64, order uint64, count, blockLength int) (uint64, uint64) {
	blockBits := uint(BitsPerBase * blockLength)
	maskHi, maskLo := mask128(blockBits)
	var resultHi, resultLo uint64
	for origin := 0; origin < count; origin++ {
		orderShift := uint(count-origin-1) * encodingBits
		target := (order >> orderShift) & encodingMask
		srcShift := uint(count-origin-1) * blockBits
		dstShift := (uint(count) - uint(target) - 1) * blockBits

		vHi, vLo := shiftRight128(hi, lo, srcShift)
		vHi, vLo = vHi&maskHi, vLo&maskLo
		vHi, vLo = shiftLeft128(vHi, vLo, dstShift)
		resultHi |= vHi
		resultLo |= vLo
	}
	return resultHi, resultLo
}

func mask128(bits uint) (hi, lo uint64) {
	switch {
	case bits >= 128:
		return ^uint64(0), ^uint64(0)
	case bits >= 64:
		return (uint64(1) << (bits - 64)) - 1, ^uint64(0)
	case bits == 0:
		return 0, 0
	default:
		return 0, (uint64(1) << bits) - 1
	}
}

func shiftRight128(hi, lo uint64, shift uint) (uint64, uint64) {
	switch {
	case shift == 0:
		return hi, lo
	case shift >= 128:
		return 0, 0
	case shift >= 64:
		return 0, hi >> (shift - 64)
	default:
		return hi >> shift, (lo >> shift) | (hi << (64 - shift))
	}
}

func shiftLeft128(hi, lo uint64, shift uint) (uint64, uint64) {
	switch {
	case shift == 0:
		return hi, lo
	case shift >= 128:
		return 0, 0
	case shift >= 64:
		return lo << (shift - 64), 0
	default:
		return (hi << shift) | (lo >> (64 - shift)), lo << shift
	}
}
