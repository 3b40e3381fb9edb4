package oligo

import (
	"github.com/grailbio/base/simd"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/covariant-bio/alncore/biosimd"
)

const invalidBaseBits = uint8(255)

var (
	asciiToBaseBits           [256]uint8
	asciiToReverseComplement  [256]uint8
)

func init() {
	for i := range asciiToBaseBits {
		asciiToBaseBits[i] = invalidBaseBits
		asciiToReverseComplement[i] = invalidBaseBits
	}
	asciiToBaseBits['A'], asciiToBaseBits['a'] = 0, 0
	asciiToBaseBits['C'], asciiToBaseBits['c'] = 1, 1
	asciiToBaseBits['G'], asciiToBaseBits['g'] = 2, 2
	asciiToBaseBits['T'], asciiToBaseBits['t'] = 3, 3

	asciiToReverseComplement['A'], asciiToReverseComplement['a'] = 3, 3
	asciiToReverseComplement['C'], asciiToReverseComplement['c'] = 2, 2
	asciiToReverseComplement['G'], asciiToReverseComplement['g'] = 1, 1
	asciiToReverseComplement['T'], asciiToReverseComplement['t'] = 0, 0
}

// invalidKmer is a sentinel Kmer64 returned for subsequences containing a
// base outside ACGT (N, IUPAC ambiguity codes, etc).
const invalidKmer = Kmer64(0xffffffffffffffff)

// KmerAtPos is a forward and reverse-complement Kmer64 pair anchored at a
// base offset.
type KmerAtPos struct {
	Pos                        int
	Forward, ReverseComplement Kmer64
}

// MinKmer returns whichever of Forward/ReverseComplement sorts lower,
// the canonical strand-independent representation of this k-mer.
func (k KmerAtPos) MinKmer() Kmer64 {
	if k.Forward < k.ReverseComplement {
		return k.Forward
	}
	return k.ReverseComplement
}

// Kmerizer scans a base string, yielding every length-k forward/
// reverse-complement k-mer pair. Reset/Scan/Get follow a cursor-style API so
// a caller can reuse one Kmerizer across many reads without allocating.
type Kmerizer struct {
	length int
	tmpSeq []byte
	mask   Kmer64

	seq string
	si  int
	cur KmerAtPos
}

// NewKmerizer returns a Kmerizer for k-mers of the given length (<= 32
// bases, i.e. a Standard k-mer).
func NewKmerizer(length int) *Kmerizer {
	if length <= 0 || length > Standard.Bases() {
		panic("oligo: kmerizer length out of range")
	}
	return &Kmerizer{
		length: length,
		mask:   ^(Kmer64(0xffffffffffffffff) << Kmer64(length*BitsPerBase)),
	}
}

// Reset points the Kmerizer at the start of a new sequence.
func (k *Kmerizer) Reset(seq string) {
	k.seq = seq
	k.si = 0
}

func asciiToKmer(seq string) Kmer64 {
	var v Kmer64
	for _, ch := range []byte(seq) {
		b := asciiToBaseBits[ch]
		if b == invalidBaseBits {
			return invalidKmer
		}
		v = (v << 2) | Kmer64(b)
	}
	return v
}

func nextAmbiguousPosition(seq string, si int) int {
	for i := si; i < len(seq); i++ {
		if asciiToBaseBits[seq[i]] == invalidBaseBits {
			return i
		}
	}
	return len(seq)
}

// Scan advances to the next valid k-mer, returning false once the sequence
// is exhausted.
func (k *Kmerizer) Scan() bool {
	if k.si > 0 && k.si+k.length <= len(k.seq) {
		nextCh := k.seq[k.si+k.length-1]
		if bits := asciiToBaseBits[nextCh]; bits != invalidBaseBits {
			k.cur.Pos = k.si
			k.cur.Forward = ((k.cur.Forward << 2) | Kmer64(bits)) & k.mask
			shift := (Kmer64(k.length) - 1) * 2
			k.cur.ReverseComplement = (k.cur.ReverseComplement >> 2) | (Kmer64(asciiToReverseComplement[nextCh]) << shift)
			k.si++
			return true
		}
	}

	for k.si+k.length <= len(k.seq) {
		forwardStr := k.seq[k.si : k.si+k.length]
		forwardKmer := asciiToKmer(forwardStr)
		if forwardKmer == invalidKmer {
			k.si = nextAmbiguousPosition(k.seq, k.si) + 1
			continue
		}
		simd.ResizeUnsafe(&k.tmpSeq, k.length)
		biosimd.ReverseComp8NoValidate(k.tmpSeq, gunsafe.StringToBytes(forwardStr))
		reverseKmer := asciiToKmer(gunsafe.BytesToString(k.tmpSeq))
		if reverseKmer == invalidKmer {
			panic("oligo: reverse complement of a valid forward k-mer was invalid")
		}
		k.cur = KmerAtPos{Pos: k.si, Forward: forwardKmer, ReverseComplement: reverseKmer}
		k.si++
		return true
	}
	return false
}

// Get returns the k-mer pair found by the most recent successful Scan.
func (k *Kmerizer) Get() KmerAtPos { return k.cur }
