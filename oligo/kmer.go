package oligo

// Width identifies a k-mer's bit width: Short (32), Standard (64), or Long
// (128, represented as two uint64 halves).
type Width int

const (
	// Short k-mers hold up to 16 bases in 32 bits.
	Short Width = 32
	// Standard k-mers hold up to 32 bases in 64 bits.
	Standard Width = 64
	// Long k-mers hold up to 64 bases in 128 bits.
	Long Width = 128
)

// BitsPerBase is the number of bits used to encode one base (A/C/G/T).
const BitsPerBase = 2

// Bases returns the number of bases a k-mer of this width can hold.
func (w Width) Bases() int { return int(w) / BitsPerBase }

// Kmer32 is a Short k-mer: 2 bits per base, up to 16 bases.
type Kmer32 uint32

// Kmer64 is a Standard k-mer: 2 bits per base, up to 32 bases.
type Kmer64 uint64

// Kmer128 is a Long k-mer: 2 bits per base, up to 64 bases, represented as
// two uint64 halves (Hi holds the higher-order bases). Go has no native
// 128-bit integer; transform128 masks and shifts the two halves together
// with 128-bit shift helpers, so a block may straddle the Hi/Lo boundary.
type Kmer128 struct {
	Hi, Lo uint64
}
