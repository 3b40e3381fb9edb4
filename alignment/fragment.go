package alignment

// Strand is the orientation a fragment aligned to, relative to the
// contig's forward strand.
type Strand int

const (
	Forward Strand = iota
	Reverse
)

// Read carries both strand representations of one sequenced read: the
// as-sequenced forward strand, and its reverse complement with quality
// reversed to match, the way the original aligner keeps both views
// pre-computed rather than re-deriving one from the other per use.
type Read struct {
	ForwardSequence []byte
	ReverseSequence []byte
	ForwardQuality  []byte
	ReverseQuality  []byte
}

// Length returns the read length in bases.
func (r *Read) Length() int { return len(r.ForwardSequence) }

// Fragment is one aligned mate of a template: contig, position, and the
// bookkeeping the clipper mutates (§3.3).
type Fragment struct {
	Aligned  bool
	ContigID int
	Position int
	Strand   Strand

	ObservedLength int
	EditDistance   int
	ClipLeft       int
	ClipRight      int

	// CigarOffset/CigarLength index into the owning Template's shared
	// CigarVector.
	CigarOffset int
	CigarLength int

	Read *Read
}

// IsReverse reports whether the fragment aligned to the reverse strand.
func (f *Fragment) IsReverse() bool { return f.Strand == Reverse }
