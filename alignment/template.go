package alignment

import "github.com/covariant-bio/alncore/common"

// Template is a read pair sharing one append-only CIGAR buffer (a
// CigarVector, which holds at most 64 ops).
// Fragments reference their ops by offset/length slice rather than owning
// them outright, so clipping a fragment appends a new slice and leaves the
// old ops in place for any other record still pointing at them (§9).
type Template struct {
	Fragments [2]Fragment
	Cigar     common.CigarVector
}

// FragmentCigar returns the CIGAR ops currently assigned to f.
func (t *Template) FragmentCigar(f *Fragment) []common.CigarOp {
	return t.Cigar.Ops()[f.CigarOffset : f.CigarOffset+f.CigarLength]
}

// SetFragmentCigar appends ops to the shared buffer and points f at the
// new slice. Used when first populating a Fragment's alignment (e.g. from
// an upstream CIGAR decode) before any clipping.
func (t *Template) SetFragmentCigar(f *Fragment, ops []common.CigarOp) {
	f.CigarOffset = t.Cigar.Len()
	t.Cigar.PushAll(ops)
	f.CigarLength = len(ops)
}
