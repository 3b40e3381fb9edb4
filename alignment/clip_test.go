package alignment

import (
	"strconv"
	"testing"

	"github.com/covariant-bio/alncore/common"
	"github.com/covariant-bio/alncore/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourM() []common.CigarOp {
	return []common.CigarOp{common.EncodeCigar(4, common.CigarAlign)}
}

func newPairTemplate(leftQual, rightReverseQual string) *Template {
	t := &Template{}
	left := Fragment{
		Aligned:        true,
		ContigID:       0,
		Position:       0,
		Strand:         Forward,
		ObservedLength: 4,
		Read: &Read{
			ForwardSequence: []byte("ACGT"),
			ForwardQuality:  []byte(leftQual),
		},
	}
	right := Fragment{
		Aligned:        true,
		ContigID:       0,
		Position:       1,
		Strand:         Reverse,
		ObservedLength: 4,
		Read: &Read{
			ReverseSequence: []byte("ACGT"),
			ReverseQuality:  []byte(rightReverseQual),
		},
	}
	t.Fragments[0] = left
	t.Fragments[1] = right
	t.SetFragmentCigar(&t.Fragments[0], fourM())
	t.SetFragmentCigar(&t.Fragments[1], fourM())
	return t
}

func opsToString(ops []common.CigarOp) string {
	s := ""
	opChar := map[uint32]byte{
		common.CigarAlign:    'M',
		common.CigarSoftClip: 'S',
	}
	for _, op := range ops {
		length, opcode := op.Length(), op.Opcode()
		s += strconv.Itoa(length) + string(opChar[opcode])
	}
	return s
}

// TestClipRightFragment is §8.2 scenario 4.
func TestClipRightFragment(t *testing.T) {
	tmpl := newPairTemplate("CFCE", "BDBE")
	contigs := []reference.Contig{{Name: "chr1", Forward: []byte("NACGTACGT")}}

	Clip(contigs, tmpl)

	left := &tmpl.Fragments[0]
	right := &tmpl.Fragments[1]

	assert.Equal(t, "4M", opsToString(tmpl.FragmentCigar(left)))
	assert.Equal(t, 0, left.Position)

	assert.Equal(t, "3S1M", opsToString(tmpl.FragmentCigar(right)))
	assert.Equal(t, 4, right.Position)
	assert.Equal(t, 3, right.ClipLeft)
	assert.Equal(t, 1, right.ObservedLength)
}

// TestClipLeftFragment is §8.2 scenario 5.
func TestClipLeftFragment(t *testing.T) {
	tmpl := newPairTemplate("BAAA", "CFCE")
	contigs := []reference.Contig{{Name: "chr1", Forward: []byte("NACGTACGT")}}

	Clip(contigs, tmpl)

	left := &tmpl.Fragments[0]
	right := &tmpl.Fragments[1]

	assert.Equal(t, "1M3S", opsToString(tmpl.FragmentCigar(left)))
	assert.Equal(t, 0, left.Position)
	assert.Equal(t, 3, left.ClipRight)
	assert.Equal(t, 1, left.ObservedLength)

	assert.Equal(t, "4M", opsToString(tmpl.FragmentCigar(right)))
	assert.Equal(t, 1, right.Position)
}

func TestClipIsIdempotent(t *testing.T) {
	tmpl := newPairTemplate("CFCE", "BDBE")
	contigs := []reference.Contig{{Name: "chr1", Forward: []byte("NACGTACGT")}}

	Clip(contigs, tmpl)
	after := *tmpl
	Clip(contigs, tmpl)

	assert.Equal(t, after.Fragments, tmpl.Fragments)
}

func TestClipSkipsUnaligned(t *testing.T) {
	tmpl := newPairTemplate("CFCE", "BDBE")
	tmpl.Fragments[1].Aligned = false
	contigs := []reference.Contig{{Name: "chr1", Forward: []byte("NACGTACGT")}}

	before := tmpl.Fragments
	Clip(contigs, tmpl)
	assert.Equal(t, before, tmpl.Fragments)
}

func TestClipSkipsChimericPairs(t *testing.T) {
	tmpl := newPairTemplate("CFCE", "BDBE")
	tmpl.Fragments[1].ContigID = 1
	contigs := []reference.Contig{
		{Name: "chr1", Forward: []byte("NACGTACGT")},
		{Name: "chr2", Forward: []byte("NACGTACGT")},
	}

	before := tmpl.Fragments
	Clip(contigs, tmpl)
	assert.Equal(t, before, tmpl.Fragments)
}

func TestClipSkipsSameStrandPairs(t *testing.T) {
	tmpl := newPairTemplate("CFCE", "BDBE")
	tmpl.Fragments[1].Strand = Forward
	contigs := []reference.Contig{{Name: "chr1", Forward: []byte("NACGTACGT")}}

	before := tmpl.Fragments
	Clip(contigs, tmpl)
	assert.Equal(t, before, tmpl.Fragments)
}

func TestClipSkipsNoOverlap(t *testing.T) {
	tmpl := newPairTemplate("CFCE", "BDBE")
	tmpl.Fragments[1].Position = 4 // left ends exactly where right begins
	contigs := []reference.Contig{{Name: "chr1", Forward: []byte("NACGTACGT")}}

	before := tmpl.Fragments
	Clip(contigs, tmpl)
	require.Equal(t, before, tmpl.Fragments)
}
