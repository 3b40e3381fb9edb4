package oligo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKmerizerScansForwardAndReverseComplement(t *testing.T) {
	k := NewKmerizer(4)
	k.Reset("ACGTACGT")

	var got []KmerAtPos
	for k.Scan() {
		got = append(got, k.Get())
	}
	require.Len(t, got, 5) // len(seq) - length + 1

	// ACGT forward: A=0,C=1,G=2,T=3 -> 0b00_01_10_11 = 0x1B
	assert.Equal(t, 0, got[0].Pos)
	assert.Equal(t, Kmer64(0x1B), got[0].Forward)

	// reverse complement of ACGT is ACGT (self-complementary palindrome)
	assert.Equal(t, got[0].Forward, got[0].ReverseComplement)
}

func TestKmerizerSkipsAmbiguousBases(t *testing.T) {
	k := NewKmerizer(3)
	k.Reset("ACNGTAC")

	var positions []int
	for k.Scan() {
		positions = append(positions, k.Get().Pos)
	}
	// "ACN" and "CNG" and "NGT" are all invalid (contain N); valid windows
	// start once we're past the N: "GTA" at 3, "TAC" at 4.
	assert.Equal(t, []int{3, 4}, positions)
}

func TestMinKmerIsStrandIndependent(t *testing.T) {
	kap := KmerAtPos{Forward: 5, ReverseComplement: 2}
	assert.Equal(t, Kmer64(2), kap.MinKmer())
	kap2 := KmerAtPos{Forward: 2, ReverseComplement: 5}
	assert.Equal(t, Kmer64(2), kap2.MinKmer())
}
