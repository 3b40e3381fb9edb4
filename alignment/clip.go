package alignment

import (
	"github.com/covariant-bio/alncore/common"
	"github.com/covariant-bio/alncore/reference"
)

// Clip detects reference overlap between a template's two aligned
// fragments and soft-clips the inferior side's overlapping bases,
// mutating only that clipped fragment's CIGAR slice, clip counter,
// observed length and edit distance (and, for the right fragment, its
// position); the other fragment is left as it was (§4.3). It is a no-op
// whenever any of the preconditions below doesn't hold.
func Clip(contigs []reference.Contig, t *Template) {
	r1, r2 := &t.Fragments[0], &t.Fragments[1]

	if !r1.Aligned || !r2.Aligned {
		return
	}
	if r1.ContigID != r2.ContigID {
		// ignore chimeric pairs
		return
	}
	if r1.IsReverse() == r2.IsReverse() {
		return
	}

	var left, right *Fragment
	if r1.Position < r2.Position {
		left = r1
	} else {
		left = r2
	}
	if r1.Position <= r2.Position {
		right = r2
	} else {
		right = r1
	}

	if left.IsReverse() {
		// leftmost fragment facing backwards: a mate-pair or adapter
		// read-through, handled elsewhere.
		return
	}

	overlapLength := left.Position + left.ObservedLength - right.Position
	if overlapLength <= 0 {
		return
	}

	leftOps := t.FragmentCigar(left)
	leftEndOffset := left.Read.Length()
	leftEndSoftClip := 0
	lastIdx := len(leftOps) - 1
	lastLen, lastOp := leftOps[lastIdx].Length(), leftOps[lastIdx].Opcode()
	if lastOp == common.CigarSoftClip {
		if lastIdx == 0 {
			panic("alignment: fully soft-clipped reads are not allowed")
		}
		leftEndOffset -= lastLen
		leftEndSoftClip = lastLen
		lastIdx--
		lastLen, lastOp = leftOps[lastIdx].Length(), leftOps[lastIdx].Opcode()
	}
	if lastOp != common.CigarAlign {
		panic("alignment: apart from soft-clipping, CIGAR must end with an align operation")
	}
	leftLastAlignLen := lastLen
	if overlapLength >= leftLastAlignLen {
		// overlap contains or borders an indel, or the read would become
		// fully soft-clipped: leave it alone.
		return
	}

	rightOps := t.FragmentCigar(right)
	rightStartOffset := 0
	firstIdx := 0
	firstLen, firstOp := rightOps[firstIdx].Length(), rightOps[firstIdx].Opcode()
	if firstOp == common.CigarSoftClip {
		rightStartOffset += firstLen
		firstIdx++
		if firstIdx == len(rightOps) {
			panic("alignment: fully soft-clipped reads are not allowed")
		}
		firstLen, firstOp = rightOps[firstIdx].Length(), rightOps[firstIdx].Opcode()
	}
	if firstOp != common.CigarAlign {
		panic("alignment: apart from soft-clipping, CIGAR must begin with an align operation")
	}
	rightFirstAlignLen := firstLen
	if overlapLength >= rightFirstAlignLen {
		return
	}

	qualityDiff := diffBaseQualities(
		left.Read.ForwardQuality[leftEndOffset-overlapLength:leftEndOffset],
		right.Read.ReverseQuality[rightStartOffset:rightStartOffset+overlapLength],
	)

	if qualityDiff > 0 {
		clipRightFragment(contigs, t, right, rightOps, firstIdx, rightStartOffset, rightFirstAlignLen, overlapLength)
	} else {
		clipLeftFragment(contigs, t, left, leftOps, lastIdx, leftEndOffset, leftEndSoftClip, leftLastAlignLen, overlapLength)
	}
}

// diffBaseQualities sums left[i] - right[i] over the overlap region.
// Positive means the left read's bases are higher quality there.
func diffBaseQualities(left, right []byte) int {
	sum := 0
	for i := range left {
		sum += int(left[i]) - int(right[i])
	}
	return sum
}

func countMismatches(readBases, referenceBases []byte) int {
	n := 0
	for i := range readBases {
		if readBases[i] != referenceBases[i] {
			n++
		}
	}
	return n
}

// clipRightFragment soft-clips the right fragment's leading (reference
// start) overlap region: its alignment start moves forward by
// overlapLength, so Position advances along with ClipLeft.
func clipRightFragment(
	contigs []reference.Contig, t *Template, right *Fragment,
	ops []common.CigarOp, firstAlignIdx, rightStartOffset, rightFirstAlignLen, overlapLength int,
) {
	referenceBases := contigs[right.ContigID].Bases(right.Position, overlapLength)

	newOps := make([]common.CigarOp, 0, 2+len(ops)-(firstAlignIdx+1))
	newOps = append(newOps, common.EncodeCigar(rightStartOffset+overlapLength, common.CigarSoftClip))
	newOps = append(newOps, common.EncodeCigar(rightFirstAlignLen-overlapLength, common.CigarAlign))
	newOps = append(newOps, ops[firstAlignIdx+1:]...)

	offset := t.Cigar.Len()
	t.Cigar.PushAll(newOps)
	right.CigarOffset = offset
	right.CigarLength = len(newOps)

	right.ClipLeft += overlapLength
	right.Position += overlapLength
	right.ObservedLength -= overlapLength
	right.EditDistance -= countMismatches(
		right.Read.ReverseSequence[rightStartOffset:rightStartOffset+overlapLength],
		referenceBases,
	)
}

// clipLeftFragment soft-clips the left fragment's trailing overlap
// region. Its alignment start is unaffected; only the end retreats.
func clipLeftFragment(
	contigs []reference.Contig, t *Template, left *Fragment,
	ops []common.CigarOp, lastAlignIdx, leftEndOffset, leftEndSoftClip, leftLastAlignLen, overlapLength int,
) {
	referenceStart := left.Position + left.ObservedLength - leftEndSoftClip - overlapLength
	referenceBases := contigs[left.ContigID].Bases(referenceStart, overlapLength)

	newOps := make([]common.CigarOp, 0, lastAlignIdx+2)
	newOps = append(newOps, ops[:lastAlignIdx]...)
	newOps = append(newOps, common.EncodeCigar(leftLastAlignLen-overlapLength, common.CigarAlign))
	newOps = append(newOps, common.EncodeCigar(leftEndSoftClip+overlapLength, common.CigarSoftClip))

	offset := t.Cigar.Len()
	t.Cigar.PushAll(newOps)
	left.CigarOffset = offset
	left.CigarLength = len(newOps)

	left.ClipRight += overlapLength
	left.ObservedLength -= overlapLength
	left.EditDistance -= countMismatches(
		left.Read.ForwardSequence[leftEndOffset-overlapLength:leftEndOffset],
		referenceBases,
	)
}
