package oligo

import "github.com/grailbio/base/log"

// GenerateList returns the chain of permutations needed to cover up to
// errorCount mismatches via Hamming-ball seeding (§4.2). The k-mer is split
// into 2*errorCount equal-length blocks; every way of choosing which
// errorCount of those blocks form the "fixed" prefix is enumerated, each
// choice composed of the chosen indices (increasing order) followed by the
// complementary indices (increasing order).
//
// The first entry is the identity permutation; each subsequent entry's
// "from" is the previous entry's "to", so applying the whole list in order
// to a natural-order k-mer and then calling Reorder on the final
// permutation restores the original k-mer (§8.1 "Chain closure").
//
// width bounds the block length: 2*errorCount blocks must evenly divide
// width.Bases().
func GenerateList(errorCount int, width Width) []Permutation {
	blocksCount := 2 * errorCount
	bases := width.Bases()
	if blocksCount == 0 || bases%blocksCount != 0 {
		log.Panicf("oligo: %d bases does not split evenly into %d blocks", bases, blocksCount)
	}
	blockLength := bases / blocksCount

	orderings := buildOrderings(nil, naturalOrder(blocksCount), errorCount)

	list := make([]Permutation, 0, len(orderings))
	from := orderings[0]
	for _, to := range orderings {
		list = append(list, NewPermutation(blockLength, from, to))
		from = to
	}
	return list
}

// buildOrderings enumerates, in the same order as the original recursive
// construction, every C(len(prefix)+len(suffix), n) way to grow prefix to
// length n by picking strictly-increasing elements out of suffix, each
// completed ordering being prefix followed by whatever remains of suffix.
func buildOrderings(prefix, suffix []int, n int) [][]int {
	if len(prefix) == n {
		full := append(append([]int(nil), prefix...), suffix...)
		return [][]int{full}
	}
	var out [][]int
	for i, v := range suffix {
		if len(prefix) > 0 && v <= prefix[len(prefix)-1] {
			continue
		}
		newPrefix := append(append([]int(nil), prefix...), v)
		newSuffix := make([]int, 0, len(suffix)-1)
		newSuffix = append(newSuffix, suffix[:i]...)
		newSuffix = append(newSuffix, suffix[i+1:]...)
		out = append(out, buildOrderings(newPrefix, newSuffix, n)...)
	}
	return out
}
