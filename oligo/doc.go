// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package oligo implements the k-mer block-permutation engine used to
// enumerate Hamming-ball neighbor seeds with a bounded error budget, plus a
// k-mer scanner for turning a base string into a stream of forward/
// reverse-complement k-mers.
//
// A k-mer packs 2 bits per base; a Kmerizer puts a window's first base in
// the most-significant pair in use and its last base in the least-significant
// pair (ACGT is 0x1B), and block 0 of a Permutation is the highest-order
// block. A
// Permutation rearranges fixed-width "blocks" of such a k-mer from one
// ordering to another; GenerateList produces the chain of permutations
// needed to cover every way of choosing which half of the blocks act as the
// fixed lookup prefix for a given error budget.
package oligo
