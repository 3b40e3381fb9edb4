// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides byte-array reverse-complement operations on ASCII
// base sequences. It originally covered a much wider set of .bam/.fa-specific
// operations (packing, unpacking, base counting, FASTQ assembly); those were
// dropped here since this repo only ever reverse-complements k-mer windows.
package biosimd
