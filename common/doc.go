// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package common holds the small numeric primitives shared by the bgzf,
// oligo, and alignment packages: little-endian field extraction, bounded
// (non-allocating) byte/op buffers, and the packed CIGAR op representation.
package common
