package bgzf

import (
	"bytes"
	"io"

	"github.com/covariant-bio/alncore/common"
	"github.com/klauspost/compress/flate"
)

// worker owns everything one decompressor slot needs to turn a compressed
// BGZF member into uncompressed bytes without per-block heap allocation:
// a fixed scratch arena for the compressed CDATA, a byte-reader view over
// that arena, and a flate.Reader reused across every member it decodes.
//
// This mirrors the role of BgzfReader in the original implementation (one
// inflate stream + one compressed-block buffer per worker, §4.1); a reusable
// *flate.Reader stands in for the zlib custom-allocator arenas (see
// DESIGN.md for why compress/flate has no allocator hook to replicate that
// 1:1).
type worker struct {
	scratch common.ByteArena
	br      *bytes.Reader
	fr      flate.ReadCloser

	// lastCDATASize is the length of the most recently loaded member's
	// compressed payload within scratch, set by ParallelReader.loadNextBlock
	// from readNextMember's result and consumed by ParallelReader.inflateInto.
	lastCDATASize int
}

func newWorker() *worker {
	w := &worker{br: new(bytes.Reader)}
	// Force the window buffer to be allocated up front (§4.1 "Inflate
	// allocation discipline"): construct the flate.Reader once here against
	// an empty stream so the first real decode call never pays an
	// allocation beyond Reset's bookkeeping.
	w.br.Reset(nil)
	w.fr = flate.NewReader(w.br)
	return w
}

// inflate decompresses cdata (a worker-owned compressed buffer already
// validated and sized by the caller) into dst, returning the number of
// uncompressed bytes produced.
//
// Returns an error wrapping the decompressor's message if the stream is
// malformed; the caller is responsible for treating that as fatal for the
// whole read (§7 "Decompressor internal").
func (w *worker) inflate(cdata []byte, dst []byte) (int, error) {
	w.br.Reset(cdata)
	if err := w.fr.(flate.Resetter).Reset(w.br, nil); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(w.fr, dst)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		// Fewer bytes than dst's length were available: this is the
		// Truncated case, surfaced by the caller comparing n against
		// ISIZE, not an error here (a short dst slice is also legal: the
		// caller always sizes dst to exactly ISIZE).
		return n, nil
	}
	return n, err
}
