package bgzf

import "io"

// readNextMember reads one BGZF member from r into w's scratch arena,
// returning the member's uncompressed size (ISIZE) and the length of its
// compressed payload (CDATA). eof is true only on a clean end of stream
// (no bytes read at all before EOF); a partial member is a fatal error
// (§4.1 "Truncated input is fatal").
//
// The caller must serialize calls to readNextMember against a single r
// (the load slot, §4.1) since it performs two sequential reads against a
// shared, non-concurrent io.Reader.
func readNextMember(r io.Reader, w *worker) (isize uint32, cdataSize int, eof bool, err error) {
	w.scratch.Reset()
	hdr := w.scratch.Grow(headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		if err == io.EOF {
			return 0, 0, true, nil
		}
		return 0, 0, false, err
	}

	mh := parseMemberHeader(hdr)
	rest := w.scratch.Grow(mh.cdataSize + footerSize)
	if _, err := io.ReadFull(r, rest); err != nil {
		return 0, 0, false, err
	}

	footer := rest[mh.cdataSize:]
	isize = parseFooter(footer)
	return isize, mh.cdataSize, false, nil
}

// drainToNextMember calls readNextMember repeatedly, skipping empty members
// (legal zero-ISIZE blocks, including the bgzf end-of-stream terminator
// itself if it isn't the true end of the reader) until it finds a non-empty
// one, hits a clean EOF, or hits an error (§13 supplement 1).
func drainToNextMember(r io.Reader, w *worker) (isize uint32, cdataSize int, eof bool, err error) {
	for {
		isize, cdataSize, eof, err = readNextMember(r, w)
		if err != nil || eof || isize != 0 {
			return
		}
	}
}
