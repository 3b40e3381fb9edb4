package bgzf

import "github.com/covariant-bio/alncore/common"

// headerSize is the fixed size in bytes of a BGZF member header (§3.1, §6.1).
const headerSize = 18

// footerSize is the fixed size in bytes of a BGZF member footer.
const footerSize = 8

// nonDataBytes is the constant in CDATA_size = BSIZE - XLEN - 19: the
// 18-byte header plus the 8-byte footer is 26 bytes outside CDATA; BSIZE is
// the member size minus one, which leaves 25; and the 6 Extra bytes are
// subtracted separately as XLEN, which leaves 19. See §3.1's invariant.
const nonDataBytes = 19

// memberHeader is a parsed BGZF member header (§3.1/§6.1).
type memberHeader struct {
	cdataSize int
}

// parseMemberHeader validates a raw 18-byte BGZF header and returns the
// number of CDATA bytes that follow it. A malformed header (bad magic,
// unexpected compression method, or unexpected extra-subfield ids) is a
// fatal assertion per spec §4.1/§7 — the caller is expected to have already
// read exactly headerSize bytes into b.
func parseMemberHeader(b []byte) memberHeader {
	if len(b) != headerSize {
		panic("bgzf: parseMemberHeader requires exactly 18 bytes")
	}
	id1, id2, cm, xlen := b[0], b[1], b[2], common.ExtractUint16LE(b[10:12])
	si1, si2, slen := b[12], b[13], common.ExtractUint16LE(b[14:16])
	bsize := common.ExtractUint16LE(b[16:18])

	if id1 != 31 || id2 != 139 {
		panic("bgzf: bad member magic (not a gzip/bgzf block)")
	}
	if cm != 8 {
		panic("bgzf: unsupported compression method")
	}
	if xlen != 6 {
		panic("bgzf: unexpected XLEN (not a bgzf extra field)")
	}
	if si1 != 66 || si2 != 67 {
		panic("bgzf: unexpected extra subfield id (not BC)")
	}
	if slen != 2 {
		panic("bgzf: unexpected extra subfield length")
	}

	return memberHeader{cdataSize: int(bsize) - int(xlen) - nonDataBytes}
}

// parseFooter reads the 8-byte BGZF footer, returning ISIZE (the
// uncompressed size of this member).
func parseFooter(b []byte) (isize uint32) {
	if len(b) != footerSize {
		panic("bgzf: parseFooter requires exactly 8 bytes")
	}
	return common.ExtractUint32LE(b[4:8])
}
