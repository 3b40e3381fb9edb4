package common

import "encoding/binary"

// ExtractUint16LE reads a little-endian uint16 starting at b[0].
//
// Panics if len(b) < 2; callers are expected to have already validated the
// slice length (BGZF header/footer fields are fixed-width).
func ExtractUint16LE(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// ExtractUint32LE reads a little-endian uint32 starting at b[0].
func ExtractUint32LE(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
