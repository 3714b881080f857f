package lz4block

import (
	"encoding/binary"
	"math/bits"
)

func loadLE16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

func storeLE16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }

func loadLE32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// commonByteCount returns the number of leading bytes a and b agree on,
// comparing 8 bytes at a time and falling back to a byte-at-a-time tail
// comparison near the shorter slice's end. This is the Go-native
// replacement for the reference encoder's word-at-a-time LZ4_count: Go's
// bounds-checked slices make an unsafe-overshoot word compare unsafe, so the
// tail switches to precise byte comparison instead of reading past either
// slice.
func commonByteCount(a, b []byte) int {
	n := 0
	for len(a)-n >= 8 && len(b)-n >= 8 {
		x := binary.LittleEndian.Uint64(a[n:]) ^ binary.LittleEndian.Uint64(b[n:])
		if x == 0 {
			n += 8
			continue
		}
		return n + bits.TrailingZeros64(x)>>3
	}
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
