package lz4block

// tableType selects the hash-table entry representation used during a
// single compress call. All three shapes store "where a 4-byte fingerprint
// was last seen", differing only in entry width and in whether stored
// values are absolute positions or offsets from a moving virtual base (see
// stream.go's renormalization).
type tableType int

const (
	tableTypePtr tableType = iota // absolute position, base always 0: one-shot block > 64 KiB, no continuation
	tableType32                  // uint32 offset from a virtual base: streaming
	tableType16                  // uint16 absolute position, truncated: one-shot block <= 64 KiB + slack
)

// hashTable is the fingerprint -> last-seen-position index of spec.md's
// Hash index. Only one of the two backing slices is in use at a time,
// selected by typ; reset reuses whichever one already has enough capacity.
type hashTable struct {
	typ tableType
	t32 []uint32
	t16 []uint16
}

// reset clears the table for reuse as typ, allocating only if the existing
// backing slice is too small.
func (h *hashTable) reset(typ tableType) {
	h.typ = typ
	if typ == tableType16 {
		if cap(h.t16) >= hashTableSize16 {
			h.t16 = h.t16[:hashTableSize16]
			for i := range h.t16 {
				h.t16[i] = 0
			}
		} else {
			h.t16 = make([]uint16, hashTableSize16)
		}
		return
	}
	if cap(h.t32) >= hashTableSize {
		h.t32 = h.t32[:hashTableSize]
		for i := range h.t32 {
			h.t32[i] = 0
		}
	} else {
		h.t32 = make([]uint32, hashTableSize)
	}
}

// hashFingerprint maps a little-endian 4-byte sequence to a table slot using
// the Knuth multiplicative hash of spec.md's hash index.
func hashFingerprint(sequence uint32, typ tableType) uint32 {
	if typ == tableType16 {
		return (sequence * 2654435761) >> (32 - hashLog16)
	}
	return (sequence * 2654435761) >> (32 - hashLog)
}

// put records that sequence was last seen at pos.
func (h *hashTable) put(sequence, pos uint32) {
	slot := hashFingerprint(sequence, h.typ)
	if h.typ == tableType16 {
		h.t16[slot] = uint16(pos)
		return
	}
	h.t32[slot] = pos
}

// get returns the last recorded position for sequence, or 0 if the slot was
// never written. A zero result is ambiguous with a genuine match at position
// 0; callers resolve the ambiguity the same way the reference implementation
// does, by validating the candidate's distance and its own 4-byte sequence
// before trusting it (spec.md's "collisions are tolerated, filtered by the
// equality check at the match site").
func (h *hashTable) get(sequence uint32) uint32 {
	slot := hashFingerprint(sequence, h.typ)
	if h.typ == tableType16 {
		return uint32(h.t16[slot])
	}
	return h.t32[slot]
}

// tableTypeForSize picks the one-shot table shape for an input of n bytes.
func tableTypeForSize(n int) tableType {
	if n < sixtyFourKLimit {
		return tableType16
	}
	return tableTypePtr
}
