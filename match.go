// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lz4block

// matchFinder drives the forward-skipping search of spec.md §4.3 over a
// single in-memory buffer, the common case where matches only ever reach
// back into the block currently being compressed. Streaming search, which
// must also resolve candidates that fall inside a separate dictionary
// buffer, lives in stream.go.
type matchFinder struct {
	table *hashTable
	src   []byte
}

// sequence returns the 4-byte little-endian fingerprint at src[pos:].
func (m *matchFinder) sequence(pos int) uint32 {
	return loadLE32(m.src[pos:])
}

// findMatch advances from start using the skip schedule (step = probe
// counter >> skipStrength) until it finds a candidate whose 4-byte prefix
// equals the one at the returned position and whose distance fits in 16
// bits, or until the position would pass mflimit. Every probed position is
// recorded in the table regardless of whether it produces a match, so later
// probes can find it.
//
// This intentionally forgoes the reference encoder's one-step-ahead hash
// prefetch: that pipelining reads 4 bytes at the *next* candidate position
// before checking it against mflimit, which in Go would risk an
// out-of-bounds slice read near the end of src. Recomputing the sequence
// once mflimit has already been checked keeps every read in bounds while
// preserving the same skip-schedule behavior.
func (m *matchFinder) findMatch(start, mflimit int) (ip, ref int, ok bool) {
	searchMatchNb := (1 << skipStrength) + 3
	ip = start

	for {
		if ip > mflimit {
			return 0, 0, false
		}
		step := searchMatchNb >> skipStrength
		searchMatchNb++

		seq := m.sequence(ip)
		candidate := int(m.table.get(seq))
		m.table.put(seq, uint32(ip))

		dist := ip - candidate
		if dist >= 0 && dist <= maxDistance && candidate != ip && m.sequence(candidate) == seq {
			return ip, candidate, true
		}

		ip += step
	}
}

// extendBackward is the "catch-up" step: while ip is still ahead of anchor,
// ref is still ahead of lowLimit, and the preceding bytes agree, both
// positions move back one byte. This folds bytes that would otherwise be
// emitted as literals into the match.
func extendBackward(buf []byte, ip, ref, anchor, lowLimit int) (int, int) {
	for ip > anchor && ref > lowLimit && buf[ip-1] == buf[ref-1] {
		ip--
		ref--
	}
	return ip, ref
}

// countMatch extends forward from a and b (already known to agree on
// minMatch bytes) up to limit, returning the number of additional matching
// bytes.
func countMatch(buf []byte, a, b, limit int) int {
	return commonByteCount(buf[a:limit], buf[b:])
}
