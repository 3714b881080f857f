// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lz4block

// CompressorState holds the reusable hash-table scratch space for one-shot
// block compression. Its zero value is ready to use: CompressBlockWithState
// resets it for whatever table shape the input size calls for.
type CompressorState struct {
	table hashTable
}

// CompressBound returns the size of the largest possible compressed output
// for an input of srcSize bytes (the fully incompressible case: every byte
// becomes a literal, plus one length-extension byte per 255 literals, plus
// the fixed token/header overhead). It returns 0 for a negative srcSize.
func CompressBound(srcSize int) int {
	if srcSize < 0 {
		return 0
	}
	return srcSize + srcSize/255 + 16
}

// CompressBlock compresses src into dst, which must be at least
// CompressBound(len(src)) bytes, and returns the number of bytes written.
func CompressBlock(src, dst []byte) (int, error) {
	state := acquireState()
	defer releaseState(state)
	return CompressBlockWithState(state, src, dst)
}

// CompressBlockLimited compresses src into dst without assuming dst is
// worst-case sized. It returns (0, ErrShortBuffer) when dst is too small to
// hold the result — the reference encoder's "limitedOutput" variant signals
// this with a bare zero return, but a Go API returning (int, error) reports
// failure through error rather than overloading a valid-looking 0.
func CompressBlockLimited(src, dst []byte) (int, error) {
	state := acquireState()
	defer releaseState(state)
	return CompressBlockLimitedWithState(state, src, dst)
}

// CompressBlockWithState compresses src into dst using a caller-owned
// state instead of one taken from the package's internal pool, as
// CompressBlock does.
// dst must be at least CompressBound(len(src)) bytes.
func CompressBlockWithState(state *CompressorState, src, dst []byte) (int, error) {
	if state == nil {
		return 0, ErrMisalignedState
	}
	return compressBlockNoDict(state, src, dst, false)
}

// CompressBlockLimitedWithState is CompressBlockWithState without the
// worst-case destination size assumption; see CompressBlockLimited.
func CompressBlockLimitedWithState(state *CompressorState, src, dst []byte) (int, error) {
	if state == nil {
		return 0, ErrMisalignedState
	}
	return compressBlockNoDict(state, src, dst, true)
}

// compressBlockNoDict implements spec.md §4.4's encode algorithm for the
// common case: a single block whose matches only reach back into itself.
func compressBlockNoDict(state *CompressorState, src, dst []byte, limited bool) (int, error) {
	n := len(src)
	if n > maxInputSize {
		return 0, ErrInputTooLarge
	}
	if n < minLength {
		return writeLastLiterals(dst, 0, src, 0, n, limited)
	}

	state.table.reset(tableTypeForSize(n))
	m := &matchFinder{table: &state.table, src: src}
	m.table.put(m.sequence(0), 0)

	mflimit := n - mfLimit
	matchlimit := n - lastLiterals

	anchor := 0
	ip := 1
	di := 0

	for {
		mip, ref, ok := m.findMatch(ip, mflimit)
		if !ok {
			return writeLastLiterals(dst, di, src, anchor, n, limited)
		}
		mStart, rStart := extendBackward(src, mip, ref, anchor, 0)

		for {
			ll := mStart - anchor
			tokenIdx, ndi, err := writeLiteralHeader(dst, di, ll, limited)
			if err != nil {
				return 0, err
			}
			di = ndi
			di += copy(dst[di:di+ll], src[anchor:mStart])

			storeLE16(dst[di:], uint16(mStart-rStart))
			di += 2

			mEnd := mStart + minMatch
			rEnd := rStart + minMatch
			matchLen := countMatch(src, mEnd, rEnd, matchlimit)
			ip = mEnd + matchLen

			di, err = writeMatchLenExt(dst, di, tokenIdx, matchLen, limited)
			if err != nil {
				return 0, err
			}

			anchor = ip
			if ip > mflimit {
				return writeLastLiterals(dst, di, src, anchor, n, limited)
			}

			m.table.put(m.sequence(ip-2), uint32(ip-2))
			candSeq := m.sequence(ip)
			cand := int(m.table.get(candSeq))
			m.table.put(candSeq, uint32(ip))

			dist := ip - cand
			if dist >= 0 && dist <= maxDistance && cand != ip && m.sequence(cand) == candSeq {
				mStart, rStart = ip, cand
				continue
			}
			ip++
			break
		}
	}
}

// writeLiteralHeader writes the sequence's token byte (high nibble =
// clamp(ll, runMask)) plus any literal-length extension bytes, returning the
// token's index in dst and the position to write literal bytes at.
func writeLiteralHeader(dst []byte, di, ll int, limited bool) (tokenIdx, ndi int, err error) {
	if limited && di+ll+16+ll/255 > len(dst) {
		return 0, 0, ErrShortBuffer
	}
	tokenIdx = di
	di++
	if ll >= runMask {
		dst[tokenIdx] = runMask << mlBits
		rem := ll - runMask
		for rem >= 255 {
			dst[di] = 255
			di++
			rem -= 255
		}
		dst[di] = byte(rem)
		di++
	} else {
		dst[tokenIdx] = byte(ll << mlBits)
	}
	return tokenIdx, di, nil
}

// writeMatchLenExt folds a match length into the token's low nibble (minus
// the implicit minMatch already accounted for) plus any extension bytes.
func writeMatchLenExt(dst []byte, di, tokenIdx, matchLen int, limited bool) (int, error) {
	if limited && matchLen >= mlMask && di+1+lastLiterals+matchLen/255 > len(dst) {
		return 0, ErrShortBuffer
	}
	if matchLen >= mlMask {
		dst[tokenIdx] += mlMask
		rem := matchLen - mlMask
		for rem >= 255 {
			dst[di] = 255
			di++
			rem -= 255
		}
		dst[di] = byte(rem)
		di++
	} else {
		dst[tokenIdx] += byte(matchLen)
	}
	return di, nil
}

// writeLastLiterals appends the final literals-only sequence (no match)
// that terminates every block.
func writeLastLiterals(dst []byte, di int, src []byte, anchor, end int, limited bool) (int, error) {
	lastRun := end - anchor
	if limited {
		extra := 1 + (lastRun+255-runMask)/255
		if di+lastRun+extra > len(dst) {
			return 0, ErrShortBuffer
		}
	}
	if lastRun >= runMask {
		dst[di] = runMask << mlBits
		di++
		rem := lastRun - runMask
		for rem >= 255 {
			dst[di] = 255
			di++
			rem -= 255
		}
		dst[di] = byte(rem)
		di++
	} else {
		dst[di] = byte(lastRun << mlBits)
		di++
	}
	di += copy(dst[di:], src[anchor:end])
	return di, nil
}
