// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lz4block

import "errors"

var (
	errZeroOffset         = errors.New("zero offset")
	errLookBehindUnderrun = errors.New("offset references before start of available history")
	errNegativeDistance   = errors.New("non-positive match distance")
)

// DecompressSafe decodes a single block, relying only on src's length to
// know when the block ends (spec.md's endOnInput/full combination). dst
// must be large enough to hold the decompressed block; the return value is
// the number of bytes written to dst.
func DecompressSafe(src, dst []byte) (int, error) {
	return decodeCore(dst, src, nil, true, false, len(dst))
}

// DecompressFast decodes a single block, relying on the caller-supplied
// origSize rather than src's length to know when to stop (spec.md's
// endOnOutput/full combination), and returns the number of bytes read from
// src. It uses no dictionary: an offset reaching before dst's start fails
// with ErrNoDictionary, as in DecompressSafe (see DESIGN.md). Every src read
// is still bounds-checked, since Go cannot read past a slice's end the way
// the reference implementation's pointer arithmetic can.
func DecompressFast(src, dst []byte, origSize int) (int, error) {
	if origSize > len(dst) {
		origSize = len(dst)
	}
	return decodeCore(dst, src, nil, false, false, origSize)
}

// DecompressSafePartial decodes only the first targetOutputSize bytes of
// what a full decode would produce, stopping as soon as that many bytes
// have been written even if src has more sequences left (spec.md's
// endOnInput/partial combination).
func DecompressSafePartial(src, dst []byte, targetOutputSize int) (int, error) {
	return decodeCore(dst, src, nil, true, true, targetOutputSize)
}

// DecompressSafeUsingDict is DecompressSafe with a dictionary: offsets that
// would reach before dst's start are resolved against dict instead of
// failing. dict represents either a true external dictionary or the tail of
// previously decoded output (spec.md's external_dict and prefix_64k modes,
// unified the same way stream.go unifies them on the encode side).
func DecompressSafeUsingDict(src, dst, dict []byte) (int, error) {
	return decodeCore(dst, src, dict, true, false, len(dst))
}

// DecompressFastUsingDict combines DecompressFast's endOnOutput termination
// with dictionary support.
func DecompressFastUsingDict(src, dst []byte, origSize int, dict []byte) (int, error) {
	if origSize > len(dst) {
		origSize = len(dst)
	}
	return decodeCore(dst, src, dict, false, false, origSize)
}

// Uncompress is a historical alias matching early LZ4 API naming; it
// behaves like DecompressFast with origSize taken from len(dst).
func Uncompress(src, dst []byte) (int, error) {
	return DecompressFast(src, dst, len(dst))
}

// decodeCore is the single parameterized decoder core backing all five
// entry points above. spec.md §4.5 describes the reference decoder as four
// explicitly duplicated specialized functions to keep the hot loop free of
// per-sequence mode branches; this module instead uses one core with mode
// flags threaded through, trading a few branches (all on loop-invariant
// values, so they predict well) for a single, reviewable implementation —
// recorded as a deliberate simplification in DESIGN.md.
func decodeCore(dst, src, dict []byte, endOnInput, partial bool, targetOutputSize int) (int, error) {
	si, di := 0, 0
	send := len(src)

	oend := len(dst)
	if partial && targetOutputSize < oend {
		oend = targetOutputSize
	}

	result := func() int {
		if endOnInput {
			return di
		}
		return si
	}

	for {
		if endOnInput {
			if si >= send {
				return result(), nil
			}
		} else if di >= targetOutputSize {
			return result(), nil
		} else if si >= send {
			return di, malformed(si, "input ends before output is complete")
		}

		token := src[si]
		si++

		litLen := int(token >> mlBits)
		if litLen == runMask {
			for {
				if si >= send {
					return di, malformed(si, "truncated literal-length extension")
				}
				b := src[si]
				si++
				litLen += int(b)
				if b != 255 {
					break
				}
			}
		}

		if litLen > 0 {
			if si+litLen > send {
				return di, malformed(si, "literal run exceeds input")
			}
			if partial && di+litLen > oend {
				n := oend - di
				if n > 0 {
					copy(dst[di:oend], src[si:si+n])
					di += n
				}
				return result(), nil
			}
			if di+litLen > len(dst) {
				return di, malformed(si, "literal run overruns destination")
			}
			copy(dst[di:di+litLen], src[si:si+litLen])
			di += litLen
			si += litLen
		}

		if partial && di >= oend {
			return result(), nil
		}
		if endOnInput {
			if si >= send {
				return result(), nil
			}
		} else if di >= targetOutputSize {
			return result(), nil
		}

		if si+2 > send {
			return di, malformed(si, "truncated offset")
		}
		offset := int(loadLE16(src[si:]))
		si += 2
		if offset == 0 {
			return di, malformed(si, errZeroOffset.Error())
		}

		matchLen := int(token & mlMask)
		if matchLen == mlMask {
			for {
				if si >= send {
					return di, malformed(si, "truncated match-length extension")
				}
				b := src[si]
				si++
				matchLen += int(b)
				if b != 255 {
					break
				}
			}
		}
		matchLen += minMatch

		ref := di - offset
		if ref < 0 {
			if dict == nil {
				return di, malformedAs(si, ErrNoDictionary)
			}
			dictRef := len(dict) + ref
			if dictRef < 0 {
				return di, malformed(si, errLookBehindUnderrun.Error())
			}
			fromDict := -ref
			if fromDict > matchLen {
				fromDict = matchLen
			}
			if dictRef+fromDict > len(dict) {
				return di, malformed(si, "match crosses dictionary end inconsistently")
			}
			if partial && di+fromDict > oend {
				n := oend - di
				if n > 0 {
					copy(dst[di:oend], dict[dictRef:dictRef+n])
					di += n
				}
				return result(), nil
			}
			if di+fromDict > len(dst) {
				return di, malformed(si, "match overruns destination")
			}
			copy(dst[di:di+fromDict], dict[dictRef:dictRef+fromDict])
			di += fromDict
			matchLen -= fromDict
			ref = 0
		}

		if matchLen > 0 {
			if partial && di+matchLen > oend {
				n := oend - di
				if n > 0 {
					if err := copyMatch(dst, di, ref, n); err != nil {
						return di, malformed(si, err.Error())
					}
					di += n
				}
				return result(), nil
			}
			if di+matchLen > len(dst) {
				return di, malformed(si, "match overruns destination")
			}
			if err := copyMatch(dst, di, ref, matchLen); err != nil {
				return di, malformed(si, err.Error())
			}
			di += matchLen
		}

		if partial && di >= oend {
			return result(), nil
		}
	}
}

// copyMatch writes length bytes at dst[pos:] copied from dst[ref:],
// handling the overlapping case (pos-ref < length) with a doubling
// technique: each step copies only the already-written prefix forward, so
// distances smaller than the requested length still reproduce the correct
// periodic pattern without ever reading bytes that haven't been written yet.
func copyMatch(dst []byte, pos, ref, length int) error {
	if ref < 0 {
		return errLookBehindUnderrun
	}
	dist := pos - ref
	if dist <= 0 {
		return errNegativeDistance
	}
	if dist >= length {
		copy(dst[pos:pos+length], dst[ref:ref+length])
		return nil
	}
	copy(dst[pos:pos+dist], dst[ref:pos])
	copied := dist
	for copied < length {
		n := copy(dst[pos+copied:pos+length], dst[pos:pos+copied])
		copied += n
	}
	return nil
}
