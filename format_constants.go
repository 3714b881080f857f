// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package lz4block

// Sequence shape: a token byte (high nibble = literal-length code, low
// nibble = match-length code), an optional extended literal-length run, the
// literal bytes themselves, a 2-byte little-endian offset, and an optional
// extended match-length run.
const (
	mlBits  = 4
	mlMask  = (1 << mlBits) - 1 // 15: in-token match-length code before extension
	runBits = 8 - mlBits
	runMask = (1 << runBits) - 1 // 15: in-token literal-length code before extension
)

// Match geometry.
const (
	minMatch      = 4     // shortest encodable back-reference
	maxDistance   = 0xFFFF // largest encodable offset (2-byte field)
	copyLength    = 8      // wild-copy chunk size
	lastLiterals  = 5      // trailing bytes of a block that are always literal
	mfLimit       = copyLength + minMatch // 12: encoder stops searching this far from the end
	minLength     = mfLimit + 1           // 13: shortest input worth trying to compress
	skipStrength  = 6                     // forward-skip schedule shift
)

// Hash index sizing. hashLog entries of 4 bytes each (tableTypePtr,
// tableType32) give a 16 KiB table; the 16-bit shape trades entry width for
// one extra log2 of entries at the same total footprint.
const (
	hashLog         = 12
	hashTableSize   = 1 << hashLog // 4096 entries, tableTypePtr/tableType32
	hashLog16       = hashLog + 1
	hashTableSize16 = 1 << hashLog16 // 8192 entries, tableType16
)

// Addressable window.
const (
	windowSize64K   = 64 * 1024                  // dictionary/prefix retention window
	sixtyFourKLimit = windowSize64K + mfLimit - 1 // one-shot blocks at or above this use the wider table
)

// maxInputSize bounds a single block's input size to keep offsets and the
// streaming position counter comfortably inside uint32 arithmetic; it
// mirrors the reference encoder's documented "approximately 2 GiB" ceiling
// (spec.md §7's Input-too-large condition).
const maxInputSize = 0x7E000000

// renormalizeThreshold is the currentOffset value past which Stream rebases
// its hash table and dictionary pointer back down near windowSize64K, per
// spec.md §3's renormalization invariant.
const renormalizeThreshold = 1 << 31
