// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

// Package lz4block implements the LZ4 block compression format: a
// single-pass, hash-indexed LZ77 codec tuned for speed over compression
// ratio. It operates on raw blocks, not the LZ4 frame format — there is no
// magic number, no checksum, and no container framing here; callers that
// need a self-describing stream should wrap this package's Compress/Decompress
// functions in their own framing layer.
//
// One-shot use:
//
//	dst := make([]byte, lz4block.CompressBound(len(src)))
//	n, err := lz4block.CompressBlock(src, dst)
//	if err != nil {
//		// ...
//	}
//	dst = dst[:n]
//
//	out := make([]byte, len(src))
//	n, err = lz4block.DecompressSafe(dst, out)
//
// Streaming use, where later blocks may reference earlier ones:
//
//	enc := lz4block.NewStream()
//	for _, chunk := range chunks {
//		dst := make([]byte, lz4block.CompressBound(len(chunk)))
//		n, err := enc.CompressBlock(chunk, dst)
//		// ...
//	}
//
// CompressBlockWithState lets a caller reuse a CompressorState across many
// one-shot calls instead of paying a hash-table allocation each time; the
// package-level CompressBlock does this internally via a pool.
package lz4block
