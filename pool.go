package lz4block

import "sync"

// compressorStatePool lets the default one-shot entry points (CompressBlock,
// CompressBlockLimited) reuse a hash table across calls instead of paying a
// 16 KiB allocation every time, the same acquire/release shape
// WoozyMasta-lzo's sliding-window pool uses for its (larger) dictionary
// buffer.
var compressorStatePool = sync.Pool{
	New: func() any { return &CompressorState{} },
}

func acquireState() *CompressorState {
	return compressorStatePool.Get().(*CompressorState)
}

func releaseState(state *CompressorState) {
	compressorStatePool.Put(state)
}
