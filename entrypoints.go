package lz4block

// CompressBlockBound is an alias of CompressBound, matching the naming the
// wider Go LZ4 ecosystem (xiaojun207/lz4, bkaradzic/go-lz4) uses for the
// same bound.
func CompressBlockBound(srcSize int) int { return CompressBound(srcSize) }
