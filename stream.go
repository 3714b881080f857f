package lz4block

// Stream carries the hash index and dictionary history across successive
// CompressBlock calls, per spec.md §3's Stream state. The zero value is
// usable: the first LoadDict or CompressBlock call initializes it. NewStream
// returns a Stream that is already initialized.
//
// Unlike the reference encoder, which models prefix continuation as raw
// pointer contiguity inside one caller-owned buffer, Stream keeps its own
// copy of the trailing history (up to 64 KiB) and resolves matches through
// virtual positions. After SaveDict the history is the caller's safe buffer
// until the next CompressBlock copies it again. A freshly loaded dictionary
// and the tail of the previous block are both just "the dictionary" to the
// match finder; this
// collapses spec.md's prefix_64k and external_dict modes into a single
// mechanism without requiring two separately-allocated Go slices to be
// contiguous in memory, which — unlike C's flat buffers — they generally
// aren't.
type Stream struct {
	table         hashTable
	currentOffset uint32
	dict          []byte
	dictVirtual   uint32
	initialized   bool
}

// NewStream returns a ready-to-use Stream with no dictionary loaded.
func NewStream() *Stream {
	s := &Stream{}
	s.init()
	return s
}

func (s *Stream) init() {
	s.table.reset(tableType32)
	s.currentOffset = 0
	s.dict = nil
	s.dictVirtual = 0
	s.initialized = true
}

// LoadDict registers dict as history visible to the next CompressBlock
// call. Only the last 64 KiB is retained.
func (s *Stream) LoadDict(dict []byte) error {
	if !s.initialized {
		s.init()
	}
	if len(dict) > windowSize64K {
		dict = dict[len(dict)-windowSize64K:]
	}
	s.dict = append([]byte(nil), dict...)
	s.dictVirtual = s.currentOffset
	s.currentOffset += uint32(len(s.dict))

	for p := 0; p+minMatch <= len(s.dict); p += 3 {
		seq := loadLE32(s.dict[p:])
		s.table.put(seq, s.dictVirtual+uint32(p))
	}
	return nil
}

// CompressBlock compresses src into dst using history accumulated from
// earlier calls and/or LoadDict. dst must be at least
// CompressBound(len(src)) bytes.
func (s *Stream) CompressBlock(src, dst []byte) (int, error) {
	if !s.initialized {
		s.init()
	}
	if len(src) > maxInputSize {
		return 0, ErrInputTooLarge
	}

	s.renormalizeIfNeeded()

	blockVirtual := s.currentOffset
	n, err := compressBlockWithDict(&s.table, src, dst, s.dict, s.dictVirtual, blockVirtual, false)
	if err != nil {
		return 0, err
	}

	s.currentOffset = blockVirtual + uint32(len(src))
	s.updateDictAfterBlock(src)
	return n, nil
}

// updateDictAfterBlock makes the tail of (dict ++ src), up to 64 KiB,
// the history visible to the next call.
func (s *Stream) updateDictAfterBlock(src []byte) {
	combined := make([]byte, 0, len(s.dict)+len(src))
	combined = append(combined, s.dict...)
	combined = append(combined, src...)
	if len(combined) > windowSize64K {
		combined = combined[len(combined)-windowSize64K:]
	}
	s.dict = combined
	s.dictVirtual = s.currentOffset - uint32(len(s.dict))
}

// SaveDict copies the live dictionary tail (up to len(safe) bytes, capped at
// 64 KiB) into safe and rebases Stream to reference that buffer going
// forward, per spec.md's move_dictionary. It returns the number of bytes
// copied.
func (s *Stream) SaveDict(safe []byte) int {
	n := len(s.dict)
	if n > len(safe) {
		n = len(safe)
	}
	if n > windowSize64K {
		n = windowSize64K
	}
	copy(safe, s.dict[len(s.dict)-n:])
	s.dict = safe[:n]
	s.dictVirtual = s.currentOffset - uint32(n)
	return n
}

// renormalizeIfNeeded rebases the hash table and dictionary pointer once
// currentOffset crosses renormalizeThreshold, so position arithmetic never
// approaches uint32 overflow during a long-lived stream.
func (s *Stream) renormalizeIfNeeded() {
	if s.currentOffset <= renormalizeThreshold {
		return
	}
	delta := s.currentOffset - windowSize64K
	for i, e := range s.table.t32 {
		if e < delta {
			s.table.t32[i] = 0
		} else {
			s.table.t32[i] = e - delta
		}
	}
	s.currentOffset = windowSize64K
	if s.dictVirtual < delta {
		s.dictVirtual = 0
	} else {
		s.dictVirtual -= delta
	}
}

// vspace resolves virtual positions (spanning a dictionary buffer followed
// immediately, in virtual-address terms, by the current block's source
// buffer) to actual bytes, for streaming match search and extension.
type vspace struct {
	dict        []byte
	dictVirtual uint32
	src         []byte
	srcVirtual  uint32
}

func (v *vspace) inSrc(p uint32) bool {
	return p >= v.srcVirtual && int(p-v.srcVirtual) < len(v.src)
}

func (v *vspace) inDict(p uint32) bool {
	return p >= v.dictVirtual && int(p-v.dictVirtual) < len(v.dict)
}

func (v *vspace) byteAt(p uint32) (byte, bool) {
	if v.inSrc(p) {
		return v.src[p-v.srcVirtual], true
	}
	if v.inDict(p) {
		return v.dict[p-v.dictVirtual], true
	}
	return 0, false
}

// sequence returns the 4-byte little-endian fingerprint starting at virtual
// position p, reading across the dict/src boundary a byte at a time when p
// is close enough to straddle it.
func (v *vspace) sequence(p uint32) (uint32, bool) {
	if v.inSrc(p) {
		i := int(p - v.srcVirtual)
		if i+minMatch <= len(v.src) {
			return loadLE32(v.src[i:]), true
		}
		return 0, false
	}
	if v.inDict(p) {
		i := int(p - v.dictVirtual)
		if i+minMatch <= len(v.dict) {
			return loadLE32(v.dict[i:]), true
		}
		var buf [minMatch]byte
		for k := 0; k < minMatch; k++ {
			b, ok := v.byteAt(p + uint32(k))
			if !ok {
				return 0, false
			}
			buf[k] = b
		}
		return loadLE32(buf[:]), true
	}
	return 0, false
}

// countMatch extends forward from ip and ref (already known to agree on
// minMatch bytes) up to limit. The fast path handles the common case where
// both sides have already resolved into src; the slow path is used only
// while ref is still inside the dictionary, per spec.md §4.3's
// dictionary-boundary-crossing rule.
func (v *vspace) countMatch(ip, ref, limit uint32) int {
	if v.inSrc(ref) && v.inSrc(ip) {
		a := int(ip - v.srcVirtual)
		b := int(ref - v.srcVirtual)
		l := int(limit - v.srcVirtual)
		if l > len(v.src) {
			l = len(v.src)
		}
		if l <= a || b >= len(v.src) {
			return 0
		}
		return commonByteCount(v.src[a:l], v.src[b:])
	}
	n := uint32(0)
	for ip+n < limit {
		b1, ok1 := v.byteAt(ip + n)
		b2, ok2 := v.byteAt(ref + n)
		if !ok1 || !ok2 || b1 != b2 {
			break
		}
		n++
	}
	return int(n)
}

// extendBackward is the dictionary-aware catch-up step.
func (v *vspace) extendBackward(ip, ref, anchor, lowLimit uint32) (uint32, uint32) {
	for ip > anchor && ref > lowLimit {
		b1, ok1 := v.byteAt(ip - 1)
		b2, ok2 := v.byteAt(ref - 1)
		if !ok1 || !ok2 || b1 != b2 {
			break
		}
		ip--
		ref--
	}
	return ip, ref
}

// searchV is findMatch's dictionary-aware counterpart: candidate positions
// may resolve into either the dictionary or the current block.
func searchV(table *hashTable, v *vspace, ip, mflimit uint32) (nip, ref uint32, ok bool) {
	searchMatchNb := uint32((1 << skipStrength) + 3)

	for {
		if ip > mflimit {
			return 0, 0, false
		}
		step := searchMatchNb >> skipStrength
		searchMatchNb++

		seq, okSeq := v.sequence(ip)
		if !okSeq {
			return 0, 0, false
		}
		candidate := table.get(seq)
		table.put(seq, ip)

		if candidate <= ip && ip-candidate <= maxDistance && candidate != ip {
			if cseq, okc := v.sequence(candidate); okc && cseq == seq {
				return ip, candidate, true
			}
		}
		ip += step
	}
}

// compressBlockWithDict is compressBlockNoDict generalized to search a
// dictionary in addition to the current block. See vspace for how
// candidate positions are resolved across the two buffers.
func compressBlockWithDict(table *hashTable, src, dst, dict []byte, dictVirtual, blockVirtual uint32, limited bool) (int, error) {
	n := len(src)
	if n > maxInputSize {
		return 0, ErrInputTooLarge
	}

	v := &vspace{dict: dict, dictVirtual: dictVirtual, src: src, srcVirtual: blockVirtual}
	lowLimit := dictVirtual
	if len(dict) == 0 {
		lowLimit = blockVirtual
	}

	if n < minLength {
		return writeLastLiterals(dst, 0, src, 0, n, limited)
	}

	mflimit := blockVirtual + uint32(n-mfLimit)
	matchlimit := blockVirtual + uint32(n-lastLiterals)

	if seq, ok := v.sequence(blockVirtual); ok {
		table.put(seq, blockVirtual)
	}

	anchor := blockVirtual
	ip := blockVirtual + 1
	di := 0

	for {
		mip, ref, ok := searchV(table, v, ip, mflimit)
		if !ok {
			return writeLastLiterals(dst, di, src, int(anchor-v.srcVirtual), n, limited)
		}
		mStart, rStart := v.extendBackward(mip, ref, anchor, lowLimit)

		for {
			ll := int(mStart - anchor)
			tokenIdx, ndi, err := writeLiteralHeader(dst, di, ll, limited)
			if err != nil {
				return 0, err
			}
			di = ndi
			a := int(anchor - v.srcVirtual)
			b := int(mStart - v.srcVirtual)
			di += copy(dst[di:di+ll], src[a:b])

			storeLE16(dst[di:], uint16(mStart-rStart))
			di += 2

			mEnd := mStart + minMatch
			rEnd := rStart + minMatch
			matchLen := v.countMatch(mEnd, rEnd, matchlimit)
			ip = mEnd + uint32(matchLen)

			di, err = writeMatchLenExt(dst, di, tokenIdx, matchLen, limited)
			if err != nil {
				return 0, err
			}

			anchor = ip
			if ip > mflimit {
				return writeLastLiterals(dst, di, src, int(anchor-v.srcVirtual), n, limited)
			}

			if seq, ok := v.sequence(ip - 2); ok {
				table.put(seq, ip-2)
			}
			candSeq, okc := v.sequence(ip)
			var cand uint32
			found := false
			if okc {
				cand = table.get(candSeq)
				table.put(candSeq, ip)
				if cand <= ip && ip-cand <= maxDistance && cand != ip {
					if cseq, ok2 := v.sequence(cand); ok2 && cseq == candSeq {
						found = true
					}
				}
			}
			if found {
				mStart, rStart = ip, cand
				continue
			}
			ip++
			break
		}
	}
}
