package lz4block

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecompressSafeEmpty(t *testing.T) {
	n, err := DecompressSafe([]byte{0x00}, nil)
	if err != nil {
		t.Fatalf("DecompressSafe: %v", err)
	}
	if n != 0 {
		t.Fatalf("DecompressSafe(single 0x00) = %d, want 0", n)
	}
}

func TestDecompressSafePartial(t *testing.T) {
	in := repeatPattern([]byte("abcdefghijklmnopqrstuvwxyz"), 20)
	c := compressOneShot(t, in)

	for _, target := range []int{0, 1, 5, 17, len(in) - 1, len(in), len(in) + 50} {
		want := target
		if want > len(in) {
			want = len(in)
		}
		dst := make([]byte, want)
		n, err := DecompressSafePartial(c, dst, target)
		if err != nil {
			t.Fatalf("target %d: DecompressSafePartial: %v", target, err)
		}
		if n != want {
			t.Fatalf("target %d: wrote %d bytes, want %d", target, n, want)
		}
		if !bytes.Equal(dst[:n], in[:want]) {
			t.Fatalf("target %d: prefix mismatch", target)
		}
	}
}

func TestDecompressMalformedSentinels(t *testing.T) {
	t.Run("truncated token stream mid literal", func(t *testing.T) {
		src := []byte{0x50, 0x41, 0x42} // claims 5 literals, only supplies 2
		dst := make([]byte, 5)
		_, err := DecompressSafe(src, dst)
		if err == nil {
			t.Fatal("expected malformed-input error")
		}
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("error %v does not wrap ErrMalformedInput", err)
		}
	})

	t.Run("zero offset", func(t *testing.T) {
		// token: 1 literal, match code 0; literal 'A'; offset 0x0000.
		src := []byte{0x10, 0x41, 0x00, 0x00}
		dst := make([]byte, 8)
		_, err := DecompressSafe(src, dst)
		if err == nil {
			t.Fatal("expected malformed-input error for zero offset")
		}
	})

	t.Run("offset before output start", func(t *testing.T) {
		// token: 0 literals, match code 0; offset 1 (nothing decoded yet).
		src := []byte{0x00, 0x01, 0x00}
		dst := make([]byte, 8)
		_, err := DecompressSafe(src, dst)
		if err == nil {
			t.Fatal("expected malformed-input error for reference before output start")
		}
	})
}

func TestCopyMatchOverlap(t *testing.T) {
	// distance 1 < length 6: must reproduce the periodic pattern "aaaaaa".
	dst := make([]byte, 8)
	dst[0] = 'a'
	if err := copyMatch(dst, 1, 0, 6); err != nil {
		t.Fatalf("copyMatch: %v", err)
	}
	want := []byte("aaaaaaa")
	if !bytes.Equal(dst[:7], want) {
		t.Fatalf("copyMatch overlap result = %q, want %q", dst[:7], want)
	}

	// distance 3 >= portion of length handled per doubling step.
	dst2 := []byte{'a', 'b', 'c', 0, 0, 0, 0, 0}
	if err := copyMatch(dst2, 3, 0, 5); err != nil {
		t.Fatalf("copyMatch: %v", err)
	}
	want2 := []byte("abcabca")
	if !bytes.Equal(dst2[:7], want2) {
		t.Fatalf("copyMatch result = %q, want %q", dst2[:7], want2)
	}
}

// TestUncompressAlias checks that Uncompress (like DecompressFast, whose
// semantics it shares) reports bytes read from src, not bytes written to
// dst — spec.md's decompress_fast(...) -> bytes_read contract.
func TestUncompressAlias(t *testing.T) {
	in := []byte("round trip through the legacy alias")
	c := compressOneShot(t, in)
	dst := make([]byte, len(in))
	n, err := Uncompress(c, dst)
	if err != nil {
		t.Fatalf("Uncompress: %v", err)
	}
	if n != len(c) {
		t.Fatalf("Uncompress returned %d bytes read, want %d (all of c)", n, len(c))
	}
	if !bytes.Equal(dst, in) {
		t.Fatalf("Uncompress mismatch: got %q", dst)
	}
}

// TestDecompressFastBytesRead checks spec.md's decompress_fast -> bytes_read
// contract directly, including the back-to-back-blocks use case that
// contract exists for: knowing how much of src one call consumed so the
// next block in the same buffer can be located.
func TestDecompressFastBytesRead(t *testing.T) {
	a := []byte("first block payload data, enough to not be trivial")
	b := []byte("second block payload data, deliberately different content")

	ca := compressOneShot(t, a)
	cb := compressOneShot(t, b)
	packed := append(append([]byte{}, ca...), cb...)

	dstA := make([]byte, len(a))
	n, err := DecompressFast(packed, dstA, len(a))
	if err != nil {
		t.Fatalf("DecompressFast (first block): %v", err)
	}
	if n != len(ca) {
		t.Fatalf("DecompressFast returned %d bytes read, want %d", n, len(ca))
	}
	if !bytes.Equal(dstA, a) {
		t.Fatalf("DecompressFast first-block mismatch: got %q", dstA)
	}

	dstB := make([]byte, len(b))
	n2, err := DecompressFast(packed[n:], dstB, len(b))
	if err != nil {
		t.Fatalf("DecompressFast (second block): %v", err)
	}
	if n2 != len(cb) {
		t.Fatalf("DecompressFast returned %d bytes read, want %d", n2, len(cb))
	}
	if !bytes.Equal(dstB, b) {
		t.Fatalf("DecompressFast second-block mismatch: got %q", dstB)
	}
}

// TestDecompressFastUsingDictBytesRead checks the same bytes_read contract
// holds when a dictionary is involved.
func TestDecompressFastUsingDictBytesRead(t *testing.T) {
	dict := []byte("a shared vocabulary of common phrases and boilerplate text")
	payload := []byte("boilerplate text appears again here as a shared vocabulary phrase")

	s := NewStream()
	if err := s.LoadDict(dict); err != nil {
		t.Fatalf("LoadDict: %v", err)
	}
	dst := make([]byte, CompressBound(len(payload)))
	cn, err := s.CompressBlock(payload, dst)
	if err != nil {
		t.Fatalf("Stream.CompressBlock: %v", err)
	}
	compressed := dst[:cn]

	out := make([]byte, len(payload))
	n, err := DecompressFastUsingDict(compressed, out, len(payload), dict)
	if err != nil {
		t.Fatalf("DecompressFastUsingDict: %v", err)
	}
	if n != len(compressed) {
		t.Fatalf("DecompressFastUsingDict returned %d bytes read, want %d", n, len(compressed))
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("DecompressFastUsingDict mismatch: got %q", out)
	}
}

// TestDecompressSafePartialAcrossMatchBoundary regression-tests truncation
// landing in the middle of a match sequence rather than a literal run: an
// input whose compressed form is a short literal run followed by one long
// match, decoded to a target that falls inside that match.
func TestDecompressSafePartialAcrossMatchBoundary(t *testing.T) {
	in := repeatPattern([]byte("abcdefghijklmnopqrstuvwxyz"), 20)
	c := compressOneShot(t, in)

	const target = 100
	dst := make([]byte, target)
	n, err := DecompressSafePartial(c, dst, target)
	if err != nil {
		t.Fatalf("DecompressSafePartial: %v", err)
	}
	if n != target {
		t.Fatalf("wrote %d bytes, want %d", n, target)
	}
	if !bytes.Equal(dst, in[:target]) {
		t.Fatalf("prefix mismatch truncating mid-match")
	}
}

func TestNoDictionarySentinel(t *testing.T) {
	// token: 0 literals, match code 0; offset 1 (nothing decoded yet, no dict).
	src := []byte{0x00, 0x01, 0x00}
	dst := make([]byte, 8)
	_, err := DecompressSafe(src, dst)
	if err == nil {
		t.Fatal("expected malformed-input error")
	}
	if !errors.Is(err, ErrNoDictionary) {
		t.Fatalf("error %v does not wrap ErrNoDictionary", err)
	}
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("error %v does not also wrap ErrMalformedInput", err)
	}
}
