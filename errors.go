// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package lz4block

import (
	"errors"
	"fmt"
)

// Sentinel errors for compression and decompression.
var (
	// ErrInputTooLarge is returned when the encoder input exceeds the maximum
	// supported block size (~2 GiB).
	ErrInputTooLarge = errors.New("lz4block: input too large")
	// ErrShortBuffer is returned by the size-checked encoder variants when dst
	// is too small to hold the compressed output. The check is made as each
	// sequence is written and includes a small conservative margin.
	ErrShortBuffer = errors.New("lz4block: destination buffer too small")
	// ErrMisalignedState is returned when CompressBlockWithState (or its
	// limited variant) is called with a nil state.
	ErrMisalignedState = errors.New("lz4block: compressor state not usable")
	// ErrNoDictionary is returned, wrapped in a *MalformedInputError, when a
	// match offset reaches before the start of dst and the decoder was given
	// no dictionary (a nil dict, as in DecompressSafe and DecompressFast).
	ErrNoDictionary = errors.New("lz4block: match references dictionary but none was provided")

	// ErrMalformedInput is the sentinel base for all decoder errors; use
	// errors.Is(err, ErrMalformedInput) to test for any malformed-stream
	// condition without caring about the offset. Concrete occurrences are
	// *MalformedInputError values that wrap this sentinel.
	ErrMalformedInput = errors.New("lz4block: malformed compressed stream")
)

// MalformedInputError reports a decoder failure and the input offset at
// which it was detected, mirroring spec.md §7's "negative return value
// whose absolute value locates the offending input offset" contract in
// Go-native form. The offset is diagnostic only; callers should treat the
// whole block as invalid rather than try to resume past it.
type MalformedInputError struct {
	// Offset is the input byte position where decoding failed.
	Offset int
	// Reason is a short, human-readable description of what went wrong.
	Reason string
	// cause, when set, is a more specific sentinel than ErrMalformedInput
	// that errors.Is can also match against (e.g. ErrNoDictionary).
	cause error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("lz4block: malformed input at offset %d: %s", e.Offset, e.Reason)
}

func (e *MalformedInputError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrMalformedInput, e.cause}
	}
	return []error{ErrMalformedInput}
}

// malformed builds a *MalformedInputError for offset with the given reason.
func malformed(offset int, reason string) error {
	return &MalformedInputError{Offset: offset, Reason: reason}
}

// malformedAs builds a *MalformedInputError for offset whose cause is also
// reachable via errors.Is(err, cause), for decoder failures that have a more
// specific sentinel than the generic malformed-input case.
func malformedAs(offset int, cause error) error {
	return &MalformedInputError{Offset: offset, Reason: cause.Error(), cause: cause}
}
