package fmindex

import (
	"errors"
	"fmt"
)

// ErrEmptyGenome is returned when an FmIndex is constructed over a
// zero-length sequence.
var ErrEmptyGenome = errors.New("fmindex: empty genome")

// ErrCorruptIndex is returned by the persistence layer when a loaded index
// fails its internal consistency checks.
var ErrCorruptIndex = errors.New("fmindex: corrupt index")

// recoverToError converts a panic raised by the low-level index builders
// (out-of-range rank/bitvector access, malformed runs) into an error at the
// public API boundary, mirroring the teacher's bwtRecovery.
func recoverToError(operation string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("fmindex %s: %v", operation, r)
	}
}
