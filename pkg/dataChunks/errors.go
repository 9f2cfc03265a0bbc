package dataChunks

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrIndexOutOfRange = errors.New("chunk index out of range")
	ErrMalformedHex    = errors.New("malformed hex word")
)

// OutOfRangeError is returned when a chunk index points past the stored words.
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("chunk index %d out of range (%d chunks)", e.Index, e.Len)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// MalformedHexError is returned when a word could not be read as the value it encodes.
// Index is the chunk index of the argument being decoded.
type MalformedHexError struct {
	Index   int
	Context string
	Err     error
}

func (e *MalformedHexError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("chunk %d: %s", e.Index, e.Context)
	}
	return fmt.Sprintf("chunk %d: %s: %v", e.Index, e.Context, e.Err)
}

func (e *MalformedHexError) Is(target error) bool {
	return target == ErrMalformedHex
}

func (e *MalformedHexError) Unwrap() error {
	return e.Err
}
