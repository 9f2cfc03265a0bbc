// Package dataChunks holds the data portion of an event log split into 32 byte words
// and resolves dynamically sized values stored behind an offset pointer.
package dataChunks

import (
	"encoding/hex"
	"math"
	"slices"
	"strings"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/numbers"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// WordLength is the number of hex characters in one ABI word.
const WordLength = 64

const wordLengthBytes = WordLength / 2

// DataChunks is an immutable, ordered sequence of hex words. It is safe for concurrent reads.
type DataChunks struct {
	words []string
}

// NewDataChunks copies words into a new container. Word contents are not validated here;
// malformed words fail when they are read.
func NewDataChunks(words []string) *DataChunks {
	return &DataChunks{
		words: slices.Clone(words),
	}
}

// NewDataChunksFromHex splits a raw log data field into words. The "0x" or "0X" prefix is
// optional; the rest must be a whole number of words.
func NewDataChunksFromHex(data string) (*DataChunks, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(data, "0x"), "0X")
	if len(raw)%WordLength != 0 {
		return nil, errors.Wrapf(ErrMalformedHex, "data length %d is not a multiple of %d", len(raw), WordLength)
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return nil, errors.Wrapf(ErrMalformedHex, "data is not hex: %v", err)
	}
	words := make([]string, 0, len(raw)/WordLength)
	for i := 0; i < len(raw); i += WordLength {
		words = append(words, raw[i:i+WordLength])
	}
	return &DataChunks{words: words}, nil
}

// NewDataChunksFromBytes splits a raw byte payload such as types.Log.Data.
func NewDataChunksFromBytes(data []byte) (*DataChunks, error) {
	if len(data)%wordLengthBytes != 0 {
		return nil, errors.Wrapf(ErrMalformedHex, "data length %d is not a multiple of %d bytes", len(data), wordLengthBytes)
	}
	return NewDataChunksFromHex(hexutil.Encode(data))
}

// Validate checks that every word is exactly WordLength hex characters.
func (dc *DataChunks) Validate() error {
	for i, w := range dc.words {
		if len(w) != WordLength {
			return &MalformedHexError{Index: i, Context: "unexpected word length"}
		}
		if _, err := hex.DecodeString(w); err != nil {
			return &MalformedHexError{Index: i, Context: "word is not hex", Err: err}
		}
	}
	return nil
}

// Len returns the number of words.
func (dc *DataChunks) Len() int {
	return len(dc.words)
}

// Get returns the word at index.
func (dc *DataChunks) Get(index int) (string, error) {
	if index < 0 || index >= len(dc.words) {
		return "", &OutOfRangeError{Index: index, Len: len(dc.words)}
	}
	return dc.words[index], nil
}

// AsSlice returns a copy of every word in order.
func (dc *DataChunks) AsSlice() []string {
	return slices.Clone(dc.words)
}

// ValueOfDynType resolves the dynamic value whose offset pointer sits at startIndex.
//
// The pointer holds a byte offset to the value's length word. The length word holds the
// value size in bytes, and the payload follows it, right padded to a whole word. The
// result is the "0x" prefixed payload without padding.
func (dc *DataChunks) ValueOfDynType(startIndex int) (string, error) {
	pointer, err := dc.Get(startIndex)
	if err != nil {
		return "", err
	}
	offsetBytes, err := numbers.FromHexString(pointer)
	if err != nil {
		return "", &MalformedHexError{Index: startIndex, Context: "unexpected offset", Err: err}
	}

	offsetWords := offsetBytes / wordLengthBytes
	if offsetWords >= uint64(len(dc.words)) {
		return "", &OutOfRangeError{Index: clampIndex(offsetWords), Len: len(dc.words)}
	}
	offsetIndex := int(offsetWords)

	sizeWord, err := dc.Get(offsetIndex)
	if err != nil {
		return "", err
	}
	valueSize, err := numbers.FromHexString(sizeWord)
	if err != nil {
		return "", &MalformedHexError{Index: startIndex, Context: "unexpected data size", Err: err}
	}
	if valueSize > math.MaxUint64/2 {
		return "", &OutOfRangeError{Index: math.MaxInt, Len: len(dc.words)}
	}
	valueSizeHex := valueSize * 2

	fullChunks := valueSizeHex / WordLength
	carry := valueSizeHex % WordLength

	needed := fullChunks
	if carry > 0 {
		needed++
	}
	// the payload starts right after the length word
	available := uint64(len(dc.words) - offsetIndex - 1)
	if needed > available {
		return "", &OutOfRangeError{Index: clampIndex(uint64(offsetIndex) + needed), Len: len(dc.words)}
	}

	var output strings.Builder
	output.Grow(2 + int(valueSizeHex))
	output.WriteString("0x")

	current := offsetIndex + 1
	for i := uint64(0); i < fullChunks; i++ {
		word := dc.words[current]
		if len(word) != WordLength {
			return "", &MalformedHexError{Index: current, Context: "unexpected word length"}
		}
		output.WriteString(word)
		current++
	}
	if carry > 0 {
		word := dc.words[current]
		if len(word) != WordLength {
			return "", &MalformedHexError{Index: current, Context: "unexpected word length"}
		}
		output.WriteString(word[:carry])
	}
	return output.String(), nil
}

func clampIndex(i uint64) int {
	if i > math.MaxInt {
		return math.MaxInt
	}
	return int(i)
}
