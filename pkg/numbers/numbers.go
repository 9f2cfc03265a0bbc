// Package numbers converts fixed-width hexadecimal strings, as found in ABI encoded
// words, into unsigned integers.
package numbers

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	ErrInvalidHex = errors.New("invalid hex string")
	ErrOverflow   = errors.New("hex value exceeds representable range")
)

// decode turns s into big-endian bytes with leading zero bytes removed.
// The 0x prefix is optional and odd lengths are padded with a leading zero nibble.
func decode(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) == 0 {
		return nil, errors.Wrapf(ErrInvalidHex, "empty string")
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hexutil.Decode("0x" + s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidHex, "'%s': %v", s, err)
	}
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:], nil
}

// FromHexString parses a hex string into a uint64.
func FromHexString(s string) (uint64, error) {
	b, err := decode(s)
	if err != nil {
		return 0, err
	}
	if len(b) > 8 {
		return 0, errors.Wrapf(ErrOverflow, "'%s' does not fit in 64 bits", s)
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// FromHexStringToUint256 parses a hex string of up to 32 significant bytes.
func FromHexStringToUint256(s string) (*uint256.Int, error) {
	b, err := decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) > 32 {
		return nil, errors.Wrapf(ErrOverflow, "'%s' does not fit in 256 bits", s)
	}
	return new(uint256.Int).SetBytes(b), nil
}
