package numbers

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FromHexString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected uint64
	}{
		{name: "zero word", input: "0000000000000000000000000000000000000000000000000000000000000000", expected: 0},
		{name: "offset word", input: "0000000000000000000000000000000000000000000000000000000000000160", expected: 0x160},
		{name: "prefixed", input: "0x44", expected: 0x44},
		{name: "mixed case", input: "00000000000000000000000000000000000000000000000000000000000011eF", expected: 0x11ef},
		{name: "odd length", input: "1e0", expected: 0x1e0},
		{name: "max uint64", input: "000000000000000000000000000000000000000000000000ffffffffffffffff", expected: ^uint64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromHexString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	t.Run("Should fail on non-hex input", func(t *testing.T) {
		_, err := FromHexString("00000000000000000000000000000000000000000000000000000000000000zz")
		assert.True(t, errors.Is(err, ErrInvalidHex))
	})
	t.Run("Should fail on empty input", func(t *testing.T) {
		_, err := FromHexString("")
		assert.True(t, errors.Is(err, ErrInvalidHex))
	})
	t.Run("Should fail when the value does not fit 64 bits", func(t *testing.T) {
		_, err := FromHexString("0000000000000000000000000000000000000000000000010000000000000000")
		assert.True(t, errors.Is(err, ErrOverflow))
	})
}

func Test_FromHexStringToUint256(t *testing.T) {
	t.Run("Should decode a full width word", func(t *testing.T) {
		v, err := FromHexStringToUint256("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
		require.NoError(t, err)
		assert.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935", v.Dec())
	})
	t.Run("Should ignore leading zeros", func(t *testing.T) {
		short, err := FromHexStringToUint256("1e0")
		require.NoError(t, err)
		long, err := FromHexStringToUint256("00000000000000000000000000000000000000000000000000000000000001e0")
		require.NoError(t, err)
		assert.Equal(t, "480", short.Dec())
		assert.Equal(t, short.Dec(), long.Dec())
	})
	t.Run("Should fail on non-hex input", func(t *testing.T) {
		_, err := FromHexStringToUint256("0xnothex")
		assert.True(t, errors.Is(err, ErrInvalidHex))
	})
	t.Run("Should fail on more than 32 significant bytes", func(t *testing.T) {
		_, err := FromHexStringToUint256("01" + "0000000000000000000000000000000000000000000000000000000000000000")
		assert.True(t, errors.Is(err, ErrOverflow))
	})
}
