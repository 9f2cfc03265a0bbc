// Package topicArgument decodes single event arguments out of a DataChunks buffer.
package topicArgument

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/dataChunks"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/numbers"
	"github.com/pkg/errors"
)

// TopicArgument selects how one ABI encoded argument is rendered.
type TopicArgument uint8

const (
	Address TopicArgument = iota
	Uint8
	Uint256
	Bytes32
	Bytes
)

var ErrUnsupportedType = errors.New("unsupported argument type")

var solidityTypes = map[TopicArgument]string{
	Address: "address",
	Uint8:   "uint8",
	Uint256: "uint256",
	Bytes32: "bytes32",
	Bytes:   "bytes",
}

func (ta TopicArgument) String() string {
	if s, ok := solidityTypes[ta]; ok {
		return s
	}
	return fmt.Sprintf("TopicArgument(%d)", uint8(ta))
}

// IsDynamic reports whether the argument's head word is an offset pointer.
func (ta TopicArgument) IsDynamic() bool {
	return ta == Bytes
}

// FromSolidityType maps a canonical Solidity type name to its TopicArgument.
func FromSolidityType(t string) (TopicArgument, error) {
	t = strings.TrimSpace(t)
	if t == "uint" {
		return Uint256, nil
	}
	for ta, name := range solidityTypes {
		if name == t {
			return ta, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedType, "'%s'", t)
}

// Parse decodes the argument at chunk index.
//
// Static types read the word at index directly. Bytes treats that word as an offset
// pointer and resolves the payload through chunks.ValueOfDynType.
func (ta TopicArgument) Parse(index int, chunks *dataChunks.DataChunks) (string, error) {
	if ta == Bytes {
		return chunks.ValueOfDynType(index)
	}

	word, err := chunks.Get(index)
	if err != nil {
		return "", err
	}
	if len(word) != dataChunks.WordLength {
		return "", &dataChunks.MalformedHexError{Index: index, Context: "unexpected word length"}
	}

	switch ta {
	case Address:
		return "0x" + strings.ToLower(word[24:64]), nil
	case Uint8:
		v, err := numbers.FromHexString(word[56:64])
		if err != nil {
			return "", &dataChunks.MalformedHexError{Index: index, Context: "Uint8 parse error", Err: err}
		}
		return strconv.FormatUint(v, 10), nil
	case Uint256:
		v, err := numbers.FromHexStringToUint256(word)
		if err != nil {
			return "", &dataChunks.MalformedHexError{Index: index, Context: "Uint256 parse error", Err: err}
		}
		return v.Dec(), nil
	case Bytes32:
		return "0x" + word, nil
	}
	return "", errors.Wrapf(ErrUnsupportedType, "%s", ta)
}

// DecodeArguments decodes schema[i] at chunk index i and stops at the first failure.
// Chunks beyond the schema are ignored.
func DecodeArguments(schema []TopicArgument, chunks *dataChunks.DataChunks) ([]string, error) {
	values := make([]string, 0, len(schema))
	for i, ta := range schema {
		v, err := ta.Parse(i, chunks)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode argument %d (%s)", i, ta)
		}
		values = append(values, v)
	}
	return values, nil
}
