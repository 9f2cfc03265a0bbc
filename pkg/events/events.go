// Package events describes contract events by their signature and maps topic0 hashes
// back to the argument schema needed to decode a log.
package events

import (
	"fmt"
	"strings"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/topicArgument"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

var ErrInvalidSignature = errors.New("invalid event signature")

// Input is one declared event parameter.
type Input struct {
	Name    string
	Type    topicArgument.TopicArgument
	Indexed bool
}

// Event is a contract event identified by the keccak256 hash of its canonical signature.
type Event struct {
	Name string
	// Signature is the canonical form, e.g. "SafeReceived(address,uint256)"
	Signature string
	Topic     common.Hash
	Inputs    []Input
}

// ParseEventSignature parses "Name(type [indexed] [name], ...)".
func ParseEventSignature(sig string) (*Event, error) {
	sig = strings.TrimSpace(sig)
	open := strings.Index(sig, "(")
	if open <= 0 || !strings.HasSuffix(sig, ")") {
		return nil, errors.Wrapf(ErrInvalidSignature, "'%s'", sig)
	}
	name := strings.TrimSpace(sig[:open])
	if strings.ContainsAny(name, " ,()") {
		return nil, errors.Wrapf(ErrInvalidSignature, "bad event name '%s'", name)
	}

	params := strings.TrimSpace(sig[open+1 : len(sig)-1])
	var inputs []Input
	if params != "" {
		for i, param := range strings.Split(params, ",") {
			input, err := parseInput(param)
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %d of '%s'", i, sig)
			}
			inputs = append(inputs, input)
		}
	}

	canonical := make([]string, len(inputs))
	for i, input := range inputs {
		canonical[i] = input.Type.String()
	}
	signature := fmt.Sprintf("%s(%s)", name, strings.Join(canonical, ","))

	return &Event{
		Name:      name,
		Signature: signature,
		Topic:     crypto.Keccak256Hash([]byte(signature)),
		Inputs:    inputs,
	}, nil
}

func parseInput(param string) (Input, error) {
	fields := strings.Fields(param)
	if len(fields) == 0 || len(fields) > 3 {
		return Input{}, errors.Wrapf(ErrInvalidSignature, "malformed parameter '%s'", param)
	}
	ta, err := topicArgument.FromSolidityType(fields[0])
	if err != nil {
		return Input{}, err
	}
	input := Input{Type: ta}
	rest := fields[1:]
	if len(rest) > 0 && rest[0] == "indexed" {
		input.Indexed = true
		rest = rest[1:]
	}
	switch len(rest) {
	case 0:
	case 1:
		input.Name = rest[0]
	default:
		return Input{}, errors.Wrapf(ErrInvalidSignature, "malformed parameter '%s'", param)
	}
	return input, nil
}

// DataSchema returns the types of the non-indexed inputs, which live in the log data.
func (e *Event) DataSchema() []topicArgument.TopicArgument {
	return e.schema(false)
}

// TopicSchema returns the types of the indexed inputs, which live in topics[1:].
func (e *Event) TopicSchema() []topicArgument.TopicArgument {
	return e.schema(true)
}

func (e *Event) schema(indexed bool) []topicArgument.TopicArgument {
	out := make([]topicArgument.TopicArgument, 0, len(e.Inputs))
	for _, input := range e.Inputs {
		if input.Indexed == indexed {
			out = append(out, input.Type)
		}
	}
	return out
}

// Safe wallet events.
const (
	SafeReceived            = "SafeReceived(address indexed sender, uint256 value)"
	ExecutionSuccess        = "ExecutionSuccess(bytes32 txHash, uint256 payment)"
	ExecutionFailure        = "ExecutionFailure(bytes32 txHash, uint256 payment)"
	SafeMultiSigTransaction = "SafeMultiSigTransaction(address to, uint256 value, bytes data, uint8 operation, uint256 safeTxGas, uint256 baseGas, uint256 gasPrice, address gasToken, address refundReceiver, bytes signatures, bytes additionalInfo)"
)

// SafeEvents returns the parsed Safe wallet events.
func SafeEvents() []*Event {
	sigs := []string{SafeReceived, ExecutionSuccess, ExecutionFailure, SafeMultiSigTransaction}
	out := make([]*Event, 0, len(sigs))
	for _, s := range sigs {
		e, err := ParseEventSignature(s)
		if err != nil {
			panic(err)
		}
		out = append(out, e)
	}
	return out
}
