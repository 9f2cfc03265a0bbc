// Package logDecoder turns raw event logs into decoded, human readable arguments.
package logDecoder

import (
	"strings"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/dataChunks"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/events"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/topicArgument"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrNilLog       = errors.New("log is nil")
	ErrNoTopics     = errors.New("log has no topics")
	ErrUnknownEvent = errors.New("no event registered for topic")
)

// LogDecoder decodes logs whose topic0 is known to its event store.
type LogDecoder struct {
	store  events.EventStore
	logger *zap.Logger
}

func NewLogDecoder(store events.EventStore, logger *zap.Logger) *LogDecoder {
	return &LogDecoder{
		store:  store,
		logger: logger,
	}
}

// DecodeLog decodes every argument of lg. A failure to decode a single argument is
// recorded on that argument and does not abort the log.
func (ld *LogDecoder) DecodeLog(lg *types.Log) (*DecodedLog, error) {
	if lg == nil {
		return nil, ErrNilLog
	}
	if len(lg.Topics) == 0 {
		ld.logger.Sugar().Debugw("Skipping log without topics",
			"txHash", lg.TxHash.Hex(),
			"logIndex", lg.Index,
		)
		return nil, ErrNoTopics
	}

	event, ok := ld.store.GetEventByTopic(lg.Topics[0])
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEvent, "'%s'", lg.Topics[0].Hex())
	}

	decoded, err := ld.Decode(event, lg.Topics[1:], lg.Data)
	if err != nil {
		ld.logger.Sugar().Errorw("Failed to decode log",
			zap.Error(err),
			zap.String("txHash", lg.TxHash.Hex()),
			zap.String("address", lg.Address.Hex()),
			zap.String("eventName", event.Name),
		)
		return nil, err
	}
	decoded.LogIndex = uint64(lg.Index)
	decoded.Address = strings.ToLower(lg.Address.Hex())
	decoded.TransactionHash = lg.TxHash.Hex()
	return decoded, nil
}

// Decode decodes a log payload for a known event. topics excludes topic0.
func (ld *LogDecoder) Decode(event *events.Event, topics []common.Hash, data []byte) (*DecodedLog, error) {
	chunks, err := dataChunks.NewDataChunksFromBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to split data for event '%s'", event.Name)
	}

	decoded := &DecodedLog{
		EventName: event.Name,
		Signature: event.Signature,
		Topic:     event.Topic.Hex(),
		Arguments: make([]Argument, len(event.Inputs)),
	}

	topicIndex, dataIndex := 0, 0
	for i, input := range event.Inputs {
		arg := Argument{
			Position: i,
			Name:     input.Name,
			Type:     input.Type.String(),
			Indexed:  input.Indexed,
		}

		var value string
		var err error
		if input.Indexed {
			value, err = decodeTopic(input.Type, topics, topicIndex)
			topicIndex++
		} else {
			// each data argument owns exactly one head word, dynamic ones hold an offset there
			value, err = input.Type.Parse(dataIndex, chunks)
			dataIndex++
		}

		if err != nil {
			ld.logger.Sugar().Warnw("Failed to decode argument",
				"eventName", event.Name,
				"position", i,
				"type", arg.Type,
				"indexed", arg.Indexed,
				"error", err,
			)
			arg.Error = err.Error()
		} else {
			arg.Value = value
		}
		decoded.Arguments[i] = arg
	}

	if topicIndex != len(topics) {
		ld.logger.Sugar().Debugw("Topic count does not match event",
			"eventName", event.Name,
			"expected", topicIndex,
			"actual", len(topics),
		)
	}
	return decoded, nil
}

// decodeTopic decodes an indexed argument. Indexed dynamic values are stored as their
// keccak256 hash, so they render as bytes32.
func decodeTopic(ta topicArgument.TopicArgument, topics []common.Hash, index int) (string, error) {
	if index >= len(topics) {
		return "", &dataChunks.OutOfRangeError{Index: index, Len: len(topics)}
	}
	if ta.IsDynamic() {
		ta = topicArgument.Bytes32
	}
	word := strings.TrimPrefix(topics[index].Hex(), "0x")
	return ta.Parse(0, dataChunks.NewDataChunks([]string{word}))
}
