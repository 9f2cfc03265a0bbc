package logSequencer

import (
	"context"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/logDecoder"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type DistributeLogFunc func(*types.Log, *logDecoder.DecodedLog) error

// LogSequencer decodes logs in the order they are received on its channel and hands
// each result to a DistributeLogFunc.
type LogSequencer struct {
	sequencerChannel chan *types.Log
	logger           *zap.Logger

	decoder *logDecoder.LogDecoder

	distributeLogFunc DistributeLogFunc

	// SkipUndecodable drops logs whose event is unknown instead of stopping.
	SkipUndecodable bool
}

func NewLogSequencer(
	decoder *logDecoder.LogDecoder,
	dlf DistributeLogFunc,
	bufferSize int,
	logger *zap.Logger,
) *LogSequencer {
	return &LogSequencer{
		sequencerChannel:  make(chan *types.Log, bufferSize),
		logger:            logger,
		decoder:           decoder,
		distributeLogFunc: dlf,
	}
}

func (ls *LogSequencer) GetChannel() chan<- *types.Log {
	return ls.sequencerChannel
}

// Close signals that no more logs will be sent. ProcessLogs returns once the channel drains.
func (ls *LogSequencer) Close() {
	close(ls.sequencerChannel)
}

func (ls *LogSequencer) ProcessLogs(ctx context.Context) error {
	for {
		select {
		case lg, ok := <-ls.sequencerChannel:
			if !ok {
				ls.logger.Debug("Log sequencer channel closed")
				return nil
			}
			if err := ls.processLog(lg); err != nil {
				ls.logger.Error("Error processing log", zap.Error(err))
				return err
			}
		case <-ctx.Done():
			ls.logger.Info("Log sequencer context done, stopping processing logs")
			return nil
		}
	}
}

func (ls *LogSequencer) processLog(lg *types.Log) error {
	decodedLog, err := ls.decoder.DecodeLog(lg)
	if err != nil {
		if ls.SkipUndecodable && isUndecodable(err) {
			ls.logger.Sugar().Debugw("Skipping undecodable log", "error", err)
			return nil
		}
		ls.logger.Error("Error decoding log", zap.Error(err))
		return err
	}

	if ls.distributeLogFunc != nil {
		if err := ls.distributeLogFunc(lg, decodedLog); err != nil {
			ls.logger.Error("Error distributing log", zap.Error(err))
			return err
		}
	}
	return nil
}

func isUndecodable(err error) bool {
	return errors.Is(err, logDecoder.ErrUnknownEvent) ||
		errors.Is(err, logDecoder.ErrNoTopics) ||
		errors.Is(err, logDecoder.ErrNilLog)
}
