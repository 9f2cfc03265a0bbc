package logSequencer

import (
	"context"
	"testing"
	"time"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/events"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/logDecoder"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDecoder(t *testing.T) (*logDecoder.LogDecoder, *zap.Logger) {
	l, err := zap.NewDevelopment()
	require.NoError(t, err)
	return logDecoder.NewLogDecoder(events.NewInMemoryEventStore(events.SafeEvents(), l), l), l
}

func successLog(t *testing.T, index uint) *types.Log {
	e, err := events.ParseEventSignature(events.ExecutionSuccess)
	require.NoError(t, err)
	data := append(common.HexToHash("0xfeed").Bytes(), common.LeftPadBytes([]byte{byte(index)}, 32)...)
	return &types.Log{Topics: []common.Hash{e.Topic}, Data: data, Index: index}
}

func Test_LogSequencer(t *testing.T) {
	t.Run("Should decode logs in order until the channel closes", func(t *testing.T) {
		decoder, l := newDecoder(t)

		var payments []string
		ls := NewLogSequencer(decoder, func(lg *types.Log, dl *logDecoder.DecodedLog) error {
			payments = append(payments, dl.Arguments[1].Value)
			return nil
		}, 10, l)

		for i := uint(1); i <= 3; i++ {
			ls.GetChannel() <- successLog(t, i)
		}
		ls.Close()

		require.NoError(t, ls.ProcessLogs(context.Background()))
		assert.Equal(t, []string{"1", "2", "3"}, payments)
	})
	t.Run("Should stop on unknown events unless skipping", func(t *testing.T) {
		decoder, l := newDecoder(t)
		unknown := &types.Log{Topics: []common.Hash{common.HexToHash("0x01")}}

		ls := NewLogSequencer(decoder, nil, 1, l)
		ls.GetChannel() <- unknown
		ls.Close()
		assert.True(t, errors.Is(ls.ProcessLogs(context.Background()), logDecoder.ErrUnknownEvent))

		count := 0
		ls = NewLogSequencer(decoder, func(*types.Log, *logDecoder.DecodedLog) error {
			count++
			return nil
		}, 3, l)
		ls.SkipUndecodable = true
		ls.GetChannel() <- unknown
		ls.GetChannel() <- nil
		ls.GetChannel() <- successLog(t, 1)
		ls.Close()
		require.NoError(t, ls.ProcessLogs(context.Background()))
		assert.Equal(t, 1, count)
	})
	t.Run("Should propagate distribution errors", func(t *testing.T) {
		decoder, l := newDecoder(t)
		boom := errors.New("boom")

		ls := NewLogSequencer(decoder, func(*types.Log, *logDecoder.DecodedLog) error {
			return boom
		}, 1, l)
		ls.GetChannel() <- successLog(t, 1)
		ls.Close()
		assert.Equal(t, boom, ls.ProcessLogs(context.Background()))
	})
	t.Run("Should stop when the context is cancelled", func(t *testing.T) {
		decoder, l := newDecoder(t)
		ls := NewLogSequencer(decoder, nil, 1, l)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- ls.ProcessLogs(ctx)
		}()
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("sequencer did not stop")
		}
	})
}
