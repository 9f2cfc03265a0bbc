package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/events"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/logDecoder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcLog(topics []string, data string, index int) string {
	quoted, _ := json.Marshal(topics)
	return fmt.Sprintf(`{
		"address": "0x5afe3855358e112b5647b952709e6165e1c1eeee",
		"topics": %s,
		"data": "%s",
		"blockNumber": "0x10",
		"transactionHash": "0x00000000000000000000000000000000000000000000000000000000000000aa",
		"transactionIndex": "0x0",
		"blockHash": "0x00000000000000000000000000000000000000000000000000000000000000bb",
		"logIndex": "0x%x",
		"removed": false
	}`, quoted, data, index)
}

func Test_RunDecodeLogs(t *testing.T) {
	received, err := events.ParseEventSignature(events.SafeReceived)
	require.NoError(t, err)
	sender := "0x00000000000000000000000026a7ecdb60d38b06fffeba426713aa191cffc2ed"
	unknown := "0x0000000000000000000000000000000000000000000000000000000000000001"

	input := fmt.Sprintf("[%s,%s,%s]",
		rpcLog([]string{received.Topic.Hex(), sender}, receivedData, 0),
		rpcLog([]string{unknown}, "0x", 1),
		rpcLog([]string{received.Topic.Hex(), sender}, receivedData, 2),
	)

	t.Run("Should decode every known log", func(t *testing.T) {
		store, l := newTestStore(t)
		var out bytes.Buffer

		err := runDecodeLogs(context.Background(), []byte(input), decodeLogsOptions{skipUndecodable: true}, store, l, &out)
		require.NoError(t, err)

		var report struct {
			RunId string                   `json:"runId"`
			Logs  []*logDecoder.DecodedLog `json:"logs"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		require.Len(t, report.Logs, 2)
		assert.Equal(t, uint64(0), report.Logs[0].LogIndex)
		assert.Equal(t, uint64(2), report.Logs[1].LogIndex)
		assert.Equal(t, "0x5afe3855358e112b5647b952709e6165e1c1eeee", report.Logs[1].Address)
		assert.Equal(t, "1000000000000000000", report.Logs[1].Arguments[1].Value)
	})
	t.Run("Should fail on unknown logs unless skipping", func(t *testing.T) {
		store, l := newTestStore(t)
		var out bytes.Buffer

		err := runDecodeLogs(context.Background(), []byte(input), decodeLogsOptions{}, store, l, &out)
		assert.ErrorIs(t, err, logDecoder.ErrUnknownEvent)
		assert.Empty(t, out.String())
	})
	t.Run("Should report null entries instead of panicking", func(t *testing.T) {
		store, l := newTestStore(t)
		var out bytes.Buffer

		err := runDecodeLogs(context.Background(), []byte("[null]"), decodeLogsOptions{}, store, l, &out)
		assert.ErrorIs(t, err, logDecoder.ErrNilLog)
		assert.Empty(t, out.String())

		withNull := fmt.Sprintf("[null,%s]", rpcLog([]string{received.Topic.Hex(), sender}, receivedData, 4))
		err = runDecodeLogs(context.Background(), []byte(withNull), decodeLogsOptions{skipUndecodable: true}, store, l, &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), `"logIndex": 4`)
	})
	t.Run("Should fail on malformed input", func(t *testing.T) {
		store, l := newTestStore(t)
		var out bytes.Buffer
		assert.Error(t, runDecodeLogs(context.Background(), []byte("{"), decodeLogsOptions{}, store, l, &out))
	})
}
