package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/events"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/logDecoder"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/logSequencer"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type decodeLogsOptions struct {
	file            string
	skipUndecodable bool
}

var decodeLogsOpts decodeLogsOptions

type decodeLogsReport struct {
	RunId string                   `json:"runId"`
	Logs  []*logDecoder.DecodedLog `json:"logs"`
}

var decodeLogsCmd = &cobra.Command{
	Use:   "decode-logs",
	Short: "Decode a JSON array of logs as returned by eth_getLogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, store, err := setup(cmd)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(decodeLogsOpts.file)
		if err != nil {
			return errors.Wrapf(err, "failed to read '%s'", decodeLogsOpts.file)
		}
		return runDecodeLogs(cmd.Context(), data, decodeLogsOpts, store, l, cmd.OutOrStdout())
	},
}

func init() {
	decodeLogsCmd.Flags().StringVar(&decodeLogsOpts.file, "file", "", "path to a JSON array of logs")
	decodeLogsCmd.Flags().BoolVar(&decodeLogsOpts.skipUndecodable, "skip-undecodable", false, "skip logs of unknown events")
	_ = decodeLogsCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(decodeLogsCmd)
}

func runDecodeLogs(ctx context.Context, data []byte, opts decodeLogsOptions, store events.EventStore, l *zap.Logger, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var logs []*types.Log
	if err := json.Unmarshal(data, &logs); err != nil {
		return errors.Wrapf(err, "failed to unmarshal logs")
	}

	report := decodeLogsReport{
		RunId: uuid.New().String(),
		Logs:  make([]*logDecoder.DecodedLog, 0, len(logs)),
	}
	sugar := l.Sugar().With("runId", report.RunId)

	ls := logSequencer.NewLogSequencer(
		logDecoder.NewLogDecoder(store, l),
		func(_ *types.Log, dl *logDecoder.DecodedLog) error {
			report.Logs = append(report.Logs, dl)
			return nil
		},
		len(logs),
		l,
	)
	ls.SkipUndecodable = opts.skipUndecodable

	for _, lg := range logs {
		ls.GetChannel() <- lg
	}
	ls.Close()

	if err := ls.ProcessLogs(ctx); err != nil {
		return err
	}
	sugar.Infow("Decoded logs", "received", len(logs), "decoded", len(report.Logs))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
