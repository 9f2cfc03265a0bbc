package main

import (
	"encoding/json"
	"io"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/events"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/logDecoder"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type decodeOptions struct {
	data      string
	signature string
	topics    []string
}

var decodeOpts decodeOptions

type decodeReport struct {
	RunId string                 `json:"runId"`
	Log   *logDecoder.DecodedLog `json:"log"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode the data of a single log",
	Long: `Decode the data of a single log.

With --signature the event is taken from the flag and --topics lists the indexed
topics only. Without it the first topic is topic0 and the event is looked up among
the configured events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, store, err := setup(cmd)
		if err != nil {
			return err
		}
		return runDecode(decodeOpts, store, l, cmd.OutOrStdout())
	},
}

func init() {
	decodeCmd.Flags().StringVar(&decodeOpts.data, "data", "", "0x prefixed log data")
	decodeCmd.Flags().StringVar(&decodeOpts.signature, "signature", "", `event signature, e.g. "SafeReceived(address indexed sender, uint256 value)"`)
	decodeCmd.Flags().StringSliceVar(&decodeOpts.topics, "topics", nil, "comma separated log topics")
	_ = decodeCmd.MarkFlagRequired("data")
}

func runDecode(opts decodeOptions, store events.EventStore, l *zap.Logger, w io.Writer) error {
	data, err := hexutil.Decode(opts.data)
	if err != nil {
		return errors.Wrapf(err, "invalid data")
	}

	topics := make([]common.Hash, 0, len(opts.topics))
	for _, t := range opts.topics {
		b, err := hexutil.Decode(t)
		if err != nil || len(b) != common.HashLength {
			return errors.Errorf("invalid topic '%s'", t)
		}
		topics = append(topics, common.BytesToHash(b))
	}

	decoder := logDecoder.NewLogDecoder(store, l)

	var decoded *logDecoder.DecodedLog
	if opts.signature != "" {
		event, err := events.ParseEventSignature(opts.signature)
		if err != nil {
			return err
		}
		decoded, err = decoder.Decode(event, topics, data)
		if err != nil {
			return err
		}
	} else {
		decoded, err = decoder.DecodeLog(&types.Log{Topics: topics, Data: data})
		if err != nil {
			return err
		}
	}

	report := decodeReport{
		RunId: uuid.New().String(),
		Log:   decoded,
	}
	if failed := decoded.Failed(); len(failed) > 0 {
		l.Sugar().Warnw("Some arguments could not be decoded",
			"runId", report.RunId,
			"failed", len(failed),
		)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
