package main

import (
	"fmt"
	"io"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/events"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the known events and their topic0",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := setup(cmd)
		if err != nil {
			return err
		}
		return listTopics(store, cmd.OutOrStdout())
	},
}

func listTopics(store events.EventStore, w io.Writer) error {
	for _, e := range store.ListEvents() {
		if _, err := fmt.Fprintf(w, "%s %s\n", e.Topic.Hex(), e.Signature); err != nil {
			return err
		}
	}
	return nil
}
