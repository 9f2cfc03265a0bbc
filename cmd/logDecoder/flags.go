package main

import (
	"fmt"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/config"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/events"
	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func bindFlags(cmd *cobra.Command) {
	bind := func(f *pflag.Flag) {
		if err := viper.BindPFlag(config.KebabToSnakeCase(f.Name), f); err != nil {
			fmt.Printf("Failed to bind flag '%s': %+v\n", f.Name, err)
		}
		if err := viper.BindEnv(config.KebabToSnakeCase(f.Name)); err != nil {
			fmt.Printf("Failed to bind env '%s': %+v\n", f.Name, err)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
}

// setup reloads viper backed settings after flags are bound and builds the event store.
// Flags and LOG_DECODER_* variables that are explicitly set override a --config file.
func setup(cmd *cobra.Command) (*zap.Logger, *events.InMemoryEventStore, error) {
	bindFlags(cmd)
	if configFile == "" || Config == nil {
		Config = config.NewDecoderConfig()
	} else {
		Config.ApplyOverrides()
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: Config.Debug})
	if err != nil {
		return nil, nil, err
	}

	if err := Config.Validate(); err != nil {
		l.Sugar().Errorw("Invalid configuration", "error", err)
		return nil, nil, err
	}

	evts, err := Config.BuildEvents()
	if err != nil {
		l.Sugar().Errorw("Invalid event configuration", "error", err)
		return nil, nil, err
	}
	return l, events.NewInMemoryEventStore(evts, l), nil
}
