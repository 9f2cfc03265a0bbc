package main

import (
	"os"
	"strings"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "logDecoder",
	Short: "Decode ABI encoded event log data",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var configFile string
var Config *config.DecoderConfig

func init() {
	cobra.OnInitialize(initConfigIfPresent)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	rootCmd.PersistentFlags().Bool(config.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().Bool(config.IncludeSafeEvents, true, "register the Safe wallet events")

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(topicsCmd)
}

func initConfigIfPresent() {
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			panic(err)
		}
		c, err := config.NewDecoderConfigFromYamlBytes(data)
		if err != nil {
			panic(err)
		}
		Config = c
	} else {
		Config = config.NewDecoderConfig()
	}
}

func main() {
	Execute()
}
