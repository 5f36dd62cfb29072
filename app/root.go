// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bontastic/printerctl/internal/config"
	"github.com/bontastic/printerctl/internal/logger"
)

// envPrefix prefixes every environment variable bound through viper.
const envPrefix = "PRINTERCTL"

var rootCmd = &cobra.Command{
	Use:   "printerctl",
	Short: "printerctl exposes the settings of a serial thermal printer as remote fields",
	Long: `printerctl keeps the configuration of a serial thermal printer (heat, density,
line height, font, size, justification, decorations, charset, mesh identity) as
individually addressable fields over BLE, MQTT and HTTP, persists them and
applies every change to the printer.`,
	Args: cobra.OnlyValidArgs,
}

const configKey = "config"

func init() { //nolint: gochecknoinits
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String(configKey, "./etc/", "Directory holding main.toml (env PRINTERCTL_CONFIG)")
	_ = viper.BindPFlag(configKey, rootCmd.PersistentFlags().Lookup(configKey))
}

// loadConfig reads the configuration and initializes the logger.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(viper.GetString(configKey)); err != nil {
		return err //nolint:wrapcheck
	}

	if devMode {
		cfg.DevMode = true
	}

	return logger.Init(cfg.Log) //nolint:wrapcheck
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
