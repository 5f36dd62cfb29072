package app

import (
	"github.com/spf13/cobra"

	"github.com/bontastic/printerctl/internal/config"
	"github.com/bontastic/printerctl/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the printer settings service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)
