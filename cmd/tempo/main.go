package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/puttempo-go"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var isProd bool

	cmd := &cobra.Command{
		Use:          "tempo",
		Short:        "Putting stroke metronome",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			puttempo.LoadEnv(isProd)
			cfg, err := puttempo.LoadConfig()
			if err != nil {
				return err
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&isProd, "prod", false, "load .env instead of .env.dev")

	cmd.AddCommand(
		newRunCmd(),
		newStatsCmd(),
		newPresetsCmd(),
	)
	return cmd
}
