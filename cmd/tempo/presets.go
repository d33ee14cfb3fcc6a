package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/presets"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in and custom presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := puttempo.LoadConfig()
			if err != nil {
				return err
			}
			presetList, err := presets.Load(cfg.PresetsPath)
			if err != nil {
				return err
			}
			printPresets(cmd, presetList)
			return nil
		},
	}
}

func printPresets(cmd *cobra.Command, presetList []presets.Preset) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBPM\tRATIO\tDESCRIPTION")
	for _, p := range presetList {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g:%g\t%s\n", p.ID, p.Name, p.BPM, p.BackRatio, p.ForwardRatio, p.Description)
	}
	w.Flush() //nolint
}

func ratio(cfg puttempo.TempoConfig) string {
	return fmt.Sprintf("%g:%g", cfg.BackRatio, cfg.ForwardRatio)
}
