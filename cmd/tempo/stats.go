package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/puttempo-go"
)

func newStatsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize recent practice",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := puttempo.LoadConfig()
			if err != nil {
				return err
			}
			svc, closeDB, err := openPractice(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			stats, err := svc.Stats(cmd.Context(), days)
			if err != nil {
				return err
			}
			printStats(cmd, stats)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", puttempo.StatsPeriodDays, "days to look back")
	return cmd
}

func printStats(cmd *cobra.Command, stats puttempo.PracticeStats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "last %d days\n", stats.PeriodDays)
	if stats.TotalSessions == 0 {
		fmt.Fprintln(out, "no sessions")
		return
	}
	fmt.Fprintf(out, "sessions: %d\n", stats.TotalSessions)
	fmt.Fprintf(out, "total:    %s\n", seconds(stats.TotalDurationSeconds))
	fmt.Fprintf(out, "average:  %s\n", seconds(int(stats.AverageDurationSeconds)))
	if stats.MostUsedPreset != "" {
		fmt.Fprintf(out, "preset:   %s\n", stats.MostUsedPreset)
	}
	for _, d := range stats.Daily {
		fmt.Fprintf(out, "  %s  %8s  %d\n", d.Date, seconds(d.DurationSeconds), d.SessionCount)
	}
}

func seconds(n int) string {
	return (time.Duration(n) * time.Second).String()
}
