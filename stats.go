package puttempo

import (
	"sort"
	"time"
)

const StatsPeriodDays = 7

type DailyStat struct {
	Date            string // YYYY-MM-DD, local time
	DurationSeconds int
	SessionCount    int
}

type PracticeStats struct {
	TotalSessions          int
	TotalDurationSeconds   int
	AverageDurationSeconds float64
	MostUsedPreset         string
	Daily                  []DailyStat
	PeriodDays             int
}

// ComputeStats aggregates sessions started within the last days days of now.
// Daily is sorted by date ascending. Ties for MostUsedPreset go to the name
// that sorts first.
func ComputeStats(sessions []SessionRecord, now time.Time, days int) PracticeStats {
	stats := PracticeStats{PeriodDays: days}
	cutoff := now.AddDate(0, 0, -days)

	daily := make(map[string]*DailyStat)
	presetCounts := make(map[string]int)
	for _, s := range sessions {
		if s.StartedAt.Before(cutoff) {
			continue
		}
		stats.TotalSessions++
		stats.TotalDurationSeconds += s.DurationSeconds

		date := s.StartedAt.Local().Format(time.DateOnly)
		d := daily[date]
		if d == nil {
			d = &DailyStat{Date: date}
			daily[date] = d
		}
		d.DurationSeconds += s.DurationSeconds
		d.SessionCount++

		if s.PresetName != "" {
			presetCounts[s.PresetName]++
		}
	}
	if stats.TotalSessions > 0 {
		stats.AverageDurationSeconds = float64(stats.TotalDurationSeconds) / float64(stats.TotalSessions)
	}

	for _, d := range daily {
		stats.Daily = append(stats.Daily, *d)
	}
	sort.Slice(stats.Daily, func(i, j int) bool {
		return stats.Daily[i].Date < stats.Daily[j].Date
	})

	best := 0
	for name, cnt := range presetCounts {
		if cnt > best || (cnt == best && name < stats.MostUsedPreset) {
			best = cnt
			stats.MostUsedPreset = name
		}
	}
	return stats
}
