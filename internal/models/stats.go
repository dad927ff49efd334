package models

import (
	"time"

	"github.com/claude/musclemap/internal/soreness"
)

// ReadingStats holds aggregate statistics about a user's stored readings.
type ReadingStats struct {
	TotalReadings   int64       `json:"total_readings"`
	EarliestReading *time.Time  `json:"earliest_reading"`
	LatestReading   *time.Time  `json:"latest_reading"`
	ByGroup         []GroupStat `json:"by_group"`
}

// GroupStat holds summary stats for a single muscle group.
type GroupStat struct {
	Group    soreness.MuscleGroup `json:"group"`
	Count    int64                `json:"count"`
	Earliest time.Time            `json:"earliest"`
	Latest   time.Time            `json:"latest"`
}

// NewReadingStats totals per-group stats. groups keeps its order.
func NewReadingStats(groups []GroupStat) *ReadingStats {
	stats := &ReadingStats{ByGroup: groups}
	if stats.ByGroup == nil {
		stats.ByGroup = []GroupStat{}
	}
	for _, g := range groups {
		stats.TotalReadings += g.Count
		if stats.EarliestReading == nil || g.Earliest.Before(*stats.EarliestReading) {
			t := g.Earliest
			stats.EarliestReading = &t
		}
		if stats.LatestReading == nil || g.Latest.After(*stats.LatestReading) {
			t := g.Latest
			stats.LatestReading = &t
		}
	}
	return stats
}
