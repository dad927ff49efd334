package models

import (
	"testing"
	"time"

	"github.com/claude/musclemap/internal/soreness"
)

// TestNewReadingStatsTotals verifies totals and the overall date range span
// every group.
func TestNewReadingStatsTotals(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC) }
	stats := NewReadingStats([]GroupStat{
		{Group: soreness.Legs, Count: 3, Earliest: d(5), Latest: d(9)},
		{Group: soreness.Arms, Count: 1, Earliest: d(2), Latest: d(2)},
	})

	if stats.TotalReadings != 4 {
		t.Errorf("TotalReadings = %d, want 4", stats.TotalReadings)
	}
	if !stats.EarliestReading.Equal(d(2)) {
		t.Errorf("EarliestReading = %v, want %v", stats.EarliestReading, d(2))
	}
	if !stats.LatestReading.Equal(d(9)) {
		t.Errorf("LatestReading = %v, want %v", stats.LatestReading, d(9))
	}
}

// TestNewReadingStatsEmpty verifies an empty store has no date range and an
// empty, non-nil group list.
func TestNewReadingStatsEmpty(t *testing.T) {
	stats := NewReadingStats(nil)
	if stats.TotalReadings != 0 || stats.EarliestReading != nil || stats.LatestReading != nil {
		t.Errorf("stats = %+v, want zero", stats)
	}
	if stats.ByGroup == nil {
		t.Error("ByGroup is nil, want empty slice")
	}
}
