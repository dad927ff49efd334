package models

import (
	"testing"
	"time"

	"github.com/claude/musclemap/internal/soreness"
)

// TestLatestLevels verifies the newest reading per group wins regardless of
// input order, and ties go to the later row.
func TestLatestLevels(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := []ReadingRow{
		{Group: soreness.Legs, Level: soreness.DeadSore, RecordedAt: base.Add(2 * time.Hour)},
		{Group: soreness.Legs, Level: soreness.MildSoreness, RecordedAt: base},
		{Group: soreness.Chest, Level: soreness.Fresh, RecordedAt: base},
		{Group: soreness.Chest, Level: soreness.ModerateSoreness, RecordedAt: base},
	}
	got := LatestLevels(rows)
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2", len(got))
	}
	if got[soreness.Legs] != soreness.DeadSore {
		t.Errorf("LEGS = %s, want DEAD_SORE", got[soreness.Legs])
	}
	if got[soreness.Chest] != soreness.ModerateSoreness {
		t.Errorf("CHEST = %s, want MODERATE_SORENESS (tie goes to later row)", got[soreness.Chest])
	}
}

// TestLatestLevelsEmpty verifies no readings means no groups.
func TestLatestLevelsEmpty(t *testing.T) {
	if got := LatestLevels(nil); len(got) != 0 {
		t.Errorf("LatestLevels(nil) = %v, want empty", got)
	}
}
