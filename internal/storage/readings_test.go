package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/google/uuid"
)

// TestParseReading verifies text columns are mapped back to enumerated values.
func TestParseReading(t *testing.T) {
	r, err := parseReading(models.ReadingRow{ID: uuid.New()}, "LEGS", "DEAD_SORE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Group != soreness.Legs || r.Level != soreness.DeadSore {
		t.Errorf("parsed %s/%s, want LEGS/DEAD_SORE", r.Group, r.Level)
	}
}

// TestParseReadingUnknown verifies rows with unknown names are reported rather
// than silently mapped to a zero value.
func TestParseReadingUnknown(t *testing.T) {
	if _, err := parseReading(models.ReadingRow{}, "NECK", "FRESH"); !errors.Is(err, soreness.ErrUnknownMuscleGroup) {
		t.Errorf("error = %v, want ErrUnknownMuscleGroup", err)
	}
	if _, err := parseReading(models.ReadingRow{}, "LEGS", "OUCH"); !errors.Is(err, soreness.ErrUnknownLevel) {
		t.Errorf("error = %v, want ErrUnknownLevel", err)
	}
}

// TestValidateReading verifies readings must name a real group and level.
func TestValidateReading(t *testing.T) {
	tests := []struct {
		name string
		row  models.ReadingRow
		want error
	}{
		{"valid", models.ReadingRow{Group: soreness.Arms, Level: soreness.Fresh}, nil},
		{"no group", models.ReadingRow{Level: soreness.Fresh}, soreness.ErrUnknownMuscleGroup},
		{"no level", models.ReadingRow{Group: soreness.Arms}, soreness.ErrUnknownLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReading(tt.row)
			if tt.want == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestLatestStatusQueryTieBreak verifies readings with equal timestamps are
// ordered by insertion sequence, newest insert first.
func TestLatestStatusQueryTieBreak(t *testing.T) {
	if !strings.Contains(latestStatusQuery, "ORDER BY muscle_group, recorded_at DESC, seq DESC") {
		t.Errorf("latestStatusQuery lacks insertion-order tie break:\n%s", latestStatusQuery)
	}
}
