package models

import (
	"time"

	"github.com/claude/musclemap/internal/soreness"
	"github.com/google/uuid"
)

// ReadingRow is one recorded soreness observation for a muscle group.
type ReadingRow struct {
	ID         uuid.UUID            `json:"id"`
	UserID     int                  `json:"user_id"`
	Group      soreness.MuscleGroup `json:"group"`
	Level      soreness.Level       `json:"level"`
	Note       string               `json:"note,omitempty"`
	RecordedAt time.Time            `json:"recorded_at"`
}

// LatestLevels returns, per muscle group, the level of the most recent
// reading. Readings may arrive in any order; on equal timestamps the later
// one in the slice wins.
func LatestLevels(rows []ReadingRow) map[soreness.MuscleGroup]soreness.Level {
	latest := make(map[soreness.MuscleGroup]ReadingRow, len(rows))
	for _, r := range rows {
		if cur, ok := latest[r.Group]; ok && r.RecordedAt.Before(cur.RecordedAt) {
			continue
		}
		latest[r.Group] = r
	}
	out := make(map[soreness.MuscleGroup]soreness.Level, len(latest))
	for g, r := range latest {
		out[g] = r.Level
	}
	return out
}
