package storage

import (
	"context"
	"fmt"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/soreness"
)

// ReadingStats returns aggregate statistics for a user's stored readings,
// most-recorded group first.
func (db *DB) ReadingStats(ctx context.Context, userID int) (*models.ReadingStats, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT muscle_group, COUNT(*), MIN(recorded_at), MAX(recorded_at)
		 FROM soreness_readings
		 WHERE user_id = $1
		 GROUP BY muscle_group
		 ORDER BY COUNT(*) DESC, muscle_group`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying reading stats: %w", err)
	}
	defer rows.Close()

	var groups []models.GroupStat
	for rows.Next() {
		var (
			s    models.GroupStat
			name string
		)
		if err := rows.Scan(&name, &s.Count, &s.Earliest, &s.Latest); err != nil {
			return nil, fmt.Errorf("scanning group stat: %w", err)
		}
		if s.Group, err = soreness.ParseMuscleGroup(name); err != nil {
			return nil, fmt.Errorf("group stat: %w", err)
		}
		groups = append(groups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models.NewReadingStats(groups), nil
}
