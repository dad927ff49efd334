package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertReading stores a soreness reading. A zero ID is replaced with a new
// random UUID and a zero RecordedAt with the current time.
func (db *DB) InsertReading(ctx context.Context, row models.ReadingRow) (uuid.UUID, error) {
	if err := validateReading(row); err != nil {
		return uuid.Nil, err
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.RecordedAt.IsZero() {
		row.RecordedAt = time.Now().UTC()
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO soreness_readings (id, user_id, muscle_group, level, note, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		row.ID, row.UserID, row.Group.String(), row.Level.String(), row.Note, row.RecordedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting reading: %w", err)
	}
	return row.ID, nil
}

// QueryReadings returns readings in [start, end), newest first. A zero group
// matches every group.
func (db *DB) QueryReadings(ctx context.Context, start, end time.Time, userID int, group soreness.MuscleGroup) ([]models.ReadingRow, error) {
	query := `SELECT id, user_id, muscle_group, level, note, recorded_at
		 FROM soreness_readings
		 WHERE recorded_at >= $1 AND recorded_at < $2 AND user_id = $3`
	args := []any{start, end, userID}
	if group.Valid() {
		query += ` AND muscle_group = $4`
		args = append(args, group.String())
	}
	query += ` ORDER BY recorded_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var result []models.ReadingRow
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// latestStatusQuery picks the newest reading per group. seq breaks ties
// between readings with the same timestamp in favour of the later insert.
const latestStatusQuery = `SELECT DISTINCT ON (muscle_group) id, user_id, muscle_group, level, note, recorded_at
	FROM soreness_readings
	WHERE user_id = $1
	ORDER BY muscle_group, recorded_at DESC, seq DESC`

// LatestStatus returns the current soreness of every group the user has a
// reading for, taking the most recent reading per group.
func (db *DB) LatestStatus(ctx context.Context, userID int) (plan.Status, error) {
	rows, err := db.Pool.Query(ctx, latestStatusQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("querying latest status: %w", err)
	}
	defer rows.Close()

	var latest []models.ReadingRow
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		latest = append(latest, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plan.StatusFromLevels(models.LatestLevels(latest)), nil
}

// ClearGroup deletes every reading the user has for group. Returns the
// number of rows deleted.
func (db *DB) ClearGroup(ctx context.Context, userID int, group soreness.MuscleGroup) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM soreness_readings WHERE user_id = $1 AND muscle_group = $2`,
		userID, group.String())
	if err != nil {
		return 0, fmt.Errorf("clearing %s: %w", group, err)
	}
	return tag.RowsAffected(), nil
}

func scanReading(rows pgx.Rows) (models.ReadingRow, error) {
	var r models.ReadingRow
	var group, level string
	if err := rows.Scan(&r.ID, &r.UserID, &group, &level, &r.Note, &r.RecordedAt); err != nil {
		return r, fmt.Errorf("scanning reading: %w", err)
	}
	return parseReading(r, group, level)
}

// parseReading fills in the enumerated columns stored as text.
func parseReading(r models.ReadingRow, group, level string) (models.ReadingRow, error) {
	var err error
	if r.Group, err = soreness.ParseMuscleGroup(group); err != nil {
		return r, fmt.Errorf("reading %s: %w", r.ID, err)
	}
	if r.Level, err = soreness.ParseLevel(level); err != nil {
		return r, fmt.Errorf("reading %s: %w", r.ID, err)
	}
	return r, nil
}

func validateReading(row models.ReadingRow) error {
	if !row.Group.Valid() {
		return fmt.Errorf("reading: %w", soreness.ErrUnknownMuscleGroup)
	}
	if !row.Level.Valid() {
		return fmt.Errorf("reading: %w", soreness.ErrUnknownLevel)
	}
	return nil
}
