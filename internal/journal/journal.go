// Package journal is a single-file SQLite reading store for local use.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Journal stores soreness readings in SQLite.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	// One connection keeps SQLite writes serialised.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS soreness_readings (
		id           TEXT PRIMARY KEY,
		user_id      INTEGER NOT NULL,
		muscle_group TEXT NOT NULL,
		level        TEXT NOT NULL,
		note         TEXT NOT NULL DEFAULT '',
		recorded_at  INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating readings table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// InsertReading stores a reading, filling in a zero ID and timestamp.
func (j *Journal) InsertReading(ctx context.Context, row models.ReadingRow) (uuid.UUID, error) {
	if !row.Group.Valid() {
		return uuid.Nil, fmt.Errorf("reading: %w", soreness.ErrUnknownMuscleGroup)
	}
	if !row.Level.Valid() {
		return uuid.Nil, fmt.Errorf("reading: %w", soreness.ErrUnknownLevel)
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.RecordedAt.IsZero() {
		row.RecordedAt = time.Now().UTC()
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO soreness_readings (id, user_id, muscle_group, level, note, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.ID.String(), row.UserID, row.Group.String(), row.Level.String(), row.Note,
		row.RecordedAt.UnixNano())
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting reading: %w", err)
	}
	return row.ID, nil
}

// QueryReadings returns readings in [start, end), newest first. A zero group
// matches every group.
func (j *Journal) QueryReadings(ctx context.Context, start, end time.Time, userID int, group soreness.MuscleGroup) ([]models.ReadingRow, error) {
	query := `SELECT id, user_id, muscle_group, level, note, recorded_at
		FROM soreness_readings
		WHERE recorded_at >= ? AND recorded_at < ? AND user_id = ?`
	args := []any{start.UnixNano(), end.UnixNano(), userID}
	if group.Valid() {
		query += ` AND muscle_group = ?`
		args = append(args, group.String())
	}
	query += ` ORDER BY recorded_at DESC, rowid DESC`
	return j.query(ctx, query, args...)
}

// LatestStatus returns the most recent level per group for the user.
func (j *Journal) LatestStatus(ctx context.Context, userID int) (plan.Status, error) {
	rows, err := j.query(ctx,
		`SELECT id, user_id, muscle_group, level, note, recorded_at
		 FROM soreness_readings WHERE user_id = ? ORDER BY recorded_at, rowid`,
		userID)
	if err != nil {
		return nil, err
	}
	return plan.StatusFromLevels(models.LatestLevels(rows)), nil
}

// ClearGroup deletes every reading the user has for group.
func (j *Journal) ClearGroup(ctx context.Context, userID int, group soreness.MuscleGroup) (int64, error) {
	res, err := j.db.ExecContext(ctx,
		`DELETE FROM soreness_readings WHERE user_id = ? AND muscle_group = ?`,
		userID, group.String())
	if err != nil {
		return 0, fmt.Errorf("clearing %s: %w", group, err)
	}
	return res.RowsAffected()
}

func (j *Journal) query(ctx context.Context, query string, args ...any) ([]models.ReadingRow, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var result []models.ReadingRow
	for rows.Next() {
		var (
			r            models.ReadingRow
			id           string
			group, level string
			recordedAt   int64
		)
		if err := rows.Scan(&id, &r.UserID, &group, &level, &r.Note, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("reading id %q: %w", id, err)
		}
		if r.Group, err = soreness.ParseMuscleGroup(group); err != nil {
			return nil, fmt.Errorf("reading %s: %w", id, err)
		}
		if r.Level, err = soreness.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("reading %s: %w", id, err)
		}
		r.RecordedAt = time.Unix(0, recordedAt).UTC()
		result = append(result, r)
	}
	return result, rows.Err()
}

// ReadingStats returns aggregate statistics for the user's readings,
// most-recorded group first.
func (j *Journal) ReadingStats(ctx context.Context, userID int) (*models.ReadingStats, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT muscle_group, COUNT(*), MIN(recorded_at), MAX(recorded_at)
		 FROM soreness_readings
		 WHERE user_id = ?
		 GROUP BY muscle_group
		 ORDER BY COUNT(*) DESC, muscle_group`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying reading stats: %w", err)
	}
	defer rows.Close()

	var groups []models.GroupStat
	for rows.Next() {
		var (
			s                models.GroupStat
			name             string
			earliest, latest int64
		)
		if err := rows.Scan(&name, &s.Count, &earliest, &latest); err != nil {
			return nil, fmt.Errorf("scanning group stat: %w", err)
		}
		if s.Group, err = soreness.ParseMuscleGroup(name); err != nil {
			return nil, fmt.Errorf("group stat: %w", err)
		}
		s.Earliest = time.Unix(0, earliest).UTC()
		s.Latest = time.Unix(0, latest).UTC()
		groups = append(groups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return models.NewReadingStats(groups), nil
}
