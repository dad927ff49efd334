package mcp

import (
	"context"
	"time"

	"github.com/claude/musclemap/internal/journal"
	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/claude/musclemap/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the reading store for MCP tools. *storage.DB,
// *journal.Journal (local) and HTTPClient (remote via REST API) satisfy it.
type DataSource interface {
	LatestStatus(ctx context.Context, userID int) (plan.Status, error)
	QueryReadings(ctx context.Context, start, end time.Time, userID int, group soreness.MuscleGroup) ([]models.ReadingRow, error)
	InsertReading(ctx context.Context, row models.ReadingRow) (uuid.UUID, error)
}

var (
	_ DataSource = (*storage.DB)(nil)
	_ DataSource = (*journal.Journal)(nil)
)
