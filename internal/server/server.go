package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/musclemap/internal/journal"
	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/claude/musclemap/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// defaultUserID is the single user served by the HTTP API.
const defaultUserID = 1

// Store is the reading store behind the API. Both *storage.DB (PostgreSQL)
// and *journal.Journal (SQLite) satisfy it.
type Store interface {
	InsertReading(ctx context.Context, row models.ReadingRow) (uuid.UUID, error)
	QueryReadings(ctx context.Context, start, end time.Time, userID int, group soreness.MuscleGroup) ([]models.ReadingRow, error)
	LatestStatus(ctx context.Context, userID int) (plan.Status, error)
	ClearGroup(ctx context.Context, userID int, group soreness.MuscleGroup) (int64, error)
	ReadingStats(ctx context.Context, userID int) (*models.ReadingStats, error)
}

var (
	_ Store = (*storage.DB)(nil)
	_ Store = (*journal.Journal)(nil)
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     Store
	threshold soreness.Level
	log       *slog.Logger
	apiKey    string
	router    chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, threshold soreness.Level, apiKey string, log *slog.Logger) *Server {
	if !threshold.Valid() {
		threshold = plan.DefaultThreshold
	}
	s := &Server{
		store:     store,
		threshold: threshold,
		log:       log,
		apiKey:    apiKey,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/groups", s.handleGroups)
	s.router.Get("/api/v1/levels", s.handleLevels)
	s.router.Get("/api/v1/status", s.handleStatus)
	s.router.Get("/api/v1/status/{group}", s.handleGroupStatus)
	s.router.Get("/api/v1/plan", s.handlePlan)
	s.router.Get("/api/v1/plan/report", s.handlePlanReport)
	s.router.Get("/api/v1/readings", s.handleQueryReadings)
	s.router.Get("/api/v1/stats", s.handleStats)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/readings", s.handleRecordReading)
		r.Delete("/api/v1/status/{group}", s.handleClearGroup)
	})
}

// SetMCP mounts an MCP transport handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
