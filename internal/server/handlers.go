package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/musclemap/internal/kv"
	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/go-chi/chi/v5"
)

// levelInfo describes one soreness level for API clients.
type levelInfo struct {
	Level          soreness.Level `json:"level"`
	Rank           int            `json:"rank"`
	Recommendation string         `json:"recommendation"`
}

// statusEntry is one binding of the status map.
type statusEntry struct {
	Group soreness.MuscleGroup `json:"group"`
	Level soreness.Level       `json:"level"`
}

type statusResponse struct {
	Size    int           `json:"size"`
	Entries []statusEntry `json:"entries"`
}

type planResponse struct {
	*plan.Plan
	TrainingPossible bool   `json:"training_possible"`
	Overall          string `json:"overall"`
}

type recordRequest struct {
	Group      soreness.MuscleGroup `json:"group"`
	Level      soreness.Level       `json:"level"`
	Note       string               `json:"note"`
	RecordedAt *time.Time           `json:"recorded_at"`
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, soreness.AllMuscleGroups())
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	out := make([]levelInfo, 0, len(soreness.AllLevels()))
	for _, l := range soreness.AllLevels() {
		out = append(out, levelInfo{Level: l, Rank: l.Rank(), Recommendation: l.Recommendation()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.store.LatestStatus(r.Context(), defaultUserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := statusResponse{Size: status.Size(), Entries: make([]statusEntry, 0, status.Size())}
	for g, l := range status.Entries() {
		resp.Entries = append(resp.Entries, statusEntry{Group: g, Level: l})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGroupStatus(w http.ResponseWriter, r *http.Request) {
	group, err := soreness.ParseMuscleGroup(chi.URLParam(r, "group"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	status, err := s.store.LatestStatus(r.Context(), defaultUserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	level, err := status.Value(group)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan.Entry{
		Group:          group,
		Level:          level,
		Rank:           level.Rank(),
		Verdict:        plan.Classify(level, s.threshold),
		Recommendation: level.Recommendation(),
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	threshold, err := s.thresholdParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	status, err := s.store.LatestStatus(r.Context(), defaultUserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	p, err := plan.Build(status, threshold)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{
		Plan:             p,
		TrainingPossible: p.TrainingPossible(),
		Overall:          p.Overall(),
	})
}

func (s *Server) handlePlanReport(w http.ResponseWriter, r *http.Request) {
	threshold, err := s.thresholdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := s.store.LatestStatus(r.Context(), defaultUserID)
	if err != nil {
		s.log.Error("plan report", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := plan.WriteReport(w, status, soreness.AllMuscleGroups(), threshold); err != nil {
		s.log.Error("writing plan report", "error", err)
	}
}

func (s *Server) handleQueryReadings(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var group soreness.MuscleGroup
	if g := r.URL.Query().Get("group"); g != "" {
		if group, err = soreness.ParseMuscleGroup(g); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	rows, err := s.store.QueryReadings(r.Context(), start, end, defaultUserID, group)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.ReadingRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.ReadingStats(r.Context(), defaultUserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRecordReading(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if !req.Group.Valid() || !req.Level.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "group and level are required"})
		return
	}

	row := models.ReadingRow{
		UserID: defaultUserID,
		Group:  req.Group,
		Level:  req.Level,
		Note:   req.Note,
	}
	if req.RecordedAt != nil {
		row.RecordedAt = req.RecordedAt.UTC()
	}

	id, err := s.store.InsertReading(r.Context(), row)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("reading recorded", "id", id, "group", req.Group, "level", req.Level)
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleClearGroup(w http.ResponseWriter, r *http.Request) {
	group, err := soreness.ParseMuscleGroup(chi.URLParam(r, "group"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	status, err := s.store.LatestStatus(r.Context(), defaultUserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	previous, err := status.Remove(group)
	if err != nil {
		s.writeError(w, err)
		return
	}

	n, err := s.store.ClearGroup(r.Context(), defaultUserID, group)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("group cleared", "group", group, "readings_deleted", n)
	writeJSON(w, http.StatusOK, map[string]any{
		"group":            group,
		"previous_level":   previous,
		"readings_deleted": n,
		"remaining_groups": status.Size(),
	})
}

// thresholdParam reads the optional ?threshold= level, defaulting to the
// server's configured threshold.
func (s *Server) thresholdParam(r *http.Request) (soreness.Level, error) {
	v := r.URL.Query().Get("threshold")
	if v == "" {
		return s.threshold, nil
	}
	return soreness.ParseLevel(v)
}

// writeError maps contract and parse errors to client statuses and logs the rest.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, kv.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, soreness.ErrUnknownMuscleGroup), errors.Is(err, soreness.ErrUnknownLevel):
		status = http.StatusBadRequest
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if endStr == "" {
		end = time.Now()
	} else if end, err = parseFlexTime(endStr); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if startStr == "" {
		// Default: last 30 days
		start = end.AddDate(0, 0, -30)
	} else if start, err = parseFlexTime(startStr); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
