package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/musclemap/internal/kv"
	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Error(err)
	}
}

// TestLatestStatus verifies the client rebuilds the status map in response order.
func TestLatestStatus(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/status": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusOK, map[string]any{
				"size": 2,
				"entries": []map[string]string{
					{"group": "LEGS", "level": "DEAD_SORE"},
					{"group": "CHEST", "level": "FRESH"},
				},
			})
		},
	})
	defer ts.Close()

	status, err := NewHTTPClient(ts.URL+"/", "").LatestStatus(context.Background(), 1)
	if err != nil {
		t.Fatalf("LatestStatus: %v", err)
	}
	keys := kv.Keys(status)
	if len(keys) != 2 || keys[0] != soreness.Legs || keys[1] != soreness.Chest {
		t.Errorf("keys = %v, want [LEGS CHEST]", keys)
	}
}

// TestLatestStatusDuplicate verifies a server response that repeats a group
// is reported instead of silently keeping one of the values.
func TestLatestStatusDuplicate(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/status": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusOK, map[string]any{
				"entries": []map[string]string{
					{"group": "LEGS", "level": "DEAD_SORE"},
					{"group": "LEGS", "level": "FRESH"},
				},
			})
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL, "").LatestStatus(context.Background(), 1)
	if !errors.Is(err, kv.ErrDuplicateKey) {
		t.Errorf("error = %v, want ErrDuplicateKey", err)
	}
}

// TestQueryReadings verifies the range and group are sent as query params.
func TestQueryReadings(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/readings": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("group"); got != "ARMS" {
				t.Errorf("group=%q, want ARMS", got)
			}
			if got := r.URL.Query().Get("start"); got != "2026-01-01T00:00:00Z" {
				t.Errorf("start=%q", got)
			}
			writeTestJSON(t, w, http.StatusOK, []models.ReadingRow{
				{ID: id, UserID: 1, Group: soreness.Arms, Level: soreness.MildSoreness},
			})
		},
	})
	defer ts.Close()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := NewHTTPClient(ts.URL, "").QueryReadings(context.Background(), start, start.AddDate(0, 0, 7), 1, soreness.Arms)
	if err != nil {
		t.Fatalf("QueryReadings: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != id || rows[0].Level != soreness.MildSoreness {
		t.Errorf("rows = %+v", rows)
	}
}

// TestInsertReading verifies the client posts JSON with the API key and reads back the ID.
func TestInsertReading(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/readings": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if got := r.Header.Get("X-API-Key"); got != "k" {
				t.Errorf("X-API-Key = %q, want k", got)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["group"] != "BACK" || body["level"] != "MODERATE_SORENESS" {
				t.Errorf("body = %v", body)
			}
			writeTestJSON(t, w, http.StatusCreated, map[string]any{"id": id})
		},
	})
	defer ts.Close()

	got, err := NewHTTPClient(ts.URL, "k").InsertReading(context.Background(), models.ReadingRow{
		Group: soreness.Back, Level: soreness.ModerateSoreness,
	})
	if err != nil {
		t.Fatalf("InsertReading: %v", err)
	}
	if got != id {
		t.Errorf("id = %s, want %s", got, id)
	}
}

// TestHTTPError verifies non-success statuses become errors carrying the body.
func TestHTTPError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL, "").LatestStatus(context.Background(), 1); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
