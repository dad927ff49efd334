package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the musclemap REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is only needed for recording readings.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body any, wantStatus int) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, respBody)
	}

	return respBody, nil
}

// LatestStatus rebuilds the status map from /api/v1/status. The user is
// decided by the server.
func (c *HTTPClient) LatestStatus(ctx context.Context, _ int) (plan.Status, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/status", nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Entries []struct {
			Group soreness.MuscleGroup `json:"group"`
			Level soreness.Level       `json:"level"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode status: %w", err)
	}

	status := plan.NewStatus()
	for _, e := range resp.Entries {
		if err := status.Insert(e.Group, e.Level); err != nil {
			return nil, fmt.Errorf("httpclient: status: %w", err)
		}
	}
	return status, nil
}

func (c *HTTPClient) QueryReadings(ctx context.Context, start, end time.Time, _ int, group soreness.MuscleGroup) ([]models.ReadingRow, error) {
	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))
	if group.Valid() {
		params.Set("group", group.String())
	}

	body, err := c.do(ctx, http.MethodGet, "/api/v1/readings", params, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var rows []models.ReadingRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode readings: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) InsertReading(ctx context.Context, row models.ReadingRow) (uuid.UUID, error) {
	req := map[string]any{
		"group": row.Group,
		"level": row.Level,
		"note":  row.Note,
	}
	if !row.RecordedAt.IsZero() {
		req["recorded_at"] = row.RecordedAt
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/readings", nil, req, http.StatusCreated)
	if err != nil {
		return uuid.Nil, err
	}

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return uuid.Nil, fmt.Errorf("httpclient: decode insert: %w", err)
	}
	return resp.ID, nil
}
