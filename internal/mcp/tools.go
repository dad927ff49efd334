package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
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

func groupNames() []string {
	var out []string
	for _, g := range soreness.AllMuscleGroups() {
		out = append(out, g.String())
	}
	return out
}

func levelNames() []string {
	var out []string
	for _, l := range soreness.AllLevels() {
		out = append(out, l.String())
	}
	return out
}

// --- Tool definitions ---

var toolGetStatus = mcp.NewTool("get_status",
	mcp.WithDescription("Current soreness level of every muscle group that has a reading."),
)

var toolCheckGroup = mcp.NewTool("check_group",
	mcp.WithDescription("Check whether a muscle group has a soreness reading and, if so, its level and train/rest verdict."),
	mcp.WithString("group", mcp.Required(), mcp.Description("Muscle group"), mcp.Enum(groupNames()...)),
)

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Today's adaptive workout plan: each tracked group classified TRAIN or REST with a recommendation, plus an overall recommendation."),
	mcp.WithString("threshold", mcp.Description("First soreness level that forces rest. Defaults to the server setting."), mcp.Enum(levelNames()...)),
)

var toolListLevels = mcp.NewTool("list_levels",
	mcp.WithDescription("List soreness levels from least to most severe with their rank and recommendation."),
)

var toolGetReadings = mcp.NewTool("get_readings",
	mcp.WithDescription("Soreness reading history, newest first."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("group", mcp.Description("Only readings for this muscle group"), mcp.Enum(groupNames()...)),
)

var toolRecordSoreness = mcp.NewTool("record_soreness",
	mcp.WithDescription("Record how sore a muscle group feels right now."),
	mcp.WithString("group", mcp.Required(), mcp.Description("Muscle group"), mcp.Enum(groupNames()...)),
	mcp.WithString("level", mcp.Required(), mcp.Description("Soreness level"), mcp.Enum(levelNames()...)),
	mcp.WithString("note", mcp.Description("Optional free-text note")),
)

// --- Tool handlers ---

func (h *handlers) getStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.ds.LatestStatus(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	entries := make([]plan.Probe, 0, status.Size())
	for g, l := range status.Entries() {
		entries = append(entries, plan.Probe{Group: g, Present: true, Level: l})
	}
	return jsonResult(map[string]any{"size": status.Size(), "entries": entries})
}

func (h *handlers) checkGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("group")
	if err != nil {
		return mcp.NewToolResultError("group parameter is required"), nil
	}
	group, err := soreness.ParseMuscleGroup(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status, err := h.ds.LatestStatus(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp check_group", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	probes, err := plan.ProbeGroups(status, []soreness.MuscleGroup{group})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := map[string]any{"probe": probes[0]}
	if probes[0].Present {
		out["verdict"] = plan.Classify(probes[0].Level, h.threshold)
		out["recommendation"] = probes[0].Level.Recommendation()
	}
	return jsonResult(out)
}

func (h *handlers) getPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	threshold := h.threshold
	if v := req.GetString("threshold", ""); v != "" {
		l, err := soreness.ParseLevel(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		threshold = l
	}

	p, err := h.buildPlan(ctx, threshold)
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("plan failed: " + err.Error()), nil
	}
	return jsonResult(planPayload(p))
}

func (h *handlers) listLevels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type level struct {
		Level          soreness.Level `json:"level"`
		Rank           int            `json:"rank"`
		Recommendation string         `json:"recommendation"`
	}
	var out []level
	for _, l := range soreness.AllLevels() {
		out = append(out, level{Level: l, Rank: l.Rank(), Recommendation: l.Recommendation()})
	}
	return jsonResult(out)
}

func (h *handlers) getReadings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	var group soreness.MuscleGroup
	if v := req.GetString("group", ""); v != "" {
		if group, err = soreness.ParseMuscleGroup(v); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	rows, err := h.ds.QueryReadings(ctx, start, end, UserIDFromContext(ctx), group)
	if err != nil {
		h.log.Error("mcp get_readings", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if rows == nil {
		rows = []models.ReadingRow{}
	}
	return jsonResult(rows)
}

func (h *handlers) recordSoreness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupName, err := req.RequireString("group")
	if err != nil {
		return mcp.NewToolResultError("group parameter is required"), nil
	}
	levelName, err := req.RequireString("level")
	if err != nil {
		return mcp.NewToolResultError("level parameter is required"), nil
	}
	group, err := soreness.ParseMuscleGroup(groupName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	level, err := soreness.ParseLevel(levelName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := h.ds.InsertReading(ctx, models.ReadingRow{
		UserID: UserIDFromContext(ctx),
		Group:  group,
		Level:  level,
		Note:   req.GetString("note", ""),
	})
	if err != nil {
		h.log.Error("mcp record_soreness", "error", err)
		return mcp.NewToolResultError("insert failed: " + err.Error()), nil
	}
	return jsonResult(map[string]any{
		"id":      id,
		"group":   group,
		"level":   level,
		"verdict": plan.Classify(level, h.threshold),
	})
}

// --- Resources ---

func (h *handlers) planResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	p, err := h.buildPlan(ctx, h.threshold)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(planPayload(p))
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) buildPlan(ctx context.Context, threshold soreness.Level) (*plan.Plan, error) {
	status, err := h.ds.LatestStatus(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return plan.Build(status, threshold)
}

func planPayload(p *plan.Plan) map[string]any {
	return map[string]any{
		"threshold":         p.Threshold,
		"entries":           p.Entries,
		"training_possible": p.TrainingPossible(),
		"overall":           p.Overall(),
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
