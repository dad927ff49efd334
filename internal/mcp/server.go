package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
// threshold is the default rest threshold for plans.
func New(ds DataSource, threshold soreness.Level, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("musclemap", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("musclemap soreness tracker. Check which muscle groups are sore, record new soreness readings, and get today's train/rest plan."),
	)

	if !threshold.Valid() {
		threshold = plan.DefaultThreshold
	}
	h := &handlers{ds: ds, threshold: threshold, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetStatus, Handler: h.getStatus},
		server.ServerTool{Tool: toolCheckGroup, Handler: h.checkGroup},
		server.ServerTool{Tool: toolGetPlan, Handler: h.getPlan},
		server.ServerTool{Tool: toolListLevels, Handler: h.listLevels},
		server.ServerTool{Tool: toolGetReadings, Handler: h.getReadings},
		server.ServerTool{Tool: toolRecordSoreness, Handler: h.recordSoreness},
	)

	s.AddResources(
		server.ServerResource{Resource: resPlan, Handler: h.planResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds        DataSource
	threshold soreness.Level
	log       *slog.Logger
}

var resPlan = mcp.NewResource(
	"musclemap://plan",
	"Today's Plan",
	mcp.WithResourceDescription("Train/rest verdict and recommendation for every tracked muscle group"),
	mcp.WithMIMEType("application/json"),
)
