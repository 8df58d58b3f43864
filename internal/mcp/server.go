package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepShare", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepShare workout data server. Query exercises, training records, challenge progress, and data statistics, or import a share bundle."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetTrainingRecords, Handler: h.getTrainingRecords},
		server.ServerTool{Tool: toolGetChallengeStatus, Handler: h.getChallengeStatus},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
		server.ServerTool{Tool: toolImportShare, Handler: h.importShare},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resChallengeSummary, Handler: h.challengeSummary},
		server.ServerResource{Resource: resRecentRecords, Handler: h.recentRecords},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resChallengeSummary = mcp.NewResource(
	"repshare://challenge_summary",
	"Challenge Summary",
	mcp.WithResourceDescription("Challenge status for every exercise with a configured target, evaluated over the last 30 days"),
	mcp.WithMIMEType("application/json"),
)

var resRecentRecords = mcp.NewResource(
	"repshare://recent_records",
	"Recent Training Records",
	mcp.WithResourceDescription("Training records from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
