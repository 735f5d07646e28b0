package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("AUGE", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("AUGE athlete fatigue and recovery engine. Query muscle/CNS/spinal battery state, daily readiness, predicted session drain, and workload ratios for one athlete."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetBatteries, Handler: h.getBatteries},
		server.ServerTool{Tool: toolGetMuscleBatteries, Handler: h.getMuscleBatteries},
		server.ServerTool{Tool: toolGetMuscleBattery, Handler: h.getMuscleBattery},
		server.ServerTool{Tool: toolGetReadiness, Handler: h.getReadiness},
		server.ServerTool{Tool: toolGetSystemicFatigue, Handler: h.getSystemicFatigue},
		server.ServerTool{Tool: toolPredictSessionDrain, Handler: h.predictSessionDrain},
		server.ServerTool{Tool: toolGetACWR, Handler: h.getACWR},
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resBatteries, Handler: h.batteriesResource},
		server.ServerResource{Resource: resReadiness, Handler: h.readinessResource},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkoutsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resBatteries = mcp.NewResource(
	"auge://batteries",
	"Battery State",
	mcp.WithResourceDescription("Current CNS, muscular and spinal battery levels with audit log and verdict"),
	mcp.WithMIMEType("application/json"),
)

var resReadiness = mcp.NewResource(
	"auge://readiness",
	"Daily Readiness",
	mcp.WithResourceDescription("Today's traffic-light training readiness with diagnostics"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"auge://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workout logs from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
