package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/caupolican/auge/internal/auge"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) batteriesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := time.Now()
	in, err := loadInputs(ctx, h.ds, now)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(auge.GlobalBatteries(globalInputs(in), now))
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

func (h *handlers) readinessResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := time.Now()
	in, err := loadInputs(ctx, h.ds, now)
	if err != nil {
		return nil, err
	}

	fatigue := auge.CalculateSystemicFatigue(in.History, in.SleepLogs, in.WellbeingLogs, in.ExerciseDB, in.Settings, now)
	readiness := auge.CalculateDailyReadiness(in.SleepLogs, in.WellbeingLogs, in.Settings, fatigue.Total, now)

	data, err := json.Marshal(readiness)
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

func (h *handlers) recentWorkoutsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.RecentWorkoutLogs(ctx, 14, time.Now())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(workouts)
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
