package mcp

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/caupolican/auge/internal/auge"
	"github.com/caupolican/auge/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetBatteries = mcp.NewTool("get_batteries",
	mcp.WithDescription("Get the athlete's current global battery state: CNS, muscular and spinal levels (0-100), an audit log explaining each number, and a natural-language verdict."),
)

var toolGetMuscleBatteries = mcp.NewTool("get_muscle_batteries",
	mcp.WithDescription("Get per-muscle-group recovery batteries (0-100) for all tracked muscle groups, with effective set counts and estimated hours to recovery."),
)

var toolGetMuscleBattery = mcp.NewTool("get_muscle_battery",
	mcp.WithDescription("Get the recovery battery for one muscle group. Accepts canonical names or common aliases (e.g. 'chest', 'pecho', 'quads')."),
	mcp.WithString("muscle", mcp.Required(), mcp.Description("Muscle group name (e.g. Pectorales, chest, quads, espalda baja)")),
)

var toolGetReadiness = mcp.NewTool("get_readiness",
	mcp.WithDescription("Get today's traffic-light training readiness (green/yellow/red) with the stress multiplier, diagnostics and a recommendation."),
)

var toolGetSystemicFatigue = mcp.NewTool("get_systemic_fatigue",
	mcp.WithDescription("Get the central-nervous-system fatigue breakdown: remaining battery plus the gym-load and lifestyle penalty components."),
)

var toolPredictSessionDrain = mcp.NewTool("predict_session_drain",
	mcp.WithDescription("Predict the battery cost of a draft session before training it. Pass the session as JSON: {\"exercises\":[{\"name\":...,\"sets\":[{\"target_reps\":...,\"target_rpe\":...,\"weight_kg\":...}]}]}."),
	mcp.WithString("session", mcp.Required(), mcp.Description("Session JSON with exercises and sets")),
)

var toolGetACWR = mcp.NewTool("get_acwr",
	mcp.WithDescription("Get the acute:chronic workload ratio (7-day load vs 28-day weekly average) with its risk classification."),
)

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("List logged workouts from the last N days with per-session stress scores."),
	mcp.WithNumber("days", mcp.Description("Lookback window in days. Defaults to 14, max 90.")),
)

// --- Tool handlers ---

func (h *handlers) getBatteries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	in, err := loadInputs(ctx, h.ds, now)
	if err != nil {
		h.log.Error("mcp get_batteries", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(auge.GlobalBatteries(globalInputs(in), now))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleBatteries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	in, err := loadInputs(ctx, h.ds, now)
	if err != nil {
		h.log.Error("mcp get_muscle_batteries", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	states := make([]auge.MuscleBatteryState, 0, len(auge.AllMuscleGroups))
	for _, g := range auge.AllMuscleGroups {
		states = append(states, auge.MuscleBattery(string(g), in, now))
	}
	result, err := mcp.NewToolResultJSON(states)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleBattery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	muscle, err := req.RequireString("muscle")
	if err != nil {
		return mcp.NewToolResultError("muscle parameter is required"), nil
	}
	group := auge.ResolveMuscleGroup(muscle)
	if group == auge.GroupUnknown {
		return mcp.NewToolResultError("unknown muscle group: " + muscle), nil
	}

	now := time.Now()
	in, err := loadInputs(ctx, h.ds, now)
	if err != nil {
		h.log.Error("mcp get_muscle_battery", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(auge.MuscleBattery(string(group), in, now))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getReadiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	in, err := loadInputs(ctx, h.ds, now)
	if err != nil {
		h.log.Error("mcp get_readiness", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	fatigue := auge.CalculateSystemicFatigue(in.History, in.SleepLogs, in.WellbeingLogs, in.ExerciseDB, in.Settings, now)
	readiness := auge.CalculateDailyReadiness(in.SleepLogs, in.WellbeingLogs, in.Settings, fatigue.Total, now)
	result, err := mcp.NewToolResultJSON(readiness)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSystemicFatigue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	in, err := loadInputs(ctx, h.ds, now)
	if err != nil {
		h.log.Error("mcp get_systemic_fatigue", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	fatigue := auge.CalculateSystemicFatigue(in.History, in.SleepLogs, in.WellbeingLogs, in.ExerciseDB, in.Settings, now)
	result, err := mcp.NewToolResultJSON(fatigue)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) predictSessionDrain(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError("session parameter is required"), nil
	}
	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return mcp.NewToolResultError("invalid session JSON: " + err.Error()), nil
	}
	if len(session.Exercises) == 0 {
		return mcp.NewToolResultError("session has no exercises"), nil
	}

	settings, err := h.ds.GetSettings(ctx)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	exercises, err := h.ds.AllExercises(ctx)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"drain":              auge.PredictedSessionDrain(session, exercises, settings),
		"spinal_by_exercise": auge.SpinalDrainByExercise(session, exercises, settings),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getACWR(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	in, err := loadInputs(ctx, h.ds, now)
	if err != nil {
		h.log.Error("mcp get_acwr", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	ratio := auge.ACWR(in.History, in.ExerciseDB, in.Settings, now)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"acwr":           math.Round(ratio*100) / 100,
		"classification": auge.ClassifyACWR(ratio),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := int(req.GetFloat("days", 14))
	if days <= 0 {
		days = 14
	}
	if days > 90 {
		days = 90
	}

	now := time.Now()
	logs, err := h.ds.RecentWorkoutLogs(ctx, days, now)
	if err != nil {
		h.log.Error("mcp get_recent_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	settings, err := h.ds.GetSettings(ctx)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	exercises, err := h.ds.AllExercises(ctx)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	type workoutSummary struct {
		models.WorkoutLog
		Stress      float64 `json:"stress"`
		StressLevel string  `json:"stress_level"`
	}
	summaries := make([]workoutSummary, 0, len(logs))
	for _, log := range logs {
		stress := auge.CompletedSessionStress(log.Exercises, exercises, settings)
		summaries = append(summaries, workoutSummary{
			WorkoutLog:  log,
			Stress:      math.Round(stress*10) / 10,
			StressLevel: auge.ClassifyStressLevel(stress),
		})
	}
	result, err := mcp.NewToolResultJSON(summaries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
