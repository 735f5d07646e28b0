package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/caupolican/auge/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// stubSource is an in-memory DataSource for tool handler tests.
type stubSource struct {
	workouts  []models.WorkoutLog
	sleep     []models.SleepLog
	wellbeing []models.WellbeingLog
	nutrition []models.NutritionLog
	feedback  []models.PostSessionFeedback
	exercises []models.ExerciseMetadata
	settings  models.Settings
}

func (s *stubSource) RecentWorkoutLogs(_ context.Context, _ int, _ time.Time) ([]models.WorkoutLog, error) {
	return s.workouts, nil
}

func (s *stubSource) QuerySleepLogs(_ context.Context, _, _ time.Time) ([]models.SleepLog, error) {
	return s.sleep, nil
}

func (s *stubSource) QueryWellbeingLogs(_ context.Context, _, _ time.Time) ([]models.WellbeingLog, error) {
	return s.wellbeing, nil
}

func (s *stubSource) QueryNutritionLogs(_ context.Context, _, _ time.Time) ([]models.NutritionLog, error) {
	return s.nutrition, nil
}

func (s *stubSource) QueryFeedback(_ context.Context, _, _ time.Time) ([]models.PostSessionFeedback, error) {
	return s.feedback, nil
}

func (s *stubSource) GetSettings(_ context.Context) (models.Settings, error) {
	if s.settings.AthleteType == "" {
		return models.Settings{
			AthleteType: models.AthleteEnthusiast,
			Experience:  models.ExperienceIntermediate,
		}, nil
	}
	return s.settings, nil
}

func (s *stubSource) AllExercises(_ context.Context) ([]models.ExerciseMetadata, error) {
	return s.exercises, nil
}

func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// TestGetBatteriesTool verifies the batteries tool returns full batteries
// for an athlete with no history.
func TestGetBatteriesTool(t *testing.T) {
	h := &handlers{ds: &stubSource{}, log: slog.Default()}

	res, err := h.getBatteries(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", textContent(t, res))
	}

	var state struct {
		CNS      int    `json:"cns"`
		Muscular int    `json:"muscular"`
		Spinal   int    `json:"spinal"`
		Verdict  string `json:"verdict"`
	}
	if err := json.Unmarshal([]byte(textContent(t, res)), &state); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if state.CNS != 100 || state.Muscular != 100 || state.Spinal != 100 {
		t.Errorf("batteries = %d/%d/%d, want 100/100/100", state.CNS, state.Muscular, state.Spinal)
	}
	if state.Verdict == "" {
		t.Error("verdict should not be empty")
	}
}

// TestGetMuscleBatteryToolAlias verifies alias resolution inside the tool.
func TestGetMuscleBatteryToolAlias(t *testing.T) {
	h := &handlers{ds: &stubSource{}, log: slog.Default()}

	res, err := h.getMuscleBattery(context.Background(), callRequest(map[string]any{"muscle": "quads"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", textContent(t, res))
	}
	if !strings.Contains(textContent(t, res), "Cuádriceps") {
		t.Errorf("result should name the canonical group, got %s", textContent(t, res))
	}
}

// TestGetMuscleBatteryToolUnknown verifies unknown muscles produce a tool
// error rather than a fabricated battery.
func TestGetMuscleBatteryToolUnknown(t *testing.T) {
	h := &handlers{ds: &stubSource{}, log: slog.Default()}

	res, err := h.getMuscleBattery(context.Background(), callRequest(map[string]any{"muscle": "flux capacitor"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for unknown muscle")
	}
}

// TestPredictSessionDrainTool verifies the drain prediction tool parses a
// session and returns a breakdown.
func TestPredictSessionDrainTool(t *testing.T) {
	h := &handlers{ds: &stubSource{}, log: slog.Default()}

	session := `{"exercises":[{"name":"Peso muerto","sets":[{"target_reps":3,"target_rpe":9,"weight_kg":180}]}]}`
	res, err := h.predictSessionDrain(context.Background(), callRequest(map[string]any{"session": session}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", textContent(t, res))
	}

	var resp struct {
		Drain struct {
			SpinalDrain int `json:"spinal_drain"`
		} `json:"drain"`
	}
	if err := json.Unmarshal([]byte(textContent(t, res)), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Drain.SpinalDrain <= 0 {
		t.Error("expected positive spinal drain for a heavy deadlift single-digit set")
	}
}

// TestPredictSessionDrainToolBadJSON verifies malformed session JSON is
// reported as a tool error.
func TestPredictSessionDrainToolBadJSON(t *testing.T) {
	h := &handlers{ds: &stubSource{}, log: slog.Default()}

	res, err := h.predictSessionDrain(context.Background(), callRequest(map[string]any{"session": "{not json"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for malformed JSON")
	}
}

// TestGetRecentWorkoutsTool verifies session stress scoring is attached to
// each returned workout.
func TestGetRecentWorkoutsTool(t *testing.T) {
	reps := 10
	rpe := 8.0
	src := &stubSource{
		workouts: []models.WorkoutLog{{
			Name: "Leg day",
			Date: time.Now().Add(-24 * time.Hour),
			Exercises: []models.LoggedExercise{{
				Name: "Sentadilla",
				Sets: []models.LoggedSet{{CompletedReps: &reps, CompletedRPE: &rpe}},
			}},
		}},
	}
	h := &handlers{ds: src, log: slog.Default()}

	res, err := h.getRecentWorkouts(context.Background(), callRequest(map[string]any{"days": 7.0}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", textContent(t, res))
	}

	var summaries []struct {
		Name        string  `json:"name"`
		Stress      float64 `json:"stress"`
		StressLevel string  `json:"stress_level"`
	}
	if err := json.Unmarshal([]byte(textContent(t, res)), &summaries); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	if summaries[0].Stress <= 0 {
		t.Error("expected positive stress for a working session")
	}
	if summaries[0].StressLevel == "" {
		t.Error("stress_level should be labeled")
	}
}
