package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/caupolican/auge/internal/auge"
	"github.com/caupolican/auge/internal/compute"
	"github.com/caupolican/auge/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleGlobalBatteries(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	in, err := s.engineInputs(r.Context(), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	gen := s.exec.NextGeneration()
	fut := compute.Submit(s.exec, func() (auge.GlobalBatteryState, error) {
		return auge.GlobalBatteries(auge.GlobalInputs{
			History:       in.History,
			ExerciseDB:    in.ExerciseDB,
			SleepLogs:     in.SleepLogs,
			WellbeingLogs: in.WellbeingLogs,
			NutritionLogs: in.NutritionLogs,
			Settings:      in.Settings,
		}, now), nil
	})
	state, err := fut.Wait(r.Context())
	if err != nil {
		// Request gave up; serve the last computed state if one exists.
		if cached, ok := s.latestGlobal.Load(); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	s.latestGlobal.Store(gen, state)
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleMuscleBatteries(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	in, err := s.engineInputs(r.Context(), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	states, err := compute.Map(r.Context(), 4, auge.AllMuscleGroups,
		func(_ context.Context, g auge.MuscleGroup) (auge.MuscleBatteryState, error) {
			return auge.MuscleBattery(string(g), in, now), nil
		})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (s *Server) handleMuscleBattery(w http.ResponseWriter, r *http.Request) {
	muscle := chi.URLParam(r, "muscle")
	group := auge.ResolveMuscleGroup(muscle)
	if group == auge.GroupUnknown {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown muscle group: " + muscle})
		return
	}

	now := s.now()
	in, err := s.engineInputs(r.Context(), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, auge.MuscleBattery(string(group), in, now))
}

func (s *Server) handleSystemic(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	in, err := s.engineInputs(r.Context(), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	fatigue := auge.CalculateSystemicFatigue(in.History, in.SleepLogs, in.WellbeingLogs, in.ExerciseDB, in.Settings, now)
	writeJSON(w, http.StatusOK, fatigue)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	in, err := s.engineInputs(r.Context(), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	fatigue := auge.CalculateSystemicFatigue(in.History, in.SleepLogs, in.WellbeingLogs, in.ExerciseDB, in.Settings, now)
	readiness := auge.CalculateDailyReadiness(in.SleepLogs, in.WellbeingLogs, in.Settings, fatigue.Total, now)
	writeJSON(w, http.StatusOK, readiness)
}

func (s *Server) handleACWR(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	in, err := s.engineInputs(r.Context(), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	ratio := auge.ACWR(in.History, in.ExerciseDB, in.Settings, now)
	writeJSON(w, http.StatusOK, map[string]any{
		"acwr":           math.Round(ratio*100) / 100,
		"classification": auge.ClassifyACWR(ratio),
	})
}

func (s *Server) handleSessionDrain(w http.ResponseWriter, r *http.Request) {
	var session models.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(session.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session has no exercises"})
		return
	}

	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	exercises, err := s.db.AllExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	drain := auge.PredictedSessionDrain(session, exercises, settings)
	writeJSON(w, http.StatusOK, map[string]any{
		"drain":              drain,
		"spinal_by_exercise": auge.SpinalDrainByExercise(session, exercises, settings),
	})
}

// handleGetWorkout returns one logged session with its computed stress
// score, effective-volume count, and per-exercise spinal breakdown.
func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout id"})
		return
	}

	log, err := s.db.GetWorkoutLog(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if log == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}

	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	exercises, err := s.db.AllExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	stress := auge.CompletedSessionStress(log.Exercises, exercises, settings)
	writeJSON(w, http.StatusOK, map[string]any{
		"log":              log,
		"stress":           math.Round(stress*10) / 10,
		"stress_level":     auge.ClassifyStressLevel(stress),
		"effective_volume": auge.SessionEffectiveVolume(log.Exercises),
		"spinal_by_exercise": auge.SpinalDrainByExercise(
			models.Session{Name: log.Name, Exercises: log.Exercises}, exercises, settings),
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.db.SaveSettings(r.Context(), settings); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// calibrationRequest carries the user-chosen battery deltas. Each delta
// is clamped to [-100, 100]; LastCalibrated is always server time.
type calibrationRequest struct {
	CNSDelta      float64 `json:"cns_delta"`
	MuscularDelta float64 `json:"muscular_delta"`
	SpinalDelta   float64 `json:"spinal_delta"`
}

func (s *Server) handleCalibration(w http.ResponseWriter, r *http.Request) {
	var req calibrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	cal := models.BatteryCalibration{
		CNSDelta:       clampDelta(req.CNSDelta),
		MuscularDelta:  clampDelta(req.MuscularDelta),
		SpinalDelta:    clampDelta(req.SpinalDelta),
		LastCalibrated: s.now(),
	}
	if err := s.db.SaveCalibration(r.Context(), cal); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func clampDelta(v float64) float64 {
	return math.Max(-100, math.Min(100, v))
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	var log models.WorkoutLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.Date.IsZero() {
		log.Date = s.now()
	}
	if len(log.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workout has no exercises"})
		return
	}

	inserted, err := s.db.InsertWorkoutLog(r.Context(), log)
	if err != nil {
		s.log.Error("workout ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	status := http.StatusCreated
	if !inserted {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{"id": log.ID, "inserted": inserted})
}

func (s *Server) handleLogSleep(w http.ResponseWriter, r *http.Request) {
	var log models.SleepLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if log.EndTime.IsZero() || log.DurationHours <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end_time and positive duration_hours required"})
		return
	}
	if _, err := s.db.InsertSleepLog(r.Context(), log); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "logged"})
}

func (s *Server) handleLogWellbeing(w http.ResponseWriter, r *http.Request) {
	var log models.WellbeingLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if log.Date.IsZero() {
		log.Date = s.now().Truncate(24 * time.Hour)
	}
	if err := s.db.UpsertWellbeingLog(r.Context(), log); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "logged"})
}

func (s *Server) handleLogNutrition(w http.ResponseWriter, r *http.Request) {
	var log models.NutritionLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if log.Date.IsZero() {
		log.Date = s.now()
	}
	if err := s.db.InsertNutritionLog(r.Context(), log); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "logged"})
}

func (s *Server) handleLogFeedback(w http.ResponseWriter, r *http.Request) {
	var fb models.PostSessionFeedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if fb.Date.IsZero() {
		fb.Date = s.now()
	}
	if len(fb.Muscles) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback has no muscles"})
		return
	}
	if err := s.db.InsertFeedback(r.Context(), fb); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.learnRecoveryRates(r.Context(), fb)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "logged"})
}

// learnRecoveryRates folds a feedback report's strength-capacity answers
// into the per-muscle recovery multipliers. Best effort: a failure here
// never fails the feedback ingest.
func (s *Server) learnRecoveryRates(ctx context.Context, fb models.PostSessionFeedback) {
	now := s.now()
	in, err := s.engineInputs(ctx, now)
	if err != nil {
		s.log.Error("recovery rate update skipped", "error", err)
		return
	}

	settings := in.Settings
	updated := false
	for name, mf := range fb.Muscles {
		if mf.StrengthCapacity < 1 || mf.StrengthCapacity > 5 {
			continue
		}
		group := auge.ResolveMuscleGroup(name)
		if group == auge.GroupUnknown {
			continue
		}
		computed := float64(auge.MuscleBattery(string(group), in, now).RecoveryScore)
		felt := float64(mf.StrengthCapacity) * 20

		current := settings.RecoveryRates[string(group)]
		if current == 0 {
			current = 1.0
		}
		if settings.RecoveryRates == nil {
			settings.RecoveryRates = make(map[string]float64)
		}
		settings.RecoveryRates[string(group)] = auge.LearnRecoveryRate(current, computed, felt)
		updated = true
	}
	if !updated {
		return
	}
	if err := s.db.SaveSettings(ctx, settings); err != nil {
		s.log.Error("recovery rate update failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
