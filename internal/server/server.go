package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/caupolican/auge/internal/auge"
	"github.com/caupolican/auge/internal/compute"
	"github.com/caupolican/auge/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the persistence surface the handlers need. *storage.DB
// satisfies it; tests substitute an in-memory stub.
type Store interface {
	RecentWorkoutLogs(ctx context.Context, days int, now time.Time) ([]models.WorkoutLog, error)
	GetWorkoutLog(ctx context.Context, id uuid.UUID) (*models.WorkoutLog, error)
	InsertWorkoutLog(ctx context.Context, log models.WorkoutLog) (bool, error)

	QuerySleepLogs(ctx context.Context, start, end time.Time) ([]models.SleepLog, error)
	InsertSleepLog(ctx context.Context, log models.SleepLog) (bool, error)
	QueryWellbeingLogs(ctx context.Context, start, end time.Time) ([]models.WellbeingLog, error)
	UpsertWellbeingLog(ctx context.Context, log models.WellbeingLog) error
	QueryNutritionLogs(ctx context.Context, start, end time.Time) ([]models.NutritionLog, error)
	InsertNutritionLog(ctx context.Context, log models.NutritionLog) error
	QueryFeedback(ctx context.Context, start, end time.Time) ([]models.PostSessionFeedback, error)
	InsertFeedback(ctx context.Context, fb models.PostSessionFeedback) error

	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error
	SaveCalibration(ctx context.Context, cal models.BatteryCalibration) error

	AllExercises(ctx context.Context) ([]models.ExerciseMetadata, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     Store
	exec   *compute.Executor
	log    *slog.Logger
	apiKey string
	router chi.Router

	// Newest computed global state, kept so a stale recomputation
	// finishing late cannot overwrite a fresher one.
	latestGlobal compute.Latest[auge.GlobalBatteryState]

	// now is swappable for tests.
	now func() time.Time
}

// New creates a new Server with all routes configured.
func New(db Store, exec *compute.Executor, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		exec:   exec,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetMCP mounts the MCP transport under /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Battery and readiness reads (no auth, tsnet handles access)
	s.router.Get("/api/v1/batteries", s.handleGlobalBatteries)
	s.router.Get("/api/v1/batteries/muscles", s.handleMuscleBatteries)
	s.router.Get("/api/v1/batteries/muscles/{muscle}", s.handleMuscleBattery)
	s.router.Get("/api/v1/systemic", s.handleSystemic)
	s.router.Get("/api/v1/readiness", s.handleReadiness)
	s.router.Get("/api/v1/acwr", s.handleACWR)
	s.router.Post("/api/v1/sessions/drain", s.handleSessionDrain)
	s.router.Get("/api/v1/logs/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/settings", s.handleGetSettings)

	// Writes (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Put("/api/v1/calibration", s.handleCalibration)
		r.Put("/api/v1/settings", s.handleSaveSettings)
		r.Post("/api/v1/logs/workouts", s.handleLogWorkout)
		r.Post("/api/v1/logs/sleep", s.handleLogSleep)
		r.Post("/api/v1/logs/wellbeing", s.handleLogWellbeing)
		r.Post("/api/v1/logs/nutrition", s.handleLogNutrition)
		r.Post("/api/v1/logs/feedback", s.handleLogFeedback)
	})
}

// engineInputs gathers everything the engine reads in one place so
// every endpoint sees a consistent snapshot.
func (s *Server) engineInputs(ctx context.Context, now time.Time) (auge.MuscleBatteryInputs, error) {
	var in auge.MuscleBatteryInputs

	settings, err := s.db.GetSettings(ctx)
	if err != nil {
		return in, err
	}
	history, err := s.db.RecentWorkoutLogs(ctx, 28, now)
	if err != nil {
		return in, err
	}
	sleep, err := s.db.QuerySleepLogs(ctx, now.AddDate(0, 0, -7), now.Add(time.Second))
	if err != nil {
		return in, err
	}
	wellbeing, err := s.db.QueryWellbeingLogs(ctx, now.AddDate(0, 0, -7), now.Add(time.Second))
	if err != nil {
		return in, err
	}
	nutrition, err := s.db.QueryNutritionLogs(ctx, now.AddDate(0, 0, -7), now.Add(time.Second))
	if err != nil {
		return in, err
	}
	feedback, err := s.db.QueryFeedback(ctx, now.AddDate(0, 0, -4), now.Add(time.Second))
	if err != nil {
		return in, err
	}
	exercises, err := s.db.AllExercises(ctx)
	if err != nil {
		return in, err
	}

	in = auge.MuscleBatteryInputs{
		History:       history,
		ExerciseDB:    exercises,
		SleepLogs:     sleep,
		WellbeingLogs: wellbeing,
		NutritionLogs: nutrition,
		Feedback:      feedback,
		Settings:      settings,
	}
	return in, nil
}
