package mcp

import (
	"context"
	"time"

	"github.com/caupolican/auge/internal/auge"
	"github.com/caupolican/auge/internal/models"
	"github.com/caupolican/auge/internal/storage"
)

// DataSource abstracts the read side of the data layer for MCP tools.
type DataSource interface {
	RecentWorkoutLogs(ctx context.Context, days int, now time.Time) ([]models.WorkoutLog, error)
	QuerySleepLogs(ctx context.Context, start, end time.Time) ([]models.SleepLog, error)
	QueryWellbeingLogs(ctx context.Context, start, end time.Time) ([]models.WellbeingLog, error)
	QueryNutritionLogs(ctx context.Context, start, end time.Time) ([]models.NutritionLog, error)
	QueryFeedback(ctx context.Context, start, end time.Time) ([]models.PostSessionFeedback, error)
	GetSettings(ctx context.Context) (models.Settings, error)
	AllExercises(ctx context.Context) ([]models.ExerciseMetadata, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

// loadInputs snapshots everything the engine reads.
func loadInputs(ctx context.Context, ds DataSource, now time.Time) (auge.MuscleBatteryInputs, error) {
	var in auge.MuscleBatteryInputs

	settings, err := ds.GetSettings(ctx)
	if err != nil {
		return in, err
	}
	history, err := ds.RecentWorkoutLogs(ctx, 28, now)
	if err != nil {
		return in, err
	}
	sleep, err := ds.QuerySleepLogs(ctx, now.AddDate(0, 0, -7), now.Add(time.Second))
	if err != nil {
		return in, err
	}
	wellbeing, err := ds.QueryWellbeingLogs(ctx, now.AddDate(0, 0, -7), now.Add(time.Second))
	if err != nil {
		return in, err
	}
	nutrition, err := ds.QueryNutritionLogs(ctx, now.AddDate(0, 0, -7), now.Add(time.Second))
	if err != nil {
		return in, err
	}
	feedback, err := ds.QueryFeedback(ctx, now.AddDate(0, 0, -4), now.Add(time.Second))
	if err != nil {
		return in, err
	}
	exercises, err := ds.AllExercises(ctx)
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

func globalInputs(in auge.MuscleBatteryInputs) auge.GlobalInputs {
	return auge.GlobalInputs{
		History:       in.History,
		ExerciseDB:    in.ExerciseDB,
		SleepLogs:     in.SleepLogs,
		WellbeingLogs: in.WellbeingLogs,
		NutritionLogs: in.NutritionLogs,
		Settings:      in.Settings,
	}
}
