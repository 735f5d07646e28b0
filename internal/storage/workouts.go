package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caupolican/auge/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertWorkoutLog stores a completed session. The full exercise tree is
// kept as JSON so the engine can replay it exactly as logged; a flattened
// per-set table is maintained alongside for ad-hoc analytics queries.
// Returns true if inserted, false if the log ID already existed.
func (db *DB) InsertWorkoutLog(ctx context.Context, log models.WorkoutLog) (bool, error) {
	exercises, err := json.Marshal(log.Exercises)
	if err != nil {
		return false, fmt.Errorf("encoding exercises: %w", err)
	}
	discomforts, err := json.Marshal(log.Discomforts)
	if err != nil {
		return false, fmt.Errorf("encoding discomforts: %w", err)
	}
	batteries, err := json.Marshal(log.MuscleBatteries)
	if err != nil {
		return false, fmt.Errorf("encoding muscle batteries: %w", err)
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_logs (id, name, date, duration_sec, exercises, discomforts, muscle_batteries)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT DO NOTHING`,
		log.ID, log.Name, log.Date, log.DurationSec, exercises, discomforts, batteries)
	if err != nil {
		return false, fmt.Errorf("inserting workout log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := db.insertFlattenedSets(ctx, log); err != nil {
		return true, fmt.Errorf("inserting workout sets: %w", err)
	}
	return true, nil
}

// insertFlattenedSets batch-inserts one row per logged set. Returns count inserted.
func (db *DB) insertFlattenedSets(ctx context.Context, log models.WorkoutLog) (int64, error) {
	type flatSet struct {
		exercise string
		position int
		weightKg *float64
		reps     *int
		rpe      *float64
		warmup   bool
	}
	var flat []flatSet
	for _, ex := range log.Exercises {
		for i, set := range ex.Sets {
			reps := set.CompletedReps
			if reps == nil {
				reps = set.TargetReps
			}
			rpe := set.CompletedRPE
			if rpe == nil {
				rpe = set.TargetRPE
			}
			flat = append(flat, flatSet{
				exercise: ex.Name,
				position: i,
				weightKg: set.WeightKg,
				reps:     reps,
				rpe:      rpe,
				warmup:   set.IsWarmup,
			})
		}
	}
	if len(flat) == 0 {
		return 0, nil
	}

	query := `INSERT INTO workout_sets (log_id, exercise_name, position, weight_kg, reps, rpe, is_warmup) VALUES `
	args := make([]any, 0, len(flat)*7)
	valueStrings := make([]string, 0, len(flat))

	for i, s := range flat {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, log.ID, s.exercise, s.position, s.weightKg, s.reps, s.rpe, s.warmup)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// QueryWorkoutLogs retrieves logs whose date falls in [start, end), newest first.
func (db *DB) QueryWorkoutLogs(ctx context.Context, start, end time.Time) ([]models.WorkoutLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, date, duration_sec, exercises, discomforts, muscle_batteries
		 FROM workout_logs
		 WHERE date >= $1 AND date < $2
		 ORDER BY date DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workout logs: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutLog
	for rows.Next() {
		var (
			log         models.WorkoutLog
			exercises   []byte
			discomforts []byte
			batteries   []byte
		)
		if err := rows.Scan(&log.ID, &log.Name, &log.Date, &log.DurationSec, &exercises, &discomforts, &batteries); err != nil {
			return nil, fmt.Errorf("scanning workout log: %w", err)
		}
		if err := json.Unmarshal(exercises, &log.Exercises); err != nil {
			return nil, fmt.Errorf("decoding exercises for %s: %w", log.ID, err)
		}
		if len(discomforts) > 0 {
			if err := json.Unmarshal(discomforts, &log.Discomforts); err != nil {
				return nil, fmt.Errorf("decoding discomforts for %s: %w", log.ID, err)
			}
		}
		if len(batteries) > 0 {
			if err := json.Unmarshal(batteries, &log.MuscleBatteries); err != nil {
				return nil, fmt.Errorf("decoding muscle batteries for %s: %w", log.ID, err)
			}
		}
		result = append(result, log)
	}
	return result, rows.Err()
}

// RecentWorkoutLogs returns logs from the last given number of days.
func (db *DB) RecentWorkoutLogs(ctx context.Context, days int, now time.Time) ([]models.WorkoutLog, error) {
	return db.QueryWorkoutLogs(ctx, now.AddDate(0, 0, -days), now.Add(time.Second))
}

// GetWorkoutLog retrieves a single log by ID. Returns nil without error
// when no log has that ID.
func (db *DB) GetWorkoutLog(ctx context.Context, id uuid.UUID) (*models.WorkoutLog, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, date, duration_sec, exercises, discomforts, muscle_batteries
		 FROM workout_logs WHERE id = $1`, id)

	var (
		log         models.WorkoutLog
		exercises   []byte
		discomforts []byte
		batteries   []byte
	)
	err := row.Scan(&log.ID, &log.Name, &log.Date, &log.DurationSec, &exercises, &discomforts, &batteries)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("querying workout log: %w", err)
	}
	if err := json.Unmarshal(exercises, &log.Exercises); err != nil {
		return nil, fmt.Errorf("decoding exercises for %s: %w", log.ID, err)
	}
	if len(discomforts) > 0 {
		if err := json.Unmarshal(discomforts, &log.Discomforts); err != nil {
			return nil, fmt.Errorf("decoding discomforts for %s: %w", log.ID, err)
		}
	}
	if len(batteries) > 0 {
		if err := json.Unmarshal(batteries, &log.MuscleBatteries); err != nil {
			return nil, fmt.Errorf("decoding muscle batteries for %s: %w", log.ID, err)
		}
	}
	return &log, nil
}
