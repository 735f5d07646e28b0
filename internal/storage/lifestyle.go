package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/caupolican/auge/internal/models"
)

// InsertSleepLog stores one sleep session. Returns true if inserted,
// false if a session ending at the same instant already existed.
func (db *DB) InsertSleepLog(ctx context.Context, log models.SleepLog) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO sleep_logs (end_time, duration_hours)
		 VALUES ($1,$2)
		 ON CONFLICT (end_time) DO UPDATE SET duration_hours = EXCLUDED.duration_hours`,
		log.EndTime, log.DurationHours)
	if err != nil {
		return false, fmt.Errorf("inserting sleep log: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuerySleepLogs retrieves sleep sessions ending in [start, end), newest first.
func (db *DB) QuerySleepLogs(ctx context.Context, start, end time.Time) ([]models.SleepLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT end_time, duration_hours
		 FROM sleep_logs
		 WHERE end_time >= $1 AND end_time < $2
		 ORDER BY end_time DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sleep logs: %w", err)
	}
	defer rows.Close()

	var result []models.SleepLog
	for rows.Next() {
		var l models.SleepLog
		if err := rows.Scan(&l.EndTime, &l.DurationHours); err != nil {
			return nil, fmt.Errorf("scanning sleep log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// UpsertWellbeingLog stores the daily self-report, one row per calendar day.
func (db *DB) UpsertWellbeingLog(ctx context.Context, log models.WellbeingLog) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO wellbeing_logs (date, sleep_quality, stress_level, doms, motivation, work_intensity, study_intensity)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (date) DO UPDATE SET
			sleep_quality = EXCLUDED.sleep_quality,
			stress_level = EXCLUDED.stress_level,
			doms = EXCLUDED.doms,
			motivation = EXCLUDED.motivation,
			work_intensity = EXCLUDED.work_intensity,
			study_intensity = EXCLUDED.study_intensity`,
		log.Date, log.SleepQuality, log.StressLevel, log.DOMS, log.Motivation,
		string(log.WorkIntensity), string(log.StudyIntensity))
	if err != nil {
		return fmt.Errorf("upserting wellbeing log: %w", err)
	}
	return nil
}

// QueryWellbeingLogs retrieves self-reports dated in [start, end), newest first.
func (db *DB) QueryWellbeingLogs(ctx context.Context, start, end time.Time) ([]models.WellbeingLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date, sleep_quality, stress_level, doms, motivation, work_intensity, study_intensity
		 FROM wellbeing_logs
		 WHERE date >= $1 AND date < $2
		 ORDER BY date DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying wellbeing logs: %w", err)
	}
	defer rows.Close()

	var result []models.WellbeingLog
	for rows.Next() {
		var (
			l          models.WellbeingLog
			work, stud string
		)
		if err := rows.Scan(&l.Date, &l.SleepQuality, &l.StressLevel, &l.DOMS, &l.Motivation, &work, &stud); err != nil {
			return nil, fmt.Errorf("scanning wellbeing log: %w", err)
		}
		l.WorkIntensity = models.IntensityLevel(work)
		l.StudyIntensity = models.IntensityLevel(stud)
		result = append(result, l)
	}
	return result, rows.Err()
}

// InsertNutritionLog stores one intake entry.
func (db *DB) InsertNutritionLog(ctx context.Context, log models.NutritionLog) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO nutrition_logs (date, calories, protein, carbs, fats)
		 VALUES ($1,$2,$3,$4,$5)`,
		log.Date, log.Calories, log.Protein, log.Carbs, log.Fats)
	if err != nil {
		return fmt.Errorf("inserting nutrition log: %w", err)
	}
	return nil
}

// QueryNutritionLogs retrieves intake entries dated in [start, end), newest first.
func (db *DB) QueryNutritionLogs(ctx context.Context, start, end time.Time) ([]models.NutritionLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date, calories, protein, carbs, fats
		 FROM nutrition_logs
		 WHERE date >= $1 AND date < $2
		 ORDER BY date DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying nutrition logs: %w", err)
	}
	defer rows.Close()

	var result []models.NutritionLog
	for rows.Next() {
		var l models.NutritionLog
		if err := rows.Scan(&l.Date, &l.Calories, &l.Protein, &l.Carbs, &l.Fats); err != nil {
			return nil, fmt.Errorf("scanning nutrition log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
