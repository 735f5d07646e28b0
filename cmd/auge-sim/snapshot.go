package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/caupolican/auge/internal/auge"
	"github.com/caupolican/auge/internal/models"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// snapshot is a read-only SQLite export of the athlete's history, using
// the same table names as the server schema. Missing tables are treated
// as empty so partial exports still simulate.
type snapshot struct {
	db *sql.DB
}

func openSnapshot(path string) (*snapshot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return &snapshot{db: db}, nil
}

func (s *snapshot) Close() error {
	return s.db.Close()
}

func missingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", raw)
}

func (s *snapshot) workoutLogs() ([]models.WorkoutLog, error) {
	rows, err := s.db.Query(`SELECT id, name, date, duration_sec, exercises, discomforts, muscle_batteries FROM workout_logs`)
	if missingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout logs: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutLog
	for rows.Next() {
		var (
			log                               models.WorkoutLog
			id, date                          string
			exercises, discomforts, batteries sql.NullString
		)
		if err := rows.Scan(&id, &log.Name, &date, &log.DurationSec, &exercises, &discomforts, &batteries); err != nil {
			return nil, fmt.Errorf("scanning workout log: %w", err)
		}
		if log.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("workout log id %q: %w", id, err)
		}
		if log.Date, err = parseTime(date); err != nil {
			return nil, fmt.Errorf("workout log date %q: %w", date, err)
		}
		if exercises.Valid {
			if err := json.Unmarshal([]byte(exercises.String), &log.Exercises); err != nil {
				return nil, fmt.Errorf("decoding exercises for %s: %w", id, err)
			}
		}
		if discomforts.Valid && discomforts.String != "" {
			if err := json.Unmarshal([]byte(discomforts.String), &log.Discomforts); err != nil {
				return nil, fmt.Errorf("decoding discomforts for %s: %w", id, err)
			}
		}
		if batteries.Valid && batteries.String != "" {
			if err := json.Unmarshal([]byte(batteries.String), &log.MuscleBatteries); err != nil {
				return nil, fmt.Errorf("decoding muscle batteries for %s: %w", id, err)
			}
		}
		result = append(result, log)
	}
	return result, rows.Err()
}

func (s *snapshot) sleepLogs() ([]models.SleepLog, error) {
	rows, err := s.db.Query(`SELECT end_time, duration_hours FROM sleep_logs`)
	if missingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying sleep logs: %w", err)
	}
	defer rows.Close()

	var result []models.SleepLog
	for rows.Next() {
		var (
			l   models.SleepLog
			end string
		)
		if err := rows.Scan(&end, &l.DurationHours); err != nil {
			return nil, fmt.Errorf("scanning sleep log: %w", err)
		}
		if l.EndTime, err = parseTime(end); err != nil {
			return nil, fmt.Errorf("sleep log end_time %q: %w", end, err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (s *snapshot) wellbeingLogs() ([]models.WellbeingLog, error) {
	rows, err := s.db.Query(`SELECT date, sleep_quality, stress_level, doms, motivation, work_intensity, study_intensity FROM wellbeing_logs`)
	if missingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying wellbeing logs: %w", err)
	}
	defer rows.Close()

	var result []models.WellbeingLog
	for rows.Next() {
		var (
			l          models.WellbeingLog
			date       string
			work, stud string
		)
		if err := rows.Scan(&date, &l.SleepQuality, &l.StressLevel, &l.DOMS, &l.Motivation, &work, &stud); err != nil {
			return nil, fmt.Errorf("scanning wellbeing log: %w", err)
		}
		if l.Date, err = parseTime(date); err != nil {
			return nil, fmt.Errorf("wellbeing log date %q: %w", date, err)
		}
		l.WorkIntensity = models.IntensityLevel(work)
		l.StudyIntensity = models.IntensityLevel(stud)
		result = append(result, l)
	}
	return result, rows.Err()
}

func (s *snapshot) nutritionLogs() ([]models.NutritionLog, error) {
	rows, err := s.db.Query(`SELECT date, calories, protein, carbs, fats FROM nutrition_logs`)
	if missingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying nutrition logs: %w", err)
	}
	defer rows.Close()

	var result []models.NutritionLog
	for rows.Next() {
		var (
			l    models.NutritionLog
			date string
		)
		if err := rows.Scan(&date, &l.Calories, &l.Protein, &l.Carbs, &l.Fats); err != nil {
			return nil, fmt.Errorf("scanning nutrition log: %w", err)
		}
		if l.Date, err = parseTime(date); err != nil {
			return nil, fmt.Errorf("nutrition log date %q: %w", date, err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (s *snapshot) exercises() ([]models.ExerciseMetadata, error) {
	rows, err := s.db.Query(`SELECT id, name, equipment, type, body_part, involved_muscles, efc, ssc, cnc, calculated_1rm FROM exercises`)
	if missingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseMetadata
	for rows.Next() {
		var (
			m       models.ExerciseMetadata
			typ     string
			muscles sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Equipment, &typ, &m.BodyPart, &muscles, &m.EFC, &m.SSC, &m.CNC, &m.Calculated1RM); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		m.Type = models.ExerciseType(typ)
		if muscles.Valid && muscles.String != "" {
			if err := json.Unmarshal([]byte(muscles.String), &m.InvolvedMuscles); err != nil {
				return nil, fmt.Errorf("decoding involved muscles for %s: %w", m.ID, err)
			}
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (s *snapshot) settings() (models.Settings, error) {
	set := models.Settings{
		AthleteType: models.AthleteEnthusiast,
		Experience:  models.ExperienceIntermediate,
	}

	row := s.db.QueryRow(`SELECT athlete_type, experience, sex, age, height_cm,
		calorie_goal, protein_goal, objective, sleep_tracking, nutrition_tracking
		FROM settings LIMIT 1`)

	var athleteType, experience, sex, objective string
	err := row.Scan(&athleteType, &experience, &sex, &set.Age, &set.HeightCm,
		&set.CalorieGoal, &set.ProteinGoal, &objective, &set.SleepTracking, &set.NutritionTracking)
	if missingTable(err) || err == sql.ErrNoRows {
		return set, nil
	}
	if err != nil {
		return set, fmt.Errorf("querying settings: %w", err)
	}
	set.AthleteType = models.AthleteType(athleteType)
	set.Experience = models.ExperienceLevel(experience)
	set.Sex = models.Sex(sex)
	set.Objective = models.CalorieObjective(objective)

	calRow := s.db.QueryRow(`SELECT cns_delta, muscular_delta, spinal_delta, last_calibrated FROM battery_calibration LIMIT 1`)
	var (
		cal        models.BatteryCalibration
		calibrated string
	)
	err = calRow.Scan(&cal.CNSDelta, &cal.MuscularDelta, &cal.SpinalDelta, &calibrated)
	if missingTable(err) || err == sql.ErrNoRows {
		return set, nil
	}
	if err != nil {
		return set, fmt.Errorf("querying calibration: %w", err)
	}
	if cal.LastCalibrated, err = parseTime(calibrated); err != nil {
		return set, fmt.Errorf("calibration timestamp %q: %w", calibrated, err)
	}
	set.Calibration = &cal
	return set, nil
}

// inputs assembles the full engine input set from the snapshot.
func (s *snapshot) inputs() (auge.MuscleBatteryInputs, error) {
	var in auge.MuscleBatteryInputs

	settings, err := s.settings()
	if err != nil {
		return in, err
	}
	history, err := s.workoutLogs()
	if err != nil {
		return in, err
	}
	sleep, err := s.sleepLogs()
	if err != nil {
		return in, err
	}
	wellbeing, err := s.wellbeingLogs()
	if err != nil {
		return in, err
	}
	nutrition, err := s.nutritionLogs()
	if err != nil {
		return in, err
	}
	exercises, err := s.exercises()
	if err != nil {
		return in, err
	}

	in = auge.MuscleBatteryInputs{
		History:       history,
		ExerciseDB:    exercises,
		SleepLogs:     sleep,
		WellbeingLogs: wellbeing,
		NutritionLogs: nutrition,
		Settings:      settings,
	}
	return in, nil
}
