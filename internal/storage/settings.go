package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/caupolican/auge/internal/models"
	"github.com/jackc/pgx/v5"
)

// Single-athlete deployment: the settings table holds exactly one row.
const settingsRowID = 1

// GetSettings loads the athlete profile and, if present, the active
// calibration. Returns sensible defaults when nothing was ever saved.
func (db *DB) GetSettings(ctx context.Context) (models.Settings, error) {
	s := models.Settings{
		AthleteType: models.AthleteEnthusiast,
		Experience:  models.ExperienceIntermediate,
	}

	row := db.Pool.QueryRow(ctx,
		`SELECT athlete_type, experience, sex, age, height_cm,
		        calorie_goal, protein_goal, objective, sleep_tracking, nutrition_tracking,
		        recovery_rates
		 FROM settings WHERE id = $1`, settingsRowID)

	var athleteType, experience, sex, objective string
	var recoveryRates []byte
	err := row.Scan(&athleteType, &experience, &sex, &s.Age, &s.HeightCm,
		&s.CalorieGoal, &s.ProteinGoal, &objective, &s.SleepTracking, &s.NutritionTracking,
		&recoveryRates)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return s, nil
	case err != nil:
		return s, fmt.Errorf("querying settings: %w", err)
	}
	s.AthleteType = models.AthleteType(athleteType)
	s.Experience = models.ExperienceLevel(experience)
	s.Sex = models.Sex(sex)
	s.Objective = models.CalorieObjective(objective)
	if len(recoveryRates) > 0 {
		if err := json.Unmarshal(recoveryRates, &s.RecoveryRates); err != nil {
			return s, fmt.Errorf("decoding recovery rates: %w", err)
		}
	}

	cal, err := db.getCalibration(ctx)
	if err != nil {
		return s, err
	}
	s.Calibration = cal
	return s, nil
}

// SaveSettings persists the athlete profile (calibration is saved
// separately via SaveCalibration).
func (db *DB) SaveSettings(ctx context.Context, s models.Settings) error {
	recoveryRates, err := json.Marshal(s.RecoveryRates)
	if err != nil {
		return fmt.Errorf("encoding recovery rates: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO settings (id, athlete_type, experience, sex, age, height_cm,
		                       calorie_goal, protein_goal, objective, sleep_tracking, nutrition_tracking,
		                       recovery_rates)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 ON CONFLICT (id) DO UPDATE SET
			athlete_type = EXCLUDED.athlete_type,
			experience = EXCLUDED.experience,
			sex = EXCLUDED.sex,
			age = EXCLUDED.age,
			height_cm = EXCLUDED.height_cm,
			calorie_goal = EXCLUDED.calorie_goal,
			protein_goal = EXCLUDED.protein_goal,
			objective = EXCLUDED.objective,
			sleep_tracking = EXCLUDED.sleep_tracking,
			nutrition_tracking = EXCLUDED.nutrition_tracking,
			recovery_rates = EXCLUDED.recovery_rates`,
		settingsRowID, string(s.AthleteType), string(s.Experience), string(s.Sex),
		s.Age, s.HeightCm, s.CalorieGoal, s.ProteinGoal, string(s.Objective),
		s.SleepTracking, s.NutritionTracking, recoveryRates)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func (db *DB) getCalibration(ctx context.Context) (*models.BatteryCalibration, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT cns_delta, muscular_delta, spinal_delta, last_calibrated
		 FROM battery_calibration WHERE id = $1`, settingsRowID)

	var cal models.BatteryCalibration
	err := row.Scan(&cal.CNSDelta, &cal.MuscularDelta, &cal.SpinalDelta, &cal.LastCalibrated)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("querying calibration: %w", err)
	}
	return &cal, nil
}

// SaveCalibration overwrites the manual battery calibration. A new
// calibration replaces the old one wholesale; deltas never stack.
func (db *DB) SaveCalibration(ctx context.Context, cal models.BatteryCalibration) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO battery_calibration (id, cns_delta, muscular_delta, spinal_delta, last_calibrated)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE SET
			cns_delta = EXCLUDED.cns_delta,
			muscular_delta = EXCLUDED.muscular_delta,
			spinal_delta = EXCLUDED.spinal_delta,
			last_calibrated = EXCLUDED.last_calibrated`,
		settingsRowID, cal.CNSDelta, cal.MuscularDelta, cal.SpinalDelta, cal.LastCalibrated)
	if err != nil {
		return fmt.Errorf("saving calibration: %w", err)
	}
	return nil
}
