package models

import "time"

// AthleteType is the training-style archetype used to size battery tanks
// and capacity floors.
type AthleteType string

const (
	AthleteEnthusiast   AthleteType = "enthusiast"
	AthleteHybrid       AthleteType = "hybrid"
	AthleteCalisthenics AthleteType = "calisthenics"
	AthleteBodybuilder  AthleteType = "bodybuilder"
	AthletePowerbuilder AthleteType = "powerbuilder"
	AthletePowerlifter  AthleteType = "powerlifter"
	AthleteWeightlifter AthleteType = "weightlifter"
)

// ExperienceLevel scales tank capacity.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceElite        ExperienceLevel = "elite"
)

// Sex as reported by the athlete; affects the recovery-time multiplier.
type Sex string

const (
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
	SexTransMale   Sex = "transmale"
	SexTransFemale Sex = "transfemale"
	SexOther       Sex = "other"
)

// CalorieObjective is the athlete's stated nutrition goal.
type CalorieObjective string

const (
	ObjectiveDeficit     CalorieObjective = "deficit"
	ObjectiveMaintenance CalorieObjective = "maintenance"
	ObjectiveSurplus     CalorieObjective = "surplus"
)

// BatteryCalibration is a user-set manual override on the three global
// batteries. Its influence decays linearly to zero over 72 hours from
// LastCalibrated; it is only created or overwritten by an explicit
// calibration action.
type BatteryCalibration struct {
	CNSDelta       float64   `json:"cns_delta"`
	MuscularDelta  float64   `json:"muscular_delta"`
	SpinalDelta    float64   `json:"spinal_delta"`
	LastCalibrated time.Time `json:"last_calibrated"`
}

// Settings holds the athlete profile and feature toggles the engine
// reads. Calibration and RecoveryRates are written back by the service,
// never by the athlete directly.
type Settings struct {
	AthleteType       AthleteType      `json:"athlete_type"`
	Experience        ExperienceLevel  `json:"experience"`
	Sex               Sex              `json:"sex,omitempty"`
	Age               int              `json:"age,omitempty"`
	HeightCm          float64          `json:"height_cm,omitempty"`
	CalorieGoal       float64          `json:"calorie_goal,omitempty"`
	ProteinGoal       float64          `json:"protein_goal,omitempty"`
	Objective         CalorieObjective `json:"objective,omitempty"`
	SleepTracking     bool             `json:"sleep_tracking"`
	NutritionTracking bool             `json:"nutrition_tracking"`

	// RecoveryRates are learned per-muscle recovery multipliers, keyed
	// by canonical group name. Above 1.0 the muscle recovers faster than
	// its profile, below 1.0 slower. Tuned from post-session feedback.
	RecoveryRates map[string]float64 `json:"recovery_rates,omitempty"`

	Calibration *BatteryCalibration `json:"calibration,omitempty"`
}
