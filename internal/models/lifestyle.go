package models

import "time"

// SleepLog is one sleep session. DurationHours is total time asleep.
type SleepLog struct {
	EndTime       time.Time `json:"end_time"`
	DurationHours float64   `json:"duration_hours"`
}

// IntensityLevel grades daily work/study demand.
type IntensityLevel string

const (
	IntensityLight    IntensityLevel = "light"
	IntensityModerate IntensityLevel = "moderate"
	IntensityHigh     IntensityLevel = "high"
)

// WellbeingLog is a daily self-report. StressLevel and DOMS use a 1-5
// scale, SleepQuality and Motivation 1-5.
type WellbeingLog struct {
	Date           time.Time      `json:"date"`
	SleepQuality   int            `json:"sleep_quality,omitempty"`
	StressLevel    int            `json:"stress_level"`
	DOMS           int            `json:"doms"`
	Motivation     int            `json:"motivation,omitempty"`
	WorkIntensity  IntensityLevel `json:"work_intensity,omitempty"`
	StudyIntensity IntensityLevel `json:"study_intensity,omitempty"`
}

// NutritionLog is one timestamped intake entry with macro totals.
type NutritionLog struct {
	Date     time.Time `json:"date"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs,omitempty"`
	Fats     float64   `json:"fats,omitempty"`
}

// MuscleFeedback is the detailed post-session report for one muscle.
// DOMS uses the 1-5 scale.
type MuscleFeedback struct {
	DOMS             int  `json:"doms"`
	JointPain        bool `json:"joint_pain,omitempty"`
	StrengthCapacity int  `json:"strength_capacity,omitempty"`
}

// PostSessionFeedback is the per-muscle questionnaire answered some
// hours after a session.
type PostSessionFeedback struct {
	LogID   string                    `json:"log_id,omitempty"`
	Date    time.Time                 `json:"date"`
	Muscles map[string]MuscleFeedback `json:"muscles"`
}
