package auge

import (
	"testing"
	"time"

	"github.com/caupolican/auge/internal/models"
)

var systemicTestNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func heavySession(age time.Duration) models.WorkoutLog {
	sets := make([]models.LoggedSet, 6)
	for i := range sets {
		sets[i] = workingSet(160, 3, 9)
	}
	return models.WorkoutLog{
		Name:      "Heavy pulls",
		Date:      systemicTestNow.Add(-age),
		Exercises: []models.LoggedExercise{{Name: "Peso muerto", Sets: sets}},
	}
}

func TestSystemicFatigueEmptyHistory(t *testing.T) {
	got := CalculateSystemicFatigue(nil, nil, nil, nil, enthusiastSettings(), systemicTestNow)
	if got.Total != 100 || got.Gym != 0 || got.Life != 0 {
		t.Errorf("empty inputs = %+v, want full battery with no penalties", got)
	}
}

func TestSystemicFatigueTrainingLoad(t *testing.T) {
	history := []models.WorkoutLog{heavySession(24 * time.Hour)}
	got := CalculateSystemicFatigue(history, nil, nil, nil, enthusiastSettings(), systemicTestNow)
	if got.Gym <= 0 {
		t.Errorf("heavy deadlifts yesterday should register gym load, got %+v", got)
	}
	if got.Total >= 100 {
		t.Errorf("total should drop below 100 under load, got %d", got.Total)
	}
}

// TestSystemicFatigueRecencyWeighting: the same session counts for less
// as it ages.
func TestSystemicFatigueRecencyWeighting(t *testing.T) {
	recent := CalculateSystemicFatigue([]models.WorkoutLog{heavySession(12 * time.Hour)}, nil, nil, nil, enthusiastSettings(), systemicTestNow)
	old := CalculateSystemicFatigue([]models.WorkoutLog{heavySession(6 * 24 * time.Hour)}, nil, nil, nil, enthusiastSettings(), systemicTestNow)
	if recent.Gym <= old.Gym {
		t.Errorf("recent session gym load %d should exceed aged %d", recent.Gym, old.Gym)
	}
}

// TestSystemicFatigueStaleSessionsExcluded: sessions outside the 7-day
// window contribute nothing.
func TestSystemicFatigueStaleSessionsExcluded(t *testing.T) {
	got := CalculateSystemicFatigue([]models.WorkoutLog{heavySession(8 * 24 * time.Hour)}, nil, nil, nil, enthusiastSettings(), systemicTestNow)
	if got.Gym != 0 {
		t.Errorf("8-day-old session should not count, got gym %d", got.Gym)
	}
}

// TestSystemicFatigueMarathonSessions: sessions past 75 and 90 minutes
// are progressively more expensive.
func TestSystemicFatigueMarathonSessions(t *testing.T) {
	short := heavySession(24 * time.Hour)
	short.DurationSec = 60 * 60
	long := heavySession(24 * time.Hour)
	long.DurationSec = 100 * 60

	gShort := CalculateSystemicFatigue([]models.WorkoutLog{short}, nil, nil, nil, enthusiastSettings(), systemicTestNow)
	gLong := CalculateSystemicFatigue([]models.WorkoutLog{long}, nil, nil, nil, enthusiastSettings(), systemicTestNow)
	if gLong.Gym <= gShort.Gym {
		t.Errorf("100-minute session gym load %d should exceed 60-minute %d", gLong.Gym, gShort.Gym)
	}
}

// TestSystemicFatigueHighStressLowersTotal pins the property that two
// identical histories differ only by reported stress: the stressed
// athlete must end with a strictly lower CNS battery.
func TestSystemicFatigueHighStressLowersTotal(t *testing.T) {
	history := []models.WorkoutLog{heavySession(24 * time.Hour)}
	calm := []models.WellbeingLog{{Date: systemicTestNow, StressLevel: 1}}
	stressed := []models.WellbeingLog{{Date: systemicTestNow, StressLevel: 5}}

	gCalm := CalculateSystemicFatigue(history, nil, calm, nil, enthusiastSettings(), systemicTestNow)
	gStressed := CalculateSystemicFatigue(history, nil, stressed, nil, enthusiastSettings(), systemicTestNow)
	if gStressed.Total >= gCalm.Total {
		t.Errorf("stress 5 total %d should be strictly below stress 1 total %d", gStressed.Total, gCalm.Total)
	}
}

func TestSystemicFatigueSleepPenalties(t *testing.T) {
	settings := enthusiastSettings()
	settings.SleepTracking = true
	sleep := func(hours float64) []models.SleepLog {
		return []models.SleepLog{
			{EndTime: systemicTestNow.Add(-2 * time.Hour), DurationHours: hours},
			{EndTime: systemicTestNow.Add(-26 * time.Hour), DurationHours: hours},
			{EndTime: systemicTestNow.Add(-50 * time.Hour), DurationHours: hours},
		}
	}

	short := CalculateSystemicFatigue(nil, sleep(5), nil, nil, settings, systemicTestNow)
	if short.Total != 75 {
		t.Errorf("5h sleep should cost 25 points, got total %d", short.Total)
	}

	veryShort := CalculateSystemicFatigue(nil, sleep(4), nil, nil, settings, systemicTestNow)
	if veryShort.Total != 60 {
		t.Errorf("4h sleep should cost 40 points, got total %d", veryShort.Total)
	}

	// A sleep bonus cannot push the battery past 100.
	rested := CalculateSystemicFatigue(nil, sleep(9), nil, nil, settings, systemicTestNow)
	if rested.Total != 100 {
		t.Errorf("9h sleep with no load should clamp at 100, got %d", rested.Total)
	}

	// Sleep tracking off: the same logs are ignored.
	settings.SleepTracking = false
	ignored := CalculateSystemicFatigue(nil, sleep(4), nil, nil, settings, systemicTestNow)
	if ignored.Total != 100 {
		t.Errorf("sleep penalties should be gated by the toggle, got %d", ignored.Total)
	}
}

func TestWeightedSleepHoursOrNeutral(t *testing.T) {
	if got := weightedSleepHoursOrNeutral(nil); got != 7.5 {
		t.Errorf("no logs should assume neutral 7.5h, got %v", got)
	}

	logs := []models.SleepLog{
		{EndTime: systemicTestNow.Add(-50 * time.Hour), DurationHours: 6},
		{EndTime: systemicTestNow.Add(-2 * time.Hour), DurationHours: 8},
		{EndTime: systemicTestNow.Add(-26 * time.Hour), DurationHours: 7},
	}
	// Most recent first: 8x0.5 + 7x0.3 + 6x0.2 = 7.3.
	if got := weightedSleepHoursOrNeutral(logs); !approx(got, 7.3, 1e-9) {
		t.Errorf("weighted sleep = %v, want 7.3", got)
	}

	// A single log fills the remaining weights with the 7.5h default.
	single := []models.SleepLog{{EndTime: systemicTestNow, DurationHours: 4}}
	if got := weightedSleepHoursOrNeutral(single); !approx(got, 4*0.5+7.5*0.5, 1e-9) {
		t.Errorf("single-log weighted sleep = %v, want %v", got, 4*0.5+7.5*0.5)
	}
}

func TestDailyReadinessGreen(t *testing.T) {
	got := CalculateDailyReadiness(nil, nil, enthusiastSettings(), 95, systemicTestNow)
	if got.Status != ReadinessGreen {
		t.Errorf("status = %q, want green", got.Status)
	}
	if got.StressMultiplier != 1.0 {
		t.Errorf("multiplier = %v, want 1.0", got.StressMultiplier)
	}
	if len(got.Diagnostics) == 0 || got.Recommendation == "" {
		t.Error("readiness should always carry diagnostics and a recommendation")
	}
}

func TestDailyReadinessYellowOnModerateCNS(t *testing.T) {
	got := CalculateDailyReadiness(nil, nil, enthusiastSettings(), 60, systemicTestNow)
	if got.Status != ReadinessYellow {
		t.Errorf("CNS 60 should be yellow, got %q", got.Status)
	}
}

func TestDailyReadinessRedOnDepletedCNS(t *testing.T) {
	got := CalculateDailyReadiness(nil, nil, enthusiastSettings(), 30, systemicTestNow)
	if got.Status != ReadinessRed {
		t.Errorf("CNS 30 should be red, got %q", got.Status)
	}
}

// TestDailyReadinessCompoundedLifestyle: short sleep and a deficit
// multiply to 1.95, past the red threshold even with a healthy CNS.
func TestDailyReadinessCompoundedLifestyle(t *testing.T) {
	settings := enthusiastSettings()
	settings.Objective = models.ObjectiveDeficit
	sleep := []models.SleepLog{{EndTime: systemicTestNow.Add(-2 * time.Hour), DurationHours: 5}}

	got := CalculateDailyReadiness(sleep, nil, settings, 95, systemicTestNow)
	if got.Status != ReadinessRed {
		t.Errorf("1.5x1.3 = 1.95 should be red, got %q", got.Status)
	}
	if !approx(got.StressMultiplier, 1.95, 1e-9) {
		t.Errorf("multiplier = %v, want 1.95", got.StressMultiplier)
	}
}

// TestDailyReadinessSingleFactorYellow: one bad factor alone lands in
// yellow, not red.
func TestDailyReadinessSingleFactorYellow(t *testing.T) {
	wellbeing := []models.WellbeingLog{{Date: systemicTestNow, StressLevel: 5}}
	got := CalculateDailyReadiness(nil, wellbeing, enthusiastSettings(), 95, systemicTestNow)
	if got.Status != ReadinessYellow {
		t.Errorf("stress alone (x1.4) should be yellow, got %q", got.Status)
	}
	if !approx(got.StressMultiplier, 1.4, 1e-9) {
		t.Errorf("multiplier = %v, want 1.4", got.StressMultiplier)
	}
}
