package auge

import (
	"math"
	"sort"
	"time"

	"github.com/caupolican/auge/internal/models"
)

// MuscleStatus is the qualitative readiness band of a muscle battery.
type MuscleStatus string

const (
	StatusOptimal    MuscleStatus = "optimal"
	StatusRecovering MuscleStatus = "recovering"
	StatusExhausted  MuscleStatus = "exhausted"
)

// MuscleBatteryState is the recomputed-on-demand battery of one muscle
// group. RecoveryScore is always within [0, 100].
type MuscleBatteryState struct {
	Muscle                   string       `json:"muscle"`
	RecoveryScore            int          `json:"recovery_score"`
	EffectiveSets            int          `json:"effective_sets"`
	HoursSinceLastSession    int          `json:"hours_since_last_session"`
	EstimatedHoursToRecovery int          `json:"estimated_hours_to_recovery"`
	Status                   MuscleStatus `json:"status"`
}

// MuscleBatteryInputs bundles the read-only history the muscle engine
// consumes. All slices are externally authored and never mutated.
type MuscleBatteryInputs struct {
	History       []models.WorkoutLog
	ExerciseDB    []models.ExerciseMetadata
	SleepLogs     []models.SleepLog
	WellbeingLogs []models.WellbeingLog
	NutritionLogs []models.NutritionLog
	Feedback      []models.PostSessionFeedback
	Settings      models.Settings
}

// Base recovery windows in hours per muscle profile.
var recoveryProfiles = map[string]float64{
	"fast":   24,
	"medium": 48,
	"slow":   72,
	"heavy":  96,
}

var muscleProfile = map[MuscleGroup]string{
	GroupBiceps:        "fast",
	GroupTriceps:       "fast",
	GroupDeltoides:     "fast",
	GroupPantorrillas:  "fast",
	GroupAbdomen:       "fast",
	GroupAntebrazo:     "fast",
	GroupPectorales:    "medium",
	GroupDorsales:      "medium",
	GroupTrapecio:      "medium",
	GroupAductores:     "medium",
	GroupCuadriceps:    "slow",
	GroupGluteos:       "slow",
	GroupIsquiosurales: "heavy",
	GroupEspaldaBaja:   "heavy",
}

// Capacity floors in stress points per athlete archetype: the minimum
// weekly work tolerance assumed even with no training history.
var athleteCapacityFloors = map[models.AthleteType]float64{
	models.AthleteEnthusiast:   500,
	models.AthleteHybrid:       650,
	models.AthleteCalisthenics: 600,
	models.AthleteBodybuilder:  1000,
	models.AthletePowerbuilder: 1100,
	models.AthletePowerlifter:  1200,
	models.AthleteWeightlifter: 1000,
}

var fatigueRoleWeights = map[models.MuscleRole]float64{
	models.RolePrimary:     1.0,
	models.RoleSecondary:   0.5,
	models.RoleStabilizer:  0.15,
	models.RoleNeutralizer: 0.1,
}

// baseRecoveryHours maps a muscle name to its recovery window;
// unmatched muscles default to the medium profile.
func baseRecoveryHours(muscle string) float64 {
	if p, ok := muscleProfile[ResolveMuscleGroup(muscle)]; ok {
		return recoveryProfiles[p]
	}
	return recoveryProfiles["medium"]
}

// workCapacity learns the muscle's weekly work tolerance from the last
// 28 days of history, with the athlete-type floor as safety net.
func workCapacity(muscle string, in MuscleBatteryInputs, now time.Time) float64 {
	floor, ok := athleteCapacityFloors[in.Settings.AthleteType]
	if !ok {
		floor = 500
	}

	cutoff := now.Add(-28 * 24 * time.Hour)
	total := 0.0
	seen := false
	for _, log := range in.History {
		if log.Date.Before(cutoff) || log.Date.After(now) {
			continue
		}
		seen = true
		for _, ex := range log.Exercises {
			meta := FindExercise(in.ExerciseDB, ex.ExerciseDBID, ex.Name)
			inv, ok := findInvolvement(meta, ex.Name, muscle)
			if !ok {
				continue
			}
			for _, set := range ex.Sets {
				if set.IsWarmup {
					continue
				}
				total += SetStress(set, meta, ex.Name, defaultRestSeconds) * inv.Activation
			}
		}
	}
	if !seen {
		return floor
	}

	weeklyAvg := total / 4
	return clamp(math.Max(weeklyAvg*1.8, floor), 500, 3500)
}

func findInvolvement(meta *models.ExerciseMetadata, exerciseName, muscle string) (models.MuscleInvolvement, bool) {
	for _, inv := range InvolvedMuscles(meta, exerciseName) {
		if SameMuscleGroup(inv.Muscle, muscle) {
			return inv, true
		}
	}
	return models.MuscleInvolvement{}, false
}

// weightedSleepHours averages the three most recent sleep durations with
// 50/30/20 weighting, most recent first. Missing entries assume 7h.
func weightedSleepHours(logs []models.SleepLog) float64 {
	sorted := make([]models.SleepLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EndTime.After(sorted[j].EndTime) })

	weights := []float64{0.5, 0.3, 0.2}
	total := 0.0
	for i, w := range weights {
		h := 7.0
		if i < len(sorted) {
			h = sorted[i].DurationHours
		}
		total += h * w
	}
	return total
}

// latestWellbeing returns today's log when present, otherwise the most
// recent one.
func latestWellbeing(logs []models.WellbeingLog, now time.Time) *models.WellbeingLog {
	var latest *models.WellbeingLog
	for i := range logs {
		l := &logs[i]
		if l.Date.After(now) {
			continue
		}
		if sameDay(l.Date, now) {
			return l
		}
		if latest == nil || l.Date.After(latest.Date) {
			latest = l
		}
	}
	return latest
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// recoveryTimeMultiplier accumulates the lifestyle penalties that
// stretch (or shrink) the muscle's recovery window.
func recoveryTimeMultiplier(in MuscleBatteryInputs, wellbeing *models.WellbeingLog, now time.Time) float64 {
	mult := 1.0
	s := in.Settings

	stressLevel := 3
	if wellbeing != nil {
		stressLevel = wellbeing.StressLevel
	}

	if s.NutritionTracking {
		mult *= NutritionRecoveryMultiplier(in.NutritionLogs, s, stressLevel, 48, now).RecoveryTimeMultiplier
	} else if s.Objective == models.ObjectiveDeficit {
		mult *= 1.25
	}

	if wellbeing != nil && wellbeing.StressLevel >= 4 {
		mult *= 1.4
	}

	if s.SleepTracking {
		switch wSleep := weightedSleepHours(in.SleepLogs); {
		case wSleep < 6:
			mult *= 1.5
		case wSleep < 7:
			mult *= 1.2
		case wSleep >= 8.5:
			mult *= 0.8
		case wSleep >= 7.5:
			mult *= 0.9
		}
	}

	if s.Age > 35 {
		mult *= 1 + float64(s.Age-35)*0.01
	}
	if s.Sex == models.SexFemale || s.Sex == models.SexTransFemale {
		mult *= 0.85
	}

	return mult
}

// MuscleBattery computes the 0-100 recovery battery for a named muscle
// group from the full supplied history. Pure: identical inputs yield
// identical output.
func MuscleBattery(muscle string, in MuscleBatteryInputs, now time.Time) MuscleBatteryState {
	capacity := workCapacity(muscle, in, now)
	wellbeing := latestWellbeing(in.WellbeingLogs, now)

	recoveryHours := math.Max(1, baseRecoveryHours(muscle)*math.Max(0.5, recoveryTimeMultiplier(in, wellbeing, now)))
	if rate := learnedRecoveryRate(in.Settings, muscle); rate > 0 {
		recoveryHours = math.Max(1, recoveryHours/rate)
	}
	k := decayConstant / recoveryHours

	// Fatigue accumulation over the last 10 days, decayed per session.
	var accumulatedFatigue float64
	var lastSession time.Time
	effectiveSets := 0
	cutoff := now.Add(-10 * 24 * time.Hour)

	for _, log := range in.History {
		if log.Date.Before(cutoff) || log.Date.After(now) {
			continue
		}
		hSince := hoursSince(now, log.Date)
		sessionStress := 0.0

		for _, ex := range log.Exercises {
			meta := FindExercise(in.ExerciseDB, ex.ExerciseDBID, ex.Name)
			inv, ok := findInvolvement(meta, ex.Name, muscle)
			if !ok {
				continue
			}
			roleWeight := fatigueRoleWeights[inv.Role]
			for _, set := range ex.Sets {
				if set.IsWarmup {
					continue
				}
				sessionStress += SetStress(set, meta, ex.Name, defaultRestSeconds) * roleWeight * inv.Activation
			}
			if hSince <= 168 && (inv.Role == models.RolePrimary || (inv.Role == models.RoleSecondary && inv.Activation > 0.6)) {
				for _, set := range ex.Sets {
					if !set.IsWarmup {
						effectiveSets++
					}
				}
			}
		}

		if sessionStress > 0 {
			accumulatedFatigue += sessionStress * safeExp(-k*hSince)
			if log.Date.After(lastSession) {
				lastSession = log.Date
			}
		}
	}

	battery := clamp(100-accumulatedFatigue/capacity*100, 0, 100)

	// Background load lowers the ceiling, never the floor.
	backgroundCap := 100.0
	if wellbeing != nil {
		switch wellbeing.WorkIntensity {
		case models.IntensityHigh:
			backgroundCap -= 10
		case models.IntensityModerate:
			backgroundCap -= 5
		}
		if wellbeing.StressLevel >= 4 {
			backgroundCap -= 10
		}
	}
	battery = math.Min(battery, backgroundCap)

	battery = math.Min(battery, domsCap(muscle, in, wellbeing, now))
	battery = blendObservedBattery(battery, muscle, in.History, recoveryHours, now)
	battery = clamp(battery, 0, 100)

	state := MuscleBatteryState{
		Muscle:                muscle,
		RecoveryScore:         int(math.Round(battery)),
		EffectiveSets:         effectiveSets,
		HoursSinceLastSession: -1,
	}
	if !lastSession.IsZero() {
		state.HoursSinceLastSession = int(math.Round(hoursSince(now, lastSession)))
	}

	switch {
	case state.RecoveryScore < 40:
		state.Status = StatusExhausted
	case state.RecoveryScore < 85:
		state.Status = StatusRecovering
	default:
		state.Status = StatusOptimal
	}

	// Time to reach the recovery target, solving the decay backward.
	target := math.Min(90, backgroundCap)
	if battery < target && accumulatedFatigue > 0 {
		targetFatigue := (100 - target) * capacity / 100
		if accumulatedFatigue > targetFatigue && targetFatigue > 0 {
			t := -math.Log(targetFatigue/accumulatedFatigue) / k
			state.EstimatedHoursToRecovery = int(math.Round(math.Max(0, t)))
		}
	}

	return state
}

// domsCap returns the lowest currently-active soreness/pain ceiling:
// general wellbeing DOMS, recent discomfort reports, and detailed
// post-session feedback whose cap relaxes linearly over time.
func domsCap(muscle string, in MuscleBatteryInputs, wellbeing *models.WellbeingLog, now time.Time) float64 {
	ceiling := 100.0

	if wellbeing != nil {
		switch wellbeing.DOMS {
		case 5:
			ceiling = math.Min(ceiling, 15)
		case 4:
			ceiling = math.Min(ceiling, 40)
		case 3:
			ceiling = math.Min(ceiling, 70)
		}
	}

	cutoff := now.Add(-48 * time.Hour)
	for _, log := range in.History {
		if log.Date.Before(cutoff) || log.Date.After(now) {
			continue
		}
		for _, d := range log.Discomforts {
			if SameMuscleGroup(d, muscle) {
				ceiling = math.Min(ceiling, 50)
			}
		}
	}

	var recent *models.PostSessionFeedback
	for i := range in.Feedback {
		f := &in.Feedback[i]
		if f.Date.After(now) || now.Sub(f.Date) > 72*time.Hour {
			continue
		}
		if recent == nil || f.Date.After(recent.Date) {
			recent = f
		}
	}
	if recent != nil {
		for name, fb := range recent.Muscles {
			if !SameMuscleGroup(name, muscle) {
				continue
			}
			h := hoursSince(now, recent.Date)
			switch fb.DOMS {
			case 5:
				ceiling = math.Min(ceiling, 10+h*1.5)
			case 4:
				ceiling = math.Min(ceiling, 40+h*2.0)
			case 3:
				ceiling = math.Min(ceiling, 70+h*2.5)
			}
		}
	}

	return ceiling
}

// blendObservedBattery folds in the most recent user-reported battery
// snapshot from the last 10 days, projected forward along the recovery
// curve and blended with a recency weight.
func blendObservedBattery(computed float64, muscle string, history []models.WorkoutLog, recoveryHours float64, now time.Time) float64 {
	cutoff := now.Add(-10 * 24 * time.Hour)
	var observed float64
	var observedAt time.Time
	found := false

	for _, log := range history {
		if log.Date.Before(cutoff) || log.Date.After(now) {
			continue
		}
		for name, v := range log.MuscleBatteries {
			if SameMuscleGroup(name, muscle) && (!found || log.Date.After(observedAt)) {
				observed = v
				observedAt = log.Date
				found = true
			}
		}
	}
	if !found {
		return computed
	}

	h := hoursSince(now, observedAt)
	projected := observed + (100-observed)*(1-safeExp(-h/(1.5*recoveryHours)))

	weight := 0.25
	switch {
	case h < 48:
		weight = 0.8
	case h < 96:
		weight = 0.5
	}
	return projected*weight + computed*(1-weight)
}

// LearnRecoveryRate nudges a per-muscle recovery multiplier toward the
// athlete's reported feel, conservatively.
func LearnRecoveryRate(currentMultiplier, calculatedScore, manualFeel float64) float64 {
	return clamp(currentMultiplier+(manualFeel-calculatedScore)*0.005, 0.5, 2.0)
}

// learnedRecoveryRate looks up the athlete's tuned multiplier for a
// muscle. Returns 0 when no rate has been learned yet.
func learnedRecoveryRate(s models.Settings, muscle string) float64 {
	if len(s.RecoveryRates) == 0 {
		return 0
	}
	if r, ok := s.RecoveryRates[muscle]; ok {
		return r
	}
	for name, r := range s.RecoveryRates {
		if SameMuscleGroup(name, muscle) {
			return r
		}
	}
	return 0
}
