package auge

import (
	"math"
	"time"

	"github.com/caupolican/auge/internal/models"
)

const defaultRestSeconds = 90

// SessionDrain is the predicted battery cost of a session, each system
// clamped to [0, 100] and rounded.
type SessionDrain struct {
	CNSDrain           int `json:"cns_drain"`
	MuscleBatteryDrain int `json:"muscle_battery_drain"`
	SpinalDrain        int `json:"spinal_drain"`
}

// toxicityTracker carries the per-muscle running effective-set count
// across a whole session. Only the primary muscle of each exercise is
// tracked; secondary involvement does not accumulate.
type toxicityTracker map[MuscleGroup]int

func (t toxicityTracker) add(g MuscleGroup) int {
	t[g]++
	return t[g]
}

// exerciseToxicityKey resolves the muscle group used to accumulate
// toxicity for an exercise: the highest-activation primary muscle, with
// name inference for unknown exercises.
func exerciseToxicityKey(meta *models.ExerciseMetadata, exerciseName string) MuscleGroup {
	primary := ""
	if meta != nil {
		primary = meta.PrimaryMuscle()
	}
	if primary == "" {
		for _, inv := range InvolvedMuscles(meta, exerciseName) {
			if inv.Role == models.RolePrimary {
				primary = inv.Muscle
				break
			}
		}
	}
	if g := ResolveMuscleGroup(primary); g != GroupUnknown {
		return g
	}
	return MuscleGroup(primary)
}

// PredictedSessionDrain estimates the battery cost of a planned or
// in-progress session. Warmup sets are skipped; the per-muscle toxicity
// counter runs across the whole session, not per exercise.
func PredictedSessionDrain(session models.Session, db []models.ExerciseMetadata, settings models.Settings) SessionDrain {
	tanks := PersonalizedTanks(settings)
	toxicity := make(toxicityTracker)

	var cns, muscular, spinal float64
	for _, ex := range session.Exercises {
		meta := FindExercise(db, ex.ExerciseDBID, ex.Name)
		key := exerciseToxicityKey(meta, ex.Name)
		rest := defaultRestSeconds
		if ex.RestSeconds != nil {
			rest = *ex.RestSeconds
		}
		for _, set := range ex.Sets {
			if set.IsWarmup {
				continue
			}
			accumulated := toxicity[key]
			if IsSetEffective(set) {
				accumulated = toxicity.add(key)
			}
			d := DrainForSet(set, meta, ex.Name, tanks, accumulated, rest)
			cns += d.CNSPct
			muscular += d.MuscularPct
			spinal += d.SpinalPct
		}
	}

	return SessionDrain{
		CNSDrain:           int(math.Round(clamp(cns, 0, 100))),
		MuscleBatteryDrain: int(math.Round(clamp(muscular, 0, 100))),
		SpinalDrain:        int(math.Round(clamp(spinal, 0, 100))),
	}
}

// SetStress is the raw muscular damage of one set in tank points,
// before any capacity division. It is the primitive behind work-capacity
// learning and per-muscle fatigue accumulation.
func SetStress(set models.LoggedSet, meta *models.ExerciseMetadata, exerciseName string, restSeconds int) float64 {
	c := ResolveCoefficients(meta, exerciseName)
	rpe := EffectiveRPE(set)
	reps := setReps(set)

	muscMult, _, _ := repMultipliers(reps, IsCompound(meta, c))
	partialMult := 1 + float64(set.PartialReps)*0.2

	return c.EFC * muscMult * intensityMultiplier(rpe) * restMultiplier(restSeconds) * partialMult * 8.0
}

// CompletedSessionStress sums the three drain percentages of every
// non-warmup set, computed with a fixed 90s rest assumption. The result
// is an uncapped scalar for acute:chronic workload tracking and is not
// comparable in scale to the 0-100 battery percentages.
func CompletedSessionStress(exercises []models.LoggedExercise, db []models.ExerciseMetadata, settings models.Settings) float64 {
	tanks := PersonalizedTanks(settings)
	toxicity := make(toxicityTracker)

	total := 0.0
	for _, ex := range exercises {
		meta := FindExercise(db, ex.ExerciseDBID, ex.Name)
		key := exerciseToxicityKey(meta, ex.Name)
		for _, set := range ex.Sets {
			if set.IsWarmup {
				continue
			}
			accumulated := toxicity[key]
			if IsSetEffective(set) {
				accumulated = toxicity.add(key)
			}
			total += DrainForSet(set, meta, ex.Name, tanks, accumulated, defaultRestSeconds).Total()
		}
	}
	return total
}

// SpinalDrainEntry is one exercise's share of a session's axial load,
// for the session-editor advisory panel.
type SpinalDrainEntry struct {
	ExerciseName string  `json:"exercise_name"`
	SpinalPct    float64 `json:"spinal_pct"`
}

// SpinalDrainByExercise breaks a session's spinal drain down per
// exercise, ordered as the session orders them.
func SpinalDrainByExercise(session models.Session, db []models.ExerciseMetadata, settings models.Settings) []SpinalDrainEntry {
	tanks := PersonalizedTanks(settings)
	entries := make([]SpinalDrainEntry, 0, len(session.Exercises))
	for _, ex := range session.Exercises {
		meta := FindExercise(db, ex.ExerciseDBID, ex.Name)
		rest := defaultRestSeconds
		if ex.RestSeconds != nil {
			rest = *ex.RestSeconds
		}
		sum := 0.0
		for _, set := range ex.Sets {
			if set.IsWarmup {
				continue
			}
			sum += DrainForSet(set, meta, ex.Name, tanks, 1, rest).SpinalPct
		}
		entries = append(entries, SpinalDrainEntry{ExerciseName: ex.Name, SpinalPct: math.Round(sum*10) / 10})
	}
	return entries
}

// SessionEffectiveVolume counts the hypertrophy-effective working sets
// of a session, each weighted by its intensity. Warmups and low-effort
// sets contribute nothing.
func SessionEffectiveVolume(exercises []models.LoggedExercise) float64 {
	total := 0.0
	for _, ex := range exercises {
		for _, set := range ex.Sets {
			if set.IsWarmup || !IsSetEffective(set) {
				continue
			}
			total += EffectiveVolumeMultiplier(set)
		}
	}
	return math.Round(total*10) / 10
}

// ACWR is the acute:chronic workload ratio: summed completed-session
// stress over the last 7 days divided by the 28-day weekly average.
// Returns 0 when there is no chronic history.
func ACWR(history []models.WorkoutLog, db []models.ExerciseMetadata, settings models.Settings, now time.Time) float64 {
	var acute, chronic float64
	for _, log := range history {
		age := now.Sub(log.Date)
		if age < 0 || age > 28*24*time.Hour {
			continue
		}
		stress := CompletedSessionStress(log.Exercises, db, settings)
		chronic += stress
		if age <= 7*24*time.Hour {
			acute += stress
		}
	}
	weekly := chronic / 4
	if weekly <= 0 {
		return 0
	}
	return acute / weekly
}

// ClassifyStressLevel labels a session stress score for display.
func ClassifyStressLevel(score float64) string {
	switch {
	case score < 40:
		return "low"
	case score < 80:
		return "optimal"
	case score < 120:
		return "high"
	}
	return "excessive"
}

// ClassifyACWR interprets an acute:chronic workload ratio.
func ClassifyACWR(acwr float64) string {
	switch {
	case acwr < 0.8:
		return "undertraining"
	case acwr > 1.5:
		return "high risk"
	case acwr > 1.3:
		return "risk zone"
	}
	return "safe zone"
}
