package auge

import (
	"fmt"
	"math"
	"time"

	"github.com/caupolican/auge/internal/models"
)

// Half-lives in hours for the three global systems.
const (
	cnsHalfLifeHours      = 28.0
	muscularHalfLifeHours = 40.0
	spinalHalfLifeHours   = 72.0
)

// Calibration influence fades linearly to zero over this window.
const calibrationWindowHours = 72.0

// AuditLogs holds the human-readable line items explaining each
// system's battery, for UI transparency.
type AuditLogs struct {
	CNS      []string `json:"cns"`
	Muscular []string `json:"muscular"`
	Spinal   []string `json:"spinal"`
}

// GlobalBatteryState is the headline battery triple plus its audit
// trail and natural-language verdict. Ephemeral, recomputed on demand.
type GlobalBatteryState struct {
	CNS       int       `json:"cns"`
	Muscular  int       `json:"muscular"`
	Spinal    int       `json:"spinal"`
	AuditLogs AuditLogs `json:"audit_logs"`
	Verdict   string    `json:"verdict"`
}

// GlobalInputs bundles the read-only data the orchestrator consumes.
type GlobalInputs struct {
	History       []models.WorkoutLog
	ExerciseDB    []models.ExerciseMetadata
	SleepLogs     []models.SleepLog
	WellbeingLogs []models.WellbeingLog
	NutritionLogs []models.NutritionLog
	Settings      models.Settings
}

// sessionDrainComponents sums a logged session's uncapped drain
// percentages per system, with the standard 90s rest assumption.
func sessionDrainComponents(exercises []models.LoggedExercise, db []models.ExerciseMetadata, settings models.Settings) (muscular, cns, spinal float64) {
	tanks := PersonalizedTanks(settings)
	toxicity := make(toxicityTracker)

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
			d := DrainForSet(set, meta, ex.Name, tanks, accumulated, defaultRestSeconds)
			muscular += d.MuscularPct
			cns += d.CNSPct
			spinal += d.SpinalPct
		}
	}
	return muscular, cns, spinal
}

// GlobalBatteries produces the three headline numbers: half-life decay
// of the last 7 days of session drains, CNS point penalties from
// stress/sleep, nutrition-stretched muscular recovery, and the
// time-decaying manual calibration.
func GlobalBatteries(in GlobalInputs, now time.Time) GlobalBatteryState {
	audit := AuditLogs{}
	settings := in.Settings

	muscularHalfLife := muscularHalfLifeHours
	if settings.NutritionTracking {
		stressLevel := 3
		if w := latestWellbeing(in.WellbeingLogs, now); w != nil {
			stressLevel = w.StressLevel
		}
		n := NutritionRecoveryMultiplier(in.NutritionLogs, settings, stressLevel, 48, now)
		muscularHalfLife *= n.RecoveryTimeMultiplier
		if n.RecoveryTimeMultiplier != 1.0 {
			audit.Muscular = append(audit.Muscular, fmt.Sprintf("nutrition (%s): muscular half-life x%.2f", n.Status, n.RecoveryTimeMultiplier))
		}
	}

	var cnsFatigue, muscularFatigue, spinalFatigue float64
	for _, log := range in.History {
		age := now.Sub(log.Date)
		if age < 0 || age > 7*24*time.Hour {
			continue
		}
		h := age.Hours()
		musc, cns, spinal := sessionDrainComponents(log.Exercises, in.ExerciseDB, settings)

		cnsPart := cns * halfLifeDecay(h, cnsHalfLifeHours)
		muscPart := musc * halfLifeDecay(h, muscularHalfLife)
		spinePart := spinal * halfLifeDecay(h, spinalHalfLifeHours)

		cnsFatigue += cnsPart
		muscularFatigue += muscPart
		spinalFatigue += spinePart

		name := log.Name
		if name == "" {
			name = "session"
		}
		stamp := log.Date.Format("Jan 2")
		if cnsPart > 3 {
			audit.CNS = append(audit.CNS, fmt.Sprintf("%s (%s): -%.0f", name, stamp, cnsPart))
		}
		if muscPart > 3 {
			audit.Muscular = append(audit.Muscular, fmt.Sprintf("%s (%s): -%.0f", name, stamp, muscPart))
		}
		if spinePart > 3 {
			audit.Spinal = append(audit.Spinal, fmt.Sprintf("%s (%s): -%.0f", name, stamp, spinePart))
		}
	}

	// Flat CNS point penalties from lifestyle, added directly.
	lifestylePenalty := 0.0
	if w := latestWellbeing(in.WellbeingLogs, now); w != nil && w.StressLevel >= 4 {
		lifestylePenalty += 12
		audit.CNS = append(audit.CNS, "high stress: -12")
	}
	if settings.SleepTracking && len(in.SleepLogs) > 0 {
		switch wSleep := weightedSleepHoursOrNeutral(in.SleepLogs); {
		case wSleep < 6:
			lifestylePenalty += 18
			audit.CNS = append(audit.CNS, fmt.Sprintf("sleep %.1fh: -18", wSleep))
		case wSleep >= 8.5:
			lifestylePenalty -= 10
			audit.CNS = append(audit.CNS, fmt.Sprintf("sleep %.1fh: +10", wSleep))
		}
	}

	cnsBattery := 100 - cnsFatigue - lifestylePenalty
	muscularBattery := 100 - muscularFatigue
	spinalBattery := 100 - spinalFatigue

	// Manual calibration, fading linearly over 72h.
	if cal := settings.Calibration; cal != nil {
		factor := decayFactor(now, cal.LastCalibrated, calibrationWindowHours)
		if factor > 0 {
			cnsBattery += cal.CNSDelta * factor
			muscularBattery += cal.MuscularDelta * factor
			spinalBattery += cal.SpinalDelta * factor
			if cal.CNSDelta != 0 {
				audit.CNS = append(audit.CNS, fmt.Sprintf("manual calibration: %+.1f (%.0f%% remaining)", cal.CNSDelta*factor, factor*100))
			}
			if cal.MuscularDelta != 0 {
				audit.Muscular = append(audit.Muscular, fmt.Sprintf("manual calibration: %+.1f (%.0f%% remaining)", cal.MuscularDelta*factor, factor*100))
			}
			if cal.SpinalDelta != 0 {
				audit.Spinal = append(audit.Spinal, fmt.Sprintf("manual calibration: %+.1f (%.0f%% remaining)", cal.SpinalDelta*factor, factor*100))
			}
		}
	}

	state := GlobalBatteryState{
		CNS:       int(math.Round(clamp(cnsBattery, 0, 100))),
		Muscular:  int(math.Round(clamp(muscularBattery, 0, 100))),
		Spinal:    int(math.Round(clamp(spinalBattery, 0, 100))),
		AuditLogs: audit,
	}
	state.Verdict = verdict(state, lifestylePenalty)
	return state
}

// verdict picks the highest-priority warning for the athlete.
func verdict(s GlobalBatteryState, lifestylePenalty float64) string {
	switch {
	case s.CNS < 30:
		return "Neural fatigue is critical. Heavy lifting today risks regression; prioritize rest and sleep."
	case s.Spinal < 35:
		return "Axial load is accumulating on your spine. Avoid heavy compound pulls and squats until it recovers."
	case s.Muscular < 30:
		return "Muscular reserves are depleted. Raise protein intake and cut volume before adding more work."
	case lifestylePenalty > 10:
		return "Training load is fine but lifestyle stress is dragging you down. Autoregulate: reduce intensity today."
	}
	return "All batteries charged. Good day to seek PRs."
}
