package auge

import (
	"math"
	"sort"
	"time"

	"github.com/caupolican/auge/internal/models"
)

// WeeklyCNSReference is the CNS load that maps to 100% gym fatigue over
// a rolling week for an advanced athlete.
const WeeklyCNSReference = 4000.0

// SystemicFatigue is the global central-nervous state: Total is the
// remaining battery, Gym and Life the normalized penalty components.
type SystemicFatigue struct {
	Total int `json:"total"`
	Gym   int `json:"gym"`
	Life  int `json:"life"`
}

// CalculateSystemicFatigue aggregates CNS load across the last 7 days
// with recency weighting and fuses it with sleep and life-stress
// penalties into a 0-100 battery.
func CalculateSystemicFatigue(history []models.WorkoutLog, sleepLogs []models.SleepLog, wellbeingLogs []models.WellbeingLog, db []models.ExerciseMetadata, settings models.Settings, now time.Time) SystemicFatigue {
	cnsLoad := 0.0

	for _, log := range history {
		age := now.Sub(log.Date)
		if age < 0 || age > 7*24*time.Hour {
			continue
		}
		daysAgo := age.Hours() / 24
		recency := math.Max(0.1, safeExp(-0.4*daysAgo))

		sessionCNS := 0.0
		for _, ex := range log.Exercises {
			meta := FindExercise(db, ex.ExerciseDBID, ex.Name)
			c := ResolveCoefficients(meta, ex.Name)
			cnsRatio := c.CNC / 5.0

			for _, set := range ex.Sets {
				if set.IsWarmup {
					continue
				}
				stress := SetStress(set, meta, ex.Name, defaultRestSeconds)

				// Supra-maximal loads leak CNS capacity faster.
				loadMult := 1.0
				if meta != nil && meta.Calculated1RM != nil && *meta.Calculated1RM > 0 &&
					set.WeightKg != nil && *set.WeightKg/(*meta.Calculated1RM) >= 0.90 {
					loadMult = 1.3
				}
				sessionCNS += stress * cnsRatio * loadMult
			}
		}

		if log.DurationSec > 75*60 {
			sessionCNS *= 1.15
		}
		if log.DurationSec > 90*60 {
			sessionCNS *= 1.25
		}

		cnsLoad += sessionCNS * recency
	}

	gym := clamp(cnsLoad/WeeklyCNSReference*100, 0, 100)

	sleepPenalty := 0.0
	if settings.SleepTracking {
		switch wSleep := weightedSleepHoursOrNeutral(sleepLogs); {
		case wSleep < 4.5:
			sleepPenalty = 40
		case wSleep < 5.5:
			sleepPenalty = 25
		case wSleep < 6.5:
			sleepPenalty = 15
		case wSleep >= 8.5:
			sleepPenalty = -15
		case wSleep > 7.5:
			sleepPenalty = -5
		}
	}

	lifeStressPenalty := 0.0
	if w := latestWellbeing(wellbeingLogs, now); w != nil {
		if w.StressLevel >= 4 {
			lifeStressPenalty += 15
		} else if w.StressLevel == 3 {
			lifeStressPenalty += 5
		}
		if w.WorkIntensity == models.IntensityHigh || w.StudyIntensity == models.IntensityHigh {
			lifeStressPenalty += 10
		}
	}

	total := clamp(100-gym-sleepPenalty-lifeStressPenalty, 0, 100)

	return SystemicFatigue{
		Total: int(math.Round(total)),
		Gym:   int(math.Round(gym)),
		Life:  int(math.Round(math.Max(0, sleepPenalty+lifeStressPenalty))),
	}
}

// weightedSleepHoursOrNeutral is the 50/30/20 weighted average, but a
// fully empty log set assumes a neutral 7.5h instead of the 7h
// per-entry default.
func weightedSleepHoursOrNeutral(logs []models.SleepLog) float64 {
	if len(logs) == 0 {
		return 7.5
	}
	sorted := make([]models.SleepLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EndTime.After(sorted[j].EndTime) })

	weights := []float64{0.5, 0.3, 0.2}
	total := 0.0
	for i, w := range weights {
		h := 7.5
		if i < len(sorted) {
			h = sorted[i].DurationHours
		}
		total += h * w
	}
	return total
}

// ReadinessStatus is the daily traffic light.
type ReadinessStatus string

const (
	ReadinessGreen  ReadinessStatus = "green"
	ReadinessYellow ReadinessStatus = "yellow"
	ReadinessRed    ReadinessStatus = "red"
)

// DailyReadiness is the morning go/no-go verdict derived from the CNS
// battery and an independently-accumulated lifestyle stress factor.
type DailyReadiness struct {
	Status           ReadinessStatus `json:"status"`
	StressMultiplier float64         `json:"stress_multiplier"`
	CNSBattery       int             `json:"cns_battery"`
	Diagnostics      []string        `json:"diagnostics"`
	Recommendation   string          `json:"recommendation"`
}

// CalculateDailyReadiness derives the traffic light: red when the CNS
// battery is depleted or lifestyle factors have compounded badly,
// yellow for residual fatigue, green otherwise.
func CalculateDailyReadiness(sleepLogs []models.SleepLog, wellbeingLogs []models.WellbeingLog, settings models.Settings, cnsBattery int, now time.Time) DailyReadiness {
	mult := 1.0
	var diagnostics []string

	lastSleep := 7.5
	var latest *models.SleepLog
	for i := range sleepLogs {
		l := &sleepLogs[i]
		if l.EndTime.After(now) {
			continue
		}
		if latest == nil || l.EndTime.After(latest.EndTime) {
			latest = l
		}
	}
	if latest != nil {
		lastSleep = latest.DurationHours
	}
	if lastSleep < 6 {
		mult *= 1.5
		diagnostics = append(diagnostics, "short sleep detected (<6h); recharge is severely slowed today")
	}

	if w := latestWellbeing(wellbeingLogs, now); w != nil && w.StressLevel >= 4 {
		mult *= 1.4
		diagnostics = append(diagnostics, "high reported stress is blocking nervous-system recovery")
	}

	inDeficit := settings.Objective == models.ObjectiveDeficit
	if inDeficit {
		mult *= 1.3
		diagnostics = append(diagnostics, "caloric deficit leaves limited resources for tissue repair")
	}

	status := ReadinessGreen
	recommendation := "All systems ready. Green light to chase personal records or lift heavy."
	switch {
	case cnsBattery < 40 || mult >= 1.8:
		status = ReadinessRed
		if inDeficit {
			recommendation = "Your nervous system is not ready and the deficit is slowing your recharge. Take a full rest day or do light mobility only."
		} else {
			recommendation = "Your nervous system is not ready. Consider full rest or a very light mobility session."
		}
	case cnsBattery < 70 || mult >= 1.3:
		status = ReadinessYellow
		if inDeficit {
			recommendation = "Residual fatigue under a caloric deficit. Swap heavy work for technique and protect your muscle mass."
		} else {
			recommendation = "Residual fatigue or external factors working against you. Swap heavy work for technique, or cut planned volume by half."
		}
	}

	if len(diagnostics) == 0 {
		diagnostics = append(diagnostics, "your last 24h habits were excellent; recovery synthesis is at full speed")
	}

	return DailyReadiness{
		Status:           status,
		StressMultiplier: math.Round(mult*100) / 100,
		CNSBattery:       cnsBattery,
		Diagnostics:      diagnostics,
		Recommendation:   recommendation,
	}
}
