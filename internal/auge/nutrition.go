package auge

import (
	"fmt"
	"math"
	"time"

	"github.com/caupolican/auge/internal/models"
)

// NutritionStatus is the inferred intake balance.
type NutritionStatus string

const (
	NutritionDeficit     NutritionStatus = "deficit"
	NutritionMaintenance NutritionStatus = "maintenance"
	NutritionSurplus     NutritionStatus = "surplus"
)

// NutritionRecovery is the recovery-time effect of recent intake.
// Multiplier 1.0 is neutral, <1 accelerates recovery, >1 slows it;
// always within [0.6, 1.6]. Factors are human-readable audit lines.
type NutritionRecovery struct {
	RecoveryTimeMultiplier float64         `json:"recovery_time_multiplier"`
	Status                 NutritionStatus `json:"status"`
	Factors                []string        `json:"factors"`
}

// Bounds of the nutrition recovery-time multiplier.
const (
	nutritionMultiplierMin = 0.6
	nutritionMultiplierMax = 1.6
)

// NutritionRecoveryMultiplier maps recent caloric/protein intake against
// the athlete's goals into a recovery-time multiplier. The surplus curve
// is non-linear: benefit peaks around a moderate surplus and reverses for
// large ones, protein adequacy gates the benefit, and high stress blunts
// it. With no logs in the window, the stated objective stands in.
func NutritionRecoveryMultiplier(logs []models.NutritionLog, settings models.Settings, stressLevel int, windowHours float64, now time.Time) NutritionRecovery {
	if windowHours <= 0 {
		windowHours = 48
	}
	windowStart := now.Add(-time.Duration(windowHours * float64(time.Hour)))

	var totalCal, totalProtein float64
	count := 0
	for _, l := range logs {
		if l.Date.After(windowStart) && !l.Date.After(now) {
			totalCal += l.Calories
			totalProtein += l.Protein
			count++
		}
	}

	if count == 0 {
		res := NutritionRecovery{RecoveryTimeMultiplier: 1.0, Status: NutritionMaintenance}
		switch settings.Objective {
		case models.ObjectiveDeficit:
			res.RecoveryTimeMultiplier = 1.25
			res.Status = NutritionDeficit
			res.Factors = append(res.Factors, "no recent intake data; assuming deficit from stated goal")
		case models.ObjectiveSurplus:
			res.RecoveryTimeMultiplier = 0.95
			res.Status = NutritionSurplus
			res.Factors = append(res.Factors, "no recent intake data; assuming surplus from stated goal")
		}
		return res
	}

	days := math.Max(1, windowHours/24)
	avgCalories := totalCal / days
	avgProtein := totalProtein / days

	calRatio := 1.0
	if settings.CalorieGoal > 0 {
		calRatio = avgCalories / settings.CalorieGoal
	}
	proteinGoal := settings.ProteinGoal
	if proteinGoal <= 0 {
		proteinGoal = 150
	}
	proteinRatio := avgProtein / proteinGoal

	multiplier := 1.0
	status := NutritionMaintenance
	var factors []string

	switch {
	case calRatio < 0.9:
		status = NutritionDeficit
		multiplier = 1 + (1-calRatio)*1.2
		factors = append(factors, fmt.Sprintf("caloric deficit (~%d%%): limited resources for tissue repair", int(math.Round((1-calRatio)*100))))
		if proteinRatio < 0.7 {
			multiplier *= 1.1
			factors = append(factors, "insufficient protein compounds the deficit")
		}

	case calRatio <= 1.1:
		if proteinRatio < 0.8 {
			multiplier = 1.05
			factors = append(factors, "protein below goal at maintenance; slight penalty")
		} else {
			factors = append(factors, "caloric maintenance; standard recovery")
		}

	default:
		status = NutritionSurplus
		surplusPct := (calRatio - 1) * 100
		switch {
		case proteinRatio < 0.6:
			multiplier = 1.05
			factors = append(factors, "surplus without enough protein; muscle synthesis is limited")
		case proteinRatio < 0.8:
			if surplusPct < 15 {
				multiplier = 0.92
			} else if surplusPct < 25 {
				multiplier = 0.88
			} else {
				multiplier = 0.92
			}
			factors = append(factors, fmt.Sprintf("surplus (~%d%%) with suboptimal protein; reduced benefit", int(math.Round(surplusPct))))
		default:
			// Diminishing and eventually reversing returns: a large
			// surplus does not keep accelerating recovery.
			switch {
			case surplusPct < 8:
				multiplier = 0.96
				factors = append(factors, fmt.Sprintf("slight surplus (~%d%%); small recovery benefit", int(math.Round(surplusPct))))
			case surplusPct < 18:
				multiplier = 0.86
				factors = append(factors, fmt.Sprintf("optimal surplus (~%d%%); accelerated recovery", int(math.Round(surplusPct))))
			case surplusPct < 30:
				multiplier = 0.90
				factors = append(factors, fmt.Sprintf("high surplus (~%d%%); diminishing benefit", int(math.Round(surplusPct))))
			default:
				multiplier = 0.96
				factors = append(factors, fmt.Sprintf("very high surplus (~%d%%); benefit reversed", int(math.Round(surplusPct))))
			}
		}
		if stressLevel >= 4 && multiplier < 1 {
			multiplier = math.Min(1, multiplier+0.06)
			factors = append(factors, "elevated stress blunts part of the nutritional benefit")
		}
	}

	return NutritionRecovery{
		RecoveryTimeMultiplier: clamp(multiplier, nutritionMultiplierMin, nutritionMultiplierMax),
		Status:                 status,
		Factors:                factors,
	}
}
