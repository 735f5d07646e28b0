package auge

import (
	"testing"
	"time"

	"github.com/caupolican/auge/internal/models"
)

func nutritionGoals() models.Settings {
	return models.Settings{
		AthleteType: models.AthleteEnthusiast,
		Experience:  models.ExperienceIntermediate,
		CalorieGoal: 2500,
		ProteinGoal: 150,
	}
}

// dailyIntake fabricates one log per day inside the 48h window at the
// given fraction of the calorie and protein goals.
func dailyIntake(now time.Time, calRatio, proteinRatio float64) []models.NutritionLog {
	s := nutritionGoals()
	return []models.NutritionLog{
		{Date: now.Add(-12 * time.Hour), Calories: s.CalorieGoal * calRatio, Protein: s.ProteinGoal * proteinRatio},
		{Date: now.Add(-36 * time.Hour), Calories: s.CalorieGoal * calRatio, Protein: s.ProteinGoal * proteinRatio},
	}
}

// TestNutritionMultiplierBounded sweeps the input space: the multiplier
// must never leave [0.6, 1.6] whatever the intake or stress.
func TestNutritionMultiplierBounded(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	for _, calRatio := range []float64{0, 0.1, 0.5, 0.9, 1.0, 1.1, 1.3, 2.0, 5.0} {
		for _, proteinRatio := range []float64{0, 0.5, 0.7, 1.0, 2.0} {
			for _, stress := range []int{1, 3, 5} {
				got := NutritionRecoveryMultiplier(dailyIntake(now, calRatio, proteinRatio), nutritionGoals(), stress, 48, now)
				if got.RecoveryTimeMultiplier < 0.6 || got.RecoveryTimeMultiplier > 1.6 {
					t.Errorf("multiplier %v outside bounds (cal=%v protein=%v stress=%d)",
						got.RecoveryTimeMultiplier, calRatio, proteinRatio, stress)
				}
			}
		}
	}
}

// TestNutritionMaintenanceNeutral: intake exactly at both goals is a
// neutral multiplier.
func TestNutritionMaintenanceNeutral(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	got := NutritionRecoveryMultiplier(dailyIntake(now, 1.0, 1.0), nutritionGoals(), 2, 48, now)
	if got.Status != NutritionMaintenance {
		t.Errorf("status = %q, want maintenance", got.Status)
	}
	if got.RecoveryTimeMultiplier != 1.0 {
		t.Errorf("multiplier = %v, want 1.0", got.RecoveryTimeMultiplier)
	}
}

// TestNutritionSurplusDiminishingReturns: a moderate surplus helps
// recovery more than a large one.
func TestNutritionSurplusDiminishingReturns(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	moderate := NutritionRecoveryMultiplier(dailyIntake(now, 1.15, 1.0), nutritionGoals(), 2, 48, now)
	large := NutritionRecoveryMultiplier(dailyIntake(now, 1.40, 1.0), nutritionGoals(), 2, 48, now)

	if moderate.Status != NutritionSurplus || large.Status != NutritionSurplus {
		t.Fatalf("both intakes should classify as surplus: %q / %q", moderate.Status, large.Status)
	}
	if moderate.RecoveryTimeMultiplier >= large.RecoveryTimeMultiplier {
		t.Errorf("15%% surplus multiplier %v should beat 40%% surplus %v",
			moderate.RecoveryTimeMultiplier, large.RecoveryTimeMultiplier)
	}
}

func TestNutritionDeficitSlowsRecovery(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	got := NutritionRecoveryMultiplier(dailyIntake(now, 0.75, 1.0), nutritionGoals(), 2, 48, now)
	if got.Status != NutritionDeficit {
		t.Errorf("status = %q, want deficit", got.Status)
	}
	if got.RecoveryTimeMultiplier <= 1.0 {
		t.Errorf("deficit multiplier = %v, want > 1.0", got.RecoveryTimeMultiplier)
	}

	lowProtein := NutritionRecoveryMultiplier(dailyIntake(now, 0.75, 0.5), nutritionGoals(), 2, 48, now)
	if lowProtein.RecoveryTimeMultiplier <= got.RecoveryTimeMultiplier {
		t.Errorf("insufficient protein should compound a deficit: %v vs %v",
			lowProtein.RecoveryTimeMultiplier, got.RecoveryTimeMultiplier)
	}
}

func TestNutritionExtremeDeficitClamped(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	got := NutritionRecoveryMultiplier(dailyIntake(now, 0.1, 0.1), nutritionGoals(), 2, 48, now)
	if got.RecoveryTimeMultiplier != 1.6 {
		t.Errorf("starvation intake should clamp at 1.6, got %v", got.RecoveryTimeMultiplier)
	}
}

func TestNutritionStressBluntsSurplusBenefit(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	calm := NutritionRecoveryMultiplier(dailyIntake(now, 1.12, 1.0), nutritionGoals(), 2, 48, now)
	stressed := NutritionRecoveryMultiplier(dailyIntake(now, 1.12, 1.0), nutritionGoals(), 5, 48, now)

	if stressed.RecoveryTimeMultiplier <= calm.RecoveryTimeMultiplier {
		t.Errorf("stress should blunt the surplus benefit: %v vs %v",
			stressed.RecoveryTimeMultiplier, calm.RecoveryTimeMultiplier)
	}
	if stressed.RecoveryTimeMultiplier > 1.0 {
		t.Errorf("blunting caps at neutral, got %v", stressed.RecoveryTimeMultiplier)
	}
}

func TestNutritionNoLogsFallsBackToObjective(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		objective  models.CalorieObjective
		wantMult   float64
		wantStatus NutritionStatus
	}{
		{models.ObjectiveDeficit, 1.25, NutritionDeficit},
		{models.ObjectiveSurplus, 0.95, NutritionSurplus},
		{models.ObjectiveMaintenance, 1.0, NutritionMaintenance},
		{"", 1.0, NutritionMaintenance},
	}
	for _, tt := range tests {
		t.Run(string(tt.objective), func(t *testing.T) {
			s := nutritionGoals()
			s.Objective = tt.objective
			got := NutritionRecoveryMultiplier(nil, s, 2, 48, now)
			if got.RecoveryTimeMultiplier != tt.wantMult || got.Status != tt.wantStatus {
				t.Errorf("fallback = %v/%q, want %v/%q",
					got.RecoveryTimeMultiplier, got.Status, tt.wantMult, tt.wantStatus)
			}
		})
	}
}

// TestNutritionStaleLogsIgnored: entries outside the window behave as if
// absent.
func TestNutritionStaleLogsIgnored(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	stale := []models.NutritionLog{{Date: now.Add(-80 * time.Hour), Calories: 500, Protein: 20}}
	s := nutritionGoals()
	s.Objective = models.ObjectiveDeficit

	got := NutritionRecoveryMultiplier(stale, s, 2, 48, now)
	if got.RecoveryTimeMultiplier != 1.25 {
		t.Errorf("stale logs should trigger the objective fallback, got %v", got.RecoveryTimeMultiplier)
	}
}
