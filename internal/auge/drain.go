package auge

import (
	"github.com/caupolican/auge/internal/models"
)

// Tanks are the personalized capacity denominators against which raw
// fatigue damage is expressed as a percentage. Recomputed from settings
// on every calculation, never cached.
type Tanks struct {
	Muscular float64 `json:"muscular"`
	CNS      float64 `json:"cns"`
	Spinal   float64 `json:"spinal"`
}

// Base tank sizes for an intermediate enthusiast. Archetype and
// experience multipliers scale them.
const (
	baseMuscularTank = 350.0
	baseCNSTank      = 280.0
	baseSpinalTank   = 8000.0
)

var archetypeTankScale = map[models.AthleteType]Tanks{
	models.AthleteEnthusiast:   {Muscular: 1.0, CNS: 1.0, Spinal: 1.0},
	models.AthleteHybrid:       {Muscular: 1.05, CNS: 1.05, Spinal: 1.05},
	models.AthleteCalisthenics: {Muscular: 1.0, CNS: 1.05, Spinal: 0.9},
	models.AthleteBodybuilder:  {Muscular: 1.25, CNS: 1.1, Spinal: 1.05},
	models.AthletePowerbuilder: {Muscular: 1.2, CNS: 1.2, Spinal: 1.2},
	models.AthletePowerlifter:  {Muscular: 1.1, CNS: 1.3, Spinal: 1.35},
	models.AthleteWeightlifter: {Muscular: 1.1, CNS: 1.25, Spinal: 1.2},
}

var experienceTankScale = map[models.ExperienceLevel]float64{
	models.ExperienceBeginner:     0.85,
	models.ExperienceIntermediate: 1.0,
	models.ExperienceAdvanced:     1.15,
	models.ExperienceElite:        1.3,
}

// PersonalizedTanks derives the three capacity tanks from the athlete's
// archetype and experience level.
func PersonalizedTanks(settings models.Settings) Tanks {
	scale, ok := archetypeTankScale[settings.AthleteType]
	if !ok {
		scale = archetypeTankScale[models.AthleteEnthusiast]
	}
	exp, ok := experienceTankScale[settings.Experience]
	if !ok {
		exp = 1.0
	}
	return Tanks{
		Muscular: baseMuscularTank * scale.Muscular * exp,
		CNS:      baseCNSTank * scale.CNS * exp,
		Spinal:   baseSpinalTank * scale.Spinal * exp,
	}
}

// Defaults substituted for missing set fields.
const (
	defaultReps = 10
	defaultRPE  = 7.0
)

// EffectiveRPE converts a set's intensity markers into one RPE value.
// Explicit RPE wins over RIR (RPE = 10 - RIR); failure/AMRAP floors the
// base at 11; intensity techniques first floor the base at 10 and then
// add their escalating bonuses.
func EffectiveRPE(set models.LoggedSet) float64 {
	rpe := defaultRPE
	switch {
	case set.CompletedRPE != nil:
		rpe = *set.CompletedRPE
	case set.TargetRPE != nil:
		rpe = *set.TargetRPE
	case set.CompletedRIR != nil:
		rpe = 10 - *set.CompletedRIR
	case set.TargetRIR != nil:
		rpe = 10 - *set.TargetRIR
	}

	if set.IsFailure || set.IsAmrap {
		if rpe < 11 {
			rpe = 11
		}
	}

	bonus := 0.0
	bonus += float64(len(set.DropSets)) * 1.5
	bonus += float64(len(set.RestPauses)) * 1.0
	if set.PartialReps > 0 {
		bonus += 0.5
	}
	if bonus > 0 && rpe < 10 {
		rpe = 10
	}
	return rpe + bonus
}

func setReps(set models.LoggedSet) int {
	switch {
	case set.CompletedReps != nil:
		return *set.CompletedReps
	case set.TargetReps != nil:
		return *set.TargetReps
	}
	return defaultReps
}

// repMultipliers is the U-shaped rep-range curve: low reps are neurally
// and axially expensive with low hypertrophy stimulus, high reps are
// metabolically expensive.
func repMultipliers(reps int, compound bool) (muscular, cns, spinal float64) {
	switch {
	case reps <= 4 && compound:
		return 0.7, 1.8, 1.6
	case reps <= 4:
		return 0.8, 1.2, 0.1
	case reps >= 16:
		return 1.4, 0.7, 0.5
	}
	return 1.0, 1.0, 1.0
}

func intensityMultiplier(rpe float64) float64 {
	switch {
	case rpe >= 11:
		return 1.8
	case rpe >= 10:
		return 1.5
	case rpe >= 9:
		return 1.15
	case rpe >= 8:
		return 1.0
	case rpe >= 6:
		return 0.7
	}
	return 0.4
}

// toxicityMultiplier scales drain by the running effective-set count for
// this muscle within the session, the current set included.
func toxicityMultiplier(accumulatedSets int) float64 {
	if accumulatedSets >= 6 {
		return 1 + float64(accumulatedSets-5)*0.35
	}
	return 1.0
}

func restMultiplier(restSeconds int) float64 {
	switch {
	case restSeconds <= 45:
		return 1.3
	case restSeconds >= 180:
		return 0.85
	}
	return 1.0
}

// SetDrain is one set's drain on the three systems, each as a
// percentage of its tank. Values are non-negative and may exceed 100
// for extreme single sets; clamping happens at session level.
type SetDrain struct {
	MuscularPct float64 `json:"muscular_pct"`
	CNSPct      float64 `json:"cns_pct"`
	SpinalPct   float64 `json:"spinal_pct"`
}

// Total is the scalar sum of the three drains, the primitive behind the
// uncapped session-stress metric used for workload-ratio tracking.
func (d SetDrain) Total() float64 {
	return d.MuscularPct + d.CNSPct + d.SpinalPct
}

// DrainForSet converts one set into drain percentages against the
// athlete's tanks. accumulatedSets is the per-muscle running effective
// set count for the session including this set; restSeconds is the rest
// taken before the next set.
func DrainForSet(set models.LoggedSet, meta *models.ExerciseMetadata, exerciseName string, tanks Tanks, accumulatedSets, restSeconds int) SetDrain {
	c := ResolveCoefficients(meta, exerciseName)
	rpe := EffectiveRPE(set)
	reps := setReps(set)

	muscMult, cnsMult, spineMult := repMultipliers(reps, IsCompound(meta, c))
	intensity := intensityMultiplier(rpe)
	toxicity := toxicityMultiplier(accumulatedSets)
	rest := restMultiplier(restSeconds)
	partialMult := 1 + float64(set.PartialReps)*0.2

	rawMuscular := c.EFC * muscMult * intensity * toxicity * rest * partialMult * 8.0
	rawCNS := c.CNC * cnsMult * intensity * rest * 6.0

	weightFactor := c.EFC * 2.0
	if set.WeightKg != nil && *set.WeightKg > 0 {
		weightFactor = *set.WeightKg * 0.05
	}
	rawSpinal := c.SSC * spineMult * intensity * weightFactor * 4.0

	return SetDrain{
		MuscularPct: pctOfTank(rawMuscular, tanks.Muscular),
		CNSPct:      pctOfTank(rawCNS, tanks.CNS),
		SpinalPct:   pctOfTank(rawSpinal, tanks.Spinal),
	}
}

func pctOfTank(raw, tank float64) float64 {
	if tank <= 0 {
		return 0
	}
	pct := raw / tank * 100
	if pct < 0 {
		return 0
	}
	return pct
}

// EffectiveVolumeMultiplier weights a set's hypertrophy-volume
// contribution by its intensity: failure work amplifies the stimulus,
// pump/warmup work counts partially.
func EffectiveVolumeMultiplier(set models.LoggedSet) float64 {
	rpe := EffectiveRPE(set)
	switch {
	case rpe >= 10:
		return 1.2
	case rpe >= 8:
		return 1.0
	}
	return 0.6
}

// IsSetEffective reports whether a set is hard enough to count toward
// effective volume.
func IsSetEffective(set models.LoggedSet) bool {
	return EffectiveRPE(set) >= 6
}
