package auge

import (
	"strings"

	"github.com/caupolican/auge/internal/models"
)

// Coefficients are the per-exercise cost coefficients: EFC (muscular
// effort), SSC (spinal/axial stress) and CNC (central-nervous cost).
// EFC and CNC live on a 1.0-5.0 scale, SSC on 0-2.0.
type Coefficients struct {
	EFC float64 `json:"efc"`
	SSC float64 `json:"ssc"`
	CNC float64 `json:"cnc"`
}

// familyPattern overrides the type-based defaults when any of its
// substrings appears in the exercise name. Patterns are evaluated in
// order, first match wins; sub-variants refine the family hit.
type familyPattern struct {
	substrings []string
	coeffs     Coefficients
	variants   []familyPattern
}

var familyPatterns = []familyPattern{
	{
		substrings: []string{"peso muerto", "deadlift"},
		coeffs:     Coefficients{EFC: 5.0, SSC: 2.0, CNC: 5.0},
		variants: []familyPattern{
			{substrings: []string{"rumano", "rdl"}, coeffs: Coefficients{EFC: 4.2, SSC: 1.8, CNC: 4.0}},
			{substrings: []string{"sumo"}, coeffs: Coefficients{EFC: 4.8, SSC: 1.6, CNC: 4.8}},
		},
	},
	{
		substrings: []string{"sentadilla", "squat"},
		coeffs:     Coefficients{EFC: 4.5, SSC: 1.5, CNC: 4.5},
		variants: []familyPattern{
			{substrings: []string{"frontal", "front"}, coeffs: Coefficients{EFC: 4.2, SSC: 1.2, CNC: 4.5}},
			{substrings: []string{"búlgara", "bulgarian"}, coeffs: Coefficients{EFC: 3.8, SSC: 0.8, CNC: 3.5}},
			{substrings: []string{"hack"}, coeffs: Coefficients{EFC: 3.5, SSC: 0.4, CNC: 3.0}},
		},
	},
	{substrings: []string{"clean", "snatch"}, coeffs: Coefficients{EFC: 4.8, SSC: 1.8, CNC: 5.0}},
	{substrings: []string{"press militar", "ohp", "overhead press"}, coeffs: Coefficients{EFC: 4.0, SSC: 1.5, CNC: 4.2}},
	{substrings: []string{"press banca", "bench press"}, coeffs: Coefficients{EFC: 3.8, SSC: 0.3, CNC: 3.8}},
	{substrings: []string{"dominada", "pull-up", "pullup"}, coeffs: Coefficients{EFC: 4.0, SSC: 0.2, CNC: 4.0}},
	{
		substrings: []string{"remo", "row"},
		coeffs:     Coefficients{EFC: 4.2, SSC: 1.6, CNC: 4.0},
		variants: []familyPattern{
			{substrings: []string{"seal", "pecho apoyado", "chest supported"}, coeffs: Coefficients{EFC: 3.2, SSC: 0.1, CNC: 2.5}},
		},
	},
	{substrings: []string{"hip thrust", "puente"}, coeffs: Coefficients{EFC: 3.5, SSC: 0.5, CNC: 3.0}},
}

func matchesAny(name string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

func typeDefaults(t models.ExerciseType) Coefficients {
	switch t {
	case models.TypeBasico:
		return Coefficients{EFC: 4.0, SSC: 1.0, CNC: 4.0}
	case models.TypeAccesorio:
		return Coefficients{EFC: 2.5, SSC: 0.1, CNC: 2.5}
	default:
		return Coefficients{EFC: 1.5, SSC: 0.1, CNC: 1.5}
	}
}

// ResolveCoefficients returns the EFC/SSC/CNC coefficients for an
// exercise. Explicit coefficients on the metadata are authoritative;
// otherwise type-based defaults are refined by the name-pattern cascade
// and equipment/technique modifiers. meta may be nil for unknown
// exercises.
func ResolveCoefficients(meta *models.ExerciseMetadata, exerciseName string) Coefficients {
	name := strings.ToLower(exerciseName)
	var c Coefficients
	var equipment string

	if meta != nil {
		if meta.EFC != nil && meta.SSC != nil && meta.CNC != nil {
			return Coefficients{EFC: *meta.EFC, SSC: *meta.SSC, CNC: *meta.CNC}
		}
		c = typeDefaults(meta.Type)
		if meta.EFC != nil {
			c.EFC = *meta.EFC
		}
		if meta.SSC != nil {
			c.SSC = *meta.SSC
		}
		if meta.CNC != nil {
			c.CNC = *meta.CNC
		}
		if name == "" {
			name = strings.ToLower(meta.Name)
		}
		equipment = meta.Equipment
	} else {
		c = typeDefaults("")
	}

	// Exercise family, first match wins.
	for _, fam := range familyPatterns {
		if !matchesAny(name, fam.substrings) {
			continue
		}
		c = fam.coeffs
		for _, v := range fam.variants {
			if matchesAny(name, v.substrings) {
				c = v.coeffs
				break
			}
		}
		break
	}

	// Equipment modifiers.
	switch {
	case strings.Contains(name, "mancuerna") || equipment == "Mancuerna":
		c.CNC = clamp(c.CNC+0.2, 1.0, 5.0)
		c.SSC = clamp(c.SSC-0.2, 0, 2.0)
	case strings.Contains(name, "smith") || strings.Contains(name, "multipower"):
		c.CNC = clamp(c.CNC-0.5, 1.0, 5.0)
		c.EFC = clamp(c.EFC-0.2, 1.0, 5.0)
	case strings.Contains(name, "polea") || strings.Contains(name, "cable") || equipment == "Polea":
		c.CNC = clamp(c.CNC-0.3, 1.0, 5.0)
		c.EFC = clamp(c.EFC+0.2, 1.0, 5.0)
	}

	// Technique modifiers, cumulative.
	if strings.Contains(name, "pausa") || strings.Contains(name, "paused") {
		c.CNC = clamp(c.CNC+0.3, 1.0, 5.0)
		c.EFC = clamp(c.EFC+0.5, 1.0, 5.0)
	}
	if strings.Contains(name, "déficit") || strings.Contains(name, "deficit") {
		c.SSC = clamp(c.SSC+0.2, 0, 2.0)
		c.EFC = clamp(c.EFC+0.3, 1.0, 5.0)
	}
	if strings.Contains(name, "parcial") || strings.Contains(name, "rack pull") || strings.Contains(name, "block") {
		c.SSC = clamp(c.SSC+0.2, 0, 2.0)
		c.EFC = clamp(c.EFC-0.2, 1.0, 5.0)
	}

	return c
}

// IsCompound reports whether the exercise counts as a compound lift for
// the rep-range curve. Type Básico is compound; for unknown metadata a
// resolved EFC of 3.5 or higher stands in.
func IsCompound(meta *models.ExerciseMetadata, c Coefficients) bool {
	if meta != nil {
		return meta.Type == models.TypeBasico
	}
	return c.EFC >= 3.5
}

// musclePattern infers involvement from exercise-name keywords, in
// priority order.
type musclePattern struct {
	substrings []string
	muscles    []models.MuscleInvolvement
}

var musclePatterns = []musclePattern{
	{[]string{"peso muerto", "deadlift"}, []models.MuscleInvolvement{
		{Muscle: "Isquiosurales", Role: models.RolePrimary, Activation: 0.9},
		{Muscle: "Glúteos", Role: models.RolePrimary, Activation: 0.85},
		{Muscle: "Erectores Espinales", Role: models.RoleSecondary, Activation: 0.8},
		{Muscle: "Trapecio", Role: models.RoleStabilizer, Activation: 0.5},
	}},
	{[]string{"sentadilla", "squat", "prensa", "leg press"}, []models.MuscleInvolvement{
		{Muscle: "Cuádriceps", Role: models.RolePrimary, Activation: 0.95},
		{Muscle: "Glúteos", Role: models.RoleSecondary, Activation: 0.7},
		{Muscle: "Erectores Espinales", Role: models.RoleStabilizer, Activation: 0.5},
	}},
	{[]string{"hip thrust", "puente", "glúteo"}, []models.MuscleInvolvement{
		{Muscle: "Glúteos", Role: models.RolePrimary, Activation: 0.95},
		{Muscle: "Isquiosurales", Role: models.RoleSecondary, Activation: 0.5},
	}},
	{[]string{"press banca", "bench", "pecho", "apertura", "fondos"}, []models.MuscleInvolvement{
		{Muscle: "Pectorales", Role: models.RolePrimary, Activation: 0.9},
		{Muscle: "Tríceps", Role: models.RoleSecondary, Activation: 0.6},
		{Muscle: "Deltoides", Role: models.RoleSecondary, Activation: 0.5},
	}},
	{[]string{"press militar", "ohp", "overhead", "hombro", "elevacion lateral", "elevación lateral"}, []models.MuscleInvolvement{
		{Muscle: "Deltoides", Role: models.RolePrimary, Activation: 0.9},
		{Muscle: "Tríceps", Role: models.RoleSecondary, Activation: 0.5},
	}},
	{[]string{"dominada", "pull-up", "pullup", "jalón", "jalon", "pulldown"}, []models.MuscleInvolvement{
		{Muscle: "Dorsales", Role: models.RolePrimary, Activation: 0.9},
		{Muscle: "Bíceps", Role: models.RoleSecondary, Activation: 0.6},
	}},
	{[]string{"remo", "row"}, []models.MuscleInvolvement{
		{Muscle: "Dorsales", Role: models.RolePrimary, Activation: 0.85},
		{Muscle: "Trapecio", Role: models.RoleSecondary, Activation: 0.6},
		{Muscle: "Bíceps", Role: models.RoleSecondary, Activation: 0.5},
		{Muscle: "Erectores Espinales", Role: models.RoleStabilizer, Activation: 0.4},
	}},
	{[]string{"curl femoral", "leg curl", "femoral"}, []models.MuscleInvolvement{
		{Muscle: "Isquiosurales", Role: models.RolePrimary, Activation: 0.95},
	}},
	{[]string{"curl"}, []models.MuscleInvolvement{
		{Muscle: "Bíceps", Role: models.RolePrimary, Activation: 0.95},
		{Muscle: "Antebrazo", Role: models.RoleSecondary, Activation: 0.4},
	}},
	{[]string{"extensión", "extension", "pushdown", "francés", "frances"}, []models.MuscleInvolvement{
		{Muscle: "Tríceps", Role: models.RolePrimary, Activation: 0.95},
	}},
	{[]string{"gemelo", "pantorrilla", "calf"}, []models.MuscleInvolvement{
		{Muscle: "Pantorrillas", Role: models.RolePrimary, Activation: 0.95},
	}},
	{[]string{"abdominal", "crunch", "plancha", "plank", "rueda"}, []models.MuscleInvolvement{
		{Muscle: "Abdomen", Role: models.RolePrimary, Activation: 0.9},
	}},
	{[]string{"zancada", "lunge", "split"}, []models.MuscleInvolvement{
		{Muscle: "Cuádriceps", Role: models.RolePrimary, Activation: 0.85},
		{Muscle: "Glúteos", Role: models.RoleSecondary, Activation: 0.7},
	}},
}

// lastResortMuscles guarantees downstream components always have at
// least one attribution for a fully unknown exercise.
var lastResortMuscles = []models.MuscleInvolvement{
	{Muscle: "Abdomen", Role: models.RolePrimary, Activation: 0.5},
	{Muscle: "Erectores Espinales", Role: models.RoleStabilizer, Activation: 0.3},
}

// InferInvolvedMuscles produces a plausible involvement list for an
// exercise missing from the database. The result is never empty.
func InferInvolvedMuscles(exerciseName, equipment, bodyPart string) []models.MuscleInvolvement {
	name := strings.ToLower(exerciseName)
	for _, p := range musclePatterns {
		if matchesAny(name, p.substrings) {
			return p.muscles
		}
	}
	switch strings.ToLower(bodyPart) {
	case "upper":
		return []models.MuscleInvolvement{
			{Muscle: "Pectorales", Role: models.RolePrimary, Activation: 0.5},
			{Muscle: "Dorsales", Role: models.RoleSecondary, Activation: 0.5},
		}
	case "lower":
		return []models.MuscleInvolvement{
			{Muscle: "Cuádriceps", Role: models.RolePrimary, Activation: 0.5},
			{Muscle: "Glúteos", Role: models.RoleSecondary, Activation: 0.5},
		}
	}
	return lastResortMuscles
}

// InvolvedMuscles resolves the involvement list for an exercise,
// inferring one when the metadata is missing or carries no muscles.
func InvolvedMuscles(meta *models.ExerciseMetadata, exerciseName string) []models.MuscleInvolvement {
	if meta != nil && len(meta.InvolvedMuscles) > 0 {
		return meta.InvolvedMuscles
	}
	equipment, bodyPart := "", ""
	if meta != nil {
		equipment = meta.Equipment
		bodyPart = meta.BodyPart
		if exerciseName == "" {
			exerciseName = meta.Name
		}
	}
	return InferInvolvedMuscles(exerciseName, equipment, bodyPart)
}

// FindExercise locates metadata by database ID first, then by exact name.
// Returns nil when the exercise is unknown.
func FindExercise(db []models.ExerciseMetadata, dbID, name string) *models.ExerciseMetadata {
	if dbID != "" {
		for i := range db {
			if db[i].ID == dbID {
				return &db[i]
			}
		}
	}
	for i := range db {
		if strings.EqualFold(db[i].Name, name) {
			return &db[i]
		}
	}
	return nil
}
