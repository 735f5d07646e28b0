package models

// MuscleRole describes how a muscle participates in an exercise.
type MuscleRole string

const (
	RolePrimary     MuscleRole = "primary"
	RoleSecondary   MuscleRole = "secondary"
	RoleStabilizer  MuscleRole = "stabilizer"
	RoleNeutralizer MuscleRole = "neutralizer"
)

// MuscleInvolvement is one muscle's participation in an exercise,
// with an activation coefficient in [0, 1].
type MuscleInvolvement struct {
	Muscle     string     `json:"muscle"`
	Role       MuscleRole `json:"role"`
	Activation float64    `json:"activation"`
}

// ExerciseType is the structural classification used for coefficient defaults.
type ExerciseType string

const (
	TypeBasico      ExerciseType = "Básico"
	TypeAccesorio   ExerciseType = "Accesorio"
	TypeAislamiento ExerciseType = "Aislamiento"
)

// ExerciseMetadata is an immutable per-exercise-type record from the
// exercise database. The engine only reads it.
//
// EFC/SSC/CNC are the effort, spinal-stress and central-nervous cost
// coefficients. When all three are explicitly present they are
// authoritative and no name-based inference runs.
type ExerciseMetadata struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Equipment       string              `json:"equipment"`
	Type            ExerciseType        `json:"type"`
	BodyPart        string              `json:"body_part,omitempty"`
	InvolvedMuscles []MuscleInvolvement `json:"involved_muscles"`
	EFC             *float64            `json:"efc,omitempty"`
	SSC             *float64            `json:"ssc,omitempty"`
	CNC             *float64            `json:"cnc,omitempty"`
	Calculated1RM   *float64            `json:"calculated_1rm,omitempty"`
}

// PrimaryMuscle returns the highest-activation primary-role muscle,
// or "" when the exercise has no primary involvement.
func (m *ExerciseMetadata) PrimaryMuscle() string {
	best := ""
	bestActivation := -1.0
	for _, inv := range m.InvolvedMuscles {
		if inv.Role != RolePrimary {
			continue
		}
		if inv.Activation > bestActivation {
			best = inv.Muscle
			bestActivation = inv.Activation
		}
	}
	return best
}
