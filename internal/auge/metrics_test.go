package auge

import (
	"testing"

	"github.com/caupolican/auge/internal/models"
)

func TestResolveCoefficientsExplicitWins(t *testing.T) {
	efc, ssc, cnc := 3.1, 0.7, 2.9
	meta := &models.ExerciseMetadata{
		Name: "Peso muerto convencional",
		Type: models.TypeBasico,
		EFC:  &efc, SSC: &ssc, CNC: &cnc,
	}

	c := ResolveCoefficients(meta, "Peso muerto convencional")
	if c.EFC != efc || c.SSC != ssc || c.CNC != cnc {
		t.Errorf("explicit coefficients not authoritative: got %+v", c)
	}
}

func TestResolveCoefficientsFamilies(t *testing.T) {
	tests := []struct {
		name string
		want Coefficients
	}{
		{"Peso muerto convencional", Coefficients{EFC: 5.0, SSC: 2.0, CNC: 5.0}},
		{"Peso muerto rumano", Coefficients{EFC: 4.2, SSC: 1.8, CNC: 4.0}},
		{"Peso muerto sumo", Coefficients{EFC: 4.8, SSC: 1.6, CNC: 4.8}},
		{"Sentadilla trasera", Coefficients{EFC: 4.5, SSC: 1.5, CNC: 4.5}},
		{"Sentadilla frontal", Coefficients{EFC: 4.2, SSC: 1.2, CNC: 4.5}},
		{"Sentadilla búlgara", Coefficients{EFC: 3.8, SSC: 0.8, CNC: 3.5}},
		{"Power clean", Coefficients{EFC: 4.8, SSC: 1.8, CNC: 5.0}},
		{"Press banca competición", Coefficients{EFC: 3.8, SSC: 0.3, CNC: 3.8}},
		{"Dominada lastrada", Coefficients{EFC: 4.0, SSC: 0.2, CNC: 4.0}},
		{"Remo seal", Coefficients{EFC: 3.2, SSC: 0.1, CNC: 2.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCoefficients(nil, tt.name); got != tt.want {
				t.Errorf("ResolveCoefficients = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveCoefficientsTypeDefaults(t *testing.T) {
	tests := []struct {
		typ  models.ExerciseType
		want Coefficients
	}{
		{models.TypeBasico, Coefficients{EFC: 4.0, SSC: 1.0, CNC: 4.0}},
		{models.TypeAccesorio, Coefficients{EFC: 2.5, SSC: 0.1, CNC: 2.5}},
		{models.TypeAislamiento, Coefficients{EFC: 1.5, SSC: 0.1, CNC: 1.5}},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			meta := &models.ExerciseMetadata{Name: "Aparato inventado", Type: tt.typ}
			if got := ResolveCoefficients(meta, "Aparato inventado"); got != tt.want {
				t.Errorf("defaults for %s = %+v, want %+v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestResolveCoefficientsEquipmentModifiers(t *testing.T) {
	// Bench family {3.8, 0.3, 3.8}, dumbbell shifts CNC up and SSC down.
	c := ResolveCoefficients(nil, "Press banca con mancuerna")
	if !approx(c.CNC, 4.0, 1e-9) || !approx(c.SSC, 0.1, 1e-9) {
		t.Errorf("dumbbell modifier: got CNC=%v SSC=%v, want 4.0/0.1", c.CNC, c.SSC)
	}

	// Smith machine lowers CNC and EFC from the squat family {4.5, 1.5, 4.5}.
	c = ResolveCoefficients(nil, "Sentadilla en multipower")
	if !approx(c.CNC, 4.0, 1e-9) || !approx(c.EFC, 4.3, 1e-9) {
		t.Errorf("smith modifier: got CNC=%v EFC=%v, want 4.0/4.3", c.CNC, c.EFC)
	}
}

func TestResolveCoefficientsTechniqueModifiersClamp(t *testing.T) {
	// Deadlift family already sits at EFC 5.0; paused work must not push
	// past the coefficient ceiling.
	c := ResolveCoefficients(nil, "Peso muerto con pausa")
	if c.EFC > 5.0 {
		t.Errorf("EFC exceeded ceiling: %v", c.EFC)
	}
	if !approx(c.EFC, 5.0, 1e-9) {
		t.Errorf("paused deadlift EFC = %v, want clamped 5.0", c.EFC)
	}

	// Deficit variant pushes SSC up from 2.0 but is clamped at 2.0.
	c = ResolveCoefficients(nil, "Peso muerto con déficit")
	if c.SSC > 2.0 {
		t.Errorf("SSC exceeded ceiling: %v", c.SSC)
	}
}

func TestIsCompound(t *testing.T) {
	basico := &models.ExerciseMetadata{Type: models.TypeBasico}
	iso := &models.ExerciseMetadata{Type: models.TypeAislamiento}

	if !IsCompound(basico, Coefficients{}) {
		t.Error("Básico should be compound regardless of coefficients")
	}
	if IsCompound(iso, Coefficients{EFC: 5.0}) {
		t.Error("Aislamiento should not be compound even at high EFC")
	}
	if !IsCompound(nil, Coefficients{EFC: 4.5}) {
		t.Error("unknown exercise with high EFC should count as compound")
	}
	if IsCompound(nil, Coefficients{EFC: 1.5}) {
		t.Error("unknown exercise with low EFC should not count as compound")
	}
}

func TestInferInvolvedMusclesNeverEmpty(t *testing.T) {
	names := []string{"Sentadilla", "Press banca", "Dominada", "Curl femoral tumbado", "Zancada caminando", "Máquina misteriosa", ""}
	for _, name := range names {
		if got := InferInvolvedMuscles(name, "", ""); len(got) == 0 {
			t.Errorf("InferInvolvedMuscles(%q) returned no muscles", name)
		}
	}
}

func TestInferInvolvedMusclesPatterns(t *testing.T) {
	inv := InferInvolvedMuscles("Sentadilla con barra", "", "")
	if inv[0].Muscle != "Cuádriceps" || inv[0].Role != models.RolePrimary {
		t.Errorf("squat primary = %+v, want Cuádriceps primary", inv[0])
	}

	// "Curl femoral" must hit the hamstring pattern, not the biceps one.
	inv = InferInvolvedMuscles("Curl femoral sentado", "", "")
	if inv[0].Muscle != "Isquiosurales" {
		t.Errorf("leg curl primary = %q, want Isquiosurales", inv[0].Muscle)
	}

	inv = InferInvolvedMuscles("Curl martillo", "", "")
	if inv[0].Muscle != "Bíceps" {
		t.Errorf("hammer curl primary = %q, want Bíceps", inv[0].Muscle)
	}
}

func TestInferInvolvedMusclesBodyPartFallback(t *testing.T) {
	inv := InferInvolvedMuscles("Aparato desconocido", "", "lower")
	if inv[0].Muscle != "Cuádriceps" {
		t.Errorf("lower-body fallback primary = %q, want Cuádriceps", inv[0].Muscle)
	}
	inv = InferInvolvedMuscles("Aparato desconocido", "", "upper")
	if inv[0].Muscle != "Pectorales" {
		t.Errorf("upper-body fallback primary = %q, want Pectorales", inv[0].Muscle)
	}
}

func TestInvolvedMusclesPrefersMetadata(t *testing.T) {
	meta := &models.ExerciseMetadata{
		Name: "Sentadilla",
		InvolvedMuscles: []models.MuscleInvolvement{
			{Muscle: "Glúteos", Role: models.RolePrimary, Activation: 0.9},
		},
	}
	inv := InvolvedMuscles(meta, "Sentadilla")
	if len(inv) != 1 || inv[0].Muscle != "Glúteos" {
		t.Errorf("metadata muscles should win over inference, got %+v", inv)
	}
}

func TestFindExercise(t *testing.T) {
	db := []models.ExerciseMetadata{
		{ID: "ex-1", Name: "Sentadilla"},
		{ID: "ex-2", Name: "Press banca"},
	}

	if got := FindExercise(db, "ex-2", "Sentadilla"); got == nil || got.ID != "ex-2" {
		t.Error("lookup by ID should win over name")
	}
	if got := FindExercise(db, "", "press banca"); got == nil || got.ID != "ex-2" {
		t.Error("name lookup should be case-insensitive")
	}
	if got := FindExercise(db, "nope", "Desconocido"); got != nil {
		t.Errorf("unknown exercise should return nil, got %+v", got)
	}
}
