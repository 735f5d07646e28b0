package auge

import "testing"

func TestResolveMuscleGroup(t *testing.T) {
	tests := []struct {
		raw  string
		want MuscleGroup
	}{
		{"Pectorales", GroupPectorales},
		{"chest", GroupPectorales},
		{"pecho", GroupPectorales},
		{"Cuádriceps", GroupCuadriceps},
		{"quads", GroupCuadriceps},
		{"vasto lateral", GroupCuadriceps},
		{"Isquiosurales", GroupIsquiosurales},
		{"isquiotibiales", GroupIsquiosurales},
		{"hamstrings", GroupIsquiosurales},
		{"Erectores Espinales", GroupEspaldaBaja},
		{"espalda baja", GroupEspaldaBaja},
		{"cuadrado lumbar", GroupEspaldaBaja},
		{"Dorsales", GroupDorsales},
		{"hombro posterior", GroupDeltoides},
		{"gemelo interno", GroupPantorrillas},
		{"  Glúteo Mayor  ", GroupGluteos},
		{"", GroupUnknown},
		{"telequinesis", GroupUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ResolveMuscleGroup(tt.raw); got != tt.want {
				t.Errorf("ResolveMuscleGroup(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestResolveMuscleGroupNarrowBeforeBroad guards the alias ordering:
// names containing both a narrow and a broad keyword must land in the
// narrow category.
func TestResolveMuscleGroupNarrowBeforeBroad(t *testing.T) {
	if got := ResolveMuscleGroup("bíceps femoral"); got != GroupIsquiosurales {
		t.Errorf("bíceps femoral resolved to %q, want isquiosurales", got)
	}
	if got := ResolveMuscleGroup("erector espinal lumbar"); got != GroupEspaldaBaja {
		t.Errorf("erector espinal lumbar resolved to %q, want espalda baja", got)
	}
}

func TestSameMuscleGroup(t *testing.T) {
	tests := []struct {
		name        string
		raw, target string
		want        bool
	}{
		{"identical", "Cuádriceps", "cuádriceps", true},
		{"alias to canonical", "quads", "Cuádriceps", true},
		{"two aliases", "chest", "pecho", true},
		{"different groups", "chest", "dorsales", false},
		{"fuzzy unknown containment", "aparato custom izquierdo", "aparato custom", true},
		{"unrelated unknowns", "zzz", "yyy", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameMuscleGroup(tt.raw, tt.target); got != tt.want {
				t.Errorf("SameMuscleGroup(%q, %q) = %v, want %v", tt.raw, tt.target, got, tt.want)
			}
		})
	}
}

func TestAllMuscleGroupsResolveToThemselves(t *testing.T) {
	for _, g := range AllMuscleGroups {
		if got := ResolveMuscleGroup(string(g)); got != g {
			t.Errorf("canonical name %q resolved to %q", g, got)
		}
	}
}
