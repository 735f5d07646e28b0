package auge

import "strings"

// MuscleGroup is the engine's canonical muscle taxonomy. Raw muscle names
// from the exercise database and user logs are resolved into groups
// through the alias keyword table so that anatomical variants
// ("isquiotibiales", "femoral", "hamstrings") land in one category.
type MuscleGroup string

const (
	GroupPectorales    MuscleGroup = "pectorales"
	GroupDorsales      MuscleGroup = "dorsales"
	GroupDeltoides     MuscleGroup = "deltoides"
	GroupTrapecio      MuscleGroup = "trapecio"
	GroupBiceps        MuscleGroup = "bíceps"
	GroupTriceps       MuscleGroup = "tríceps"
	GroupAntebrazo     MuscleGroup = "antebrazo"
	GroupCuadriceps    MuscleGroup = "cuádriceps"
	GroupIsquiosurales MuscleGroup = "isquiosurales"
	GroupGluteos       MuscleGroup = "glúteos"
	GroupAductores     MuscleGroup = "aductores"
	GroupPantorrillas  MuscleGroup = "pantorrillas"
	GroupAbdomen       MuscleGroup = "abdomen"
	GroupEspaldaBaja   MuscleGroup = "espalda baja"
	GroupUnknown       MuscleGroup = ""
)

// AllMuscleGroups lists every tracked group, in display order.
var AllMuscleGroups = []MuscleGroup{
	GroupPectorales, GroupDorsales, GroupDeltoides, GroupTrapecio,
	GroupBiceps, GroupTriceps, GroupAntebrazo,
	GroupCuadriceps, GroupIsquiosurales, GroupGluteos, GroupAductores,
	GroupPantorrillas, GroupAbdomen, GroupEspaldaBaja,
}

// groupAliases maps each group to the lowercase keywords that identify it
// in raw muscle names. First group whose keyword matches wins; the table
// is ordered so narrower categories (espalda baja) are checked before
// broader ones that share substrings.
var groupAliases = []struct {
	group    MuscleGroup
	keywords []string
}{
	{GroupEspaldaBaja, []string{"erector", "espinal", "lumbar", "espalda baja", "cuadrado lumbar", "lower back"}},
	{GroupIsquiosurales, []string{"isquiosurales", "isquiotibiales", "bíceps femoral", "semitendinoso", "semimembranoso", "femoral", "hamstring"}},
	{GroupPectorales, []string{"pectoral", "pecho", "chest"}},
	{GroupDorsales, []string{"dorsal", "redondo mayor", "espalda alta", "lats"}},
	{GroupDeltoides, []string{"deltoides", "hombro", "delts", "shoulder"}},
	{GroupTrapecio, []string{"trapecio", "traps"}},
	{GroupBiceps, []string{"bíceps", "biceps", "braquial", "braquiorradial"}},
	{GroupTriceps, []string{"tríceps", "triceps"}},
	{GroupAntebrazo, []string{"antebrazo", "forearm"}},
	{GroupCuadriceps, []string{"cuádriceps", "cuadriceps", "recto femoral", "vasto", "quads"}},
	{GroupGluteos, []string{"glúteo", "gluteo", "glutes"}},
	{GroupAductores, []string{"aductor", "adductor"}},
	{GroupPantorrillas, []string{"pantorrilla", "gemelo", "gastrocnemio", "sóleo", "soleo", "calves", "calf"}},
	{GroupAbdomen, []string{"abdomen", "abdominal", "oblicuo", "recto abdominal", "core", "transverso", "abs"}},
}

// aliasIndex is built once from groupAliases for exact-keyword lookups.
var aliasIndex = func() map[string]MuscleGroup {
	idx := make(map[string]MuscleGroup)
	for _, e := range groupAliases {
		idx[string(e.group)] = e.group
		for _, k := range e.keywords {
			idx[k] = e.group
		}
	}
	return idx
}()

// ResolveMuscleGroup maps a raw muscle name to its canonical group,
// or GroupUnknown when nothing matches.
func ResolveMuscleGroup(raw string) MuscleGroup {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return GroupUnknown
	}
	if g, ok := aliasIndex[name]; ok {
		return g
	}
	for _, e := range groupAliases {
		for _, k := range e.keywords {
			if strings.Contains(name, k) {
				return e.group
			}
		}
	}
	return GroupUnknown
}

// SameMuscleGroup reports whether a raw muscle name belongs to the group
// identified by target (itself a raw name or a canonical group). Two
// unknown names still match when one contains the other, preserving
// fuzzy behavior for custom muscle labels.
func SameMuscleGroup(raw, target string) bool {
	a := strings.ToLower(strings.TrimSpace(raw))
	b := strings.ToLower(strings.TrimSpace(target))
	if a == b {
		return true
	}
	ga, gb := ResolveMuscleGroup(a), ResolveMuscleGroup(b)
	if ga != GroupUnknown && ga == gb {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
