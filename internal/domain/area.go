package domain

// Area is a coarse grouping of study subjects, used for per-area achievement
// rules. Writing is the residual area: it exists for classification but is
// excluded from all-areas coverage checks. Unknown subjects fall back to Other.
type Area string

const (
	AreaLanguages       Area = "languages"
	AreaHumanities      Area = "humanities"
	AreaNaturalSciences Area = "natural_sciences"
	AreaMath            Area = "math"
	AreaWriting         Area = "writing"
	AreaOther           Area = "other"
)

// CoreAreas are the areas an all_areas achievement must cover.
var CoreAreas = []Area{AreaLanguages, AreaHumanities, AreaNaturalSciences, AreaMath}

// subjectAreas maps each known subject to exactly one area.
var subjectAreas = map[string]Area{
	"Portuguese":         AreaLanguages,
	"Literature":         AreaLanguages,
	"English":            AreaLanguages,
	"Spanish":            AreaLanguages,
	"Arts":               AreaLanguages,
	"Physical Education": AreaLanguages,

	"History":    AreaHumanities,
	"Geography":  AreaHumanities,
	"Philosophy": AreaHumanities,
	"Sociology":  AreaHumanities,

	"Physics":   AreaNaturalSciences,
	"Chemistry": AreaNaturalSciences,
	"Biology":   AreaNaturalSciences,

	"Math": AreaMath,

	"Writing": AreaWriting,
}

// AreaForSubject classifies a subject into its area, with Other as fallback.
func AreaForSubject(subject string) Area {
	if a, ok := subjectAreas[subject]; ok {
		return a
	}
	return AreaOther
}

// KnownSubjects returns the subjects with an explicit area mapping.
func KnownSubjects() []string {
	out := make([]string, 0, len(subjectAreas))
	for s := range subjectAreas {
		out = append(out, s)
	}
	return out
}
