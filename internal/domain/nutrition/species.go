package nutrition

import "strings"

// Species es la variante cerrada que usa el cálculo energético.
// El texto libre del perfil se normaliza con ParseSpecies.
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesHamster Species = "hamster"
	SpeciesRabbit  Species = "rabbit"
	SpeciesOther   Species = "other"
)

// ParseSpecies acepta los nombres en inglés y los alias en español.
// Cualquier otro valor cae en SpeciesOther.
func ParseSpecies(s string) Species {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dog", "perro":
		return SpeciesDog
	case "cat", "gato":
		return SpeciesCat
	case "hamster", "hámster":
		return SpeciesHamster
	case "rabbit", "conejo":
		return SpeciesRabbit
	default:
		return SpeciesOther
	}
}

// Icon devuelve el emoji que acompaña al resumen de alimentación.
func (s Species) Icon() string {
	switch s {
	case SpeciesDog:
		return "🐶"
	case SpeciesCat:
		return "🐱"
	case SpeciesHamster:
		return "🐹"
	case SpeciesRabbit:
		return "🐰"
	default:
		return "🐾"
	}
}

type Activity string

const (
	ActivityLow    Activity = "low"
	ActivityNormal Activity = "normal"
	ActivityHigh   Activity = "high"
)

// ParseActivity normaliza el nivel de actividad. Vacío o desconocido => normal.
func ParseActivity(s string) Activity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "baja":
		return ActivityLow
	case "high", "alta":
		return ActivityHigh
	default:
		return ActivityNormal
	}
}

// Factor es el multiplicador final sobre el MER.
func (a Activity) Factor() float64 {
	switch a {
	case ActivityLow:
		return 0.9
	case ActivityHigh:
		return 1.2
	default:
		return 1.0
	}
}

// Condition es una condición clínica que cambia el MER de adultos.
type Condition string

const (
	ConditionNone    Condition = "none"
	ConditionRenal   Condition = "renal"
	ConditionCardiac Condition = "cardiac"
)

func ParseCondition(s string) Condition {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "renal":
		return ConditionRenal
	case "cardiac", "cardiaco", "cardíaco":
		return ConditionCardiac
	default:
		return ConditionNone
	}
}
