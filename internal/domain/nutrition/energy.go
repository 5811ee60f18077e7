package nutrition

import (
	"errors"
	"math"
	"time"
)

// ErrInsufficientData indica que faltan peso o fecha de nacimiento.
// No es un fallo: el caller muestra el marcador "missing".
var ErrInsufficientData = errors.New("insufficient data")

// DefaultFoodKcalPer100g se usa cuando el perfil no trae densidad energética.
const DefaultFoodKcalPer100g = 350.0

// Rangos aceptados para los datos que carga el usuario.
const (
	MaxWeightKg        = 1000.0
	MinFoodKcalPer100g = 1.0
	MaxFoodKcalPer100g = 1000.0
)

// ValidWeight: finito, > 0 y <= MaxWeightKg.
func ValidWeight(kg float64) bool {
	return kg > 0 && kg <= MaxWeightKg
}

// ValidFoodKcal: densidad entre MinFoodKcalPer100g y MaxFoodKcalPer100g.
// El 0 ("sin gramos") lo decide cada caller.
func ValidFoodKcal(kcal float64) bool {
	return kcal >= MinFoodKcalPer100g && kcal <= MaxFoodKcalPer100g
}

// Profile es la entrada del cálculo. Se arma a partir de la mascota guardada.
type Profile struct {
	Species    Species
	WeightKg   *float64
	BirthDate  *time.Time
	Sterilized bool

	// BodyConditionScore 1-9; nil = desconocido (desactiva ajustes por BCS).
	BodyConditionScore *int

	Activity  Activity
	Condition Condition

	// FoodKcalPer100g nil => DefaultFoodKcalPer100g. 0 => sin gramos.
	FoodKcalPer100g *float64
}

// Energy es el resultado crudo (sin redondear) del modelo energético.
type Energy struct {
	RER float64
	MER float64
}

// Multiplier es MER/RER redondeado a 2 decimales.
func (e Energy) Multiplier() float64 {
	if e.RER == 0 {
		return 0
	}
	return round2(e.MER / e.RER)
}

// RestingEnergy calcula el RER: 70 * peso^0.75.
func RestingEnergy(weightKg float64) float64 {
	return 70 * math.Pow(weightKg, 0.75)
}

// lifeStage agrupa lo que necesitan las reglas para decidir.
type lifeStage struct {
	ageMonths  int
	sterilized bool
	bcs        *int
	condition  Condition
}

func (l lifeStage) ageYears() float64 { return float64(l.ageMonths) / 12 }

func (l lifeStage) bcsAtLeast(n int) bool { return l.bcs != nil && *l.bcs >= n }

// rule es una sobrescritura del multiplicador: si match, el MER pasa a ser
// times*RER, pisando lo anterior. Se evalúan en orden y gana la última.
type rule struct {
	match func(lifeStage) bool
	times float64
}

func applyRules(base float64, l lifeStage, rules []rule) float64 {
	m := base
	for _, r := range rules {
		if r.match(l) {
			m = r.times
		}
	}
	return m
}

var (
	dogAdultRules = []rule{
		{match: func(l lifeStage) bool { return l.ageYears() >= 8 }, times: 1.4},
		{match: func(l lifeStage) bool { return l.bcsAtLeast(7) }, times: 1.0},
		{match: func(l lifeStage) bool { return l.condition == ConditionRenal }, times: 1.2},
		{match: func(l lifeStage) bool { return l.condition == ConditionCardiac }, times: 1.3},
	}
	catAdultRules = []rule{
		{match: func(l lifeStage) bool { return l.ageYears() >= 10 }, times: 1.1},
		{match: func(l lifeStage) bool { return l.bcsAtLeast(7) }, times: 0.8},
		{match: func(l lifeStage) bool { return l.condition == ConditionRenal }, times: 1.1},
	}
	hamsterRules = []rule{
		{match: func(l lifeStage) bool { return l.bcsAtLeast(8) }, times: 1.6},
	}
	rabbitRules = []rule{
		{match: func(l lifeStage) bool { return l.bcsAtLeast(8) }, times: 1.4},
		{match: func(l lifeStage) bool { return l.condition == ConditionRenal }, times: 1.1},
	}
)

// speciesMultiplier devuelve el factor MER/RER antes de la actividad.
// En perros y gatos en crecimiento no aplican BCS ni condición especial.
func speciesMultiplier(sp Species, l lifeStage) float64 {
	switch sp {
	case SpeciesDog:
		switch {
		case l.ageMonths < 4:
			return 3.0
		case l.ageMonths < 12:
			return 2.0
		}
		base := 1.8
		if l.sterilized {
			base = 1.4
		}
		return applyRules(base, l, dogAdultRules)

	case SpeciesCat:
		if l.ageMonths < 12 {
			return 2.5
		}
		base := 1.4
		if l.sterilized {
			base = 1.1
		}
		return applyRules(base, l, catAdultRules)

	case SpeciesHamster:
		base := 2.5
		if l.ageMonths < 2 {
			base = 3.0
		}
		return applyRules(base, l, hamsterRules)

	case SpeciesRabbit:
		base := 1.8
		if l.ageMonths < 4 {
			base = 2.5
		}
		return applyRules(base, l, rabbitRules)

	default:
		return 1.5
	}
}

// ComputeEnergy calcula RER y MER (con factor de actividad) para la fecha today.
func ComputeEnergy(p Profile, today time.Time) (Energy, error) {
	if p.WeightKg == nil || *p.WeightKg <= 0 {
		return Energy{}, ErrInsufficientData
	}
	months, ok := MonthsBetween(p.BirthDate, today)
	if !ok {
		return Energy{}, ErrInsufficientData
	}

	rer := RestingEnergy(*p.WeightKg)
	mult := speciesMultiplier(p.Species, lifeStage{
		ageMonths:  months,
		sterilized: p.Sterilized,
		bcs:        p.BodyConditionScore,
		condition:  p.Condition,
	})

	return Energy{
		RER: rer,
		MER: rer * mult * p.Activity.Factor(),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundInt redondea a entero. ok=false si v no es finito o no entra en int32.
func roundInt(v float64) (int, bool) {
	r := math.Round(v)
	if math.IsNaN(r) || r > math.MaxInt32 || r < math.MinInt32 {
		return 0, false
	}
	return int(r), true
}
